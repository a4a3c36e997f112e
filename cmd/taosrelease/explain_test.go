// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"
	"testing"

	"github.com/taosdata/taosrelease/internal/issue"
)

func TestExplain_List(t *testing.T) {
	t.Parallel()

	h := newHarness(t, x64Host)
	if err := h.run("explain"); err != nil {
		t.Fatal(err)
	}
	out := h.stdout.String()
	for _, entry := range issue.Values() {
		if !strings.Contains(out, entry.Name()) {
			t.Errorf("list missing %q:\n%s", entry.Name(), out)
		}
	}
	if !strings.Contains(out, "A file the package needs is missing") {
		t.Errorf("list should show headlines:\n%s", out)
	}
}

func TestExplain_Entry(t *testing.T) {
	t.Parallel()

	h := newHarness(t, x64Host)
	if err := h.run("explain", "tool-failed", "--style", "notty"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(h.stdout.String(), "taosrelease --dry-run") {
		t.Errorf("explain tool-failed:\n%s", h.stdout.String())
	}

	h = newHarness(t, x64Host)
	err := h.run("explain", "nope")
	if exitCodeOf(err) != 1 || !strings.Contains(h.stderr.String(), `unknown issue "nope"`) {
		t.Errorf("explain nope = %v, stderr:\n%s", err, h.stderr.String())
	}
}

func TestVerboseFailureRendersIssue(t *testing.T) {
	t.Parallel()

	h := newHarness(t, x64Host)
	err := h.run("-t", "package", "-v")
	if exitCodeOf(err) != 1 {
		t.Fatalf("run error = %v, want exit 1", err)
	}
	if !strings.Contains(h.stderr.String(), "Error chain:") {
		t.Errorf("verbose failure should print the error chain:\n%s", h.stderr.String())
	}
	if !strings.Contains(h.stderr.String(), "A file the package needs is missing") {
		t.Errorf("verbose failure should render the catalog entry:\n%s", h.stderr.String())
	}
}
