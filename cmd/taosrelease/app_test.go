// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/taosdata/taosrelease/internal/pipeline"
	"github.com/taosdata/taosrelease/internal/release"
	"github.com/taosdata/taosrelease/internal/testutil"
	"github.com/taosdata/taosrelease/pkg/platform"
)

const goGitConfig = `vcs: backend: "go-git"
dist: {
	archiver: "builtin"
	manifest: true
}
`

type harness struct {
	root   string
	repo   testutil.GitRepo
	stdout bytes.Buffer
	stderr bytes.Buffer
	app    *App
}

func newHarness(t *testing.T, host platform.StaticHost) *harness {
	t.Helper()
	h := &harness{root: t.TempDir()}
	h.repo = testutil.MustInitGitRepo(t, h.root, "develop")
	testutil.MustWriteFile(t, filepath.Join(h.root, "taosrelease.cue"), goGitConfig)
	h.app = NewApp(Dependencies{
		Host:   host,
		OS:     platform.OSLinux,
		Clock:  testutil.NewFakeClock(time.Date(2024, 5, 6, 7, 8, 9, 0, time.Local)),
		Stdout: &h.stdout,
		Stderr: &h.stderr,
	})
	return h
}

func (h *harness) run(args ...string) error {
	root := NewRootCommand(h.app)
	root.SetArgs(append([]string{"--root", h.root}, args...))
	root.SetOut(&h.stdout)
	root.SetErr(&h.stderr)
	return root.ExecuteContext(context.Background())
}

var x64Host = platform.StaticHost{Bits: 64, MachineName: "x86_64"}

func TestRoot_PackageStage(t *testing.T) {
	t.Parallel()

	h := newHarness(t, x64Host)
	testutil.SourceTree(t, h.root, "libtaos_odbc.so.0.1")

	if err := h.run("-t", "package"); err != nil {
		t.Fatalf("run error = %v\nstderr:\n%s", err, h.stderr.String())
	}
	out := h.stdout.String()
	for _, want := range []string{
		"RELEASE INFO",
		"Branch              : develop",
		"Commit              : " + h.repo.Commit,
		"BuildTime           : 2024-05-06 07:08:09",
		"PackageName         : taos_odbc-1.0.0-linux-x64-installer",
		"Success.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout missing %q:\n%s", want, out)
		}
	}
	rel := filepath.Join(h.root, "release")
	testutil.MustReadFile(t, filepath.Join(rel, "taos_odbc-1.0.0-linux-x64-installer.tar.gz"))
	manifest := testutil.MustReadFile(t, filepath.Join(rel, "taos_odbc-1.0.0-linux-x64-installer.toml"))
	if !strings.Contains(manifest, h.repo.Commit) {
		t.Errorf("manifest does not record the commit:\n%s", manifest)
	}

	h.stdout.Reset()
	manifestPath := filepath.Join(rel, "taos_odbc-1.0.0-linux-x64-installer.toml")
	if err := h.run("verify", manifestPath); err != nil {
		t.Fatalf("verify error = %v\nstderr:\n%s", err, h.stderr.String())
	}
	if !strings.Contains(h.stdout.String(), "OK taos_odbc-1.0.0-linux-x64-installer.tar.gz") {
		t.Errorf("verify output:\n%s", h.stdout.String())
	}

	testutil.MustWriteFile(t, filepath.Join(rel, "taos_odbc-1.0.0-linux-x64-installer.tar.gz"), "tampered")
	if err := h.run("verify", manifestPath); exitCodeOf(err) != 1 {
		t.Errorf("verify of a modified artifact = %v, want exit 1", err)
	}
	if !strings.Contains(h.stderr.String(), "does not match manifest") {
		t.Errorf("stderr:\n%s", h.stderr.String())
	}
}

func TestRoot_MissingArtifact(t *testing.T) {
	t.Parallel()

	h := newHarness(t, x64Host)
	testutil.SourceTree(t, h.root, "")

	err := h.run("-t", "package")
	if !errors.Is(err, pipeline.ErrMissingArtifact) {
		t.Fatalf("run error = %v, want ErrMissingArtifact", err)
	}
	if exitCodeOf(err) != 1 {
		t.Errorf("exit code = %d, want 1", exitCodeOf(err))
	}
	if !strings.Contains(h.stderr.String(), "libtaos_odbc.so.0.1") {
		t.Errorf("stderr should name the missing library:\n%s", h.stderr.String())
	}
	if !strings.Contains(h.stderr.String(), "taosrelease -t build") {
		t.Errorf("stderr should suggest running the build stage:\n%s", h.stderr.String())
	}
}

func TestRoot_UnknownStageIsNoop(t *testing.T) {
	t.Parallel()

	h := newHarness(t, x64Host)
	if err := h.run("-t", "deploy"); err != nil {
		t.Fatalf("run error = %v", err)
	}
	if !strings.Contains(h.stdout.String(), "Invalid -t param: deploy. Please enter valid input.") {
		t.Errorf("stdout:\n%s", h.stdout.String())
	}
}

func TestRoot_UnknownHostIsFatalEvenWithOverride(t *testing.T) {
	t.Parallel()

	h := newHarness(t, platform.StaticHost{Bits: 64, MachineName: "riscv64"})
	err := h.run("-t", "deploy", "-c", "x64")
	if !errors.Is(err, release.ErrUnknownCPUType) {
		t.Fatalf("run error = %v, want ErrUnknownCPUType", err)
	}
	if strings.Contains(h.stdout.String(), "RELEASE INFO") {
		t.Error("context must not be printed when resolution fails")
	}
}

func TestRoot_InvalidOverrides(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"build mode", []string{"-b", "Profile"}, release.ErrInvalidBuildMode},
		{"cpu type", []string{"-c", "mips64"}, release.ErrUnknownCPUType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newHarness(t, x64Host)
			if err := h.run(tt.args...); !errors.Is(err, tt.want) {
				t.Errorf("run(%v) = %v, want %v", tt.args, err, tt.want)
			}
		})
	}
}

func TestRoot_RejectsPositionalArgs(t *testing.T) {
	t.Parallel()

	h := newHarness(t, x64Host)
	if err := h.run("package"); err == nil {
		t.Error("positional arguments should be rejected")
	}
}

func TestRoot_DryRunBuild(t *testing.T) {
	t.Parallel()

	h := newHarness(t, x64Host)
	if err := h.run("-t", "build", "--dry-run", "-b", "debug"); err != nil {
		t.Fatalf("run error = %v", err)
	}
	out := h.stdout.String()
	build := filepath.Join(h.root, "build")
	for _, want := range []string{
		"[dry-run] (cd " + h.root + ") cmake -B " + build + " -DCMAKE_BUILD_TYPE=Debug",
		"[dry-run] (cd " + h.root + ") cmake --build " + build,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout missing %q:\n%s", want, out)
		}
	}
}

func TestInfo_JSON(t *testing.T) {
	t.Parallel()

	h := newHarness(t, platform.StaticHost{Bits: 64, MachineName: "aarch64"})
	if err := h.run("info", "--format", "json"); err != nil {
		t.Fatalf("run error = %v", err)
	}
	var summary release.Summary
	if err := json.Unmarshal(h.stdout.Bytes(), &summary); err != nil {
		t.Fatalf("info output is not JSON: %v\n%s", err, h.stdout.String())
	}
	if summary.CPUType != "AArch64" || summary.Branch != "develop" || summary.PackageName != "taos_odbc-1.0.0-linux-aarch64-installer" {
		t.Errorf("summary = %+v", summary)
	}
}

func TestInfo_Formats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		want   string
	}{
		{"yaml", "package_name: taos_odbc-1.0.0-linux-x64-installer"},
		{"toml", "package_name = 'taos_odbc-1.0.0-linux-x64-installer'"},
		{"text", "PackageName         : taos_odbc-1.0.0-linux-x64-installer"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()
			h := newHarness(t, x64Host)
			if err := h.run("info", "--format", tt.format); err != nil {
				t.Fatalf("run error = %v", err)
			}
			if !strings.Contains(h.stdout.String(), tt.want) {
				t.Errorf("stdout missing %q:\n%s", tt.want, h.stdout.String())
			}
		})
	}

	h := newHarness(t, x64Host)
	if err := h.run("info", "--format", "xml"); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestConfigCommands(t *testing.T) {
	t.Parallel()

	h := newHarness(t, x64Host)
	if err := h.run("config", "path"); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(h.stdout.String()); got != filepath.Join(h.root, "taosrelease.cue") {
		t.Errorf("config path = %q", got)
	}

	h.stdout.Reset()
	if err := h.run("config", "dump"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(h.stdout.String(), `archiver: "builtin"`) || !strings.Contains(h.stdout.String(), `backend: "go-git"`) {
		t.Errorf("config dump:\n%s", h.stdout.String())
	}

	h.stdout.Reset()
	if err := h.run("config", "show"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(h.stdout.String(), "Current Configuration") || !strings.Contains(h.stdout.String(), "manifest: true") {
		t.Errorf("config show:\n%s", h.stdout.String())
	}
}

func TestConfig_InvalidFileFails(t *testing.T) {
	t.Parallel()

	h := newHarness(t, x64Host)
	testutil.MustWriteFile(t, filepath.Join(h.root, "taosrelease.cue"), `vcs: backend: "svn"`+"\n")
	err := h.run("info")
	if err == nil || exitCodeOf(err) != 1 {
		t.Fatalf("run error = %v, want exit 1", err)
	}
	if !strings.Contains(h.stderr.String(), "vcs.backend") {
		t.Errorf("stderr should point at the bad key:\n%s", h.stderr.String())
	}
	if !strings.Contains(h.stderr.String(), "config schema") {
		t.Errorf("stderr should carry suggestions:\n%s", h.stderr.String())
	}
}

func TestRoot_UnsafeBuildDirKeepsSources(t *testing.T) {
	t.Parallel()

	h := newHarness(t, x64Host)
	testutil.MustWriteFile(t, filepath.Join(h.root, "taosrelease.cue"), goGitConfig+`paths: build: "."`+"\n")
	testutil.MustWriteFile(t, filepath.Join(h.root, "CMakeLists.txt"), "project(taos_odbc)\n")

	if err := h.run("-t", "build"); exitCodeOf(err) != 1 {
		t.Fatalf("run error = %v, want exit 1", err)
	}
	if got := testutil.MustReadFile(t, filepath.Join(h.root, "CMakeLists.txt")); got != "project(taos_odbc)\n" {
		t.Errorf("source tree modified, CMakeLists.txt = %q", got)
	}
	if !strings.Contains(h.stderr.String(), "paths.build") {
		t.Errorf("stderr should name the offending setting:\n%s", h.stderr.String())
	}
	if strings.Contains(h.stdout.String(), "RELEASE INFO") {
		t.Errorf("nothing should run with an unsafe layout:\n%s", h.stdout.String())
	}
}
