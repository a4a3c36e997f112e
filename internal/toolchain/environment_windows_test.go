// SPDX-License-Identifier: MPL-2.0

//go:build windows

package toolchain

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/taosdata/taosrelease/internal/runner"
)

func TestAcquire_ScriptPathWithSpaces(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "Microsoft Visual Studio", "VC")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	script := filepath.Join(dir, "vcvarsall.bat")
	if err := os.WriteFile(script, []byte("@set VSCMD_ARG_TGT_ARCH=%1\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	env, err := Acquire(context.Background(), &runner.ExecRunner{}, script, "arm64")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if got := env["VSCMD_ARG_TGT_ARCH"]; got != "arm64" {
		t.Errorf("VSCMD_ARG_TGT_ARCH = %q, want arm64", got)
	}
}
