// SPDX-License-Identifier: MPL-2.0

//go:build windows

package runner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExecRunner_RawCmdLine(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "Program Files")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	script := filepath.Join(dir, "vcvarsall.bat")
	if err := os.WriteFile(script, []byte("@set TAOS_FROM_VCVARS=%1\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := Command{
		Name:       "cmd.exe",
		RawCmdLine: `cmd.exe /s /c ""` + script + `" x64 && set"`,
	}
	if c := (&ExecRunner{}).prepare(context.Background(), cmd); c.SysProcAttr == nil || c.SysProcAttr.CmdLine != cmd.RawCmdLine {
		t.Fatalf("SysProcAttr = %+v, want CmdLine %q", c.SysProcAttr, cmd.RawCmdLine)
	}

	out, err := Output(context.Background(), &ExecRunner{}, cmd)
	if err != nil {
		t.Fatalf("Output() = %v", err)
	}
	if !strings.Contains(out, "TAOS_FROM_VCVARS=x64") {
		t.Errorf("environment dump missing the script's variable:\n%s", out)
	}
}
