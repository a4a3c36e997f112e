// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/taosdata/taosrelease/internal/runner"
)

const vcvarsDump = "**********************************************************************\r\n" +
	"** Visual Studio 2022 Developer Command Prompt v17.9.6\r\n" +
	"**********************************************************************\r\n" +
	"[vcvarsall.bat] Environment initialized for: 'x64'\r\n" +
	"INCLUDE=C:\\VS\\include;C:\\Kits\\10\\include\r\n" +
	"Path=C:\\VS\\bin\\Hostx64\\x64;C:\\Windows\\system32\r\n" +
	"VSCMD_ARG_TGT_ARCH=x64\r\n" +
	"__VSCMD_PREINIT_PATH=C:\\Windows\\system32\r\n" +
	"WEIRD=a=b=c\r\n" +
	"\r\n"

func TestParseEnvDump(t *testing.T) {
	t.Parallel()

	env := ParseEnvDump(vcvarsDump)

	tests := []struct {
		name string
		want string
	}{
		{"INCLUDE", `C:\VS\include;C:\Kits\10\include`},
		{"Path", `C:\VS\bin\Hostx64\x64;C:\Windows\system32`},
		{"VSCMD_ARG_TGT_ARCH", "x64"},
		{"__VSCMD_PREINIT_PATH", `C:\Windows\system32`},
		{"WEIRD", "a=b=c"},
	}
	for _, tt := range tests {
		if got := env[tt.name]; got != tt.want {
			t.Errorf("env[%q] = %q, want %q", tt.name, got, tt.want)
		}
	}
	if len(env) != len(tests) {
		t.Errorf("parsed %d variables, want %d (banner lines must be skipped): %v", len(env), len(tests), env)
	}
}

func TestEnvironmentSliceAndOverlay(t *testing.T) {
	t.Parallel()

	env := Environment{"Path": `C:\VS\bin`, "INCLUDE": `C:\VS\include`}
	if got, want := env.Slice(), []string{`INCLUDE=C:\VS\include`, `Path=C:\VS\bin`}; !slices.Equal(got, want) {
		t.Errorf("Slice() = %v, want %v", got, want)
	}

	merged := env.Overlay([]string{`Path=C:\Windows`, "TEMP=C:\\Temp"})
	want := []string{`INCLUDE=C:\VS\include`, `Path=C:\VS\bin`, `TEMP=C:\Temp`}
	if !slices.Equal(merged, want) {
		t.Errorf("Overlay() = %v, want %v", merged, want)
	}
}

type dumpRunner struct {
	got    runner.Command
	result *runner.Result
}

func (r *dumpRunner) Run(ctx context.Context, cmd runner.Command) *runner.Result {
	return r.Capture(ctx, cmd)
}

func (r *dumpRunner) Capture(_ context.Context, cmd runner.Command) *runner.Result {
	r.got = cmd
	return r.result
}

func TestAcquire(t *testing.T) {
	t.Parallel()

	r := &dumpRunner{result: &runner.Result{Output: vcvarsDump}}
	env, err := Acquire(context.Background(), r, DefaultVCVarsAll, "")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if env["VSCMD_ARG_TGT_ARCH"] != "x64" {
		t.Errorf("VSCMD_ARG_TGT_ARCH = %q", env["VSCMD_ARG_TGT_ARCH"])
	}
	if r.got.Name != "cmd.exe" {
		t.Errorf("ran %q, want cmd.exe", r.got.Name)
	}
	want := `cmd.exe /s /c ""C:\Program Files\Microsoft Visual Studio\2022\Community\VC\Auxiliary\Build\vcvarsall.bat" x64 && set"`
	if r.got.RawCmdLine != want {
		t.Errorf("command line = %q, want %q", r.got.RawCmdLine, want)
	}
}

func TestVCVarsCommand(t *testing.T) {
	t.Parallel()

	cmd := VCVarsCommand(`D:\VS\BuildTools\VC\Auxiliary\Build\vcvarsall.bat`, "arm64")
	if cmd.Name != "cmd.exe" {
		t.Errorf("Name = %q", cmd.Name)
	}
	wantArgs := []string{"/s", "/c", `"D:\VS\BuildTools\VC\Auxiliary\Build\vcvarsall.bat" arm64 && set`}
	if !slices.Equal(cmd.Args, wantArgs) {
		t.Errorf("Args = %q, want %q", cmd.Args, wantArgs)
	}
	wantLine := `cmd.exe /s /c ""D:\VS\BuildTools\VC\Auxiliary\Build\vcvarsall.bat" arm64 && set"`
	if cmd.RawCmdLine != wantLine {
		t.Errorf("RawCmdLine = %q, want %q", cmd.RawCmdLine, wantLine)
	}
	if cmd.String() != wantLine {
		t.Errorf("String() = %q, want the raw command line", cmd.String())
	}
}

func TestAcquire_Failures(t *testing.T) {
	t.Parallel()

	failing := &dumpRunner{result: &runner.Result{ExitCode: 1, ErrOutput: "The system cannot find the path specified."}}
	if _, err := Acquire(context.Background(), failing, `C:\missing.bat`, "x64"); !errors.Is(err, runner.ErrToolFailed) {
		t.Errorf("Acquire() with failing script = %v, want ErrToolFailed", err)
	}

	silent := &dumpRunner{result: &runner.Result{Output: "\r\n"}}
	if _, err := Acquire(context.Background(), silent, DefaultVCVarsAll, "x64"); !errors.Is(err, ErrEmptyEnvironment) {
		t.Errorf("Acquire() with empty dump = %v, want ErrEmptyEnvironment", err)
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("TAOSRELEASE_VS_ROOT", `D:\VS\2022\BuildTools`)

	got, err := ExpandPath(`$TAOSRELEASE_VS_ROOT\VC\Auxiliary\Build\vcvarsall.bat`)
	if err != nil {
		t.Fatalf("ExpandPath() error = %v", err)
	}
	if want := `D:\VS\2022\BuildTools\VC\Auxiliary\Build\vcvarsall.bat`; got != want {
		t.Errorf("ExpandPath() = %q, want %q", got, want)
	}

	got, err = ExpandPath("")
	if err != nil || got != DefaultVCVarsAll {
		t.Errorf("ExpandPath(\"\") = %q, %v", got, err)
	}
	if !strings.Contains(DefaultVCVarsAll, "Program Files") {
		t.Errorf("default path lost its spaces: %q", DefaultVCVarsAll)
	}
}
