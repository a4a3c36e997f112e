// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/taosdata/taosrelease/pkg/types"
)

// helperEnv switches the test binary into a fake external tool.
const helperEnv = "TAOSRELEASE_RUNNER_HELPER"

func TestMain(m *testing.M) {
	switch os.Getenv(helperEnv) {
	case "echo":
		fmt.Println(strings.Join(os.Args[1:], " "))
		fmt.Fprintln(os.Stderr, "to stderr")
		os.Exit(0)
	case "exit":
		code, _ := strconv.Atoi(os.Args[len(os.Args)-1])
		fmt.Fprintln(os.Stderr, "helper failing")
		os.Exit(code)
	case "env":
		fmt.Println(os.Getenv("TAOS_MARKER"))
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func helper(mode string, args ...string) Command {
	return Command{
		Name: os.Args[0],
		Args: args,
		Env:  append(os.Environ(), helperEnv+"="+mode),
	}
}

func TestExecRunner_Capture(t *testing.T) {
	t.Parallel()

	r := &ExecRunner{}
	res := r.Capture(context.Background(), helper("echo", "rev-parse", "--abbrev-ref", "HEAD"))
	if !res.Success() {
		t.Fatalf("Capture() = %+v, want success", res)
	}
	if strings.TrimSpace(res.Output) != "rev-parse --abbrev-ref HEAD" {
		t.Errorf("Output = %q", res.Output)
	}
	if strings.TrimSpace(res.ErrOutput) != "to stderr" {
		t.Errorf("ErrOutput = %q", res.ErrOutput)
	}
}

func TestExecRunner_RunStreams(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	r := &ExecRunner{Stdout: &stdout, Stderr: &stderr}
	if err := RunChecked(context.Background(), r, helper("echo", "--build", "build")); err != nil {
		t.Fatalf("RunChecked() = %v", err)
	}
	if strings.TrimSpace(stdout.String()) != "--build build" {
		t.Errorf("stdout = %q", stdout.String())
	}
	if stderr.Len() == 0 {
		t.Error("stderr was not streamed")
	}
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	t.Parallel()

	r := &ExecRunner{}
	cmd := helper("exit", "3")
	res := r.Capture(context.Background(), cmd)
	if res.ExitCode != 3 || res.Error != nil {
		t.Fatalf("Capture() = %+v, want exit 3 without start error", res)
	}

	err := Check(cmd, res)
	if !errors.Is(err, ErrToolFailed) {
		t.Fatalf("Check() = %v, want ErrToolFailed", err)
	}
	var toolErr *ToolError
	if !errors.As(err, &toolErr) || toolErr.ExitCode != 3 {
		t.Fatalf("Check() = %#v, want ToolError with exit 3", err)
	}
	if !strings.Contains(err.Error(), "exit status 3") || !strings.Contains(err.Error(), "helper failing") {
		t.Errorf("error message %q should mention status and stderr", err.Error())
	}
}

func TestExecRunner_MissingExecutable(t *testing.T) {
	t.Parallel()

	r := &ExecRunner{}
	cmd := Command{Name: "taosrelease-no-such-tool"}
	res := r.Capture(context.Background(), cmd)
	if res.Error == nil || res.ExitCode != types.ExitFailure {
		t.Fatalf("Capture() = %+v, want start error", res)
	}
	if err := Check(cmd, res); !errors.Is(err, ErrToolFailed) {
		t.Errorf("Check() = %v, want ErrToolFailed", err)
	}
}

func TestExecRunner_Env(t *testing.T) {
	t.Parallel()

	cmd := helper("env")
	cmd.Env = append(cmd.Env, "TAOS_MARKER=from-vcvars")
	out, err := Output(context.Background(), &ExecRunner{}, cmd)
	if err != nil {
		t.Fatalf("Output() = %v", err)
	}
	if out != "from-vcvars" {
		t.Errorf("Output() = %q, want from-vcvars", out)
	}
}

func TestCommandString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{
			"plain words",
			Command{Name: "cmake", Args: []string{"-B", "/src/build", "-DCMAKE_BUILD_TYPE=Debug", "-j", "4"}},
			"cmake -B /src/build -DCMAKE_BUILD_TYPE=Debug -j 4",
		},
		{
			"spaces are quoted",
			Command{Name: "cmake", Args: []string{"-G", "Visual Studio 17 2022", "-A", "x64"}},
			"cmake -G 'Visual Studio 17 2022' -A x64",
		},
		{
			"empty argument",
			Command{Name: "tar", Args: []string{"-czf", ""}},
			"tar -czf ''",
		},
		{
			"raw command line",
			Command{Name: "cmd.exe", Args: []string{"/s", "/c", "set"}, RawCmdLine: `cmd.exe /s /c "set"`},
			`cmd.exe /s /c "set"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.cmd.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDryRunner(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := &DryRunner{Out: &out, Outputs: map[string]string{"git": "main\n"}}

	if err := RunChecked(context.Background(), r, Command{Name: "cmake", Args: []string{"--build", "build"}, Dir: "/src"}); err != nil {
		t.Fatalf("RunChecked() = %v", err)
	}
	branch, err := Output(context.Background(), r, Command{Name: "git", Args: []string{"rev-parse"}})
	if err != nil || branch != "main" {
		t.Errorf("Output() = %q, %v; want main", branch, err)
	}
	if !strings.Contains(out.String(), "[dry-run] (cd /src) cmake --build build") {
		t.Errorf("dry-run output = %q", out.String())
	}
}
