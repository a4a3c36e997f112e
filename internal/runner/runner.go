// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/taosdata/taosrelease/pkg/types"
	"mvdan.cc/sh/v3/syntax"
)

// ErrToolFailed is the sentinel error wrapped by ToolError.
var ErrToolFailed = errors.New("external tool failed")

type (
	// Command is one invocation of an external tool.
	Command struct {
		// Name is the executable, looked up in PATH when not absolute.
		Name string
		// Args are passed verbatim, without shell interpretation.
		Args []string
		// Dir is the working directory; empty means the current directory.
		Dir string
		// Env is the complete environment of the child; nil inherits ours.
		Env []string
		// RawCmdLine, when set, is the complete Windows command line passed
		// to CreateProcess instead of quoting Name and Args. cmd.exe parses
		// its own command line and does not undo os/exec escaping.
		RawCmdLine string
	}

	// Result contains the outcome of a command.
	Result struct {
		// ExitCode is the tool's exit status.
		ExitCode types.ExitCode
		// Output is captured stdout (Capture only).
		Output string
		// ErrOutput is captured stderr (Capture only).
		ErrOutput string
		// Error is set when the tool could not be started or waited on.
		Error error
	}

	// Runner executes commands.
	Runner interface {
		// Run streams the tool's output to the runner's writers.
		Run(ctx context.Context, cmd Command) *Result
		// Capture collects the tool's output into the Result.
		Capture(ctx context.Context, cmd Command) *Result
	}

	// ToolError reports a tool that could not run or exited non-zero.
	ToolError struct {
		// Command is the quoted command line.
		Command  string
		ExitCode types.ExitCode
		// Stderr is the captured error output, if any.
		Stderr string
		Cause  error
	}
)

// Error implements the error interface.
func (e *ToolError) Error() string {
	var msg strings.Builder
	fmt.Fprintf(&msg, "%s", e.Command)
	if e.Cause != nil {
		fmt.Fprintf(&msg, ": %v", e.Cause)
	} else {
		fmt.Fprintf(&msg, ": exit status %d", e.ExitCode)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		fmt.Fprintf(&msg, ": %s", s)
	}
	return msg.String()
}

// Unwrap returns ErrToolFailed for errors.Is() compatibility. The start
// failure, if any, is reachable through errors.As on Cause.
func (e *ToolError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrToolFailed, e.Cause}
	}
	return []error{ErrToolFailed}
}

// String renders the command line for logs and dry runs. Words made only of
// shell-safe characters are printed as is; others are quoted for bash.
// A RawCmdLine is returned verbatim.
func (c Command) String() string {
	if c.RawCmdLine != "" {
		return c.RawCmdLine
	}
	words := append([]string{c.Name}, c.Args...)
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = quoteWord(w)
	}
	return strings.Join(quoted, " ")
}

func quoteWord(w string) string {
	if w != "" && strings.IndexFunc(w, needsQuoting) < 0 {
		return w
	}
	q, err := syntax.Quote(w, syntax.LangBash)
	if err != nil {
		return fmt.Sprintf("%q", w)
	}
	return q
}

func needsQuoting(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	default:
		return !strings.ContainsRune("-_./=:,+@%", r)
	}
}

// Success reports whether the command started and exited zero.
func (r *Result) Success() bool {
	return r.Error == nil && r.ExitCode.IsSuccess()
}

// Check returns nil for a successful result and a *ToolError otherwise.
func Check(cmd Command, res *Result) error {
	if res.Success() {
		return nil
	}
	return &ToolError{
		Command:  cmd.String(),
		ExitCode: res.ExitCode,
		Stderr:   res.ErrOutput,
		Cause:    res.Error,
	}
}

// RunChecked runs cmd and returns Check's verdict.
func RunChecked(ctx context.Context, r Runner, cmd Command) error {
	return Check(cmd, r.Run(ctx, cmd))
}

// Output captures cmd and returns its trimmed stdout, or a *ToolError.
func Output(ctx context.Context, r Runner, cmd Command) (string, error) {
	res := r.Capture(ctx, cmd)
	if err := Check(cmd, res); err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Output), nil
}
