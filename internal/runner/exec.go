// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
	"github.com/taosdata/taosrelease/pkg/types"
)

// ExecRunner runs commands as child processes.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *log.Logger
}

// NewExecRunner creates an ExecRunner streaming to the process stdio.
func NewExecRunner(logger *log.Logger) *ExecRunner {
	return &ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr, Logger: logger}
}

// Run executes cmd with its output streamed to r.Stdout/r.Stderr.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) *Result {
	c := r.prepare(ctx, cmd)
	c.Stdout = r.Stdout
	c.Stderr = r.Stderr
	return resultOf(c.Run())
}

// Capture executes cmd and collects stdout and stderr.
func (r *ExecRunner) Capture(ctx context.Context, cmd Command) *Result {
	c := r.prepare(ctx, cmd)
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	result := resultOf(c.Run())
	result.Output = stdout.String()
	result.ErrOutput = stderr.String()
	return result
}

func (r *ExecRunner) prepare(ctx context.Context, cmd Command) *exec.Cmd {
	if r.Logger != nil {
		r.Logger.Debug("running", "cmd", cmd.String(), "dir", cmd.Dir)
	}
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = cmd.Env
	setCmdLine(c, cmd.RawCmdLine)
	return c
}

func resultOf(err error) *Result {
	if err == nil {
		return &Result{ExitCode: types.ExitSuccess}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &Result{ExitCode: types.ExitCode(exitErr.ExitCode())}
	}
	return &Result{ExitCode: types.ExitFailure, Error: fmt.Errorf("failed to execute command: %w", err)}
}
