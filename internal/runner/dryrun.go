// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"fmt"
	"io"

	"github.com/taosdata/taosrelease/pkg/types"
)

// DryRunner prints commands instead of running them and reports success.
// Captures return the canned Outputs entry for the command name, if any.
type DryRunner struct {
	Out     io.Writer
	Outputs map[string]string
}

// Run prints cmd.
func (r *DryRunner) Run(_ context.Context, cmd Command) *Result {
	r.print(cmd)
	return &Result{ExitCode: types.ExitSuccess}
}

// Capture prints cmd and returns the canned output for cmd.Name.
func (r *DryRunner) Capture(_ context.Context, cmd Command) *Result {
	r.print(cmd)
	return &Result{ExitCode: types.ExitSuccess, Output: r.Outputs[cmd.Name]}
}

func (r *DryRunner) print(cmd Command) {
	if r.Out == nil {
		return
	}
	if cmd.Dir != "" {
		fmt.Fprintf(r.Out, "[dry-run] (cd %s) %s\n", cmd.Dir, cmd)
		return
	}
	fmt.Fprintf(r.Out, "[dry-run] %s\n", cmd)
}
