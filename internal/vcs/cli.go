// SPDX-License-Identifier: MPL-2.0

package vcs

import (
	"context"

	"github.com/taosdata/taosrelease/internal/runner"
)

// CLIProvider queries the git executable in Dir.
type CLIProvider struct {
	Runner runner.Runner
	Dir    string
	// Git is the executable name; empty means "git".
	Git string
}

// Branch runs `git rev-parse --abbrev-ref HEAD`.
func (p *CLIProvider) Branch(ctx context.Context) (string, error) {
	return runner.Output(ctx, p.Runner, p.command("rev-parse", "--abbrev-ref", "HEAD"))
}

// Commit runs `git rev-list -1 <ref>`.
func (p *CLIProvider) Commit(ctx context.Context, ref string) (string, error) {
	return runner.Output(ctx, p.Runner, p.command("rev-list", "-1", ref))
}

func (p *CLIProvider) command(args ...string) runner.Command {
	name := p.Git
	if name == "" {
		name = "git"
	}
	return runner.Command{Name: name, Args: args, Dir: p.Dir}
}
