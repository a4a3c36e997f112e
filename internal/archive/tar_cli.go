// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"context"

	"github.com/taosdata/taosrelease/internal/runner"
)

// TarCLI runs `tar -zcv -f <name>.tar.gz <entries...>` inside dir.
type TarCLI struct {
	Runner runner.Runner
	// Tar is the executable; empty means "tar".
	Tar string
}

// Archive implements Archiver.
func (a *TarCLI) Archive(ctx context.Context, dir, name string) (string, error) {
	names, out, err := entries(dir, name)
	if err != nil {
		return "", err
	}
	tar := a.Tar
	if tar == "" {
		tar = "tar"
	}
	cmd := runner.Command{
		Name: tar,
		Args: append([]string{"-zcv", "-f", name + Extension}, names...),
		Dir:  dir,
	}
	if err := runner.RunChecked(ctx, a.Runner, cmd); err != nil {
		return "", err
	}
	return out, nil
}
