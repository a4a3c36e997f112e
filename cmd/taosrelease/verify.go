// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/taosdata/taosrelease/internal/issue"
	"github.com/taosdata/taosrelease/internal/manifest"
)

func newVerifyCommand(app *App, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <manifest.toml>...",
		Short: "Check packaged artifacts against their release manifests",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				m, err := manifest.Load(path)
				if err == nil {
					err = m.Verify(filepath.Dir(path))
				}
				if err != nil {
					return failCommand(cmd, app, issue.NewErrorContext().
						WithOperation("verify release manifest").
						WithResource(path).
						WithSuggestion("Re-run 'taosrelease -t package' to regenerate the artifact and manifest").
						Wrap(err).
						BuildError(), opts.verbose)
				}
				fmt.Fprintf(app.stdout, "%s %s (%s, %s@%s)\n",
					SuccessStyle.Render("OK"), m.Artifact.File, m.Artifact.SHA256, m.Source.Branch, shortCommit(m.Source.Commit))
			}
			return nil
		},
	}
}

func shortCommit(c string) string {
	if len(c) > 12 {
		return c[:12]
	}
	return c
}
