// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taosdata/taosrelease/internal/issue"
	"github.com/taosdata/taosrelease/pkg/types"
)

func newExplainCommand(app *App) *cobra.Command {
	var style string
	explainCmd := &cobra.Command{
		Use:   "explain [issue]",
		Short: "Explain a failure class and how to fix it",
		Long: `Explain a failure class and how to fix it.

Without an argument, lists the known issues. Failed runs with -v print the
matching explanation automatically.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, entry := range issue.Values() {
					fmt.Fprintf(app.stdout, "%s  %s\n", CmdStyle.Render(fmt.Sprintf("%-20s", entry.Name())), headline(entry))
				}
				return nil
			}
			entry := issue.Lookup(args[0])
			if entry == nil {
				fmt.Fprintf(app.stderr, "%s unknown issue %q (run 'taosrelease explain' for the list)\n", ErrorStyle.Render("Error:"), args[0])
				cmd.SilenceErrors = true
				cmd.SilenceUsage = true
				return &ExitError{Code: types.ExitFailure}
			}
			rendered, err := entry.Render(style)
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, rendered)
			return nil
		},
	}
	explainCmd.Flags().StringVar(&style, "style", issueStyle, "glamour style (auto, dark, light, notty)")
	return explainCmd
}

// headline returns the first markdown heading of entry without the "#".
func headline(entry *issue.Issue) string {
	for line := range strings.Lines(string(entry.MarkdownMsg())) {
		if title, ok := strings.CutPrefix(strings.TrimSpace(line), "# "); ok {
			return title
		}
	}
	return ""
}
