// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/taosdata/taosrelease/internal/config"
	"github.com/taosdata/taosrelease/internal/fsutil"
	"github.com/taosdata/taosrelease/internal/issue"
	"github.com/taosdata/taosrelease/internal/pipeline"
	"github.com/taosdata/taosrelease/internal/release"
	"github.com/taosdata/taosrelease/internal/runner"
)

// issueStyle is the glamour style for catalog entries. "auto" falls back to
// plain text when the output is not a terminal.
const issueStyle = "auto"

// failureHint attaches suggestions and a catalog entry to errors that match
// target. The first matching hint wins.
type failureHint struct {
	target      error
	operation   string
	issue       issue.Id
	suggestions func() []string
}

var failureHints = []failureHint{
	{release.ErrSourceControl, "read source control metadata", issue.SourceControlId, func() []string {
		return []string{"Run inside the taos_odbc checkout or pass --root"}
	}},
	{release.ErrUnknownCPUType, "determine cpu type", issue.UnknownCPUTypeId, func() []string {
		names := make([]string, 0, len(release.CPUTypes()))
		for _, c := range release.CPUTypes() {
			names = append(names, c.String())
		}
		return []string{"Supported cpu types: " + strings.Join(names, ", ")}
	}},
	{release.ErrInvalidBuildMode, "determine build mode", issue.InvalidBuildModeId, func() []string {
		return []string{"Use -b Debug or -b Release"}
	}},
	{pipeline.ErrMissingArtifact, "stage release files", issue.MissingArtifactId, func() []string {
		return []string{
			"Run 'taosrelease -t build' before packaging",
			"Check paths.build and paths.templates in " + config.ConfigFileName,
		}
	}},
	{runner.ErrToolFailed, "run external tool", issue.ToolFailedId, func() []string {
		return []string{
			"Re-run with -v to log each command before it runs",
			"Use --dry-run to print the commands without running them",
		}
	}},
	{release.ErrUnsafeLayout, "check output directories", issue.UnsafeLayoutId, func() []string {
		return []string{"Point paths.build and paths.release in " + config.ConfigFileName + " at separate subdirectories of the source root"}
	}},
	{fsutil.ErrNotDirectory, "prepare output directories", issue.NotDirectoryId, func() []string {
		return []string{"Remove the file occupying the build or release path"}
	}},
}

// withHints wraps well-known release failures in an ActionableError.
// Errors that already are actionable are returned unchanged.
func withHints(err error) error {
	var ae *issue.ActionableError
	if err == nil || errors.As(err, &ae) {
		return err
	}
	for _, h := range failureHints {
		if !errors.Is(err, h.target) {
			continue
		}
		b := issue.NewErrorContext().WithOperation(h.operation).WithIssue(h.issue).Wrap(err)
		for _, s := range h.suggestions() {
			b.WithSuggestion(s)
		}
		return b.BuildError()
	}
	return err
}

// renderIssue prints the catalog entry linked from err, if any.
func renderIssue(w io.Writer, err error) {
	entry := issue.IssueOf(err)
	if entry == nil {
		return
	}
	rendered, renderErr := entry.Render(issueStyle)
	if renderErr != nil {
		fmt.Fprintf(w, "%s\n", WarningStyle.Render("could not render issue "+entry.Name()+": "+renderErr.Error()))
		return
	}
	fmt.Fprint(w, rendered)
}
