// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taosdata/taosrelease/internal/release"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
)

// labelWidth matches the column the release info has always been printed in.
const labelWidth = 20

// PrintContext writes the RELEASE INFO block: one "Label: value" line per
// field, sorted by label.
func PrintContext(w io.Writer, rc *release.Context) {
	fmt.Fprintln(w, titleStyle.Render("RELEASE INFO"))
	for _, f := range rc.Summary().Fields() {
		pad := max(labelWidth-len(f.Name), 0)
		fmt.Fprintf(w, "%s%s: %s\n", labelStyle.Render(f.Name), strings.Repeat(" ", pad), f.Value)
	}
}

func printArtifact(w io.Writer, path string) {
	fmt.Fprintf(w, "Write to:\n%s\n", path)
	fmt.Fprintln(w, successStyle.Render("Success."))
}

func printInvalidStage(w io.Writer, stage Stage) {
	fmt.Fprintln(w, warningStyle.Render(fmt.Sprintf("Invalid -t param: %s. Please enter valid input.", stage)))
}
