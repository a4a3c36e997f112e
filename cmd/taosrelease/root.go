// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taosdata/taosrelease/internal/issue"
	"github.com/taosdata/taosrelease/internal/pipeline"
	"github.com/taosdata/taosrelease/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// globalOptions are the flags shared by every command.
type globalOptions struct {
	root       string
	configPath string
	buildMode  string
	cpuType    string
	verbose    bool
	dryRun     bool
}

func (o *globalOptions) request(stage pipeline.Stage) RunRequest {
	return RunRequest{
		Root:       o.root,
		ConfigPath: o.configPath,
		BuildMode:  o.buildMode,
		CPUType:    o.cpuType,
		Stage:      stage,
		Verbose:    o.verbose,
		DryRun:     o.dryRun,
	}
}

// NewRootCommand builds the taosrelease command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	opts := &globalOptions{}
	var stage string

	rootCmd := &cobra.Command{
		Use:   "taosrelease",
		Short: "Build and package the taos_odbc driver",
		Long: TitleStyle.Render("taosrelease") + SubtitleStyle.Render(" - build and release orchestrator for taos_odbc") + `

Configures and compiles the driver with CMake, stages the release tree,
and produces a tarball (Linux, macOS) or an Inno Setup installer (Windows).

` + SubtitleStyle.Render("Examples:") + `
  taosrelease                   Build then package
  taosrelease -t build          Only build
  taosrelease -t package -c x64 Package an existing build as x64
  taosrelease -b Debug          Build and package in Debug mode
  taosrelease info --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelease(cmd, app, opts.request(pipeline.Stage(stage)))
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.buildMode, "build_mode", "b", "", "Debug or Release, Release by default")
	flags.StringVarP(&opts.cpuType, "cpu_type", "c", "", "cpu type tag [32 | x64 | arm64 | AArch64], detected by default")
	flags.StringVar(&opts.configPath, "config", "", "config file (default is <root>/taosrelease.cue)")
	flags.StringVar(&opts.root, "root", ".", "taos_odbc source root")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "print external commands instead of running them")
	rootCmd.Flags().StringVarP(&stage, "test_process", "t", "", "run a single stage (build, package)")

	rootCmd.AddCommand(newInfoCommand(app, opts))
	rootCmd.AddCommand(newConfigCommand(app, opts))
	rootCmd.AddCommand(newExplainCommand(app))
	rootCmd.AddCommand(newVerifyCommand(app, opts))
	return rootCmd
}

func runRelease(cmd *cobra.Command, app *App, req RunRequest) error {
	ctx := cmd.Context()
	s, err := app.newSession(ctx, req)
	if err != nil {
		return failCommand(cmd, app, err, req.Verbose)
	}
	if err := s.orchestrator.Run(ctx, req.Stage); err != nil {
		return failCommand(cmd, app, err, s.verbose)
	}
	return nil
}

// failCommand renders err once and returns an ExitError for the caller.
func failCommand(cmd *cobra.Command, app *App, err error, verbose bool) error {
	err = withHints(err)
	fmt.Fprintf(app.stderr, "%s %s\n", ErrorStyle.Render("Error:"), issue.FormatForDisplay(err, verbose))
	if verbose {
		renderIssue(app.stderr, err)
	}
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return &ExitError{Code: types.ExitFailure, Err: err}
}

// renderError reports errors that reach fang unrendered, such as cobra usage
// errors. An *ExitError has already been reported by the command.
func renderError(w io.Writer, _ fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), err)
	fmt.Fprintln(w, "Run 'taosrelease --help' for usage.")
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// Run executes the CLI and returns the process exit code.
func Run() int {
	app := NewApp(Dependencies{})
	err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(renderError),
	)
	return int(exitCodeOf(err))
}

// Execute runs the CLI and exits the process. It is called by main.main().
func Execute() {
	os.Exit(Run())
}
