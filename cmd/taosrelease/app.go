// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/taosdata/taosrelease/internal/archive"
	"github.com/taosdata/taosrelease/internal/config"
	"github.com/taosdata/taosrelease/internal/pipeline"
	"github.com/taosdata/taosrelease/internal/release"
	"github.com/taosdata/taosrelease/internal/runner"
	"github.com/taosdata/taosrelease/internal/toolchain"
	"github.com/taosdata/taosrelease/internal/vcs"
	"github.com/taosdata/taosrelease/pkg/platform"
)

// dryRunToolchainEnv stands in for the vcvarsall.bat environment dump when
// commands are only printed.
const dryRunToolchainEnv = "TAOSRELEASE_DRY_RUN=1"

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer; every Cobra handler receives an App reference.
	App struct {
		Config config.Provider
		Host   platform.Host
		OS     platform.TargetOS
		Clock  release.Clock
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		// Host and OS replace host detection; zero values detect.
		Host   platform.Host
		OS     platform.TargetOS
		Clock  release.Clock
		Stdout io.Writer
		Stderr io.Writer
	}

	// RunRequest captures the CLI inputs of one invocation.
	RunRequest struct {
		Root       string
		ConfigPath string
		BuildMode  string
		CPUType    string
		Stage      pipeline.Stage
		Verbose    bool
		DryRun     bool
	}

	// session holds the collaborators built for one request.
	session struct {
		cfg          *config.Config
		verbose      bool
		logger       *log.Logger
		orchestrator *pipeline.Orchestrator
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	return &App{
		Config: deps.Config,
		Host:   deps.Host,
		OS:     deps.OS,
		Clock:  deps.Clock,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
}

// newLogger creates the run logger. Verbose lowers the level to Debug so
// every external command is logged before it runs.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
}

func (a *App) loadConfig(ctx context.Context, req RunRequest) (*config.Config, error) {
	return a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: req.ConfigPath, Root: req.Root})
}

// newSession loads the configuration and assembles the orchestrator.
func (a *App) newSession(ctx context.Context, req RunRequest) (*session, error) {
	cfg, err := a.loadConfig(ctx, req)
	if err != nil {
		return nil, err
	}
	verbose := req.Verbose || cfg.UI.Verbose
	logger := newLogger(a.stderr, verbose)

	// Source-control queries are read-only and always run for real.
	execRunner := &runner.ExecRunner{Stdout: a.stdout, Stderr: a.stderr, Logger: logger}
	var toolRunner runner.Runner = execRunner
	if req.DryRun {
		toolRunner = &runner.DryRunner{
			Out:     a.stdout,
			Outputs: map[string]string{"cmd.exe": dryRunToolchainEnv},
		}
	}

	provider, err := vcs.New(vcs.Backend(cfg.VCS.Backend), req.Root, execRunner)
	if err != nil {
		return nil, err
	}
	resolver, err := a.newResolver(provider, logger)
	if err != nil {
		return nil, err
	}

	var archiveLog io.Writer
	if verbose {
		archiveLog = a.stderr
	}
	archiver, err := archive.New(archive.Kind(cfg.Dist.Archiver), toolRunner, archiveLog)
	if err != nil {
		return nil, err
	}

	settings, err := pipelineSettings(cfg)
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:     cfg,
		verbose: verbose,
		logger:  logger,
		orchestrator: &pipeline.Orchestrator{
			Resolver: resolver,
			Root:     req.Root,
			Layout: release.Layout{
				Build:     cfg.Paths.Build,
				Release:   cfg.Paths.Release,
				Templates: cfg.Paths.Templates,
				Packaging: cfg.Paths.Packaging,
			},
			Overrides: release.Overrides{
				BuildMode: firstNonEmpty(req.BuildMode, cfg.Build.Mode),
				CPUType:   firstNonEmpty(req.CPUType, cfg.Build.CPUType),
			},
			Settings: settings,
			Tools:    pipeline.Tools{Runner: toolRunner, Archiver: archiver, Logger: logger},
			Out:      a.stdout,
			DryRun:   req.DryRun,
		},
	}, nil
}

func (a *App) newResolver(provider vcs.Provider, logger *log.Logger) (*release.Resolver, error) {
	resolver := &release.Resolver{
		OS:     a.OS,
		Host:   a.Host,
		VCS:    provider,
		Clock:  a.Clock,
		Logger: logger,
	}
	if resolver.OS == "" {
		current, err := platform.Current()
		if err != nil {
			return nil, err
		}
		resolver.OS = current
	}
	if resolver.Host == nil {
		resolver.Host = platform.LocalHost{}
	}
	return resolver, nil
}

func pipelineSettings(cfg *config.Config) (pipeline.Settings, error) {
	vcvars, err := toolchain.ExpandPath(cfg.Build.VCVarsAll)
	if err != nil {
		return pipeline.Settings{}, err
	}
	args, err := cfg.Build.ConfigureArgList()
	if err != nil {
		return pipeline.Settings{}, err
	}
	return pipeline.Settings{
		Jobs:          cfg.Build.Jobs,
		Generator:     cfg.Build.Generator,
		Platform:      cfg.Build.Platform,
		VCVarsAll:     vcvars,
		ConfigureArgs: args,
		ISCC:          cfg.Dist.ISCC,
		InstallScript: cfg.Dist.InstallerScript,
		InnoScript:    cfg.Dist.InnoScript,
		Manifest:      cfg.Dist.Manifest,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
