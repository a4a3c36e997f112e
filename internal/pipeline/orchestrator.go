// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/taosdata/taosrelease/internal/fsutil"
	"github.com/taosdata/taosrelease/internal/manifest"
	"github.com/taosdata/taosrelease/internal/release"
)

const (
	// StageAll runs build then package.
	StageAll Stage = ""
	// StageBuild only builds.
	StageBuild Stage = "build"
	// StagePackage only packages an existing build.
	StagePackage Stage = "package"
)

type (
	// Stage selects what a run does. Unknown stages are reported and skipped.
	Stage string

	// ContextResolver produces the release context of a run.
	ContextResolver interface {
		Resolve(ctx context.Context, root string, layout release.Layout, ov release.Overrides) (*release.Context, error)
	}

	// Orchestrator wires context resolution to the selected Strategy.
	Orchestrator struct {
		Resolver  ContextResolver
		Root      string
		Layout    release.Layout
		Overrides release.Overrides
		Settings  Settings
		Tools     Tools
		// Out receives the release info and the artifact report.
		Out io.Writer
		// DryRun skips steps that need real tool output, such as the manifest.
		DryRun bool
	}
)

// Valid reports whether s names a stage Run knows.
func (s Stage) Valid() bool {
	switch s {
	case StageAll, StageBuild, StagePackage:
		return true
	default:
		return false
	}
}

// String returns the stage name.
func (s Stage) String() string { return string(s) }

// Run resolves the release context, prints it, and runs stage. An unknown
// stage prints a notice and returns nil after the context is shown.
func (o *Orchestrator) Run(ctx context.Context, stage Stage) error {
	rc, err := o.Resolver.Resolve(ctx, o.Root, o.Layout, o.Overrides)
	if err != nil {
		return err
	}
	PrintContext(o.Out, rc)

	if !stage.Valid() {
		printInvalidStage(o.Out, stage)
		return nil
	}

	strategy, err := StrategyFor(rc.OS, o.Settings, o.Tools)
	if err != nil {
		return err
	}
	o.Tools.logger().Debug("selected strategy", "name", strategy.Name(), "stage", stage)

	if stage == StageAll || stage == StageBuild {
		if err := o.build(ctx, strategy, rc); err != nil {
			return err
		}
	}
	if stage == StageAll || stage == StagePackage {
		if err := o.pack(ctx, strategy, rc); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) build(ctx context.Context, s Strategy, rc *release.Context) error {
	if err := fsutil.ResetDir(rc.Paths.Build); err != nil {
		return fmt.Errorf("prepare build directory: %w", err)
	}
	if err := s.Build(ctx, rc); err != nil {
		return fmt.Errorf("build: %w", err)
	}
	return nil
}

func (o *Orchestrator) pack(ctx context.Context, s Strategy, rc *release.Context) error {
	if err := fsutil.ResetDir(rc.Paths.Release); err != nil {
		return fmt.Errorf("prepare release directory: %w", err)
	}
	artifact, err := s.Package(ctx, rc)
	if err != nil {
		return fmt.Errorf("package: %w", err)
	}

	if o.Settings.Manifest {
		if o.DryRun {
			o.Tools.logger().Warn("dry run: manifest not written")
		} else if err := o.writeManifest(rc, artifact); err != nil {
			return err
		}
	}
	printArtifact(o.Out, artifact)
	return nil
}

func (o *Orchestrator) writeManifest(rc *release.Context, artifact string) error {
	m, err := manifest.New(rc, artifact)
	if err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	path, err := m.Write(rc.Paths.Release)
	if err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	o.Tools.logger().Info("wrote manifest", "path", path, "sha256", m.Artifact.SHA256)
	return nil
}
