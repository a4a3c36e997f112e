// SPDX-License-Identifier: MPL-2.0

package release

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/taosdata/taosrelease/pkg/platform"
)

var (
	// ErrSourceControl wraps every failure to read the branch or commit.
	ErrSourceControl = errors.New("source control metadata unavailable")
	// ErrUnsafeLayout is returned when a directory emptied by a run is not a
	// private subdirectory of the source root.
	ErrUnsafeLayout = errors.New("unsafe directory layout")
)

// Default directory names under the source root.
const (
	DefaultBuildDir     = "build"
	DefaultReleaseDir   = "release"
	DefaultTemplatesDir = "templates"
	DefaultPackagingDir = "packaging"
)

type (
	// Clock abstracts the build timestamp source.
	Clock interface {
		Now() time.Time
	}

	// MetadataSource answers the source-control questions a release needs.
	MetadataSource interface {
		// Branch returns the current branch name ("HEAD" when detached).
		Branch(ctx context.Context) (string, error)
		// Commit returns the latest commit hash of ref.
		Commit(ctx context.Context, ref string) (string, error)
	}

	// Layout names the run directories. Relative entries are joined to the
	// root; empty entries use the Default*Dir names.
	Layout struct {
		Build     string
		Release   string
		Templates string
		Packaging string
	}

	// Overrides are the user-supplied values that replace detection.
	// Empty fields mean "not overridden".
	Overrides struct {
		BuildMode string
		CPUType   string
	}

	// Resolver builds a Context for the host it runs on.
	Resolver struct {
		OS     platform.TargetOS
		Host   platform.Host
		VCS    MetadataSource
		Clock  Clock
		Logger *log.Logger
	}

	systemClock struct{}
)

func (systemClock) Now() time.Time { return time.Now() }

// NewResolver returns a Resolver for the running process.
func NewResolver(vcs MetadataSource, logger *log.Logger) (*Resolver, error) {
	current, err := platform.Current()
	if err != nil {
		return nil, err
	}
	return &Resolver{
		OS:     current,
		Host:   platform.LocalHost{},
		VCS:    vcs,
		Clock:  systemClock{},
		Logger: logger,
	}, nil
}

// Resolve produces a fully populated Context. Every error it returns is
// fatal for the run: an unknown architecture, an invalid override, or
// missing source-control metadata.
func (r *Resolver) Resolve(ctx context.Context, root string, layout Layout, ov Overrides) (*Context, error) {
	if err := r.OS.Validate(); err != nil {
		return nil, err
	}

	paths, err := resolvePaths(root, layout)
	if err != nil {
		return nil, err
	}

	rc := &Context{
		OS:        r.OS,
		BuildMode: ModeRelease,
		Version:   ProductVersion(),
		Paths:     paths,
		Naming:    NamingFor(r.OS),
	}

	// argparse resolved the host type before applying -c, so an undetectable
	// host is fatal even when an override is given.
	rc.CPUType, err = r.detectCPU()
	if err != nil {
		return nil, err
	}

	if ov.BuildMode != "" {
		if rc.BuildMode, err = ParseBuildMode(ov.BuildMode); err != nil {
			return nil, err
		}
	}
	if ov.CPUType != "" {
		if rc.CPUType, err = ParseCPUType(ov.CPUType); err != nil {
			return nil, err
		}
	}

	if err := ValidateVersion(rc.Version); err != nil {
		return nil, err
	}

	rc.BuildTime = r.clock().Now().Format(BuildTimeLayout)

	if rc.Branch, err = r.VCS.Branch(ctx); err != nil {
		return nil, fmt.Errorf("%w: query branch: %w", ErrSourceControl, err)
	}
	if rc.Commit, err = r.VCS.Commit(ctx, rc.Branch); err != nil {
		return nil, fmt.Errorf("%w: query commit of %s: %w", ErrSourceControl, rc.Branch, err)
	}

	if r.Logger != nil {
		r.Logger.Debug("resolved release context", "package", rc.PackageName(), "branch", rc.Branch, "commit", rc.Commit)
	}
	return rc, nil
}

func (r *Resolver) detectCPU() (CPUType, error) {
	machine, err := r.Host.Machine()
	if err != nil {
		return "", fmt.Errorf("detect cpu type: %w", err)
	}
	return DetectCPUType(r.Host.PointerBits(), machine)
}

func (r *Resolver) clock() Clock {
	if r.Clock == nil {
		return systemClock{}
	}
	return r.Clock
}

func resolvePaths(root string, layout Layout) (Paths, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Paths{}, fmt.Errorf("resolve root %s: %w", root, err)
	}
	join := func(p, def string) string {
		if p == "" {
			p = def
		}
		if filepath.IsAbs(p) {
			return filepath.Clean(p)
		}
		return filepath.Join(absRoot, p)
	}
	paths := Paths{
		Root:      absRoot,
		Build:     join(layout.Build, DefaultBuildDir),
		Release:   join(layout.Release, DefaultReleaseDir),
		Templates: join(layout.Templates, DefaultTemplatesDir),
		Packaging: join(layout.Packaging, DefaultPackagingDir),
	}
	if err := checkLayout(paths); err != nil {
		return Paths{}, err
	}
	return paths, nil
}

// checkLayout rejects layouts where resetting the build or release directory
// would delete the source root, the templates, the packaging scripts, or the
// other output directory.
func checkLayout(p Paths) error {
	type dir struct{ key, path string }
	build := dir{"paths.build", p.Build}
	rel := dir{"paths.release", p.Release}
	keep := []dir{{"paths.templates", p.Templates}, {"paths.packaging", p.Packaging}}

	for _, reset := range []dir{build, rel} {
		if !within(p.Root, reset.path) || reset.path == p.Root {
			return fmt.Errorf("%w: %s %s must be a subdirectory of the source root %s",
				ErrUnsafeLayout, reset.key, reset.path, p.Root)
		}
		for _, k := range keep {
			if within(reset.path, k.path) {
				return fmt.Errorf("%w: emptying %s %s would delete %s %s",
					ErrUnsafeLayout, reset.key, reset.path, k.key, k.path)
			}
		}
	}
	if within(build.path, rel.path) || within(rel.path, build.path) {
		return fmt.Errorf("%w: %s %s and %s %s overlap",
			ErrUnsafeLayout, build.key, build.path, rel.key, rel.path)
	}
	return nil
}

// within reports whether child is parent or lies below it.
func within(parent, child string) bool {
	r, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return r != ".." && !strings.HasPrefix(r, ".."+string(filepath.Separator))
}
