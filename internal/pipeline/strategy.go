// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/taosdata/taosrelease/internal/fsutil"
	"github.com/taosdata/taosrelease/internal/release"
	"github.com/taosdata/taosrelease/pkg/platform"
)

// DriverDir is the staged driver directory under the release root.
const DriverDir = "taos_odbc"

// ErrMissingArtifact is the sentinel error wrapped by MissingArtifactError.
var ErrMissingArtifact = errors.New("required artifact not found")

type (
	// Strategy is the OS-specific half of a release.
	Strategy interface {
		// Name identifies the strategy in logs.
		Name() string
		// Build configures and compiles the driver into rc.Paths.Build,
		// which the caller has already emptied.
		Build(ctx context.Context, rc *release.Context) error
		// Package stages the release tree under rc.Paths.Release, which the
		// caller has already emptied, and returns the artifact path.
		Package(ctx context.Context, rc *release.Context) (string, error)
	}

	// MissingArtifactError lists required input files that do not exist.
	MissingArtifactError struct {
		Paths []string
	}
)

// Error implements the error interface.
func (e *MissingArtifactError) Error() string {
	lines := make([]string, len(e.Paths))
	for i, p := range e.Paths {
		lines[i] = fmt.Sprintf("not found %q", p)
	}
	return strings.Join(lines, ", or\n")
}

// Unwrap returns ErrMissingArtifact for errors.Is() compatibility.
func (e *MissingArtifactError) Unwrap() error { return ErrMissingArtifact }

// StrategyFor selects the strategy for target.
func StrategyFor(target platform.TargetOS, settings Settings, tools Tools) (Strategy, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	settings = settings.withDefaults()
	if target.IsWindows() {
		return &msvcStrategy{settings: settings, tools: tools}, nil
	}
	return &posixStrategy{settings: settings, tools: tools}, nil
}

// requireFiles reports every path in paths that is not a regular file. All
// paths are checked before anything is copied.
func requireFiles(paths ...string) error {
	var missing []string
	for _, p := range paths {
		if !fsutil.IsFile(p) {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return &MissingArtifactError{Paths: missing}
	}
	return nil
}

// copyAll copies each src into dst, in order.
func copyAll(dst string, srcs ...string) error {
	for _, src := range srcs {
		if _, err := fsutil.CopyInto(src, dst); err != nil {
			return err
		}
	}
	return nil
}
