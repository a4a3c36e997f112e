// SPDX-License-Identifier: MPL-2.0

package release

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ModeDebug builds with debug information and no optimization.
	ModeDebug BuildMode = "Debug"
	// ModeRelease is the default build mode.
	ModeRelease BuildMode = "Release"
)

// ErrInvalidBuildMode is the sentinel error wrapped by InvalidBuildModeError.
var ErrInvalidBuildMode = errors.New("invalid build mode")

type (
	// BuildMode is the CMake configuration used for the native build. The
	// value doubles as the MSVC output sub-directory (build/src/<mode>).
	BuildMode string

	// InvalidBuildModeError is returned when a BuildMode value is not recognized.
	InvalidBuildModeError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *InvalidBuildModeError) Error() string {
	return fmt.Sprintf("invalid build mode %q (must be Debug or Release)", e.Value)
}

// Unwrap returns ErrInvalidBuildMode for errors.Is() compatibility.
func (e *InvalidBuildModeError) Unwrap() error { return ErrInvalidBuildMode }

// ParseBuildMode accepts "debug"/"release" in any case.
func ParseBuildMode(s string) (BuildMode, error) {
	switch {
	case strings.EqualFold(s, string(ModeDebug)):
		return ModeDebug, nil
	case strings.EqualFold(s, string(ModeRelease)):
		return ModeRelease, nil
	default:
		return "", &InvalidBuildModeError{Value: s}
	}
}

// String returns the CMake spelling of the mode.
func (m BuildMode) String() string { return string(m) }
