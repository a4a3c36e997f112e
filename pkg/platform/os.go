// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// GOOS values for runtime.GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

const (
	// OSLinux targets Linux hosts (tar.gz archive).
	OSLinux TargetOS = "Linux"
	// OSDarwin targets macOS hosts (tar.gz archive, dylib naming).
	OSDarwin TargetOS = "Darwin"
	// OSWindows targets Windows hosts (Inno Setup installer).
	OSWindows TargetOS = "Windows"
)

// ErrUnsupportedOS is the sentinel error wrapped by UnsupportedOSError.
var ErrUnsupportedOS = errors.New("unsupported operating system")

type (
	// TargetOS is the operating system a release is built for. Values use the
	// capitalized system names ("Linux", "Darwin", "Windows") and are lower-cased
	// when embedded in package names.
	TargetOS string

	// UnsupportedOSError is returned when a GOOS value or OS name has no TargetOS.
	UnsupportedOSError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *UnsupportedOSError) Error() string {
	return fmt.Sprintf("unsupported operating system %q (must be one of: linux, darwin, windows)", e.Value)
}

// Unwrap returns ErrUnsupportedOS for errors.Is() compatibility.
func (e *UnsupportedOSError) Unwrap() error { return ErrUnsupportedOS }

// FromGOOS maps a runtime.GOOS value to a TargetOS.
func FromGOOS(goos string) (TargetOS, error) {
	switch goos {
	case Linux:
		return OSLinux, nil
	case Darwin:
		return OSDarwin, nil
	case Windows:
		return OSWindows, nil
	default:
		return "", &UnsupportedOSError{Value: goos}
	}
}

// Current returns the TargetOS of the running process.
func Current() (TargetOS, error) {
	return FromGOOS(runtime.GOOS)
}

// String returns the OS name.
func (o TargetOS) String() string { return string(o) }

// Lower returns the lower-cased OS name used in artifact names.
func (o TargetOS) Lower() string { return strings.ToLower(string(o)) }

// IsWindows reports whether the target is Windows.
func (o TargetOS) IsWindows() bool { return o == OSWindows }

// Validate returns an error if the TargetOS is not one of the known values.
func (o TargetOS) Validate() error {
	switch o {
	case OSLinux, OSDarwin, OSWindows:
		return nil
	default:
		return &UnsupportedOSError{Value: string(o)}
	}
}
