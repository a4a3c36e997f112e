// SPDX-License-Identifier: MPL-2.0

package release

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// CPU32 is any 32-bit host.
	CPU32 CPUType = "32"
	// CPUX64 is a 64-bit x86 host.
	CPUX64 CPUType = "x64"
	// CPUArm64 is a 64-bit host whose machine id starts with "arm" (e.g. macOS arm64).
	CPUArm64 CPUType = "arm64"
	// CPUAArch64 is a 64-bit host reporting "aarch64" (e.g. Linux on ARM).
	CPUAArch64 CPUType = "AArch64"
)

// ErrUnknownCPUType is the sentinel error wrapped by UnknownCPUTypeError.
var ErrUnknownCPUType = errors.New("unknown cpu type")

type (
	// CPUType is the architecture tag embedded in package names.
	CPUType string

	// UnknownCPUTypeError is returned when the host architecture or an
	// override does not map to a known CPUType. It is always fatal.
	UnknownCPUTypeError struct {
		// Value is the offending override or machine identifier.
		Value string
		// PointerBits is the detected pointer width, zero for overrides.
		PointerBits int
	}
)

// Error implements the error interface.
func (e *UnknownCPUTypeError) Error() string {
	if e.PointerBits != 0 {
		return fmt.Sprintf("unknown architecture: %d-bit %q", e.PointerBits, e.Value)
	}
	return fmt.Sprintf("unknown cpu type %q (must be one of: %s)", e.Value, strings.Join(cpuTypeNames(), ", "))
}

// Unwrap returns ErrUnknownCPUType for errors.Is() compatibility.
func (e *UnknownCPUTypeError) Unwrap() error { return ErrUnknownCPUType }

// CPUTypes returns every known CPUType.
func CPUTypes() []CPUType {
	return []CPUType{CPU32, CPUX64, CPUArm64, CPUAArch64}
}

// DetectCPUType maps a host's pointer width and machine identifier to a
// CPUType. Unrecognized combinations are an error; nothing is guessed.
func DetectCPUType(pointerBits int, machine string) (CPUType, error) {
	switch pointerBits {
	case 32:
		return CPU32, nil
	case 64:
		switch {
		case strings.HasPrefix(machine, "arm"):
			return CPUArm64, nil
		case machine == "x86_64", machine == "amd64", machine == "AMD64":
			return CPUX64, nil
		case machine == "aarch64":
			return CPUAArch64, nil
		}
	}
	return "", &UnknownCPUTypeError{Value: machine, PointerBits: pointerBits}
}

// ParseCPUType validates an override. Matching is case-insensitive and the
// canonical spelling is returned.
func ParseCPUType(s string) (CPUType, error) {
	for _, c := range CPUTypes() {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", &UnknownCPUTypeError{Value: s}
}

// String returns the tag as written in package names (before lower-casing).
func (c CPUType) String() string { return string(c) }

// Lower returns the lower-cased tag.
func (c CPUType) Lower() string { return strings.ToLower(string(c)) }

func cpuTypeNames() []string {
	types := CPUTypes()
	names := make([]string, len(types))
	for i, c := range types {
		names[i] = string(c)
	}
	return names
}
