// SPDX-License-Identifier: MPL-2.0

package platform

import "strconv"

type (
	// Host reports the architecture facts of the machine running the release.
	Host interface {
		// PointerBits is the pointer width of the running binary (32 or 64).
		PointerBits() int
		// Machine is the hardware identifier reported by the OS (e.g. "x86_64").
		Machine() (string, error)
	}

	// LocalHost is the Host implementation backed by the running process.
	LocalHost struct{}

	// StaticHost is a Host with fixed answers, used when the facts are known
	// up front (and in tests).
	StaticHost struct {
		Bits        int
		MachineName string
	}
)

// PointerBits returns strconv.IntSize, the width of the compiled binary.
func (LocalHost) PointerBits() int { return strconv.IntSize }

// Machine returns the host machine identifier.
func (LocalHost) Machine() (string, error) { return machine() }

// PointerBits returns the configured pointer width.
func (h StaticHost) PointerBits() int { return h.Bits }

// Machine returns the configured machine identifier.
func (h StaticHost) Machine() (string, error) { return h.MachineName, nil }
