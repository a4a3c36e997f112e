// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package platform

import (
	"errors"
	"os"
)

// machine reads PROCESSOR_ARCHITECTURE, which Windows sets to AMD64, ARM64 or x86.
func machine() (string, error) {
	if arch := os.Getenv("PROCESSOR_ARCHITEW6432"); arch != "" {
		return arch, nil
	}
	if arch := os.Getenv("PROCESSOR_ARCHITECTURE"); arch != "" {
		return arch, nil
	}
	return "", errors.New("PROCESSOR_ARCHITECTURE is not set")
}
