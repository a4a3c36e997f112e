// SPDX-License-Identifier: MPL-2.0

//go:build unix

package platform

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// machine returns the uname(2) machine field, the same value `uname -m` prints.
func machine() (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", fmt.Errorf("uname: %w", err)
	}
	return unix.ByteSliceToString(uts.Machine[:]), nil
}
