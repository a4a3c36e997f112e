// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package runner

import "os/exec"

// setCmdLine is a no-op: outside Windows the child receives Args as an argv
// array and no command line is composed.
func setCmdLine(*exec.Cmd, string) {}
