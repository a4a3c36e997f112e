// SPDX-License-Identifier: MPL-2.0

// Package runner executes the external tools a release depends on (git,
// cmake, tar, iscc, the MSVC environment script).
//
// Commands are run synchronously and block until the tool exits; there is
// no timeout beyond the caller's context. Every result carries the exit
// code, and Check turns a failed start or a non-zero exit into a ToolError.
package runner
