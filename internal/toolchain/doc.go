// SPDX-License-Identifier: MPL-2.0

// Package toolchain captures the compiler environment that vcvarsall.bat
// establishes for the MSVC build. The captured Environment is handed to each
// command explicitly; the process environment is never modified.
package toolchain
