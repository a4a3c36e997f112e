// SPDX-License-Identifier: MPL-2.0

// Package pipeline runs the build and package stages of a taos_odbc release.
//
// The Orchestrator resolves a release.Context, prints it, and dispatches the
// requested stage to the Strategy selected once from the target OS: msvc for
// Windows (CMake + Visual Studio, Inno Setup installer) and posix for Linux
// and macOS (CMake, staged tree, gzip'd tarball). Every failure is returned;
// nothing in this package exits the process.
package pipeline
