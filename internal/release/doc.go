// SPDX-License-Identifier: MPL-2.0

// Package release defines the release context threaded through a
// taosrelease run and the resolver that builds it from host introspection,
// source-control metadata and user overrides.
//
// A Context is resolved once at process start and passed explicitly to
// every stage; nothing in this package keeps per-run state in globals.
package release
