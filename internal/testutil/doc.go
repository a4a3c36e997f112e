// SPDX-License-Identifier: MPL-2.0

// Package testutil provides file fixtures, a source-tree layout, a fixed
// clock, and a go-git backed repository for taosrelease tests.
package testutil
