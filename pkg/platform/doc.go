// SPDX-License-Identifier: MPL-2.0

// Package platform models the operating systems a release can target and
// exposes the host facts (pointer width, machine identifier) that the release
// resolver needs to pick a CPU type.
package platform
