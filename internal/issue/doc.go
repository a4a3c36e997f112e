// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors: a failed operation, the resource
// it touched, and hints the release engineer can act on.
package issue
