// SPDX-License-Identifier: MPL-2.0

// Package fsutil manages the working and output directories of a release run.
//
// RemoveDir, EnsureDir and ResetDir are idempotent: an already-clean or
// already-existing path is success, so a failed run can simply be repeated.
// Any other filesystem failure is returned to the caller and ends the run.
// The directories are owned by a single run; concurrent runs over the same
// paths are not supported.
package fsutil
