// SPDX-License-Identifier: MPL-2.0

// Package vcs reads the branch and commit a release is built from.
//
// Either backend satisfies release.MetadataSource. Errors are returned
// unchanged in meaning: a source tree without provenance cannot be released,
// so callers treat them as fatal.
package vcs

import (
	"context"
	"errors"
	"fmt"
)

const (
	// BackendGit shells out to the git executable.
	BackendGit Backend = "git"
	// BackendGoGit reads the repository with go-git, no executable needed.
	BackendGoGit Backend = "go-git"
)

// ErrInvalidBackend is returned for an unrecognized Backend value.
var ErrInvalidBackend = errors.New("invalid vcs backend")

// Backend selects the Provider implementation.
type Backend string

// Provider answers branch and commit queries for one working tree.
type Provider interface {
	Branch(ctx context.Context) (string, error)
	Commit(ctx context.Context, ref string) (string, error)
}

// Validate returns an error if b is not a known backend.
func (b Backend) Validate() error {
	switch b {
	case BackendGit, BackendGoGit:
		return nil
	default:
		return fmt.Errorf("%w %q (must be git or go-git)", ErrInvalidBackend, string(b))
	}
}
