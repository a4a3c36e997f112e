// SPDX-License-Identifier: MPL-2.0

// Package archive writes the POSIX release tarball.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/taosdata/taosrelease/internal/fsutil"
	"github.com/taosdata/taosrelease/internal/runner"
)

const (
	// KindTar runs the system tar executable.
	KindTar Kind = "tar"
	// KindBuiltin writes the archive in-process.
	KindBuiltin Kind = "builtin"

	// Extension is appended to the package name.
	Extension = ".tar.gz"
)

var (
	// ErrInvalidKind is returned for an unrecognized archiver name.
	ErrInvalidKind = errors.New("invalid archiver")
	// ErrNothingToArchive is returned when the source directory is empty.
	ErrNothingToArchive = errors.New("nothing to archive")
)

type (
	// Kind names an Archiver implementation.
	Kind string

	// Archiver packs the top-level entries of dir into dir/<name>.tar.gz and
	// returns the archive path.
	Archiver interface {
		Archive(ctx context.Context, dir, name string) (string, error)
	}
)

// Validate returns an error if k is not a known archiver.
func (k Kind) Validate() error {
	switch k {
	case KindTar, KindBuiltin:
		return nil
	default:
		return fmt.Errorf("%w %q (must be tar or builtin)", ErrInvalidKind, string(k))
	}
}

// New returns the Archiver for kind. The tar archiver runs through r; the
// builtin one lists archived paths on verbose when it is non-nil.
func New(kind Kind, r runner.Runner, verbose io.Writer) (Archiver, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if kind == KindBuiltin {
		return &Builtin{Verbose: verbose}, nil
	}
	return &TarCLI{Runner: r}, nil
}

// entries lists what goes into the archive, computed before the archive file
// itself exists so it is never included.
func entries(dir, name string) ([]string, string, error) {
	names, err := fsutil.TopLevelEntries(dir)
	if err != nil {
		return nil, "", err
	}
	out := name + Extension
	filtered := names[:0]
	for _, n := range names {
		if n != out {
			filtered = append(filtered, n)
		}
	}
	if len(filtered) == 0 {
		return nil, "", fmt.Errorf("%w in %s", ErrNothingToArchive, dir)
	}
	return filtered, filepath.Join(dir, out), nil
}
