// SPDX-License-Identifier: MPL-2.0

package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
)

// DirPerm is the permission used for every directory this package creates.
const DirPerm os.FileMode = 0o755

// ErrNotDirectory is returned when a directory operation meets a non-directory.
var ErrNotDirectory = errors.New("not a directory")

// RemoveDir recursively deletes path. A missing path is not an error.
func RemoveDir(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("remove directory %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("remove directory %s: %w", path, ErrNotDirectory)
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("remove directory %s: %w", path, err)
	}
	return nil
}

// EnsureDir creates path and its parents. An existing directory is success.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, DirPerm); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

// ResetDir leaves path as an existing, empty directory.
func ResetDir(path string) error {
	if err := RemoveDir(path); err != nil {
		return err
	}
	return EnsureDir(path)
}

// IsFile reports whether path exists and is a regular file (symlinks followed).
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// TopLevelEntries returns the sorted names directly under dir, skipping
// dot-files the way a shell `*` glob does.
func TopLevelEntries(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	slices.Sort(names)
	return names, nil
}
