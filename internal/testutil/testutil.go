// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// MustMkdirAll creates a directory along with any necessary parents.
// The test fails immediately if the operation fails.
func MustMkdirAll(t testing.TB, path string, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(path, perm); err != nil {
		t.Fatalf("failed to create directory %s: %v", path, err)
	}
}

// MustWriteFile writes content to path, creating parent directories.
func MustWriteFile(t testing.TB, path, content string) {
	t.Helper()
	MustMkdirAll(t, filepath.Dir(path), 0o755)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// MustReadFile returns the content of path.
func MustReadFile(t testing.TB, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// SourceTree lays out the files a package stage expects under root: the
// odbc templates, the install script, and (when libFile is non-empty) a fake
// library at build/src/<libFile>.
func SourceTree(t testing.TB, root, libFile string) {
	t.Helper()
	MustWriteFile(t, filepath.Join(root, "templates", "odbc.in"), "[TAOS_ODBC_DSN]\nDriver=TAOS_ODBC_DRIVER\n")
	MustWriteFile(t, filepath.Join(root, "templates", "odbcinst.in"), "[TAOS_ODBC_DRIVER]\nDriver=/usr/local/lib/libtaos_odbc.so\n")
	MustWriteFile(t, filepath.Join(root, "templates", "win_odbcinst.in"), "[TAOS_ODBC_DRIVER]\nDriver=taos_odbc.dll\n")
	MustWriteFile(t, filepath.Join(root, "packaging", "install.sh"),
		"#!/bin/bash\ntaos_odbc_lib_file=\"x\"\ntaos_odbc_lib_ln=\"y\"\ncp \"$taos_odbc_lib_file\" /usr/local/lib\n")
	MustWriteFile(t, filepath.Join(root, "packaging", "taos_odbc.iss"), "[Setup]\nAppName=taos_odbc\n")
	if libFile != "" {
		MustWriteFile(t, filepath.Join(root, "build", "src", libFile), "\x7fELF")
	}
}
