// SPDX-License-Identifier: MPL-2.0

package release

import (
	"fmt"

	"github.com/taosdata/taosrelease/pkg/platform"
	"golang.org/x/mod/semver"
)

const (
	// ProductName prefixes every package name.
	ProductName = "taos_odbc"

	productVersion = "1.0.0"
)

// LibraryNaming is the OS-dependent pair of driver library names used to
// stage the build output and patch the templates. On Windows Link names the
// import library that ships next to the DLL.
type LibraryNaming struct {
	// File is the versioned library produced by the build (build/src/<File>).
	File string
	// Link is the unversioned name installers link or register.
	Link string
}

// NamingFor returns the library names for target.
func NamingFor(target platform.TargetOS) LibraryNaming {
	switch target {
	case platform.OSDarwin:
		return LibraryNaming{File: "libtaos_odbc.0.1.dylib", Link: "libtaos_odbc.dylib"}
	case platform.OSWindows:
		return LibraryNaming{File: "taos_odbc.dll", Link: "taos_odbc.lib"}
	default:
		return LibraryNaming{File: "libtaos_odbc.so.0.1", Link: "libtaos_odbc.so"}
	}
}

// ProductVersion returns the driver version being released.
// TODO: derive from the CMake project version once it is tagged in git.
func ProductVersion() string {
	return productVersion
}

// ValidateVersion checks that v is a semantic version without the "v" prefix.
func ValidateVersion(v string) error {
	if !semver.IsValid("v" + v) {
		return fmt.Errorf("version %q is not a semantic version", v)
	}
	return nil
}

// PackageName derives the artifact base name. The same rule applies to
// every OS: taos_odbc-<version>-<os>-<cpu>-installer, lower-cased os and cpu.
func PackageName(version string, target platform.TargetOS, cpu CPUType) string {
	return fmt.Sprintf("%s-%s-%s-%s-installer", ProductName, version, target.Lower(), cpu.Lower())
}
