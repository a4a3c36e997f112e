// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/taosdata/taosrelease/internal/archive"
	"github.com/taosdata/taosrelease/internal/runner"
)

// Defaults applied by Settings.withDefaults.
const (
	DefaultMSVCJobs      = 4
	DefaultGenerator     = "Visual Studio 17 2022"
	DefaultPlatform      = "x64"
	DefaultInstallScript = "install.sh"
	DefaultInnoScript    = "taos_odbc.iss"
)

type (
	// Settings tune the tool invocations. Zero values select the defaults.
	Settings struct {
		// Jobs is the build parallelism. Zero means 4 on msvc and the
		// generator's default on posix.
		Jobs int
		// Generator and Platform are the msvc CMake -G and -A values.
		Generator string
		Platform  string
		// VCVarsAll is the expanded path of the environment script.
		VCVarsAll string
		// ConfigureArgs are appended to the CMake configure command.
		ConfigureArgs []string
		// CMake and ISCC name the executables.
		CMake string
		ISCC  string
		// InstallScript is the installer shipped in the posix tarball,
		// relative to the packaging directory.
		InstallScript string
		// InnoScript is the Inno Setup script, relative to the packaging directory.
		InnoScript string
		// Manifest requests a <package>.toml next to the artifact.
		Manifest bool
	}

	// Tools are the collaborators a Strategy drives.
	Tools struct {
		Runner   runner.Runner
		Archiver archive.Archiver
		Logger   *log.Logger
	}
)

func (s Settings) withDefaults() Settings {
	if s.Generator == "" {
		s.Generator = DefaultGenerator
	}
	if s.Platform == "" {
		s.Platform = DefaultPlatform
	}
	if s.CMake == "" {
		s.CMake = "cmake"
	}
	if s.ISCC == "" {
		s.ISCC = "iscc"
	}
	if s.InstallScript == "" {
		s.InstallScript = DefaultInstallScript
	}
	if s.InnoScript == "" {
		s.InnoScript = DefaultInnoScript
	}
	return s
}

func (t Tools) logger() *log.Logger {
	if t.Logger == nil {
		return log.New(io.Discard)
	}
	return t.Logger
}
