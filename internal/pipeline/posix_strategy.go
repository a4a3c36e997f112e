// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/taosdata/taosrelease/internal/fsutil"
	"github.com/taosdata/taosrelease/internal/patch"
	"github.com/taosdata/taosrelease/internal/release"
	"github.com/taosdata/taosrelease/internal/runner"
)

// posixStrategy builds with CMake's default generator and packages a tarball.
type posixStrategy struct {
	settings Settings
	tools    Tools
}

func (s *posixStrategy) Name() string { return "posix" }

func (s *posixStrategy) Build(ctx context.Context, rc *release.Context) error {
	s.tools.logger().Info("building taos_odbc", "mode", rc.BuildMode)

	configure := append([]string{"-B", rc.Paths.Build, "-DCMAKE_BUILD_TYPE=" + rc.BuildMode.String()},
		s.settings.ConfigureArgs...)
	build := []string{"--build", rc.Paths.Build}
	if s.settings.Jobs > 0 {
		build = append(build, "-j", strconv.Itoa(s.settings.Jobs))
	}

	for _, args := range [][]string{configure, build} {
		cmd := runner.Command{Name: s.settings.CMake, Args: args, Dir: rc.Paths.Root}
		if err := runner.RunChecked(ctx, s.tools.Runner, cmd); err != nil {
			return err
		}
	}
	return nil
}

func (s *posixStrategy) Package(ctx context.Context, rc *release.Context) (string, error) {
	s.tools.logger().Info("staging release tree", "release", rc.Paths.Release)

	driverDir := filepath.Join(rc.Paths.Release, DriverDir)
	libDst := filepath.Join(driverDir, "lib")
	if err := fsutil.ResetDir(libDst); err != nil {
		return "", err
	}

	lib := filepath.Join(rc.Paths.Build, "src", rc.Naming.File)
	if err := requireFiles(lib); err != nil {
		return "", err
	}
	odbcIn := filepath.Join(rc.Paths.Templates, "odbc.in")
	odbcinstIn := filepath.Join(rc.Paths.Templates, "odbcinst.in")
	installSh := filepath.Join(rc.Paths.Packaging, s.settings.InstallScript)
	if err := requireFiles(odbcIn, odbcinstIn, installSh); err != nil {
		return "", err
	}

	if err := copyAll(libDst, lib); err != nil {
		return "", err
	}
	if err := copyAll(driverDir, odbcIn, odbcinstIn); err != nil {
		return "", err
	}
	if err := copyAll(rc.Paths.Release, installSh); err != nil {
		return "", err
	}

	if err := s.patch(filepath.Join(rc.Paths.Release, filepath.Base(installSh)), patch.InstallScriptRules(rc.Naming)); err != nil {
		return "", err
	}
	if err := s.patch(filepath.Join(driverDir, "odbcinst.in"), patch.DriverDescriptorRules(rc.Naming)); err != nil {
		return "", err
	}

	return s.tools.Archiver.Archive(ctx, rc.Paths.Release, rc.PackageName())
}

func (s *posixStrategy) patch(path string, rules []patch.Rule) error {
	n, err := patch.File(path, rules)
	if err != nil {
		return err
	}
	s.tools.logger().Debug("patched", "file", path, "lines", n)
	return nil
}
