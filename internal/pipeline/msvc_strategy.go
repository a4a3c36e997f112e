// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"github.com/taosdata/taosrelease/internal/fsutil"
	"github.com/taosdata/taosrelease/internal/release"
	"github.com/taosdata/taosrelease/internal/runner"
	"github.com/taosdata/taosrelease/internal/toolchain"
)

// msvcStrategy builds with Visual Studio and packages with Inno Setup.
type msvcStrategy struct {
	settings Settings
	tools    Tools
}

func (s *msvcStrategy) Name() string { return "msvc" }

func (s *msvcStrategy) Build(ctx context.Context, rc *release.Context) error {
	s.tools.logger().Info("building taos_odbc", "mode", rc.BuildMode, "generator", s.settings.Generator)

	env, err := toolchain.Acquire(ctx, s.tools.Runner, s.settings.VCVarsAll, s.settings.Platform)
	if err != nil {
		return err
	}
	childEnv := env.Overlay(os.Environ())

	jobs := s.settings.Jobs
	if jobs <= 0 {
		jobs = DefaultMSVCJobs
	}

	configure := append([]string{
		"--no-warn-unused-cli",
		"-DCMAKE_EXPORT_COMPILE_COMMANDS:BOOL=TRUE",
		"-B", rc.Paths.Build,
		"-G", s.settings.Generator,
		"-A", s.settings.Platform,
	}, s.settings.ConfigureArgs...)
	build := []string{"--build", rc.Paths.Build, "--config", rc.BuildMode.String(), "-j", strconv.Itoa(jobs)}

	for _, args := range [][]string{configure, build} {
		cmd := runner.Command{Name: s.settings.CMake, Args: args, Dir: rc.Paths.Root, Env: childEnv}
		if err := runner.RunChecked(ctx, s.tools.Runner, cmd); err != nil {
			return err
		}
	}
	return nil
}

func (s *msvcStrategy) Package(ctx context.Context, rc *release.Context) (string, error) {
	s.tools.logger().Info("staging installer sources", "release", rc.Paths.Release)

	driverDir := filepath.Join(rc.Paths.Release, DriverDir)
	libDst := filepath.Join(driverDir, "lib")
	binDst := filepath.Join(driverDir, "bin")
	for _, dir := range []string{libDst, binDst} {
		if err := fsutil.ResetDir(dir); err != nil {
			return "", err
		}
	}

	outDir := filepath.Join(rc.Paths.Build, "src", rc.BuildMode.String())
	importLib := filepath.Join(outDir, rc.Naming.Link)
	dll := filepath.Join(outDir, rc.Naming.File)
	if err := requireFiles(importLib, dll); err != nil {
		return "", err
	}
	if err := copyAll(libDst, importLib); err != nil {
		return "", err
	}
	if err := copyAll(binDst, dll); err != nil {
		return "", err
	}

	descriptor := filepath.Join(rc.Paths.Templates, "win_odbcinst.in")
	if err := requireFiles(descriptor); err != nil {
		return "", err
	}
	if err := copyAll(driverDir, descriptor); err != nil {
		return "", err
	}

	pkg := rc.PackageName()
	iscc := runner.Command{
		Name: s.settings.ISCC,
		Args: []string{
			"/F" + pkg,
			"/DMyAppVersion=" + rc.Version,
			"/DMyAppSourceDir=" + rc.Paths.Release,
			filepath.Join(rc.Paths.Packaging, s.settings.InnoScript),
			"/O" + rc.Paths.Release,
		},
		Dir: rc.Paths.Root,
	}
	if err := runner.RunChecked(ctx, s.tools.Runner, iscc); err != nil {
		return "", err
	}
	return filepath.Join(rc.Paths.Release, pkg+".exe"), nil
}
