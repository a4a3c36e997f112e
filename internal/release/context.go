// SPDX-License-Identifier: MPL-2.0

package release

import (
	"github.com/taosdata/taosrelease/pkg/platform"
)

// BuildTimeLayout is the time.Format layout of Context.BuildTime.
const BuildTimeLayout = "2006-01-02 15:04:05"

type (
	// Paths holds the absolute directories of one run.
	Paths struct {
		// Root is the driver source tree (where CMakeLists.txt lives).
		Root string
		// Build is the CMake binary directory.
		Build string
		// Release is the staging area and artifact output directory.
		Release string
		// Templates holds odbc.in, odbcinst.in and win_odbcinst.in.
		Templates string
		// Packaging holds install.sh and the Inno Setup script.
		Packaging string
	}

	// Context is the resolved configuration of one release run.
	Context struct {
		OS        platform.TargetOS
		CPUType   CPUType
		BuildMode BuildMode
		Version   string
		Paths     Paths
		Naming    LibraryNaming
		Branch    string
		Commit    string
		BuildTime string
	}

	// Summary is the printable form of a Context.
	Summary struct {
		Branch      string `json:"branch" yaml:"branch" toml:"branch"`
		BuildMode   string `json:"build_mode" yaml:"build_mode" toml:"build_mode"`
		BuildPath   string `json:"build_path" yaml:"build_path" toml:"build_path"`
		BuildTime   string `json:"build_time" yaml:"build_time" toml:"build_time"`
		Commit      string `json:"commit" yaml:"commit" toml:"commit"`
		CPUType     string `json:"cpu_type" yaml:"cpu_type" toml:"cpu_type"`
		LibFile     string `json:"lib_file" yaml:"lib_file" toml:"lib_file"`
		LibLink     string `json:"lib_link" yaml:"lib_link" toml:"lib_link"`
		OS          string `json:"os" yaml:"os" toml:"os"`
		PackageName string `json:"package_name" yaml:"package_name" toml:"package_name"`
		ReleasePath string `json:"release_path" yaml:"release_path" toml:"release_path"`
		RootPath    string `json:"root_path" yaml:"root_path" toml:"root_path"`
		Version     string `json:"version" yaml:"version" toml:"version"`
	}

	// Field is a single labeled value of a Summary, in display order.
	Field struct {
		Name  string
		Value string
	}
)

// PackageName derives the artifact name from the current field values, so it
// can never go stale when OS, CPUType or Version change.
func (c *Context) PackageName() string {
	return PackageName(c.Version, c.OS, c.CPUType)
}

// Summary returns the printable form of c.
func (c *Context) Summary() Summary {
	return Summary{
		Branch:      c.Branch,
		BuildMode:   c.BuildMode.String(),
		BuildPath:   c.Paths.Build,
		BuildTime:   c.BuildTime,
		Commit:      c.Commit,
		CPUType:     c.CPUType.String(),
		LibFile:     c.Naming.File,
		LibLink:     c.Naming.Link,
		OS:          c.OS.String(),
		PackageName: c.PackageName(),
		ReleasePath: c.Paths.Release,
		RootPath:    c.Paths.Root,
		Version:     c.Version,
	}
}

// Fields returns the summary as labeled values sorted by label.
func (s Summary) Fields() []Field {
	return []Field{
		{"Branch", s.Branch},
		{"BuildMode", s.BuildMode},
		{"BuildPath", s.BuildPath},
		{"BuildTime", s.BuildTime},
		{"Commit", s.Commit},
		{"CpuType", s.CPUType},
		{"LibFile", s.LibFile},
		{"LibLink", s.LibLink},
		{"OS", s.OS},
		{"PackageName", s.PackageName},
		{"ReleasePath", s.ReleasePath},
		{"RootPath", s.RootPath},
		{"Version", s.Version},
	}
}
