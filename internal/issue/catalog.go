// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

// Id identifies a catalog entry.
type Id int

const (
	MissingArtifactId Id = iota + 1
	ToolFailedId
	UnknownCPUTypeId
	InvalidBuildModeId
	ConfigLoadFailedId
	NotDirectoryId
	SourceControlId
	UnsafeLayoutId
)

type (
	// MarkdownMsg is the markdown body of an Issue.
	MarkdownMsg string

	// Issue is a long-form explanation of a failure class, shown by
	// `taosrelease explain` and after a failed verbose run.
	Issue struct {
		id    Id
		name  string
		mdMsg MarkdownMsg
	}
)

func (i *Issue) Id() Id { return i.id }

// Name is the stable identifier accepted by `taosrelease explain`.
func (i *Issue) Name() string { return i.name }

func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

// Render renders the markdown with the glamour style at stylePath
// ("auto", "dark", "light", "notty", or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	missingArtifactIssue = &Issue{
		id:   MissingArtifactId,
		name: "missing-artifact",
		mdMsg: `
# A file the package needs is missing

The package stage copies the compiled driver and the ODBC templates into
the release tree. One of them was not where it should be.

## Things you can try
- Build before packaging:
~~~
$ taosrelease -t build
~~~
- Check that **paths.build**, **paths.templates** and **paths.packaging** in
  taosrelease.cue point at the right directories.
- On Windows, the library is looked up under build/src/<BuildMode>, so
  package with the same -b value you built with.`,
	}

	toolFailedIssue = &Issue{
		id:   ToolFailedId,
		name: "tool-failed",
		mdMsg: `
# An external tool failed

cmake, git, tar or iscc exited with a non-zero status and the run stopped.
Nothing after the failing step was executed.

## Things you can try
- Re-run with -v to log each command line before it runs.
- Print the commands without running them:
~~~
$ taosrelease --dry-run
~~~
- Run the logged command by hand from the source root to see its full output.`,
	}

	unknownCPUTypeIssue = &Issue{
		id:   UnknownCPUTypeId,
		name: "unknown-cpu-type",
		mdMsg: `
# Unknown cpu type

Packages are tagged with one of **32**, **x64**, **arm64** or **AArch64**.
The host could not be mapped to one of them, or -c named something else.

## Things you can try
- Pass one of the supported tags, for example:
~~~
$ taosrelease -c x64
~~~
- The host is detected before -c is applied, so an unsupported machine
  cannot be packaged even with an override.`,
	}

	invalidBuildModeIssue = &Issue{
		id:   InvalidBuildModeId,
		name: "invalid-build-mode",
		mdMsg: `
# Invalid build mode

The build mode must be **Debug** or **Release** (any letter case).

## Things you can try
~~~
$ taosrelease -b Release
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id:   ConfigLoadFailedId,
		name: "config-load-failed",
		mdMsg: `
# The configuration could not be loaded

taosrelease.cue is validated against a CUE schema before anything runs.

## Things you can try
- Print the schema the file is checked against:
~~~
$ taosrelease config schema
~~~
- Print the effective configuration to start from:
~~~
$ taosrelease config dump > taosrelease.cue
~~~`,
	}

	notDirectoryIssue = &Issue{
		id:   NotDirectoryId,
		name: "not-a-directory",
		mdMsg: `
# A file is in the way

The build and release directories are recreated on every run, but a regular
file exists where one of them should be. It is never removed automatically.

## Things you can try
- Move or delete the file, or point **paths.build** / **paths.release**
  somewhere else.`,
	}

	sourceControlIssue = &Issue{
		id:   SourceControlId,
		name: "source-control",
		mdMsg: `
# Branch or commit could not be determined

Every package records the branch and commit it was built from.

## Things you can try
- Run from inside the taos_odbc checkout, or pass --root.
- Without a git executable, switch to the built-in backend:
~~~cue
vcs: backend: "go-git"
~~~`,
	}

	unsafeLayoutIssue = &Issue{
		id:   UnsafeLayoutId,
		name: "unsafe-layout",
		mdMsg: `
# The output directories are not safe to empty

Every run deletes and recreates **paths.build** and **paths.release**. Each
must be its own subdirectory of the source root, and neither may contain
the other, the templates, or the packaging scripts.

## Things you can try
- Use the defaults, or give each output its own directory:
~~~cue
paths: {
	build:   "out/build"
	release: "out/release"
}
~~~`,
	}

	issues = map[Id]*Issue{
		missingArtifactIssue.Id():  missingArtifactIssue,
		toolFailedIssue.Id():       toolFailedIssue,
		unknownCPUTypeIssue.Id():   unknownCPUTypeIssue,
		invalidBuildModeIssue.Id(): invalidBuildModeIssue,
		configLoadFailedIssue.Id(): configLoadFailedIssue,
		notDirectoryIssue.Id():     notDirectoryIssue,
		sourceControlIssue.Id():    sourceControlIssue,
		unsafeLayoutIssue.Id():     unsafeLayoutIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id - b.id) })
	return out
}

// Get returns the entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}

// Lookup returns the entry with the given name, or nil.
func Lookup(name string) *Issue {
	idx := slices.IndexFunc(Values(), func(i *Issue) bool { return i.name == name })
	if idx < 0 {
		return nil
	}
	return Values()[idx]
}
