// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"mvdan.cc/sh/v3/shell"

	"github.com/taosdata/taosrelease/internal/runner"
)

const (
	// DefaultVCVarsAll is where Visual Studio 2022 Community installs the script.
	DefaultVCVarsAll = `C:\Program Files\Microsoft Visual Studio\2022\Community\VC\Auxiliary\Build\vcvarsall.bat`
	// DefaultArch is the vcvarsall target argument.
	DefaultArch = "x64"
)

// ErrEmptyEnvironment is returned when the environment dump has no entries.
var ErrEmptyEnvironment = errors.New("toolchain environment is empty")

// Environment maps variable names to values.
type Environment map[string]string

// ParseEnvDump reads `set`-style output: one NAME=VALUE per line, split on
// the first '='. Lines without '=' (banners, blank lines) are skipped.
func ParseEnvDump(dump string) Environment {
	env := Environment{}
	sc := bufio.NewScanner(strings.NewReader(dump))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		name, value, ok := strings.Cut(line, "=")
		if !ok || name == "" {
			continue
		}
		env[name] = value
	}
	return env
}

// Slice renders env as sorted NAME=VALUE pairs for runner.Command.Env.
func (env Environment) Slice() []string {
	names := slices.Sorted(maps.Keys(env))
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, name+"="+env[name])
	}
	return out
}

// Overlay returns base with env's entries added or replaced.
func (env Environment) Overlay(base []string) []string {
	merged := Environment{}
	for _, kv := range base {
		if name, value, ok := strings.Cut(kv, "="); ok {
			merged[name] = value
		}
	}
	maps.Copy(merged, env)
	return merged.Slice()
}

// VCVarsCommand returns the cmd.exe invocation of `"<vcvarsall>" <arch> && set`.
// With /s, cmd.exe strips the outermost quotes after /c and runs the rest,
// so the quoted script path survives spaces.
func VCVarsCommand(vcvarsall, arch string) runner.Command {
	if arch == "" {
		arch = DefaultArch
	}
	script := fmt.Sprintf(`"%s" %s && set`, vcvarsall, arch)
	return runner.Command{
		Name:       "cmd.exe",
		Args:       []string{"/s", "/c", script},
		RawCmdLine: `cmd.exe /s /c "` + script + `"`,
	}
}

// Acquire runs VCVarsCommand and parses the resulting environment.
func Acquire(ctx context.Context, r runner.Runner, vcvarsall, arch string) (Environment, error) {
	out, err := runner.Output(ctx, r, VCVarsCommand(vcvarsall, arch))
	if err != nil {
		return nil, fmt.Errorf("acquire msvc environment: %w", err)
	}
	env := ParseEnvDump(out)
	if len(env) == 0 {
		return nil, fmt.Errorf("%w after running %s", ErrEmptyEnvironment, vcvarsall)
	}
	return env, nil
}

// ExpandPath expands $VAR and ${VAR} references in a configured script path
// against the process environment with double-quote semantics, so spaces
// survive. Unset variables expand to "". Empty selects DefaultVCVarsAll.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return DefaultVCVarsAll, nil
	}
	// Backslashes are path separators here, not shell escapes.
	escaped := strings.ReplaceAll(path, `\`, `\\`)
	expanded, err := shell.Expand(escaped, func(name string) string { return os.Getenv(name) })
	if err != nil {
		return "", fmt.Errorf("expand vcvarsall path %q: %w", path, err)
	}
	return expanded, nil
}
