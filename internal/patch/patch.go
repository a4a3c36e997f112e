// SPDX-License-Identifier: MPL-2.0

// Package patch rewrites labeled key=value lines of small text templates.
//
// A rule matches a line whose text starts with its prefix (case-sensitive,
// anchored at column 0). The first matching rule replaces the whole line;
// every other line is kept byte for byte, so line count and order never change.
package patch

import (
	"bytes"
	"fmt"
	"os"

	"github.com/taosdata/taosrelease/internal/release"
)

const (
	// InstallLibFileKey is the install.sh variable naming the versioned library.
	InstallLibFileKey = "taos_odbc_lib_file="
	// InstallLibLinkKey is the install.sh variable naming the unversioned link.
	InstallLibLinkKey = "taos_odbc_lib_ln="
	// DriverKey is the odbcinst.in entry pointing at the driver library.
	DriverKey = "Driver="
)

// Rule replaces any line starting with Prefix by Replacement.
type Rule struct {
	Prefix      string
	Replacement string
}

// InstallScriptRules returns the rules for install.sh.
func InstallScriptRules(naming release.LibraryNaming) []Rule {
	return []Rule{
		{Prefix: InstallLibFileKey, Replacement: InstallLibFileKey + `"` + naming.File + `"`},
		{Prefix: InstallLibLinkKey, Replacement: InstallLibLinkKey + `"` + naming.Link + `"`},
	}
}

// DriverDescriptorRules returns the rules for odbcinst.in.
func DriverDescriptorRules(naming release.LibraryNaming) []Rule {
	return []Rule{
		{Prefix: DriverKey, Replacement: DriverKey + naming.Link},
	}
}

// Lines applies rules to content and reports how many lines were replaced.
// A replaced line keeps its original terminator ("\n", "\r\n" or none).
func Lines(content []byte, rules []Rule) ([]byte, int) {
	var out bytes.Buffer
	out.Grow(len(content))

	replaced := 0
	rest := content
	for len(rest) > 0 {
		line := rest
		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			line = rest[:i+1]
		}
		rest = rest[len(line):]

		body, eol := splitEOL(line)
		if rule, ok := match(body, rules); ok {
			out.WriteString(rule.Replacement)
			out.Write(eol)
			replaced++
			continue
		}
		out.Write(line)
	}
	return out.Bytes(), replaced
}

// File rewrites path in place with Lines, preserving its permission bits.
func File(path string, rules []Rule) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("patch %s: %w", path, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("patch %s: %w", path, err)
	}

	patched, n := Lines(content, rules)
	if err := os.WriteFile(path, patched, info.Mode().Perm()); err != nil {
		return 0, fmt.Errorf("patch %s: %w", path, err)
	}
	return n, nil
}

func match(line []byte, rules []Rule) (Rule, bool) {
	for _, r := range rules {
		if bytes.HasPrefix(line, []byte(r.Prefix)) {
			return r, true
		}
	}
	return Rule{}, false
}

func splitEOL(line []byte) (body, eol []byte) {
	switch {
	case bytes.HasSuffix(line, []byte("\r\n")):
		return line[:len(line)-2], line[len(line)-2:]
	case bytes.HasSuffix(line, []byte("\n")):
		return line[:len(line)-1], line[len(line)-1:]
	default:
		return line, nil
	}
}
