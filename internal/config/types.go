// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"

	"mvdan.cc/sh/v3/shell"
)

type (
	// Config is the complete taosrelease configuration.
	Config struct {
		Build   BuildConfig   `json:"build" yaml:"build" mapstructure:"build"`
		Dist    DistConfig    `json:"dist" yaml:"dist" mapstructure:"dist"`
		VCS     VCSConfig     `json:"vcs" yaml:"vcs" mapstructure:"vcs"`
		Paths   PathsConfig   `json:"paths" yaml:"paths" mapstructure:"paths"`
		UI      UIConfig      `json:"ui" yaml:"ui" mapstructure:"ui"`

		// Source is the file the configuration was read from, empty for defaults.
		Source string `json:"-" yaml:"-" mapstructure:"-"`
	}

	// BuildConfig controls the native build.
	BuildConfig struct {
		Mode          string `json:"mode" yaml:"mode" mapstructure:"mode"`
		CPUType       string `json:"cpu_type" yaml:"cpu_type" mapstructure:"cpu_type"`
		Jobs          int    `json:"jobs" yaml:"jobs" mapstructure:"jobs"`
		Generator     string `json:"generator" yaml:"generator" mapstructure:"generator"`
		Platform      string `json:"platform" yaml:"platform" mapstructure:"platform"`
		VCVarsAll     string `json:"vcvarsall" yaml:"vcvarsall" mapstructure:"vcvarsall"`
		ConfigureArgs string `json:"configure_args" yaml:"configure_args" mapstructure:"configure_args"`
	}

	// DistConfig controls artifact production.
	DistConfig struct {
		Archiver        string `json:"archiver" yaml:"archiver" mapstructure:"archiver"`
		ISCC            string `json:"iscc" yaml:"iscc" mapstructure:"iscc"`
		InstallerScript string `json:"installer_script" yaml:"installer_script" mapstructure:"installer_script"`
		InnoScript      string `json:"inno_script" yaml:"inno_script" mapstructure:"inno_script"`
		Manifest        bool   `json:"manifest" yaml:"manifest" mapstructure:"manifest"`
	}

	// VCSConfig selects how branch and commit are read.
	VCSConfig struct {
		Backend string `json:"backend" yaml:"backend" mapstructure:"backend"`
	}

	// PathsConfig names the run directories, relative to the source root.
	PathsConfig struct {
		Build     string `json:"build" yaml:"build" mapstructure:"build"`
		Release   string `json:"release" yaml:"release" mapstructure:"release"`
		Templates string `json:"templates" yaml:"templates" mapstructure:"templates"`
		Packaging string `json:"packaging" yaml:"packaging" mapstructure:"packaging"`
	}

	// UIConfig controls console output.
	UIConfig struct {
		Verbose bool `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
	}
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Build: BuildConfig{
			Mode:      "Release",
			Generator: "Visual Studio 17 2022",
			Platform:  "x64",
		},
		Dist: DistConfig{
			Archiver:        "tar",
			ISCC:            "iscc",
			InstallerScript: "install.sh",
			InnoScript:      "taos_odbc.iss",
		},
		VCS: VCSConfig{Backend: "git"},
		Paths: PathsConfig{
			Build:     "build",
			Release:   "release",
			Templates: "templates",
			Packaging: "packaging",
		},
	}
}

// ConfigureArgList splits ConfigureArgs into words with shell quoting rules.
// $VAR references are expanded from the process environment.
func (b BuildConfig) ConfigureArgList() ([]string, error) {
	if b.ConfigureArgs == "" {
		return nil, nil
	}
	words, err := shell.Fields(b.ConfigureArgs, nil)
	if err != nil {
		return nil, fmt.Errorf("build.configure_args: %w", err)
	}
	return words, nil
}
