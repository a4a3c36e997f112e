// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"

	"github.com/taosdata/taosrelease/internal/issue"
)

const (
	// AppName is the application name.
	AppName = "taosrelease"
	// ConfigFileName is the config file looked up in the source root.
	ConfigFileName = AppName + ".cue"
)

//go:embed config_schema.cue
var configSchema string

// loadWithOptions reads the configuration described by opts. The search
// order is the explicit file, then <root>/taosrelease.cue, then defaults.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())

	resolvedPath := ""
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithIssue(issue.ConfigLoadFailedId).
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'taosrelease config show' to see the default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		resolvedPath = opts.ConfigFilePath
	} else if local := filepath.Join(opts.Root, ConfigFileName); fileExists(local) {
		resolvedPath = local
	}

	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithIssue(issue.ConfigLoadFailedId).
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the values match the schema shown by 'taosrelease config schema'").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Source = resolvedPath
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("build.mode", d.Build.Mode)
	v.SetDefault("build.cpu_type", d.Build.CPUType)
	v.SetDefault("build.jobs", d.Build.Jobs)
	v.SetDefault("build.generator", d.Build.Generator)
	v.SetDefault("build.platform", d.Build.Platform)
	v.SetDefault("build.vcvarsall", d.Build.VCVarsAll)
	v.SetDefault("build.configure_args", d.Build.ConfigureArgs)
	v.SetDefault("dist.archiver", d.Dist.Archiver)
	v.SetDefault("dist.iscc", d.Dist.ISCC)
	v.SetDefault("dist.installer_script", d.Dist.InstallerScript)
	v.SetDefault("dist.inno_script", d.Dist.InnoScript)
	v.SetDefault("dist.manifest", d.Dist.Manifest)
	v.SetDefault("vcs.backend", d.VCS.Backend)
	v.SetDefault("paths.build", d.Paths.Build)
	v.SetDefault("paths.release", d.Paths.Release)
	v.SetDefault("paths.templates", d.Paths.Templates)
	v.SetDefault("paths.packaging", d.Paths.Packaging)
	v.SetDefault("ui.verbose", d.UI.Verbose)
}

// loadCUEIntoViper parses a CUE file, validates it against #Config, and
// merges it into v. Concrete(false) because every field is optional.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := checkFileSize(data, path); err != nil {
		return err
	}

	ctx := cuecontext.New()
	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return formatCUEError(userValue.Err(), path)
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return formatCUEError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return formatCUEError(err, path)
	}
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Schema returns the embedded CUE schema source.
func Schema() string { return configSchema }

// GenerateCUE renders cfg as a taosrelease.cue file.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// taosrelease configuration\n\n")

	sb.WriteString("build: {\n")
	fmt.Fprintf(&sb, "\tmode: %q\n", cfg.Build.Mode)
	if cfg.Build.CPUType != "" {
		fmt.Fprintf(&sb, "\tcpu_type: %q\n", cfg.Build.CPUType)
	}
	fmt.Fprintf(&sb, "\tjobs: %d\n", cfg.Build.Jobs)
	fmt.Fprintf(&sb, "\tgenerator: %q\n", cfg.Build.Generator)
	fmt.Fprintf(&sb, "\tplatform: %q\n", cfg.Build.Platform)
	if cfg.Build.VCVarsAll != "" {
		fmt.Fprintf(&sb, "\tvcvarsall: %q\n", cfg.Build.VCVarsAll)
	}
	if cfg.Build.ConfigureArgs != "" {
		fmt.Fprintf(&sb, "\tconfigure_args: %q\n", cfg.Build.ConfigureArgs)
	}
	sb.WriteString("}\n")

	sb.WriteString("\ndist: {\n")
	fmt.Fprintf(&sb, "\tarchiver: %q\n", cfg.Dist.Archiver)
	fmt.Fprintf(&sb, "\tiscc: %q\n", cfg.Dist.ISCC)
	fmt.Fprintf(&sb, "\tinstaller_script: %q\n", cfg.Dist.InstallerScript)
	fmt.Fprintf(&sb, "\tinno_script: %q\n", cfg.Dist.InnoScript)
	fmt.Fprintf(&sb, "\tmanifest: %v\n", cfg.Dist.Manifest)
	sb.WriteString("}\n")

	sb.WriteString("\nvcs: {\n")
	fmt.Fprintf(&sb, "\tbackend: %q\n", cfg.VCS.Backend)
	sb.WriteString("}\n")

	sb.WriteString("\npaths: {\n")
	fmt.Fprintf(&sb, "\tbuild: %q\n", cfg.Paths.Build)
	fmt.Fprintf(&sb, "\trelease: %q\n", cfg.Paths.Release)
	fmt.Fprintf(&sb, "\ttemplates: %q\n", cfg.Paths.Templates)
	fmt.Fprintf(&sb, "\tpackaging: %q\n", cfg.Paths.Packaging)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}
