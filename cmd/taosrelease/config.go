// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taosdata/taosrelease/internal/config"
	"github.com/taosdata/taosrelease/internal/pipeline"
)

// newConfigCommand creates the `taosrelease config` command tree.
func newConfigCommand(app *App, opts *globalOptions) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect taosrelease configuration",
		Long: `Inspect taosrelease configuration.

Configuration is read from taosrelease.cue in the source root (see --root),
or from the file given with --config. Every key is optional.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	load := func(cmd *cobra.Command) (*config.Config, error) {
		req := opts.request(pipeline.StageAll)
		cfg, err := app.loadConfig(cmd.Context(), req)
		if err != nil {
			return nil, failCommand(cmd, app, err, req.Verbose)
		}
		return cfg, nil
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			showConfig(app.stdout, cfg)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			if cfg.Source == "" {
				fmt.Fprintln(app.stdout, SubtitleStyle.Render("(using defaults)"))
				return nil
			}
			fmt.Fprintln(app.stdout, cfg.Source)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Output the CUE schema configuration files are validated against",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(app.stdout, config.Schema())
			return nil
		},
	})

	return cfgCmd
}

func showConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	source := cfg.Source
	if source == "" {
		source = SubtitleStyle.Render("(using defaults)")
	}
	fmt.Fprintf(w, "%s: %s\n\n", CmdStyle.Render("Config file"), source)

	sections := []struct {
		name   string
		values [][2]string
	}{
		{"build", [][2]string{
			{"mode", cfg.Build.Mode},
			{"cpu_type", orDetect(cfg.Build.CPUType)},
			{"jobs", strconv.Itoa(cfg.Build.Jobs)},
			{"generator", cfg.Build.Generator},
			{"platform", cfg.Build.Platform},
			{"vcvarsall", cfg.Build.VCVarsAll},
			{"configure_args", cfg.Build.ConfigureArgs},
		}},
		{"dist", [][2]string{
			{"archiver", cfg.Dist.Archiver},
			{"iscc", cfg.Dist.ISCC},
			{"installer_script", cfg.Dist.InstallerScript},
			{"inno_script", cfg.Dist.InnoScript},
			{"manifest", strconv.FormatBool(cfg.Dist.Manifest)},
		}},
		{"vcs", [][2]string{{"backend", cfg.VCS.Backend}}},
		{"paths", [][2]string{
			{"build", cfg.Paths.Build},
			{"release", cfg.Paths.Release},
			{"templates", cfg.Paths.Templates},
			{"packaging", cfg.Paths.Packaging},
		}},
		{"ui", [][2]string{{"verbose", strconv.FormatBool(cfg.UI.Verbose)}}},
	}
	for _, sec := range sections {
		fmt.Fprintln(w, SubtitleStyle.Render(sec.name+":"))
		for _, kv := range sec.values {
			if strings.TrimSpace(kv[1]) == "" {
				continue
			}
			fmt.Fprintf(w, "  %s: %s\n", CmdStyle.Render(kv[0]), SuccessStyle.Render(kv[1]))
		}
	}
}

func orDetect(v string) string {
	if v == "" {
		return "(detect)"
	}
	return v
}
