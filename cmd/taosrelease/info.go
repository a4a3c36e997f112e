// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/taosdata/taosrelease/internal/pipeline"
	"github.com/taosdata/taosrelease/internal/release"
)

// Output formats accepted by info --format.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
	formatTOML = "toml"
)

func newInfoCommand(app *App, opts *globalOptions) *cobra.Command {
	var format string
	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Resolve and print the release context without building",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			req := opts.request(pipeline.StageAll)
			s, err := app.newSession(cmd.Context(), req)
			if err != nil {
				return failCommand(cmd, app, err, req.Verbose)
			}
			o := s.orchestrator
			rc, err := o.Resolver.Resolve(cmd.Context(), o.Root, o.Layout, o.Overrides)
			if err != nil {
				return failCommand(cmd, app, err, s.verbose)
			}
			return writeInfo(app.stdout, rc, format)
		},
	}
	infoCmd.Flags().StringVar(&format, "format", formatText, "output format (text, json, yaml, toml)")
	return infoCmd
}

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML, formatTOML:
		return nil
	default:
		return fmt.Errorf("invalid format %q (must be text, json, yaml or toml)", format)
	}
}

func writeInfo(w io.Writer, rc *release.Context, format string) error {
	summary := rc.Summary()
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(summary); err != nil {
			return err
		}
		return enc.Close()
	case formatTOML:
		return toml.NewEncoder(w).Encode(summary)
	default:
		pipeline.PrintContext(w, rc)
		return nil
	}
}
