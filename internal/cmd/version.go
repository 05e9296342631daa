package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/asaapi/plugin-init/internal/output"
	"github.com/asaapi/plugin-init/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(cfg *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show plugin-init version information.

Displays the version, commit, build date and Go toolchain.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(c *cobra.Command, args []string) error {
			return runVersion(c, cfg)
		},
	}
}

func runVersion(c *cobra.Command, cfg *GlobalConfig) error {
	info := version.Get()
	w := c.OutOrStdout()

	switch cfg.Output {
	case output.FormatJSON:
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling version: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case output.FormatYAML:
		data, err := yaml.Marshal(info)
		if err != nil {
			return fmt.Errorf("marshaling version: %w", err)
		}
		fmt.Fprint(w, string(data))
	default:
		fmt.Fprintln(w, info.String())
	}
	return nil
}
