package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	oerrors "github.com/asaapi/plugin-init/internal/errors"
	"github.com/asaapi/plugin-init/internal/identity"
	"github.com/asaapi/plugin-init/internal/output"
	"github.com/asaapi/plugin-init/internal/verify"
	"github.com/asaapi/plugin-init/internal/workspace"
)

// NewVerifyCmd creates the verify command.
func NewVerifyCmd(cfg *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "verify [name]",
		Short: "Check an instantiated tree for leftovers",
		Long: `Scan the template root for files that still mention the template
identifiers and for project entries that point at missing files.

With a name, also check that <name>.sln exists and that the vcpkg manifest
carries the matching package name.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			defer cfg.Close()
			return runVerify(c, args, cfg)
		},
	}
}

func runVerify(c *cobra.Command, args []string, g *GlobalConfig) error {
	opts := verify.Options{}
	if len(args) == 1 {
		id, err := identity.New(args[0], "")
		if err != nil {
			return exitError(err)
		}
		opts.Identity = &id
	}

	ws, err := workspace.NewOS(g.Root)
	if err != nil {
		return exitError(err)
	}

	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var result *verify.Result
	err = output.RunWithSpinner(ctx, func() error {
		var runErr error
		result, runErr = verify.Run(ctx, ws, opts)
		return runErr
	}, output.WithTitle("Scanning "+g.Root))
	if err != nil {
		return exitError(fmt.Errorf("verifying %s: %w", g.Root, err))
	}

	if err := writeVerifyResult(c.OutOrStdout(), filepath.Base(g.Root), result, g.Output); err != nil {
		return exitError(err)
	}

	if !result.OK() {
		return reportedError(ExitValidationError,
			oerrors.Wrap(oerrors.ErrValidation, fmt.Sprintf("verification found %d problem(s)", len(result.Findings))))
	}
	return nil
}

func writeVerifyResult(w io.Writer, rootName string, result *verify.Result, format output.OutputFormat) error {
	switch format {
	case output.FormatJSON:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case output.FormatYAML:
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		fmt.Fprint(w, string(data))
	default:
		perFile := make(map[string]int)
		for _, f := range result.Findings {
			fmt.Fprintf(w, "%s %s\n", output.StyleDim.Render("["+string(f.Kind)+"]"), f.String())
			perFile[f.Path]++
		}
		if len(perFile) > 0 {
			files := make(map[string]string, len(perFile))
			for path, n := range perFile {
				files[path] = fmt.Sprintf("%d problem(s)", n)
			}
			fmt.Fprintln(w)
			fmt.Fprint(w, output.RenderFileTree(rootName, files))
			fmt.Fprintln(w)
		}
		if result.OK() {
			fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("%d files scanned, no problems found", result.FilesScanned)))
		} else {
			fmt.Fprintln(w, output.StyleSummary.Render(fmt.Sprintf("%d files scanned, %d problem(s) found",
				result.FilesScanned, len(result.Findings))))
		}
	}
	return nil
}
