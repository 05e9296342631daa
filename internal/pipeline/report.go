package pipeline

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/asaapi/plugin-init/internal/output"
)

// FormatReport renders the report in the requested format.
func FormatReport(report *Report, format output.OutputFormat) (string, error) {
	switch format {
	case output.FormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshaling report to JSON: %w", err)
		}
		return string(data) + "\n", nil
	case output.FormatYAML:
		data, err := yaml.Marshal(report)
		if err != nil {
			return "", fmt.Errorf("marshaling report to YAML: %w", err)
		}
		return string(data), nil
	default:
		return formatReportText(report), nil
	}
}

func formatReportText(report *Report) string {
	var sb strings.Builder

	for _, o := range report.Outcomes {
		sb.WriteString(output.FormatComponentLine(o.Component, string(o.Status)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if report.DryRun {
		for _, o := range report.Outcomes {
			for _, c := range o.Changes {
				sb.WriteString(output.FormatLinePreview(c.Path, c.Line, c.Before, c.After))
				sb.WriteString("\n")
			}
		}
		sb.WriteString("\n")
	}

	rows := make([]output.SummaryRow, 0, len(report.Outcomes))
	for _, o := range report.Outcomes {
		rows = append(rows, output.SummaryRow{
			Component:   o.Component,
			Status:      string(o.Status),
			Changes:     len(o.Changes),
			Renames:     len(o.Renames),
			Diagnostics: len(o.Diagnostics),
		})
	}
	sb.WriteString(output.RenderSummaryTable(rows))
	sb.WriteString("\n")

	if renames := report.Renames(); len(renames) > 0 && !report.RolledBack {
		entries := make([]output.RenameEntry, 0, len(renames))
		for _, r := range renames {
			entries = append(entries, output.RenameEntry{Old: r.Old, New: r.New})
		}
		sb.WriteString("\n")
		sb.WriteString(output.RenderRenameTree(filepath.Base(report.Root), entries))
	}

	sb.WriteString("\n")
	sb.WriteString(summaryLine(report))
	sb.WriteString("\n")
	return sb.String()
}

func summaryLine(report *Report) string {
	switch {
	case report.RolledBack:
		return output.StyleSummary.Render("Run aborted, template restored")
	case report.HasFailures():
		return output.StyleSummary.Render(fmt.Sprintf("Finished with %d failed component(s)", len(report.Failed())))
	case report.DryRun:
		return output.FormatCheckmark(fmt.Sprintf("Dry run: %d planned change(s), nothing written", len(report.Plan)))
	default:
		return output.FormatCheckmark(fmt.Sprintf("Project successfully renamed to %s", output.StyleNoun.Render(report.Project)))
	}
}
