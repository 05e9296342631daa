package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette: named constants for all ANSI 256 colors used in the CLI.
// These are the single source of truth; never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: file paths, project names.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "applied" status and added preview lines.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "skipped" status.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for removed preview lines.
	ColorRed = lipgloss.Color("196")

	// ColorBoldRed is used for the "failed" status (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark (✔).
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles map domain concepts to visual presentation.
var (
	// StyleNoun styles identifiable nouns (file paths, project names).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs (rewriting, renaming).
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (line numbers, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Component status constants.
const (
	StatusApplied   = "applied"
	StatusUnchanged = "unchanged"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
	StatusPlanned   = "planned"
)

// StatusStyle returns the lipgloss style for a component status string.
// Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusApplied:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusPlanned:
		return lipgloss.NewStyle().Foreground(ColorCyan)
	case StatusUnchanged:
		return lipgloss.NewStyle().Faint(true)
	case StatusSkipped:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// Styles groups the styles used by renderers that accept a style set.
type Styles struct {
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// GetStyles returns the default style set.
func GetStyles() *Styles {
	return &Styles{
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(ColorDimGray),
		Success: lipgloss.NewStyle().Foreground(ColorGreen),
		Warning: lipgloss.NewStyle().Foreground(ColorYellow),
		Error:   lipgloss.NewStyle().Foreground(ColorRed),
	}
}

// minComponentColumnWidth is the minimum width of the component column
// before the status suffix.
const minComponentColumnWidth = 32

// FormatComponentLine renders a component name with a right-aligned,
// color-coded status suffix.
//
// Format: c:<component>  <status>
func FormatComponentLine(component, status string) string {
	padding := minComponentColumnWidth - len(component)
	if padding < 2 {
		padding = 2
	}

	prefix := StyleDim.Render("c:")
	styledName := StyleNoun.Render(component)
	styledStatus := StatusStyle(status).Render(status)

	return prefix + styledName + strings.Repeat(" ", padding) + styledStatus
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatRename renders "old → new" with both paths styled as nouns.
func FormatRename(oldPath, newPath string) string {
	return fmt.Sprintf("%s %s %s", StyleNoun.Render(oldPath), StyleDim.Render("→"), StyleNoun.Render(newPath))
}
