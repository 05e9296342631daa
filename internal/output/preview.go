package output

import (
	"fmt"
	"strings"
)

// FormatLinePreview renders one changed line as a two-line removal/addition
// pair. Both sides are trimmed of surrounding whitespace.
//
//	path:12
//	- before
//	+ after
func FormatLinePreview(path string, line int, before, after string) string {
	var sb strings.Builder
	sb.WriteString(StyleNoun.Render(path))
	sb.WriteString(StyleDim.Render(fmt.Sprintf(":%d", line)))
	sb.WriteString("\n")
	sb.WriteString(GetStyles().Error.Render("- " + strings.TrimSpace(before)))
	sb.WriteString("\n")
	sb.WriteString(GetStyles().Success.Render("+ " + strings.TrimSpace(after)))
	return sb.String()
}

// FormatFieldChange renders `Field: "old" → "new"`.
func FormatFieldChange(field, before, after string) string {
	return fmt.Sprintf("%s: %q %s %q", field, before, StyleDim.Render("→"), after)
}
