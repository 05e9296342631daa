package output

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableStyle defines the style for table output.
type TableStyle struct {
	Border      lipgloss.Border
	BorderColor lipgloss.Color
	HeaderStyle lipgloss.Style
	CellStyle   lipgloss.Style
}

// DefaultTableStyle returns the default table style.
func DefaultTableStyle() TableStyle {
	return TableStyle{
		Border:      lipgloss.NormalBorder(),
		BorderColor: ColorDimGray,
		HeaderStyle: lipgloss.NewStyle().Bold(true).Foreground(ColorCyan),
		CellStyle:   lipgloss.NewStyle(),
	}
}

// Table represents a styled table.
type Table struct {
	headers []string
	rows    [][]string
	style   TableStyle
	cell    func(row, col int, value string) lipgloss.Style
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		style:   DefaultTableStyle(),
	}
}

// Row adds a row to the table.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// SetStyle sets the table style.
func (t *Table) SetStyle(style TableStyle) *Table {
	t.style = style
	return t
}

// String renders the table as a string.
func (t *Table) String() string {
	tbl := table.New().
		Border(t.style.Border).
		BorderStyle(lipgloss.NewStyle().Foreground(t.style.BorderColor)).
		Headers(t.headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.style.HeaderStyle
			}
			if t.cell != nil && row >= 0 && row < len(t.rows) && col < len(t.rows[row]) {
				return t.cell(row, col, t.rows[row][col])
			}
			return t.style.CellStyle
		})

	for _, row := range t.rows {
		tbl.Row(row...)
	}

	return tbl.String()
}

// SummaryRow is one component line of the run summary.
type SummaryRow struct {
	Component   string
	Status      string
	Changes     int
	Renames     int
	Diagnostics int
}

// RenderSummaryTable renders the per-component run summary with the status
// column color-coded.
func RenderSummaryTable(rows []SummaryRow) string {
	t := NewTable("COMPONENT", "STATUS", "CHANGES", "RENAMES", "DIAGNOSTICS")
	for _, r := range rows {
		t.Row(r.Component, r.Status, strconv.Itoa(r.Changes), strconv.Itoa(r.Renames), strconv.Itoa(r.Diagnostics))
	}
	t.cell = func(_, col int, value string) lipgloss.Style {
		if col == 1 {
			return StatusStyle(value)
		}
		return t.style.CellStyle
	}
	return t.String()
}
