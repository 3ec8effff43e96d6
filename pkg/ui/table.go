package ui

import (
	"fmt"
	"strings"
)

// TableColumn describes one column. Width caps the column: cells longer
// than it are truncated with an ellipsis. Zero means size to content.
type TableColumn struct {
	Header string
	Width  int
	Align  string // "left", "right", "center"
}

// Table renders rows of catalog data as aligned, zebra-striped text.
type Table struct {
	Columns  []TableColumn
	Rows     [][]string
	maxWidth int
}

// NewTable creates a new table with specified columns
func NewTable(columns []TableColumn) *Table {
	return &Table{Columns: columns}
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells []string) {
	t.Rows = append(t.Rows, cells)
}

// SetMaxWidth caps the total rendered width. Columns shrink
// proportionally, widest first, until the table fits. Zero disables the
// cap.
func (t *Table) SetMaxWidth(width int) {
	t.maxWidth = width
}

// Render renders the table as a string
func (t *Table) Render() string {
	if len(t.Columns) == 0 {
		return ""
	}

	widths := t.columnWidths()

	var b strings.Builder

	// Header
	parts := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		parts[i] = fitCell(col.Header, widths[i], "left")
	}
	b.WriteString(StyleTableHeader.Render(strings.Join(parts, "  ")))
	b.WriteString("\n")

	// Separator
	for i := range parts {
		parts[i] = strings.Repeat("─", widths[i])
	}
	b.WriteString(StyleTableBorder.Render(strings.Join(parts, "  ")))
	b.WriteString("\n")

	// Rows, zebra-striped
	for idx, row := range t.Rows {
		for i := range t.Columns {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			align := t.Columns[i].Align
			if align == "" {
				align = "left"
			}
			parts[i] = fitCell(cell, widths[i], align)
		}

		style := StyleTableRow
		if idx%2 == 1 {
			style = StyleTableRowAlt
		}
		b.WriteString(style.Render(strings.Join(parts, "  ")))
		b.WriteString("\n")
	}

	return b.String()
}

// columnWidths sizes each column to its content, capped per column and
// then shrunk to the overall budget when one is set.
func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.Columns))

	for i, col := range t.Columns {
		widths[i] = len([]rune(col.Header))
		for _, row := range t.Rows {
			if i < len(row) {
				if n := len([]rune(row[i])); n > widths[i] {
					widths[i] = n
				}
			}
		}
		if col.Width > 0 && widths[i] > col.Width {
			widths[i] = col.Width
		}
	}

	if t.maxWidth <= 0 {
		return widths
	}

	// Shrink the widest column until the table fits or nothing can give.
	const minColumn = 4
	gaps := 2 * (len(widths) - 1)
	for {
		total := gaps
		for _, w := range widths {
			total += w
		}
		if total <= t.maxWidth {
			break
		}

		widest := 0
		for i := range widths {
			if widths[i] > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= minColumn {
			break
		}
		widths[widest]--
	}

	return widths
}

// fitCell truncates or pads a cell to exactly width runes.
func fitCell(s string, width int, align string) string {
	runes := []rune(s)
	if len(runes) > width {
		if width <= 1 {
			return string(runes[:width])
		}
		return string(runes[:width-1]) + "…"
	}

	pad := width - len(runes)
	switch align {
	case "right":
		return strings.Repeat(" ", pad) + s
	case "center":
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return s + strings.Repeat(" ", pad)
	}
}

// RenderKeyValue renders a key-value pair
func RenderKeyValue(key, value string) string {
	return fmt.Sprintf("%s: %s",
		StyleAccent.Render(key),
		value,
	)
}
