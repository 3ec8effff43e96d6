package ui

import (
	"strings"
	"testing"
)

func TestTableRender(t *testing.T) {
	table := NewTable([]TableColumn{
		{Header: "Name", Width: 10},
		{Header: "Size", Width: 9, Align: "right"},
	})
	table.AddRow([]string{"skull.png", "512x512"})
	table.AddRow([]string{"rose.png", "256x300"})

	out := table.Render()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4 (header, separator, 2 rows)", len(lines))
	}
	if !strings.Contains(lines[0], "Name") || !strings.Contains(lines[0], "Size") {
		t.Errorf("header line missing column names: %q", lines[0])
	}
	if !strings.Contains(lines[2], "skull.png") {
		t.Errorf("first row missing cell: %q", lines[2])
	}
}

func TestTableTruncatesLongCells(t *testing.T) {
	table := NewTable([]TableColumn{{Header: "Name", Width: 8}})
	table.AddRow([]string{"a-very-long-filename.png"})

	out := table.Render()

	if strings.Contains(out, "a-very-long-filename.png") {
		t.Error("cell longer than the column cap should be truncated")
	}
	if !strings.Contains(out, "…") {
		t.Error("truncated cell should end with an ellipsis")
	}
}

func TestTableMaxWidthShrinks(t *testing.T) {
	table := NewTable([]TableColumn{
		{Header: "Name", Width: 30},
		{Header: "Description", Width: 40},
	})
	table.AddRow([]string{strings.Repeat("n", 30), strings.Repeat("d", 40)})
	table.SetMaxWidth(40)

	out := table.Render()

	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		// Styled output may carry escape sequences in some terminals;
		// widths here are plain because tests run without a TTY profile.
		if n := len([]rune(line)); n > 40 {
			t.Errorf("line width %d exceeds cap 40: %q", n, line)
		}
	}
}

func TestFitCellAlignment(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		width int
		align string
		want  string
	}{
		{"left pad", "ab", 4, "left", "ab  "},
		{"right pad", "ab", 4, "right", "  ab"},
		{"center pad", "ab", 4, "center", " ab "},
		{"exact", "abcd", 4, "left", "abcd"},
		{"truncate", "abcdef", 4, "left", "abc…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fitCell(tt.s, tt.width, tt.align); got != tt.want {
				t.Errorf("fitCell(%q, %d, %q) = %q, want %q", tt.s, tt.width, tt.align, got, tt.want)
			}
		})
	}
}
