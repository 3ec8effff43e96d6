package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/inkpose/inkpose/internal/core/domain"
	"github.com/inkpose/inkpose/pkg/geometry"
	"github.com/inkpose/inkpose/pkg/ui"
)

// studioPalette cycles through distinct layer colors on the canvas
var studioPalette = []lipgloss.Color{
	lipgloss.Color("2"), // green
	lipgloss.Color("4"), // blue
	lipgloss.Color("1"), // red
	lipgloss.Color("3"), // yellow
	lipgloss.Color("5"), // magenta
	lipgloss.Color("6"), // cyan
}

// canvasCellRune is one cell of the rendered canvas grid.
type canvasCellRune struct {
	ch    rune
	color lipgloss.Color
	dim   bool
}

func (m studioModel) View() string {
	if !m.ready {
		return "\n  Loading studio..."
	}

	switch m.mode {
	case studioModeHelp:
		return m.viewHelp()
	case studioModeConfirmDelete:
		return m.viewConfirmDelete()
	case studioModePicker:
		return m.viewPicker()
	default:
		return m.viewCanvas()
	}
}

func (m studioModel) viewCanvas() string {
	var s strings.Builder

	// Header
	s.WriteString(m.renderHeader())
	s.WriteString("\n\n")

	// Canvas and sidebar side by side
	canvasContent := m.renderCanvasGrid()
	sidebarContent := m.renderSidebar()

	canvasLines := strings.Split(canvasContent, "\n")
	sidebarLines := strings.Split(sidebarContent, "\n")

	maxLines := len(canvasLines)
	if len(sidebarLines) > maxLines {
		maxLines = len(sidebarLines)
	}

	canvasWidth := m.canvasCols() + 2
	for i := 0; i < maxLines; i++ {
		var canvasLine, sidebarLine string
		if i < len(canvasLines) {
			canvasLine = canvasLines[i]
		}
		if i < len(sidebarLines) {
			sidebarLine = sidebarLines[i]
		}

		pad := canvasWidth - lipgloss.Width(canvasLine)
		if pad > 0 {
			canvasLine += strings.Repeat(" ", pad)
		}

		s.WriteString(canvasLine)
		s.WriteString("  ")
		s.WriteString(sidebarLine)
		s.WriteString("\n")
	}

	// Footer
	s.WriteString("\n")
	s.WriteString(m.renderFooter())

	return s.String()
}

func (m studioModel) renderHeader() string {
	title := ui.StyleTitle.Render(fmt.Sprintf("%s Inkpose Studio", ui.IconInk))
	info := ui.StyleMuted.Render(fmt.Sprintf("  %s  %.0fx%.0f", m.baseName, m.canvas.W, m.canvas.H))
	return " " + title + info
}

// canvasCols returns the cell width of the canvas area.
func (m studioModel) canvasCols() int {
	if m.cellScale <= 0 {
		return 1
	}
	cols := int(m.canvas.W/m.cellScale) + 1
	if cols < 1 {
		cols = 1
	}
	return cols
}

func (m studioModel) canvasRows() int {
	if m.cellScale <= 0 {
		return 1
	}
	rows := int(m.canvas.H/(m.cellScale*2)) + 1
	if rows < 1 {
		rows = 1
	}
	return rows
}

// renderCanvasGrid rasterizes the board schematically into terminal cells.
// Layers paint in insertion order so overlaps match what export produces.
func (m studioModel) renderCanvasGrid() string {
	cols := m.canvasCols()
	rows := m.canvasRows()

	grid := make([][]canvasCellRune, rows)
	for y := range grid {
		grid[y] = make([]canvasCellRune, cols)
		for x := range grid[y] {
			grid[y][x] = canvasCellRune{ch: '·', color: "8", dim: true}
		}
	}

	selected, hasSelection := m.board.Selected()

	for i, layer := range m.board.Layers() {
		color := studioPalette[i%len(studioPalette)]
		isSelected := hasSelection && layer.ID == selected.ID
		m.paintLayer(grid, layer, color, isSelected)
	}

	// Render row by row
	var s strings.Builder
	border := ui.StyleMuted.Render(strings.Repeat("─", cols))
	s.WriteString(" " + border + "\n")
	for y := 0; y < rows; y++ {
		s.WriteString(ui.StyleMuted.Render("│"))
		var run strings.Builder
		var runStyle lipgloss.Style
		runActive := false

		flush := func() {
			if runActive {
				s.WriteString(runStyle.Render(run.String()))
				run.Reset()
				runActive = false
			}
		}

		for x := 0; x < cols; x++ {
			cell := grid[y][x]
			style := lipgloss.NewStyle().Foreground(cell.color)
			if cell.dim {
				style = style.Faint(true)
			}
			if runActive && !styleEqual(runStyle, style) {
				flush()
			}
			runStyle = style
			runActive = true
			run.WriteRune(cell.ch)
		}
		flush()
		s.WriteString(ui.StyleMuted.Render("│"))
		s.WriteString("\n")
	}
	s.WriteString(" " + border)

	return s.String()
}

func styleEqual(a, b lipgloss.Style) bool {
	return a.GetForeground() == b.GetForeground() && a.GetFaint() == b.GetFaint()
}

// paintLayer fills the layer's unrotated footprint into the grid. The
// selected layer gets a solid border plus its scale and rotate handles.
func (m studioModel) paintLayer(grid [][]canvasCellRune, layer domain.Layer, color lipgloss.Color, isSelected bool) {
	fp := layer.Footprint()

	x0, y0 := m.gridCell(fp.Pos)
	x1, y1 := m.gridCell(geometry.Point{X: fp.Pos.X + fp.Size.W, Y: fp.Pos.Y + fp.Size.H})

	rows := len(grid)
	if rows == 0 {
		return
	}
	cols := len(grid[0])

	body := '░'
	edge := '▒'
	if layer.Fixed {
		body = '▓'
	}
	if isSelected {
		edge = '█'
	}

	for y := y0; y <= y1; y++ {
		if y < 0 || y >= rows {
			continue
		}
		for x := x0; x <= x1; x++ {
			if x < 0 || x >= cols {
				continue
			}
			ch := body
			if x == x0 || x == x1 || y == y0 || y == y1 {
				ch = edge
			}
			grid[y][x] = canvasCellRune{ch: ch, color: color, dim: layer.Fixed}
		}
	}

	// Handles only appear on the selection
	if isSelected && !layer.Fixed {
		if y1 >= 0 && y1 < rows && x1 >= 0 && x1 < cols {
			grid[y1][x1] = canvasCellRune{ch: '◢', color: color}
		}
		rotX := (x0 + x1) / 2
		rotY := y0 - 1
		if rotY >= 0 && rotY < rows && rotX >= 0 && rotX < cols {
			grid[rotY][rotX] = canvasCellRune{ch: '●', color: color}
		}
	}

	// Label inside the top edge
	label := layer.AssetID
	if layer.Fixed {
		label = "✔ " + label
	}
	ly := y0
	lx := x0 + 1
	for _, r := range label {
		if lx >= x1 || lx >= cols || ly < 0 || ly >= rows {
			break
		}
		if lx >= 0 {
			grid[ly][lx] = canvasCellRune{ch: r, color: color}
		}
		lx++
	}
}

func (m studioModel) renderSidebar() string {
	var s strings.Builder

	s.WriteString(ui.StyleHeader.Render("Placements"))
	s.WriteString("\n")

	layers := m.board.Layers()
	if len(layers) == 0 {
		s.WriteString(ui.StyleMuted.Render("  (none - press 'a' to add)"))
		s.WriteString("\n")
	}

	selected, hasSelection := m.board.Selected()
	for i, l := range layers {
		cursor := "  "
		if hasSelection && l.ID == selected.ID {
			cursor = ui.StyleAccent.Render("> ")
		}
		name := l.AssetID
		if l.Fixed {
			name = ui.StyleMuted.Render(name + " ✔")
		}
		s.WriteString(fmt.Sprintf("%s%d. %s\n", cursor, i+1, name))
	}

	s.WriteString("\n")

	// Properties of the selection
	if hasSelection {
		s.WriteString(ui.StyleHeader.Render("Selected"))
		s.WriteString("\n")
		s.WriteString(renderProp("Position", fmt.Sprintf("%.0f, %.0f", selected.Position.X, selected.Position.Y)))
		s.WriteString(renderProp("Scale", fmt.Sprintf("%.2f", selected.Scale)))
		s.WriteString(renderProp("Rotation", fmt.Sprintf("%.1f°", selected.Rotation)))
		s.WriteString(renderProp("Brightness", fmt.Sprintf("%.0f%%", selected.Brightness)))
		s.WriteString(renderProp("Contrast", fmt.Sprintf("%.0f%%", selected.Contrast)))

		size := selected.EffectiveSize()
		s.WriteString(renderProp("Size", fmt.Sprintf("%.0fx%.0f", size.W, size.H)))
	}

	if m.session.Dragging() {
		s.WriteString("\n")
		s.WriteString(ui.StyleAccent.Render("⇄ " + m.session.Mode().String()))
		s.WriteString("\n")
	}

	// Fixed count matters because only fixed placements export
	fixed := len(m.board.FixedLayers())
	s.WriteString("\n")
	s.WriteString(ui.StyleMuted.Render(fmt.Sprintf("%d fixed for export", fixed)))
	s.WriteString("\n")

	return s.String()
}

func renderProp(name, value string) string {
	return fmt.Sprintf("  %s %s\n",
		ui.StyleMuted.Render(fmt.Sprintf("%-11s", name+":")),
		ui.StyleBold.Render(value))
}

func (m studioModel) renderFooter() string {
	var s strings.Builder

	if m.message != "" && time.Now().Before(m.messageExpiry) {
		s.WriteString(" " + m.messageStyle.Render(m.message))
		s.WriteString("\n")
	}

	s.WriteString(" " + m.help.ShortHelpView(m.keys.ShortHelp()))
	return s.String()
}

func (m studioModel) viewPicker() string {
	var s strings.Builder

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorAccent).
		Padding(1, 2).
		Width(56)

	titleStyle := lipgloss.NewStyle().
		Foreground(ui.ColorPrimary).
		Bold(true)

	s.WriteString(titleStyle.Render("Add a design"))
	s.WriteString("\n\n")

	// Keep the cursor visible in a window of rows
	visible := m.height - 12
	if visible < 3 {
		visible = 3
	}
	offset := m.pickerOffset
	if m.pickerCursor < offset {
		offset = m.pickerCursor
	}
	if m.pickerCursor >= offset+visible {
		offset = m.pickerCursor - visible + 1
	}

	end := offset + visible
	if end > len(m.assets) {
		end = len(m.assets)
	}

	for i := offset; i < end; i++ {
		a := m.assets[i]
		line := fmt.Sprintf("%s  %s", a.Filename, ui.StyleMuted.Render(fmt.Sprintf("%dx%d", a.Width, a.Height)))
		if i == m.pickerCursor {
			s.WriteString(ui.StyleAccent.Render("> ") + ui.StyleBold.Render(line))
		} else {
			s.WriteString("  " + line)
		}
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(ui.StyleMuted.Render("enter: place at center  esc: cancel"))

	box := boxStyle.Render(s.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m studioModel) viewHelp() string {
	var s strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorPrimary).
		Padding(1, 2)

	sectionStyle := lipgloss.NewStyle().
		Foreground(ui.ColorAccent).
		Bold(true).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(ui.ColorSuccess).
		Bold(true).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(ui.ColorDefault)

	s.WriteString(titleStyle.Render("Inkpose Studio - Keyboard Shortcuts"))
	s.WriteString("\n\n")

	sections := []struct {
		title string
		keys  []struct{ key, desc string }
	}{
		{
			title: "Mouse",
			keys: []struct{ key, desc string }{
				{"drag body", "Move placement"},
				{"drag ◢", "Scale (bottom-right corner)"},
				{"drag ●", "Rotate (above top edge)"},
				{"click", "Select placement"},
			},
		},
		{
			title: "Placement",
			keys: []struct{ key, desc string }{
				{"a", "Add a design from the catalog"},
				{"Tab", "Cycle selection"},
				{"f", "Fix placement (permanent, exports)"},
				{"d", "Delete placement (with confirmation)"},
			},
		},
		{
			title: "Adjust",
			keys: []struct{ key, desc string }{
				{"←↓↑→ / hjkl", "Nudge position"},
				{"+ / -", "Scale up / down"},
				{"r / R", "Rotate counter/clockwise 5°"},
				{"b / B", "Brightness down / up"},
				{"c / C", "Contrast down / up"},
			},
		},
		{
			title: "General",
			keys: []struct{ key, desc string }{
				{"x", "Export fixed placements to PNG"},
				{"?", "Show this help"},
				{"q", "Quit studio"},
				{"Ctrl+C", "Force quit"},
			},
		},
	}

	for _, section := range sections {
		s.WriteString(sectionStyle.Render(section.title))
		s.WriteString("\n")
		for _, binding := range section.keys {
			s.WriteString("  ")
			s.WriteString(keyStyle.Render(binding.key))
			s.WriteString(descStyle.Render(binding.desc))
			s.WriteString("\n")
		}
	}

	s.WriteString("\n")
	s.WriteString(ui.StyleMuted.Render("  Press ESC or ? to return to the canvas"))
	s.WriteString("\n")

	return s.String()
}

func (m studioModel) viewConfirmDelete() string {
	layer, ok := m.board.Get(m.deleteTarget)
	if !ok {
		return ""
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorWarning).
		Padding(1, 2).
		Width(60).
		Align(lipgloss.Center)

	titleStyle := lipgloss.NewStyle().
		Foreground(ui.ColorWarning).
		Bold(true)

	nameStyle := lipgloss.NewStyle().
		Foreground(ui.ColorPrimary).
		Bold(true)

	promptStyle := lipgloss.NewStyle().
		Foreground(ui.ColorDefault).
		MarginTop(1)

	content := fmt.Sprintf("%s\n\n%s\n%s\n\n%s",
		titleStyle.Render("Delete Placement?"),
		nameStyle.Render(layer.AssetID),
		ui.StyleMuted.Render(fmt.Sprintf("at %.0f, %.0f", layer.Position.X, layer.Position.Y)),
		promptStyle.Render("Press 'y' to confirm, 'n' or ESC to cancel"),
	)

	box := boxStyle.Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
