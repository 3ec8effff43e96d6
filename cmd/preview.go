package cmd

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/inkpose/inkpose/internal/core/domain"
	"github.com/inkpose/inkpose/internal/core/services"
	"github.com/inkpose/inkpose/pkg/geometry"
	"github.com/inkpose/inkpose/pkg/ui"
)

var previewLayers []string

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview a scripted composition in the terminal",
	Long: `Render a schematic view of a composition without exporting it.

Takes the same --layer flags as 'inkpose compose' and draws each
placement's footprint as a colored box, so you can check positions and
overlaps before flattening.

Navigation:
  ←↓↑→ or hjkl  - Pan
  + / -         - Zoom in / out
  0             - Reset view
  q or Esc      - Quit`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringArrayVarP(&previewLayers, "layer", "l", nil, "Placement spec (repeatable)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	if len(previewLayers) == 0 {
		return fmt.Errorf("no layers given: pass at least one --layer flag")
	}

	board := services.NewBoard()
	for _, spec := range previewLayers {
		ls, err := parseLayerSpec(spec)
		if err != nil {
			return err
		}
		layer, err := placementService.Execute(ctx, board, services.PlaceRequest{
			AssetRef: ls.ref,
			Drop:     geometry.Point{X: ls.x, Y: ls.y},
		})
		if err != nil {
			return fmt.Errorf("failed to place %q: %w", ls.ref, err)
		}
		if patch := ls.patch(); !patch.IsZero() {
			board.UpdateLayer(layer.ID, patch)
		}
	}

	view, err := newSceneView(board)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to initialize terminal view"))
		return err
	}

	return view.Run()
}

// layerPalette cycles through distinct colors for the scene boxes
var layerPalette = []tcell.Color{
	tcell.ColorGreen,
	tcell.ColorBlue,
	tcell.ColorRed,
	tcell.ColorYellow,
	tcell.ColorFuchsia,
	tcell.ColorAqua,
}

// SceneView renders layer footprints schematically in terminal cells.
type SceneView struct {
	board  *services.Board
	screen tcell.Screen
	width  int
	height int

	// View transform: canvas point at the top-left cell, and canvas
	// pixels per cell column. Rows cover twice that because terminal
	// cells are roughly twice as tall as they are wide.
	originX float64
	originY float64
	zoom    float64
}

// NewSceneView creates a scene viewer over the board.
func newSceneView(board *services.Board) (*SceneView, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}

	if err := screen.Init(); err != nil {
		return nil, err
	}

	width, height := screen.Size()

	v := &SceneView{
		board:  board,
		screen: screen,
		width:  width,
		height: height,
	}
	v.resetView()
	return v, nil
}

// Run starts the interactive viewer
func (v *SceneView) Run() error {
	defer v.screen.Fini()

	v.screen.Clear()
	v.render()

	for {
		ev := v.screen.PollEvent()

		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.width, v.height = ev.Size()
			v.screen.Sync()
			v.render()

		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				return nil
			}

			v.handleKeyPress(ev)
			v.render()
		}
	}
}

// handleKeyPress processes keyboard input
func (v *SceneView) handleKeyPress(ev *tcell.EventKey) {
	panStep := 8 * v.zoom

	switch ev.Key() {
	case tcell.KeyUp:
		v.originY -= panStep
	case tcell.KeyDown:
		v.originY += panStep
	case tcell.KeyLeft:
		v.originX -= panStep
	case tcell.KeyRight:
		v.originX += panStep
	}

	// Vim-style navigation
	switch ev.Rune() {
	case 'k':
		v.originY -= panStep
	case 'j':
		v.originY += panStep
	case 'h':
		v.originX -= panStep
	case 'l':
		v.originX += panStep
	case '+', '=':
		v.zoom /= 1.25
	case '-':
		v.zoom *= 1.25
	case '0':
		v.resetView()
	}

	if v.zoom < 0.1 {
		v.zoom = 0.1
	}
}

// resetView frames the union of all footprints with a small margin.
func (v *SceneView) resetView() {
	layers := v.board.Layers()
	if len(layers) == 0 || v.width == 0 {
		v.originX, v.originY, v.zoom = 0, 0, 1
		return
	}

	bounds := layers[0].Footprint()
	for _, l := range layers[1:] {
		bounds = bounds.Union(l.Footprint())
	}

	usableRows := v.height - 2 // status line
	if usableRows < 1 {
		usableRows = 1
	}

	zoomX := bounds.Size.W / float64(v.width)
	zoomY := bounds.Size.H / float64(usableRows*2)
	v.zoom = zoomX
	if zoomY > v.zoom {
		v.zoom = zoomY
	}
	v.zoom *= 1.1
	if v.zoom <= 0 {
		v.zoom = 1
	}

	// Center the composition
	v.originX = bounds.Pos.X + bounds.Size.W/2 - float64(v.width)/2*v.zoom
	v.originY = bounds.Pos.Y + bounds.Size.H/2 - float64(usableRows)*v.zoom
}

// cellFor maps a canvas point to a cell coordinate.
func (v *SceneView) cellFor(p geometry.Point) (int, int) {
	cx := int((p.X - v.originX) / v.zoom)
	cy := int((p.Y - v.originY) / (v.zoom * 2))
	return cx, cy
}

func (v *SceneView) render() {
	v.screen.Clear()

	layers := v.board.Layers()
	for i, l := range layers {
		v.renderLayer(l, layerPalette[i%len(layerPalette)])
	}

	v.renderStatus(len(layers))
	v.screen.Show()
}

// renderLayer fills the layer's footprint and labels it.
func (v *SceneView) renderLayer(l domain.Layer, color tcell.Color) {
	fp := l.Footprint()
	x0, y0 := v.cellFor(fp.Pos)
	x1, y1 := v.cellFor(geometry.Point{X: fp.Pos.X + fp.Size.W, Y: fp.Pos.Y + fp.Size.H})

	fill := tcell.StyleDefault.Foreground(color)
	for y := y0; y <= y1; y++ {
		if y < 0 || y >= v.height-1 {
			continue
		}
		for x := x0; x <= x1; x++ {
			if x < 0 || x >= v.width {
				continue
			}
			ch := '░'
			if x == x0 || x == x1 || y == y0 || y == y1 {
				ch = '█'
			}
			v.screen.SetContent(x, y, ch, nil, fill)
		}
	}

	// Label inside the top edge, truncated to the box width
	label := l.AssetID
	if l.Rotation != 0 {
		label = fmt.Sprintf("%s %.0f°", label, l.Rotation)
	}
	labelStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(color)
	lx, ly := x0+1, y0
	for _, r := range label {
		if lx >= x1 || lx >= v.width || ly < 0 || ly >= v.height-1 {
			break
		}
		if lx >= 0 {
			v.screen.SetContent(lx, ly, r, nil, labelStyle)
		}
		lx++
	}
}

// renderStatus draws the bottom status line.
func (v *SceneView) renderStatus(count int) {
	status := fmt.Sprintf(" %d layer(s)  zoom %.2fpx/cell  [hjkl] pan  [+/-] zoom  [0] reset  [q] quit", count, v.zoom)
	style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGray)

	y := v.height - 1
	for x := 0; x < v.width; x++ {
		ch := ' '
		if x < len(status) {
			ch = rune(status[x])
		}
		v.screen.SetContent(x, y, ch, nil, style)
	}
}
