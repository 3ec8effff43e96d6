package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/inkpose/inkpose/internal/adapters/raster"
	"github.com/inkpose/inkpose/internal/core/domain"
	"github.com/inkpose/inkpose/internal/core/services"
	"github.com/inkpose/inkpose/pkg/geometry"
	"github.com/inkpose/inkpose/pkg/ui"
)

// studioCmd represents the studio command
var studioCmd = &cobra.Command{
	Use:   "studio [photo]",
	Short: "Launch the interactive placement editor",
	Long: `Launch a full-screen editor for arranging tattoo placements.

The canvas is a schematic view of the photo: each placement is a colored
box you drag with the mouse. Drag the body to move, the bottom-right
corner to scale, the marker above the top edge to rotate. Fix a
placement when you are happy with it; fixed placements are permanent and
take part in the export.

Keyboard Shortcuts:
  Placement:
    a           Add a design from the catalog
    Tab         Cycle selection
    f           Fix selected placement (permanent)
    d           Delete selected placement

  Adjust selected:
    ←↓↑→/hjkl   Nudge position
    + / -       Scale up / down
    r / R       Rotate counter/clockwise
    b / B       Brightness down / up
    c / C       Contrast down / up

  General:
    x           Export fixed placements to PNG
    ?           Show help
    q           Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStudio,
}

func runStudio(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	// The canvas matches the base photo when one is given
	canvas := geometry.Size{W: 800, H: 600}
	baseName := "blank canvas"
	if len(args) > 0 {
		w, h, err := imageSource.Probe(args[0])
		if err != nil {
			return fmt.Errorf("failed to read base photo: %w", err)
		}
		canvas = geometry.Size{W: float64(w), H: float64(h)}
		baseName = args[0]
	}

	assets, err := assetRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	m := newStudioModel(ctx, canvas, baseName, assets)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Dragging needs motion events between press and release
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running studio: %w", err)
	}

	return nil
}

// Studio view modes
type studioMode int

const (
	studioModeCanvas studioMode = iota
	studioModePicker
	studioModeHelp
	studioModeConfirmDelete
)

// Studio model
type studioModel struct {
	ctx      context.Context
	board    *services.Board
	session  *services.Session
	canvas   geometry.Size
	baseName string
	assets   []domain.Asset

	mode         studioMode
	pickerCursor int
	pickerOffset int

	width  int
	height int
	ready  bool

	// Canvas viewport: top-left cell of the canvas area and the
	// canvas-pixel width of one cell column. Rows cover twice that
	// because terminal cells are roughly twice as tall as wide.
	canvasTop  int
	canvasLeft int
	cellScale  float64

	message       string
	messageStyle  lipgloss.Style
	messageExpiry time.Time

	deleteTarget string // layer id pending deletion

	help help.Model
	keys studioKeyMap
}

// Key bindings
type studioKeyMap struct {
	Add        key.Binding
	Cycle      key.Binding
	Fix        key.Binding
	Delete     key.Binding
	Export     key.Binding
	ScaleUp    key.Binding
	ScaleDown  key.Binding
	RotateCCW  key.Binding
	RotateCW   key.Binding
	BrightDown key.Binding
	BrightUp   key.Binding
	ContDown   key.Binding
	ContUp     key.Binding
	Help       key.Binding
	Quit       key.Binding
	Escape     key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
}

func (k studioKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Cycle, k.Fix, k.Export, k.Help, k.Quit}
}

func (k studioKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Cycle, k.Fix, k.Delete},
		{k.ScaleUp, k.ScaleDown, k.RotateCCW, k.RotateCW},
		{k.BrightDown, k.BrightUp, k.ContDown, k.ContUp},
		{k.Export, k.Help, k.Quit},
	}
}

var studioKeys = studioKeyMap{
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add design"),
	),
	Cycle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "cycle selection"),
	),
	Fix: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "fix placement"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Export: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "export PNG"),
	),
	ScaleUp: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "scale up"),
	),
	ScaleDown: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "scale down"),
	),
	RotateCCW: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rotate ccw"),
	),
	RotateCW: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "rotate cw"),
	),
	BrightDown: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "brightness -"),
	),
	BrightUp: key.NewBinding(
		key.WithKeys("B"),
		key.WithHelp("B", "brightness +"),
	),
	ContDown: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "contrast -"),
	),
	ContUp: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "contrast +"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "N", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

func newStudioModel(ctx context.Context, canvas geometry.Size, baseName string, assets []domain.Asset) studioModel {
	board := services.NewBoard()

	return studioModel{
		ctx:      ctx,
		board:    board,
		session:  services.NewSession(board, appConfig.ScaleSensitivity),
		canvas:   canvas,
		baseName: baseName,
		assets:   assets,
		mode:     studioModeCanvas,
		help:     help.New(),
		keys:     studioKeys,
	}
}

func (m studioModel) Init() tea.Cmd {
	return nil
}

func (m studioModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.fitCanvas()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case studioModePicker:
			return m.updatePicker(msg)
		case studioModeHelp:
			return m.updateHelp(msg)
		case studioModeConfirmDelete:
			return m.updateConfirmDelete(msg)
		default:
			return m.updateCanvas(msg)
		}

	case tea.MouseMsg:
		if m.mode == studioModeCanvas {
			return m.updateMouse(msg)
		}
		return m, nil

	case studioPlacedMsg:
		m.board.AddLayer(msg.layer)
		m.board.Select(msg.layer.ID)
		status := fmt.Sprintf("Placed %s (%.0fx%.0f)", msg.name, msg.layer.BaseSize.W, msg.layer.BaseSize.H)
		return m, studioStatus(status, ui.StyleSuccess)

	case studioStatusMsg:
		m.message = msg.message
		m.messageStyle = msg.style
		m.messageExpiry = time.Now().Add(3 * time.Second)
		return m, studioClearLater()

	case studioClearMsg:
		if time.Now().After(m.messageExpiry) {
			m.message = ""
		}
		return m, nil
	}

	return m, nil
}

// fitCanvas recomputes the cell scale so the whole canvas fits the
// window next to the sidebar.
func (m *studioModel) fitCanvas() {
	const sidebarWidth = 34

	m.canvasTop = 3
	m.canvasLeft = 1

	cols := m.width - sidebarWidth - m.canvasLeft - 2
	rows := m.height - m.canvasTop - 3
	if cols < 10 {
		cols = 10
	}
	if rows < 5 {
		rows = 5
	}

	scaleX := m.canvas.W / float64(cols)
	scaleY := m.canvas.H / float64(rows*2)
	m.cellScale = scaleX
	if scaleY > m.cellScale {
		m.cellScale = scaleY
	}
	if m.cellScale <= 0 {
		m.cellScale = 1
	}
}

// canvasPoint maps a terminal cell to canvas coordinates.
func (m studioModel) canvasPoint(cellX, cellY int) geometry.Point {
	return geometry.Point{
		X: float64(cellX-m.canvasLeft) * m.cellScale,
		Y: float64(cellY-m.canvasTop) * m.cellScale * 2,
	}
}

// gridCell maps a canvas point to a cell of the canvas grid.
func (m studioModel) gridCell(p geometry.Point) (int, int) {
	return int(p.X / m.cellScale), int(p.Y / (m.cellScale * 2))
}

func (m studioModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p := m.canvasPoint(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		id, region := m.board.HitTest(p)
		if id == "" {
			m.board.Select("")
			return m, nil
		}
		mode, ok := services.ModeForRegion(region)
		if !ok {
			return m, nil
		}
		if !m.session.PointerDown(mode, id, p) {
			// Fixed placements only flash a hint, they never move again
			return m, studioStatus("Placement is fixed", ui.StyleWarning)
		}

	case tea.MouseActionMotion:
		m.session.PointerMove(p)

	case tea.MouseActionRelease:
		m.session.PointerUp()
	}

	return m, nil
}

func (m studioModel) updateCanvas(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.mode = studioModeHelp

	case key.Matches(msg, m.keys.Add):
		if len(m.assets) == 0 {
			return m, studioStatus("Catalog is empty, add designs first", ui.StyleWarning)
		}
		m.mode = studioModePicker
		m.pickerCursor = 0
		m.pickerOffset = 0

	case key.Matches(msg, m.keys.Cycle):
		m.cycleSelection()

	case key.Matches(msg, m.keys.Fix):
		if layer, ok := m.board.Selected(); ok {
			m.board.SetFixed(layer.ID)
			return m, studioStatus("Fixed "+layer.AssetID+" (permanent)", ui.StyleSuccess)
		}

	case key.Matches(msg, m.keys.Delete):
		if layer, ok := m.board.Selected(); ok {
			m.deleteTarget = layer.ID
			m.mode = studioModeConfirmDelete
		}

	case key.Matches(msg, m.keys.Export):
		return m, m.exportBoard()

	case key.Matches(msg, m.keys.ScaleUp):
		m.adjustScale(0.1)
	case key.Matches(msg, m.keys.ScaleDown):
		m.adjustScale(-0.1)
	case key.Matches(msg, m.keys.RotateCCW):
		m.adjustRotation(-5)
	case key.Matches(msg, m.keys.RotateCW):
		m.adjustRotation(5)
	case key.Matches(msg, m.keys.BrightDown):
		m.adjustFilter(-10, 0)
	case key.Matches(msg, m.keys.BrightUp):
		m.adjustFilter(10, 0)
	case key.Matches(msg, m.keys.ContDown):
		m.adjustFilter(0, -10)
	case key.Matches(msg, m.keys.ContUp):
		m.adjustFilter(0, 10)

	default:
		switch msg.String() {
		case "left", "h":
			m.nudge(-5, 0)
		case "right", "l":
			m.nudge(5, 0)
		case "up", "k":
			m.nudge(0, -5)
		case "down", "j":
			m.nudge(0, 5)
		}
	}

	return m, nil
}

// cycleSelection moves the selection to the next unfixed layer.
func (m *studioModel) cycleSelection() {
	layers := m.board.Layers()
	if len(layers) == 0 {
		return
	}

	start := 0
	if sel, ok := m.board.Selected(); ok {
		for i, l := range layers {
			if l.ID == sel.ID {
				start = i + 1
				break
			}
		}
	}

	for i := 0; i < len(layers); i++ {
		candidate := layers[(start+i)%len(layers)]
		if !candidate.Fixed {
			m.board.Select(candidate.ID)
			return
		}
	}
	m.board.Select("")
}

func (m *studioModel) nudge(dx, dy float64) {
	layer, ok := m.board.Selected()
	if !ok {
		return
	}
	pos := geometry.Point{X: layer.Position.X + dx, Y: layer.Position.Y + dy}
	m.board.UpdateLayer(layer.ID, domain.LayerPatch{Position: &pos})
}

func (m *studioModel) adjustScale(delta float64) {
	layer, ok := m.board.Selected()
	if !ok {
		return
	}
	scale := layer.Scale + delta
	if scale > appConfig.MaxScale {
		scale = appConfig.MaxScale
	}
	m.board.UpdateLayer(layer.ID, domain.LayerPatch{Scale: &scale})
}

func (m *studioModel) adjustRotation(delta float64) {
	layer, ok := m.board.Selected()
	if !ok {
		return
	}
	rot := layer.Rotation + delta
	m.board.UpdateLayer(layer.ID, domain.LayerPatch{Rotation: &rot})
}

func (m *studioModel) adjustFilter(brightDelta, contDelta float64) {
	layer, ok := m.board.Selected()
	if !ok {
		return
	}
	patch := domain.LayerPatch{}
	if brightDelta != 0 {
		v := clampPercent(layer.Brightness + brightDelta)
		patch.Brightness = &v
	}
	if contDelta != 0 {
		v := clampPercent(layer.Contrast + contDelta)
		patch.Contrast = &v
	}
	m.board.UpdateLayer(layer.ID, patch)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 200 {
		return 200
	}
	return v
}

func (m studioModel) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Quit):
		m.mode = studioModeCanvas

	case msg.String() == "up" || msg.String() == "k":
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}

	case msg.String() == "down" || msg.String() == "j":
		if m.pickerCursor < len(m.assets)-1 {
			m.pickerCursor++
		}

	case msg.Type == tea.KeyEnter:
		asset := m.assets[m.pickerCursor]
		m.mode = studioModeCanvas
		return m, m.placeAsset(asset)
	}

	return m, nil
}

func (m studioModel) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit):
		m.mode = studioModeCanvas
	}
	return m, nil
}

func (m studioModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		id := m.deleteTarget
		m.deleteTarget = ""
		m.mode = studioModeCanvas
		m.board.DeleteLayer(id)
		return m, studioStatus("Placement deleted", ui.StyleSuccess)

	case key.Matches(msg, m.keys.Cancel):
		m.deleteTarget = ""
		m.mode = studioModeCanvas
	}
	return m, nil
}

// Commands

type studioStatusMsg struct {
	message string
	style   lipgloss.Style
}

type studioClearMsg struct{}

// studioPlacedMsg carries a freshly built layer back to Update, which
// adds it to the board on the model's goroutine.
type studioPlacedMsg struct {
	layer domain.Layer
	name  string
}

func studioStatus(message string, style lipgloss.Style) tea.Cmd {
	return func() tea.Msg {
		return studioStatusMsg{message: message, style: style}
	}
}

func studioClearLater() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return studioClearMsg{}
	})
}

// placeAsset resolves the asset off the Update goroutine and hands the
// built layer back as a message. The board is single-goroutine, so the
// command never touches it; Update applies the layer when the message
// arrives.
func (m studioModel) placeAsset(asset domain.Asset) tea.Cmd {
	ctx := m.ctx
	drop := geometry.Point{X: m.canvas.W / 2, Y: m.canvas.H / 2}

	return func() tea.Msg {
		layer, err := placementService.Build(ctx, services.PlaceRequest{
			AssetRef: asset.Filename,
			Drop:     drop,
		})
		if err != nil {
			return studioStatusMsg{
				message: fmt.Sprintf("Failed to place %s: %v", asset.Filename, err),
				style:   ui.StyleError,
			}
		}
		return studioPlacedMsg{layer: *layer, name: asset.Filename}
	}
}

// exportBoard flattens the fixed placements into a PNG.
func (m studioModel) exportBoard() tea.Cmd {
	layers := m.board.Layers()
	ctx := m.ctx

	return func() tea.Msg {
		resp, err := exportService.Execute(ctx, services.ExportRequest{Layers: layers})
		if err != nil {
			return studioStatusMsg{
				message: fmt.Sprintf("Export failed: %v", err),
				style:   ui.StyleError,
			}
		}

		outPath := appStudio.GetExportPath(appConfig.ExportFileName)
		if err := raster.WritePNG(outPath, resp.Image); err != nil {
			return studioStatusMsg{
				message: fmt.Sprintf("Failed to write export: %v", err),
				style:   ui.StyleError,
			}
		}

		bounds := resp.Image.Bounds()
		return studioStatusMsg{
			message: fmt.Sprintf("Exported %dx%d PNG to %s", bounds.Dx(), bounds.Dy(), outPath),
			style:   ui.StyleSuccess,
		}
	}
}
