package services

import (
	"math"

	"github.com/inkpose/inkpose/pkg/geometry"
)

// Mode is the kind of direct manipulation an interaction performs.
type Mode int

const (
	// ModeMove drags the layer body.
	ModeMove Mode = iota

	// ModeScale drags the bottom-right handle.
	ModeScale

	// ModeRotate drags the top-center handle.
	ModeRotate
)

func (m Mode) String() string {
	switch m {
	case ModeScale:
		return "scale"
	case ModeRotate:
		return "rotate"
	default:
		return "move"
	}
}

// ModeForRegion maps a hit-test region to the manipulation it starts.
func ModeForRegion(r geometry.Region) (Mode, bool) {
	switch r {
	case geometry.RegionBody:
		return ModeMove, true
	case geometry.RegionScale:
		return ModeScale, true
	case geometry.RegionRotate:
		return ModeRotate, true
	default:
		return ModeMove, false
	}
}

// anchor is the snapshot taken at pointer-down. Every later pointer-move
// computes its delta against this snapshot, never against the previous
// event, so repeated small moves cannot accumulate rounding drift. The
// anchor lives only inside the session and is discarded at pointer-up;
// it is never stored on the layer.
type anchor struct {
	pointer  geometry.Point // pointer position at the start
	position geometry.Point // layer top-left at the start
	baseSize geometry.Size  // unscaled footprint at the start
	scale    float64
	rotation float64
	center   geometry.Point // layer center at the start, canvas coordinates
}

// Session is the interaction controller: a state machine that is either
// idle or dragging exactly one non-fixed layer. Pointer events arrive as
// discrete messages in delivery order; each move emits exactly one
// geometry update to the board.
type Session struct {
	board       *Board
	sensitivity float64 // scale drag divisor, pixels per 1.0 of scale

	dragging bool
	mode     Mode
	layerID  string
	anchor   anchor
}

// NewSession creates a controller bound to a board. sensitivity is the
// pixel distance a scale drag must cover to change scale by 1.0; values
// <= 0 fall back to 100.
func NewSession(board *Board, sensitivity float64) *Session {
	if sensitivity <= 0 {
		sensitivity = 100
	}
	return &Session{board: board, sensitivity: sensitivity}
}

// Dragging reports whether an interaction is in flight.
func (s *Session) Dragging() bool {
	return s.dragging
}

// Mode returns the active manipulation mode; meaningful only while dragging.
func (s *Session) Mode() Mode {
	return s.mode
}

// LayerID returns the id of the layer being dragged, or "".
func (s *Session) LayerID() string {
	if !s.dragging {
		return ""
	}
	return s.layerID
}

// PointerDown starts an interaction on the identified layer. The layer
// becomes the sole selection and its state is snapshotted as the anchor.
// Fixed layers and unknown ids leave the session idle. A pointer-down
// while already dragging is ignored; the active session wins.
func (s *Session) PointerDown(mode Mode, layerID string, p geometry.Point) bool {
	if s.dragging {
		return false
	}
	layer, ok := s.board.Get(layerID)
	if !ok || layer.Fixed {
		return false
	}

	s.board.Select(layerID)
	s.dragging = true
	s.mode = mode
	s.layerID = layerID
	s.anchor = anchor{
		pointer:  p,
		position: layer.Position,
		baseSize: layer.BaseSize,
		scale:    layer.Scale,
		rotation: layer.Rotation,
		center:   layer.Center(),
	}
	return true
}

// PointerMove applies one geometry update for the current pointer
// position. No-op while idle.
func (s *Session) PointerMove(p geometry.Point) {
	if !s.dragging {
		return
	}

	dx := p.X - s.anchor.pointer.X
	dy := p.Y - s.anchor.pointer.Y

	switch s.mode {
	case ModeMove:
		pos := geometry.Point{
			X: s.anchor.position.X + dx,
			Y: s.anchor.position.Y + dy,
		}
		s.board.UpdateLayer(s.layerID, layerPatchPosition(pos))

	case ModeScale:
		// Magnitude comes from the full drag distance but the sign comes
		// from horizontal displacement only; a drag whose x never passes
		// the anchor shrinks the layer no matter how far it travels.
		magnitude := math.Hypot(dx, dy) / s.sensitivity
		sign := -1.0
		if p.X > s.anchor.pointer.X {
			sign = 1.0
		}
		scale := geometry.ClampScale(s.anchor.scale + sign*magnitude)
		s.board.UpdateLayer(s.layerID, layerPatchScale(scale))

	case ModeRotate:
		// Re-express the pointer in a frame centered on the layer so the
		// handle tracks the pointer angularly wherever the layer sits.
		angle := math.Atan2(
			p.Y-s.anchor.pointer.Y-s.anchor.center.Y+s.anchor.position.Y,
			p.X-s.anchor.pointer.X-s.anchor.center.X+s.anchor.position.X,
		) * 180 / math.Pi
		rotation := geometry.NormalizeDegrees(s.anchor.rotation + angle)
		s.board.UpdateLayer(s.layerID, layerPatchRotation(rotation))
	}
}

// PointerUp ends the interaction and discards the anchor. The last
// emitted update stands; there is no commit or rollback step.
func (s *Session) PointerUp() {
	s.dragging = false
	s.layerID = ""
	s.anchor = anchor{}
}
