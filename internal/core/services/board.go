package services

import (
	"github.com/inkpose/inkpose/internal/core/domain"
	"github.com/inkpose/inkpose/pkg/geometry"
)

// Board is the layer store: the single owner of layer mutation. Layers
// keep their insertion order, which is also the draw and export order.
// All access happens from one goroutine (the event loop of whichever
// surface drives it), so the board carries no lock.
//
// Mutations referencing an unknown id are silent no-ops; a stale id
// means the caller is behind, not that the user did something wrong.
type Board struct {
	layers   []domain.Layer
	selected string // layer id, "" when nothing is selected
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{}
}

// AddLayer appends a layer to the board.
func (b *Board) AddLayer(l domain.Layer) {
	b.layers = append(b.layers, l)
}

// Len returns the number of layers on the board.
func (b *Board) Len() int {
	return len(b.layers)
}

// Layers returns a copy of all layers in insertion order.
func (b *Board) Layers() []domain.Layer {
	out := make([]domain.Layer, len(b.layers))
	copy(out, b.layers)
	return out
}

// FixedLayers returns the fixed layers in insertion order.
func (b *Board) FixedLayers() []domain.Layer {
	var out []domain.Layer
	for _, l := range b.layers {
		if l.Fixed {
			out = append(out, l)
		}
	}
	return out
}

// Get retrieves a layer by id.
func (b *Board) Get(id string) (domain.Layer, bool) {
	if i := b.indexOf(id); i >= 0 {
		return b.layers[i], true
	}
	return domain.Layer{}, false
}

// UpdateLayer merges a partial update onto the identified layer. It
// reports whether anything was applied: unknown ids and fixed layers are
// rejected here regardless of who the caller is, making this the
// enforcement point for layer immutability.
func (b *Board) UpdateLayer(id string, patch domain.LayerPatch) bool {
	i := b.indexOf(id)
	if i < 0 || b.layers[i].Fixed {
		return false
	}
	b.layers[i] = patch.Apply(b.layers[i])
	return true
}

// DeleteLayer removes the identified layer and clears the selection if
// it pointed at it.
func (b *Board) DeleteLayer(id string) {
	i := b.indexOf(id)
	if i < 0 {
		return
	}
	b.layers = append(b.layers[:i], b.layers[i+1:]...)
	if b.selected == id {
		b.selected = ""
	}
}

// SetFixed freezes the identified layer. Fixing is irreversible; the
// layer stays visible and exportable but rejects all further edits.
// Already-fixed and unknown ids are silent no-ops.
func (b *Board) SetFixed(id string) {
	i := b.indexOf(id)
	if i < 0 || b.layers[i].Fixed {
		return
	}
	b.layers[i].Fixed = true
	if b.selected == id {
		b.selected = ""
	}
}

// Select makes the identified layer the sole selection. Fixed layers
// cannot be selected. Select("") clears the selection.
func (b *Board) Select(id string) bool {
	if id == "" {
		b.selected = ""
		return true
	}
	i := b.indexOf(id)
	if i < 0 || b.layers[i].Fixed {
		return false
	}
	b.selected = id
	return true
}

// Selected returns the currently selected layer, if any.
func (b *Board) Selected() (domain.Layer, bool) {
	if b.selected == "" {
		return domain.Layer{}, false
	}
	return b.Get(b.selected)
}

// HitTest finds the topmost layer under p and which of its regions the
// point landed on. Later layers draw on top, so the scan runs back to
// front. Fixed layers are still reported; interaction guards live in the
// session.
func (b *Board) HitTest(p geometry.Point) (string, geometry.Region) {
	for i := len(b.layers) - 1; i >= 0; i-- {
		l := b.layers[i]
		if r := geometry.HitTest(l.Position, l.EffectiveSize(), p); r != geometry.RegionNone {
			return l.ID, r
		}
	}
	return "", geometry.RegionNone
}

func layerPatchPosition(p geometry.Point) domain.LayerPatch {
	return domain.LayerPatch{Position: &p}
}

func layerPatchScale(s float64) domain.LayerPatch {
	return domain.LayerPatch{Scale: &s}
}

func layerPatchRotation(r float64) domain.LayerPatch {
	return domain.LayerPatch{Rotation: &r}
}

func (b *Board) indexOf(id string) int {
	for i, l := range b.layers {
		if l.ID == id {
			return i
		}
	}
	return -1
}
