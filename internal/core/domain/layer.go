package domain

import (
	"github.com/google/uuid"

	"github.com/inkpose/inkpose/pkg/geometry"
)

// Layer is a placed instance of an asset on the board. Geometry and
// color fields stay mutable until the layer is fixed; after that the
// board rejects every mutation and the layer only participates in
// rendering and export.
type Layer struct {
	ID         string
	AssetID    string
	SourceFile string // absolute path of the decoded source image

	Position   geometry.Point // top-left anchor, canvas coordinates
	BaseSize   geometry.Size  // unscaled footprint, set once at placement
	Scale      float64
	Rotation   float64 // degrees, kept in [0, 360)
	Brightness float64 // percent, 100 = unchanged
	Contrast   float64 // percent, 100 = unchanged
	Fixed      bool
}

// NewLayerID generates a unique layer identifier.
func NewLayerID() string {
	return uuid.NewString()
}

// EffectiveSize returns the base footprint multiplied by the current scale.
func (l Layer) EffectiveSize() geometry.Size {
	return geometry.Scaled(l.BaseSize, l.Scale)
}

// Center returns the geometric center of the rendered bounding box; it is
// the pivot for rotation and the reference for the rotate handle.
func (l Layer) Center() geometry.Point {
	return geometry.CenterOf(l.Position, l.EffectiveSize())
}

// Footprint returns the layer's unrotated, axis-aligned effective
// rectangle. Export bounding boxes are unions of these, so rotated
// corners can extend past them.
func (l Layer) Footprint() geometry.Rect {
	return geometry.Rect{Pos: l.Position, Size: l.EffectiveSize()}
}

// Filter returns the layer's color adjustment.
func (l Layer) Filter() geometry.Filter {
	return geometry.Filter{Brightness: l.Brightness, Contrast: l.Contrast}
}

// LayerPatch is a partial update to a layer. Nil fields are left
// untouched when the patch is applied.
type LayerPatch struct {
	Position   *geometry.Point
	Scale      *float64
	Rotation   *float64
	Brightness *float64
	Contrast   *float64
}

// IsZero reports whether the patch carries no changes at all.
func (p LayerPatch) IsZero() bool {
	return p.Position == nil && p.Scale == nil && p.Rotation == nil &&
		p.Brightness == nil && p.Contrast == nil
}

// Apply merges the patch onto a layer, normalizing rotation into
// [0, 360) and clamping scale to its lower bound.
func (p LayerPatch) Apply(l Layer) Layer {
	if p.Position != nil {
		l.Position = *p.Position
	}
	if p.Scale != nil {
		l.Scale = geometry.ClampScale(*p.Scale)
	}
	if p.Rotation != nil {
		l.Rotation = geometry.NormalizeDegrees(*p.Rotation)
	}
	if p.Brightness != nil {
		l.Brightness = *p.Brightness
	}
	if p.Contrast != nil {
		l.Contrast = *p.Contrast
	}
	return l
}
