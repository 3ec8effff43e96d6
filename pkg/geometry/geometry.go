// Package geometry provides the pure placement math for the compositor:
// points, sizes, rotation normalization, scale clamping, handle hit
// regions and 2D affine matrices. It performs no I/O and holds no state,
// so every transform applied live in the studio can be reproduced
// bit-for-bit by the export engine.
package geometry

import "math"

// MinScale is the lower bound for a layer's scale multiplier.
const MinScale = 0.1

// HandleSize is the edge length, in canvas units, of the square hit
// region around each manipulation handle.
const HandleSize = 16.0

// Point is a position in canvas-local coordinates.
type Point struct {
	X float64
	Y float64
}

// Size is a width/height pair in canvas units.
type Size struct {
	W float64
	H float64
}

// Rect is an axis-aligned rectangle described by its top-left corner and size.
type Rect struct {
	Pos  Point
	Size Size
}

// Contains reports whether p lies inside the rectangle (inclusive edges).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Pos.X && p.X <= r.Pos.X+r.Size.W &&
		p.Y >= r.Pos.Y && p.Y <= r.Pos.Y+r.Size.H
}

// Union returns the smallest rectangle covering both r and other.
func (r Rect) Union(other Rect) Rect {
	minX := math.Min(r.Pos.X, other.Pos.X)
	minY := math.Min(r.Pos.Y, other.Pos.Y)
	maxX := math.Max(r.Pos.X+r.Size.W, other.Pos.X+other.Size.W)
	maxY := math.Max(r.Pos.Y+r.Size.H, other.Pos.Y+other.Size.H)
	return Rect{
		Pos:  Point{X: minX, Y: minY},
		Size: Size{W: maxX - minX, H: maxY - minY},
	}
}

// Scaled returns base multiplied uniformly by scale.
func Scaled(base Size, scale float64) Size {
	return Size{W: base.W * scale, H: base.H * scale}
}

// CenterOf returns the geometric center of a rectangle at pos with the
// given size. Rotation always pivots around this point, never the canvas
// origin.
func CenterOf(pos Point, size Size) Point {
	return Point{X: pos.X + size.W/2, Y: pos.Y + size.H/2}
}

// NormalizeDegrees wraps an arbitrary angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// ClampScale enforces the MinScale lower bound. There is no upper bound
// here; interactive surfaces apply their own ceiling.
func ClampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	return s
}

// Clamp limits v to the [lo, hi] interval.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Region identifies which part of a layer's footprint a pointer landed on.
type Region int

const (
	// RegionNone means the point is outside the layer entirely.
	RegionNone Region = iota

	// RegionBody is the layer's interior; dragging it moves the layer.
	RegionBody

	// RegionScale is the bottom-right corner handle.
	RegionScale

	// RegionRotate is the top-center handle.
	RegionRotate
)

// HitTest classifies a pointer position against a layer footprint at pos
// with the given effective size. Handles are tested before the body so
// they stay reachable on small layers. Regions are evaluated in the
// layer's unrotated frame.
func HitTest(pos Point, size Size, p Point) Region {
	if scaleHandle(pos, size).Contains(p) {
		return RegionScale
	}
	if rotateHandle(pos, size).Contains(p) {
		return RegionRotate
	}
	if (Rect{Pos: pos, Size: size}).Contains(p) {
		return RegionBody
	}
	return RegionNone
}

func scaleHandle(pos Point, size Size) Rect {
	return Rect{
		Pos: Point{
			X: pos.X + size.W - HandleSize/2,
			Y: pos.Y + size.H - HandleSize/2,
		},
		Size: Size{W: HandleSize, H: HandleSize},
	}
}

func rotateHandle(pos Point, size Size) Rect {
	return Rect{
		Pos: Point{
			X: pos.X + size.W/2 - HandleSize/2,
			Y: pos.Y - HandleSize/2,
		},
		Size: Size{W: HandleSize, H: HandleSize},
	}
}
