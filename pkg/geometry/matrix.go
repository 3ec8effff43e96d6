package geometry

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Matrix is a 2D affine transformation in row-major 2x3 form:
//
//	| A  B  C |
//	| D  E  F |
//
// which maps (x, y) to (A*x + B*y + C, D*x + E*y + F). Coordinates are
// y-down, so Rotate with a positive angle turns clockwise on screen,
// matching how rotation is presented to the user.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the no-op transformation.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translate returns a matrix that moves points by (x, y).
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Scale returns a matrix that scales by sx horizontally and sy vertically.
func Scale(sx, sy float64) Matrix {
	return Matrix{A: sx, E: sy}
}

// Rotate returns a matrix rotating by rad radians about the origin.
func Rotate(rad float64) Matrix {
	sin, cos := math.Sincos(rad)
	return Matrix{A: cos, B: -sin, D: sin, E: cos}
}

// Mul composes two transforms; the result applies n first, then m.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.B*n.D,
		B: m.A*n.B + m.B*n.E,
		C: m.A*n.C + m.B*n.F + m.C,
		D: m.D*n.A + m.E*n.D,
		E: m.D*n.B + m.E*n.E,
		F: m.D*n.C + m.E*n.F + m.F,
	}
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// Aff3 converts the matrix to the form golang.org/x/image/draw expects.
func (m Matrix) Aff3() f64.Aff3 {
	return f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
}

// LayerTransform builds the source-to-canvas matrix for a layer drawn
// centered at center with effective size, rotated by rotation degrees
// around its own center. natural is the source image's pixel size.
func LayerTransform(center Point, size Size, rotationDeg float64, natural Size) Matrix {
	m := Translate(center.X, center.Y)
	m = m.Mul(Rotate(rotationDeg * math.Pi / 180))
	m = m.Mul(Scale(size.W/natural.W, size.H/natural.H))
	return m.Mul(Translate(-natural.W/2, -natural.H/2))
}
