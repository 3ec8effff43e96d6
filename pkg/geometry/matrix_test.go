package geometry

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func pointsClose(x1, y1, x2, y2 float64) bool {
	return math.Abs(x1-x2) < epsilon && math.Abs(y1-y2) < epsilon
}

func TestMatrixIdentity(t *testing.T) {
	x, y := Identity().Apply(13.5, -7.25)
	if !pointsClose(x, y, 13.5, -7.25) {
		t.Errorf("Identity moved point to (%v, %v)", x, y)
	}
}

func TestMatrixTranslate(t *testing.T) {
	x, y := Translate(30, 15).Apply(10, 10)
	if !pointsClose(x, y, 40, 25) {
		t.Errorf("Translate(30,15) applied to (10,10) = (%v, %v), want (40, 25)", x, y)
	}
}

func TestMatrixScale(t *testing.T) {
	x, y := Scale(2, 0.5).Apply(10, 10)
	if !pointsClose(x, y, 20, 5) {
		t.Errorf("Scale(2,0.5) applied to (10,10) = (%v, %v), want (20, 5)", x, y)
	}
}

func TestMatrixRotateQuarterTurn(t *testing.T) {
	// y-down coordinates: +90 degrees sends +x to +y (clockwise on screen).
	x, y := Rotate(math.Pi / 2).Apply(1, 0)
	if !pointsClose(x, y, 0, 1) {
		t.Errorf("Rotate(90deg) applied to (1,0) = (%v, %v), want (0, 1)", x, y)
	}
}

func TestMatrixMulOrder(t *testing.T) {
	// Mul applies the right-hand matrix first.
	m := Translate(100, 0).Mul(Scale(2, 2))
	x, y := m.Apply(5, 5)
	if !pointsClose(x, y, 110, 10) {
		t.Errorf("Translate*Scale applied to (5,5) = (%v, %v), want (110, 10)", x, y)
	}
}

func TestLayerTransformIdentity(t *testing.T) {
	// Unrotated, unscaled layer whose effective size equals the natural
	// size: the transform must be the identity so export reproduces the
	// source exactly.
	natural := Size{W: 200, H: 100}
	m := LayerTransform(Point{X: 100, Y: 50}, natural, 0, natural)

	for _, p := range []Point{{0, 0}, {200, 0}, {0, 100}, {137, 42}} {
		x, y := m.Apply(p.X, p.Y)
		if !pointsClose(x, y, p.X, p.Y) {
			t.Errorf("identity layer transform moved (%v, %v) to (%v, %v)", p.X, p.Y, x, y)
		}
	}
}

func TestLayerTransformCentersSource(t *testing.T) {
	// The source center must land on the layer center for any rotation.
	natural := Size{W: 64, H: 64}
	for _, deg := range []float64{0, 30, 90, 215} {
		m := LayerTransform(Point{X: 300, Y: 120}, Size{W: 128, H: 128}, deg, natural)
		x, y := m.Apply(32, 32)
		if !pointsClose(x, y, 300, 120) {
			t.Errorf("rotation %v: source center mapped to (%v, %v), want (300, 120)", deg, x, y)
		}
	}
}

func TestLayerTransformRotatesAroundCenter(t *testing.T) {
	natural := Size{W: 100, H: 100}
	m := LayerTransform(Point{X: 50, Y: 50}, natural, 90, natural)

	// Top-left source corner swings to the top-right under a quarter turn.
	x, y := m.Apply(0, 0)
	if !pointsClose(x, y, 100, 0) {
		t.Errorf("corner mapped to (%v, %v), want (100, 0)", x, y)
	}
}
