package domain

import (
	"testing"

	"github.com/inkpose/inkpose/pkg/geometry"
)

func testLayer() Layer {
	return Layer{
		ID:         NewLayerID(),
		AssetID:    "rose",
		Position:   geometry.Point{X: 10, Y: 20},
		BaseSize:   geometry.Size{W: 150, H: 75},
		Scale:      1,
		Rotation:   0,
		Brightness: 100,
		Contrast:   100,
	}
}

func TestNewLayerIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewLayerID()
		if id == "" {
			t.Fatal("empty layer id")
		}
		if seen[id] {
			t.Fatalf("duplicate layer id %q", id)
		}
		seen[id] = true
	}
}

func TestLayerEffectiveSizeAndCenter(t *testing.T) {
	l := testLayer()
	l.Scale = 2

	size := l.EffectiveSize()
	if size.W != 300 || size.H != 150 {
		t.Errorf("EffectiveSize = %+v, want 300x150", size)
	}

	center := l.Center()
	if center.X != 160 || center.Y != 95 {
		t.Errorf("Center = %+v, want (160, 95)", center)
	}
}

func TestLayerPatchApply(t *testing.T) {
	l := testLayer()

	pos := geometry.Point{X: 40, Y: 25}
	scale := 0.02
	rotation := 450.0
	patched := LayerPatch{Position: &pos, Scale: &scale, Rotation: &rotation}.Apply(l)

	if patched.Position != pos {
		t.Errorf("Position = %+v, want %+v", patched.Position, pos)
	}
	if patched.Scale != geometry.MinScale {
		t.Errorf("Scale = %v, want clamped to %v", patched.Scale, geometry.MinScale)
	}
	if patched.Rotation != 90 {
		t.Errorf("Rotation = %v, want normalized to 90", patched.Rotation)
	}
	// Untouched fields survive.
	if patched.Brightness != 100 || patched.Contrast != 100 {
		t.Errorf("filter fields changed: %+v", patched)
	}
}

func TestLayerPatchEmptyIsIdentity(t *testing.T) {
	l := testLayer()
	patched := LayerPatch{}.Apply(l)
	if patched != l {
		t.Errorf("empty patch changed layer: %+v vs %+v", patched, l)
	}
	if !(LayerPatch{}).IsZero() {
		t.Error("empty patch not reported as zero")
	}
}

func TestAssetAspectRatio(t *testing.T) {
	a := Asset{Width: 200, Height: 100}
	if a.AspectRatio() != 2 {
		t.Errorf("AspectRatio = %v, want 2", a.AspectRatio())
	}

	degenerate := Asset{Width: 200}
	if degenerate.AspectRatio() != 1 {
		t.Errorf("zero-height aspect = %v, want 1", degenerate.AspectRatio())
	}
}
