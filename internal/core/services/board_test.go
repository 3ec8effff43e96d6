package services

import (
	"testing"

	"github.com/inkpose/inkpose/internal/core/domain"
	"github.com/inkpose/inkpose/pkg/geometry"
)

func newTestLayer(id string, x, y float64) domain.Layer {
	return domain.Layer{
		ID:         id,
		AssetID:    "asset-" + id,
		Position:   geometry.Point{X: x, Y: y},
		BaseSize:   geometry.Size{W: 150, H: 75},
		Scale:      1,
		Rotation:   0,
		Brightness: 100,
		Contrast:   100,
	}
}

func TestBoardAddAndOrder(t *testing.T) {
	b := NewBoard()
	b.AddLayer(newTestLayer("a", 0, 0))
	b.AddLayer(newTestLayer("b", 10, 10))
	b.AddLayer(newTestLayer("c", 20, 20))

	layers := b.Layers()
	if len(layers) != 3 {
		t.Fatalf("Len = %d, want 3", len(layers))
	}
	for i, want := range []string{"a", "b", "c"} {
		if layers[i].ID != want {
			t.Errorf("layers[%d].ID = %q, want %q", i, layers[i].ID, want)
		}
	}
}

func TestBoardUpdateLayer(t *testing.T) {
	b := NewBoard()
	b.AddLayer(newTestLayer("a", 0, 0))

	scale := 2.0
	if !b.UpdateLayer("a", domain.LayerPatch{Scale: &scale}) {
		t.Fatal("update on known mutable layer rejected")
	}
	got, _ := b.Get("a")
	if got.Scale != 2 {
		t.Errorf("Scale = %v, want 2", got.Scale)
	}
	// Partial merge leaves every other field alone.
	if got.Position != (geometry.Point{}) || got.Brightness != 100 {
		t.Errorf("unrelated fields changed: %+v", got)
	}
}

func TestBoardUpdateUnknownIDIsNoop(t *testing.T) {
	b := NewBoard()
	b.AddLayer(newTestLayer("a", 0, 0))

	scale := 2.0
	if b.UpdateLayer("ghost", domain.LayerPatch{Scale: &scale}) {
		t.Error("update on unknown id reported as applied")
	}
	got, _ := b.Get("a")
	if got.Scale != 1 {
		t.Errorf("unrelated layer mutated: %+v", got)
	}
}

func TestBoardEmptyPatchIsIdentity(t *testing.T) {
	b := NewBoard()
	b.AddLayer(newTestLayer("a", 5, 6))
	before, _ := b.Get("a")

	b.UpdateLayer("a", domain.LayerPatch{})

	after, _ := b.Get("a")
	if after != before {
		t.Errorf("empty patch changed layer: %+v vs %+v", after, before)
	}
}

func TestBoardFixedLayerIsImmutable(t *testing.T) {
	b := NewBoard()
	b.AddLayer(newTestLayer("a", 5, 6))
	b.Select("a")
	b.SetFixed("a")

	before, _ := b.Get("a")
	if !before.Fixed {
		t.Fatal("SetFixed did not fix the layer")
	}
	if _, ok := b.Selected(); ok {
		t.Error("fixing a layer did not clear its selection")
	}

	pos := geometry.Point{X: 99, Y: 99}
	scale := 3.0
	if b.UpdateLayer("a", domain.LayerPatch{Position: &pos, Scale: &scale}) {
		t.Error("update on fixed layer reported as applied")
	}
	after, _ := b.Get("a")
	if after != before {
		t.Errorf("fixed layer mutated: %+v vs %+v", after, before)
	}

	// Fixing again and fixing unknown ids are silent no-ops.
	b.SetFixed("a")
	b.SetFixed("ghost")

	if b.Select("a") {
		t.Error("fixed layer became selectable")
	}
}

func TestBoardDeleteClearsSelection(t *testing.T) {
	b := NewBoard()
	b.AddLayer(newTestLayer("a", 0, 0))
	b.AddLayer(newTestLayer("b", 10, 10))
	b.Select("b")

	b.DeleteLayer("b")

	if b.Len() != 1 {
		t.Fatalf("Len = %d, want 1", b.Len())
	}
	if _, ok := b.Selected(); ok {
		t.Error("deleting the selected layer did not clear selection")
	}

	b.DeleteLayer("ghost") // silent no-op
	if b.Len() != 1 {
		t.Errorf("deleting unknown id changed the board")
	}
}

func TestBoardSingleSelection(t *testing.T) {
	b := NewBoard()
	b.AddLayer(newTestLayer("a", 0, 0))
	b.AddLayer(newTestLayer("b", 10, 10))

	b.Select("a")
	b.Select("b")

	sel, ok := b.Selected()
	if !ok || sel.ID != "b" {
		t.Errorf("Selected = %+v, want layer b", sel)
	}

	b.Select("")
	if _, ok := b.Selected(); ok {
		t.Error("Select(\"\") did not clear selection")
	}
}

func TestBoardHitTestTopmostWins(t *testing.T) {
	b := NewBoard()
	b.AddLayer(newTestLayer("bottom", 0, 0))
	b.AddLayer(newTestLayer("top", 50, 25)) // overlaps bottom's body

	id, region := b.HitTest(geometry.Point{X: 100, Y: 50})
	if id != "top" || region != geometry.RegionBody {
		t.Errorf("HitTest = (%q, %v), want (top, body)", id, region)
	}

	id, _ = b.HitTest(geometry.Point{X: 5, Y: 5})
	if id != "bottom" {
		t.Errorf("HitTest = %q, want bottom", id)
	}

	id, region = b.HitTest(geometry.Point{X: 1000, Y: 1000})
	if id != "" || region != geometry.RegionNone {
		t.Errorf("HitTest on empty space = (%q, %v)", id, region)
	}
}

func TestBoardFixedLayers(t *testing.T) {
	b := NewBoard()
	b.AddLayer(newTestLayer("a", 0, 0))
	b.AddLayer(newTestLayer("b", 10, 10))
	b.AddLayer(newTestLayer("c", 20, 20))
	b.SetFixed("c")
	b.SetFixed("a")

	fixed := b.FixedLayers()
	if len(fixed) != 2 {
		t.Fatalf("FixedLayers = %d entries, want 2", len(fixed))
	}
	// Insertion order, not fix order.
	if fixed[0].ID != "a" || fixed[1].ID != "c" {
		t.Errorf("FixedLayers order = %q, %q; want a, c", fixed[0].ID, fixed[1].ID)
	}
}
