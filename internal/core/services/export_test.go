package services

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/inkpose/inkpose/internal/core/domain"
	"github.com/inkpose/inkpose/internal/core/ports/mocks"
	"github.com/inkpose/inkpose/pkg/geometry"
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func fixedLayer(id, sourceFile string, x, y, w, h float64) domain.Layer {
	return domain.Layer{
		ID:         id,
		AssetID:    "asset-" + id,
		SourceFile: sourceFile,
		Position:   geometry.Point{X: x, Y: y},
		BaseSize:   geometry.Size{W: w, H: h},
		Scale:      1,
		Rotation:   0,
		Brightness: 100,
		Contrast:   100,
		Fixed:      true,
	}
}

func TestExportNoFixedLayers(t *testing.T) {
	svc := NewExportService(mocks.NewMockImageSource(), 2)

	_, err := svc.Execute(context.Background(), ExportRequest{})
	if !errors.Is(err, domain.ErrNoLayersToExport) {
		t.Errorf("empty export error = %v, want ErrNoLayersToExport", err)
	}

	// Unfixed layers do not count.
	unfixed := fixedLayer("a", "a.png", 0, 0, 10, 10)
	unfixed.Fixed = false
	_, err = svc.Execute(context.Background(), ExportRequest{Layers: []domain.Layer{unfixed}})
	if !errors.Is(err, domain.ErrNoLayersToExport) {
		t.Errorf("unfixed-only export error = %v, want ErrNoLayersToExport", err)
	}
}

func TestExportIdentityRoundTrip(t *testing.T) {
	// A single fixed layer with identity geometry and a neutral filter
	// must reproduce the source exactly, at exactly the base size.
	src := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			src.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 30), G: uint8(y * 60), B: uint8(x*y + 7), A: 255,
			})
		}
	}

	images := mocks.NewMockImageSource()
	images.Add("tattoo.png", src)
	svc := NewExportService(images, 2)

	layer := fixedLayer("a", "tattoo.png", -25, 12.5, 8, 4)
	resp, err := svc.Execute(context.Background(), ExportRequest{Layers: []domain.Layer{layer}})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	b := resp.Image.Bounds()
	if b.Dx() != 8 || b.Dy() != 4 {
		t.Fatalf("output size = %dx%d, want 8x4", b.Dx(), b.Dy())
	}
	if resp.OriginX != -25 || resp.OriginY != 12.5 {
		t.Errorf("origin = (%v, %v), want (-25, 12.5)", resp.OriginX, resp.OriginY)
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			want := src.NRGBAAt(x, y)
			got := resp.Image.RGBAAt(x, y)
			if got.R != want.R || got.G != want.G || got.B != want.B || got.A != want.A {
				t.Fatalf("pixel (%d,%d) = %+v, want %+v", x, y, got, want)
			}
		}
	}
}

func TestExportBoundingBoxOrderIndependent(t *testing.T) {
	images := mocks.NewMockImageSource()
	images.Add("a.png", solidImage(10, 10, color.NRGBA{R: 255, A: 255}))
	images.Add("b.png", solidImage(10, 10, color.NRGBA{B: 255, A: 255}))
	svc := NewExportService(images, 2)

	a := fixedLayer("a", "a.png", 0, 0, 10, 10)
	b := fixedLayer("b", "b.png", 5, 5, 10, 10)

	ab, err := svc.Execute(context.Background(), ExportRequest{Layers: []domain.Layer{a, b}})
	if err != nil {
		t.Fatalf("export [a,b] failed: %v", err)
	}
	ba, err := svc.Execute(context.Background(), ExportRequest{Layers: []domain.Layer{b, a}})
	if err != nil {
		t.Fatalf("export [b,a] failed: %v", err)
	}

	if ab.Image.Bounds() != ba.Image.Bounds() {
		t.Errorf("canvas dims differ by order: %v vs %v", ab.Image.Bounds(), ba.Image.Bounds())
	}
	if ab.Image.Bounds().Dx() != 15 || ab.Image.Bounds().Dy() != 15 {
		t.Errorf("canvas = %v, want 15x15", ab.Image.Bounds())
	}

	// Draw order follows store order, so the overlap belongs to whichever
	// layer came last.
	overlap := ab.Image.RGBAAt(7, 7)
	if overlap.B != 255 || overlap.R != 0 {
		t.Errorf("[a,b] overlap pixel = %+v, want b on top", overlap)
	}
	overlap = ba.Image.RGBAAt(7, 7)
	if overlap.R != 255 || overlap.B != 0 {
		t.Errorf("[b,a] overlap pixel = %+v, want a on top", overlap)
	}
}

func TestExportAppliesFilter(t *testing.T) {
	images := mocks.NewMockImageSource()
	images.Add("gray.png", solidImage(4, 4, color.NRGBA{R: 60, G: 60, B: 60, A: 255}))
	svc := NewExportService(images, 2)

	layer := fixedLayer("a", "gray.png", 0, 0, 4, 4)
	layer.Brightness = 200

	resp, err := svc.Execute(context.Background(), ExportRequest{Layers: []domain.Layer{layer}})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	got := resp.Image.RGBAAt(2, 2)
	if got.R != 120 || got.G != 120 || got.B != 120 {
		t.Errorf("filtered pixel = %+v, want 120 per channel", got)
	}
}

func TestExportScaledLayerGrowsCanvas(t *testing.T) {
	images := mocks.NewMockImageSource()
	images.Add("a.png", solidImage(10, 10, color.NRGBA{G: 255, A: 255}))
	svc := NewExportService(images, 2)

	layer := fixedLayer("a", "a.png", 0, 0, 10, 10)
	layer.Scale = 2

	resp, err := svc.Execute(context.Background(), ExportRequest{Layers: []domain.Layer{layer}})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if resp.Image.Bounds().Dx() != 20 || resp.Image.Bounds().Dy() != 20 {
		t.Errorf("canvas = %v, want 20x20", resp.Image.Bounds())
	}
	if got := resp.Image.RGBAAt(15, 15); got.G != 255 {
		t.Errorf("scaled layer missing at (15,15): %+v", got)
	}
}

func TestExportDecodeFailureAbortsWhole(t *testing.T) {
	images := mocks.NewMockImageSource()
	images.Add("good.png", solidImage(10, 10, color.NRGBA{R: 255, A: 255}))
	images.Fail("bad.png", fmt.Errorf("corrupt header"))
	svc := NewExportService(images, 2)

	layers := []domain.Layer{
		fixedLayer("good", "good.png", 0, 0, 10, 10),
		fixedLayer("bad", "bad.png", 20, 20, 10, 10),
	}

	resp, err := svc.Execute(context.Background(), ExportRequest{Layers: layers})
	if !errors.Is(err, domain.ErrExportDecode) {
		t.Errorf("error = %v, want ErrExportDecode", err)
	}
	if resp != nil {
		t.Error("partial export returned despite decode failure")
	}
}

func TestExportSkipsUnfixedLayers(t *testing.T) {
	images := mocks.NewMockImageSource()
	images.Add("a.png", solidImage(10, 10, color.NRGBA{R: 255, A: 255}))
	// The unfixed layer's source is broken; it must never be decoded.
	images.Fail("draft.png", fmt.Errorf("should not be read"))
	svc := NewExportService(images, 2)

	a := fixedLayer("a", "a.png", 0, 0, 10, 10)
	draft := fixedLayer("draft", "draft.png", 100, 100, 10, 10)
	draft.Fixed = false

	resp, err := svc.Execute(context.Background(), ExportRequest{Layers: []domain.Layer{a, draft}})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if resp.Image.Bounds().Dx() != 10 || resp.Image.Bounds().Dy() != 10 {
		t.Errorf("canvas = %v, want the fixed layer only (10x10)", resp.Image.Bounds())
	}
}

func TestExportRotatedLayerStaysInsideFootprintBox(t *testing.T) {
	// The canvas comes from the unrotated footprint even though content
	// draws rotated; a square rotated 45 degrees has its corners clipped.
	images := mocks.NewMockImageSource()
	images.Add("a.png", solidImage(20, 20, color.NRGBA{R: 255, A: 255}))
	svc := NewExportService(images, 2)

	layer := fixedLayer("a", "a.png", 0, 0, 20, 20)
	layer.Rotation = 45

	resp, err := svc.Execute(context.Background(), ExportRequest{Layers: []domain.Layer{layer}})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if resp.Image.Bounds().Dx() != 20 || resp.Image.Bounds().Dy() != 20 {
		t.Errorf("canvas = %v, want unrotated 20x20 footprint", resp.Image.Bounds())
	}
	// The rotated square still covers the canvas center.
	if got := resp.Image.RGBAAt(10, 10); got.R == 0 {
		t.Errorf("center pixel empty after rotation: %+v", got)
	}
	// A corner of the canvas is outside the rotated square.
	if got := resp.Image.RGBAAt(0, 0); got.A != 0 {
		t.Errorf("corner pixel = %+v, want transparent (rotated away)", got)
	}
}
