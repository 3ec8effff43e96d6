package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/inkpose/inkpose/internal/adapters/raster"
	"github.com/inkpose/inkpose/internal/core/domain"
	"github.com/inkpose/inkpose/internal/core/ports/mocks"
	"github.com/inkpose/inkpose/pkg/studio"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
}

func catalogFixture(t *testing.T) (*CatalogService, *mocks.MockAssetRepository, *studio.Studio) {
	t.Helper()
	root := t.TempDir()
	st := &studio.Studio{
		RootPath:    root,
		AssetsPath:  filepath.Join(root, "assets"),
		ExportsPath: filepath.Join(root, "exports"),
		CachePath:   filepath.Join(root, "cache"),
	}
	if err := st.Initialize(); err != nil {
		t.Fatalf("studio init failed: %v", err)
	}

	assets := mocks.NewMockAssetRepository()
	return NewCatalogService(st, assets, raster.NewFileImageSource()), assets, st
}

func TestCatalogStore(t *testing.T) {
	svc, _, st := catalogFixture(t)

	src := filepath.Join(t.TempDir(), "upload.png")
	writePNG(t, src, 200, 100)

	asset, dup, err := svc.Store(context.Background(), src, "Rose Outline", "left arm piece")
	if err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if dup {
		t.Error("fresh asset reported as duplicate")
	}
	if asset.Filename != "rose-outline.png" {
		t.Errorf("Filename = %q, want rose-outline.png", asset.Filename)
	}
	if asset.Width != 200 || asset.Height != 100 {
		t.Errorf("dimensions = %dx%d, want 200x100", asset.Width, asset.Height)
	}
	if asset.ID == "" {
		t.Error("asset has no id")
	}

	if _, err := os.Stat(st.GetAssetPath(asset.Filename)); err != nil {
		t.Errorf("stored file missing: %v", err)
	}
}

func TestCatalogStoreRejectsUndecodable(t *testing.T) {
	svc, assets, st := catalogFixture(t)

	src := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(src, []byte("not an image"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	_, _, err := svc.Store(context.Background(), src, "bogus", "")
	if !errors.Is(err, domain.ErrInvalidAsset) {
		t.Errorf("error = %v, want ErrInvalidAsset", err)
	}

	// No state change: catalog empty, assets dir holds only the manifest.
	list, _ := assets.List(context.Background())
	if len(list) != 0 {
		t.Errorf("catalog mutated: %+v", list)
	}
	entries, _ := os.ReadDir(st.AssetsPath)
	if len(entries) != 0 {
		t.Errorf("assets dir mutated: %d entries", len(entries))
	}
}

func TestCatalogStoreDeduplicates(t *testing.T) {
	svc, _, _ := catalogFixture(t)

	dir := t.TempDir()
	first := filepath.Join(dir, "original.png")
	writePNG(t, first, 64, 64)

	second := filepath.Join(dir, "redownload.png")
	data, _ := os.ReadFile(first)
	os.WriteFile(second, data, 0644)

	a1, _, err := svc.Store(context.Background(), first, "dragon", "first")
	if err != nil {
		t.Fatalf("first store failed: %v", err)
	}
	a2, dup, err := svc.Store(context.Background(), second, "dragon", "second")
	if err != nil {
		t.Fatalf("second store failed: %v", err)
	}

	if !dup {
		t.Error("identical content not reported as duplicate")
	}
	if a1.Filename != a2.Filename {
		t.Errorf("duplicate got its own file: %q vs %q", a1.Filename, a2.Filename)
	}
	if a1.ID != a2.ID {
		t.Errorf("duplicate changed id: %q vs %q", a1.ID, a2.ID)
	}
}

func TestCatalogStoreCollisionRenames(t *testing.T) {
	svc, _, _ := catalogFixture(t)

	dir := t.TempDir()
	first := filepath.Join(dir, "a.png")
	writePNG(t, first, 32, 32)
	second := filepath.Join(dir, "b.png")
	writePNG(t, second, 48, 48) // same name, different content

	a1, _, err := svc.Store(context.Background(), first, "skull", "")
	if err != nil {
		t.Fatalf("first store failed: %v", err)
	}
	a2, dup, err := svc.Store(context.Background(), second, "skull", "")
	if err != nil {
		t.Fatalf("second store failed: %v", err)
	}

	if dup {
		t.Error("different content reported as duplicate")
	}
	if a1.Filename != "skull.png" || a2.Filename != "skull-1.png" {
		t.Errorf("collision naming = %q, %q; want skull.png, skull-1.png", a1.Filename, a2.Filename)
	}
}

func TestCatalogStoreBytes(t *testing.T) {
	svc, _, st := catalogFixture(t)

	img := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	asset, err := svc.StoreBytes(context.Background(), buf.Bytes(), "flash snake", "generated", true)
	if err != nil {
		t.Fatalf("store bytes failed: %v", err)
	}
	if asset.Filename != "flash-snake.png" {
		t.Errorf("Filename = %q, want flash-snake.png", asset.Filename)
	}
	if !asset.Generated {
		t.Error("generated flag not set")
	}
	if asset.Width != 40 || asset.Height != 20 {
		t.Errorf("dimensions = %dx%d, want 40x20", asset.Width, asset.Height)
	}
	if _, err := os.Stat(st.GetAssetPath(asset.Filename)); err != nil {
		t.Errorf("stored file missing: %v", err)
	}
}

func TestCatalogStoreBytesRejectsGarbage(t *testing.T) {
	svc, _, _ := catalogFixture(t)

	_, err := svc.StoreBytes(context.Background(), []byte("garbage"), "broken", "", true)
	if !errors.Is(err, domain.ErrInvalidAsset) {
		t.Errorf("error = %v, want ErrInvalidAsset", err)
	}
}

func TestCatalogRemove(t *testing.T) {
	svc, assets, st := catalogFixture(t)

	src := filepath.Join(t.TempDir(), "gone.png")
	writePNG(t, src, 16, 16)
	asset, _, err := svc.Store(context.Background(), src, "gone", "")
	if err != nil {
		t.Fatalf("store failed: %v", err)
	}

	if err := svc.Remove(context.Background(), asset.Filename); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, err := os.Stat(st.GetAssetPath(asset.Filename)); !os.IsNotExist(err) {
		t.Error("asset file still present after remove")
	}
	if _, err := assets.Get(context.Background(), asset.Filename); err == nil {
		t.Error("catalog entry still present after remove")
	}
}

func TestCatalogReindex(t *testing.T) {
	svc, assets, _ := catalogFixture(t)

	src := filepath.Join(t.TempDir(), "keep.png")
	writePNG(t, src, 16, 16)
	kept, _, err := svc.Store(context.Background(), src, "keep", "")
	if err != nil {
		t.Fatalf("store failed: %v", err)
	}

	// Entry whose file has vanished.
	assets.Save(context.Background(), domain.Asset{Filename: "vanished.png"})

	updated, err := svc.Reindex(context.Background())
	if err != nil {
		t.Fatalf("reindex failed: %v", err)
	}
	if updated != 1 {
		t.Errorf("updated = %d, want 1 (the vanished entry)", updated)
	}
	if _, err := assets.Get(context.Background(), "vanished.png"); err == nil {
		t.Error("vanished entry survived reindex")
	}
	if _, err := assets.Get(context.Background(), kept.Filename); err != nil {
		t.Errorf("kept entry dropped by reindex: %v", err)
	}
}
