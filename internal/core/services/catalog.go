package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inkpose/inkpose/internal/core/domain"
	"github.com/inkpose/inkpose/internal/core/ports"
	"github.com/inkpose/inkpose/pkg/studio"
)

// CatalogService manages asset ingestion into the studio's assets
// directory: decode validation, content dedup and collision renaming.
type CatalogService struct {
	studio *studio.Studio
	assets ports.AssetRepository
	images ports.ImageSource
}

// NewCatalogService creates a catalog service.
func NewCatalogService(st *studio.Studio, assets ports.AssetRepository, images ports.ImageSource) *CatalogService {
	return &CatalogService{
		studio: st,
		assets: assets,
		images: images,
	}
}

// Store copies an image file into the catalog and records its metadata.
// Returns the stored asset and whether it was deduplicated against an
// existing identical file. An unreadable or undecodable source aborts
// with ErrInvalidAsset and changes nothing.
func (s *CatalogService) Store(ctx context.Context, srcPath, name, description string) (*domain.Asset, bool, error) {
	if err := domain.ValidateAssetName(name); err != nil {
		return nil, false, err
	}

	// 1. Reject anything that does not decode before touching the catalog.
	width, height, err := s.images.Probe(srcPath)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s: %v", domain.ErrInvalidAsset, srcPath, err)
	}

	// 2. Open source & calculate hash
	srcFile, err := os.Open(srcPath)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s: %v", domain.ErrInvalidAsset, srcPath, err)
	}
	defer srcFile.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, srcFile); err != nil {
		return nil, false, fmt.Errorf("failed to calculate hash: %w", err)
	}
	srcHash := hex.EncodeToString(hasher.Sum(nil))

	srcFile.Seek(0, 0) // Reset for copy

	// 3. Determine target filename
	ext := strings.ToLower(filepath.Ext(srcPath))
	if ext == "" {
		ext = ".png"
	}
	baseName := domain.GenerateSlug(name)
	targetName := baseName + ext
	destPath := s.studio.GetAssetPath(targetName)

	// 4. Collision resolution
	counter := 1
	for {
		if info, err := os.Stat(destPath); err == nil && !info.IsDir() {
			if matches, _ := s.checkHashMatch(destPath, srcHash); matches {
				// Content is identical, reuse the existing file and
				// refresh its metadata with the latest description.
				asset, err := s.saveMetadata(ctx, filepath.Base(destPath), srcPath, description, srcHash, width, height, false)
				return asset, true, err
			}
			// Name collision but different content -> rename (rose-1.png)
			targetName = fmt.Sprintf("%s-%d%s", baseName, counter, ext)
			destPath = s.studio.GetAssetPath(targetName)
			counter++
			continue
		}
		break
	}

	// 5. Copy file
	dst, err := os.Create(destPath)
	if err != nil {
		return nil, false, err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, srcFile); err != nil {
		return nil, false, fmt.Errorf("failed to copy asset: %w", err)
	}

	// 6. Save metadata
	asset, err := s.saveMetadata(ctx, targetName, srcPath, description, srcHash, width, height, false)
	if err != nil {
		fmt.Printf("Warning: failed to save asset metadata: %v\n", err)
	}

	return asset, false, nil
}

// StoreBytes writes encoded image bytes (e.g. a generation result)
// straight into the catalog under a name derived from the given display
// name. The bytes must decode as an image.
func (s *CatalogService) StoreBytes(ctx context.Context, data []byte, name, description string, generated bool) (*domain.Asset, error) {
	if err := domain.ValidateAssetName(name); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(s.studio.CachePath, "ingest-*.img")
	if err != nil {
		return nil, err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, err
	}
	tmp.Close()

	width, height, err := s.images.Probe(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("%w: generated image: %v", domain.ErrInvalidAsset, err)
	}

	hasher := sha256.New()
	hasher.Write(data)
	srcHash := hex.EncodeToString(hasher.Sum(nil))

	baseName := domain.GenerateSlug(name)
	targetName := baseName + ".png"
	counter := 1
	for {
		destPath := s.studio.GetAssetPath(targetName)
		if _, err := os.Stat(destPath); err == nil {
			targetName = fmt.Sprintf("%s-%d.png", baseName, counter)
			counter++
			continue
		}
		if err := os.WriteFile(destPath, data, 0644); err != nil {
			return nil, err
		}
		break
	}

	return s.saveMetadata(ctx, targetName, name, description, srcHash, width, height, generated)
}

// Remove deletes an asset's file and its catalog entry.
func (s *CatalogService) Remove(ctx context.Context, ref string) error {
	asset, err := s.assets.Get(ctx, ref)
	if err != nil {
		return fmt.Errorf("asset not found: %s", ref)
	}

	if err := os.Remove(s.studio.GetAssetPath(asset.Filename)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove asset file: %w", err)
	}

	return s.assets.Delete(ctx, asset.Filename)
}

// Reindex re-probes every cataloged file, refreshing dimensions and
// hashes and dropping entries whose files disappeared.
func (s *CatalogService) Reindex(ctx context.Context) (int, error) {
	assets, err := s.assets.List(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, asset := range assets {
		path := s.studio.GetAssetPath(asset.Filename)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			s.assets.Delete(ctx, asset.Filename)
			updated++
			continue
		}

		width, height, err := s.images.Probe(path)
		if err != nil {
			continue // unreadable files keep their stale entry
		}
		if width != asset.Width || height != asset.Height {
			asset.Width = width
			asset.Height = height
			if err := s.assets.Save(ctx, asset); err == nil {
				updated++
			}
		}
	}
	return updated, nil
}

func (s *CatalogService) saveMetadata(ctx context.Context, filename, originalPath, description, hash string, width, height int, generated bool) (*domain.Asset, error) {
	asset := domain.Asset{
		ID:           uuid.NewString(),
		Filename:     filename,
		OriginalName: filepath.Base(originalPath),
		Description:  description,
		Hash:         hash,
		Width:        width,
		Height:       height,
		Generated:    generated,
		AddedAt:      time.Now(),
	}

	// Keep the original id if the entry already exists.
	if existing, err := s.assets.Get(ctx, filename); err == nil {
		asset.ID = existing.ID
	}

	if err := s.assets.Save(ctx, asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (s *CatalogService) checkHashMatch(path string, expectedHash string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()
	hasher := sha256.New()
	io.Copy(hasher, file)
	return hex.EncodeToString(hasher.Sum(nil)) == expectedHash, nil
}
