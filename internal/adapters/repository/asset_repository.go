package repository

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"sync"

	"github.com/inkpose/inkpose/internal/core/domain"
	"github.com/inkpose/inkpose/pkg/studio"
)

// FileAssetRepository persists the asset catalog as a JSON manifest
// beside the image files, keyed by storage filename.
type FileAssetRepository struct {
	studio       *studio.Studio
	manifestPath string
	mu           sync.RWMutex
	cache        map[string]domain.Asset
}

func NewFileAssetRepository(st *studio.Studio) *FileAssetRepository {
	return &FileAssetRepository{
		studio:       st,
		manifestPath: st.ManifestPath(),
		cache:        make(map[string]domain.Asset),
	}
}

// Load reads the manifest from disk
func (r *FileAssetRepository) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return json.Unmarshal(data, &r.cache)
}

// Save persists an asset to the manifest
func (r *FileAssetRepository) Save(ctx context.Context, asset domain.Asset) error {
	// Ensure cache is loaded
	if len(r.cache) == 0 {
		r.Load()
	}

	r.mu.Lock()
	r.cache[asset.Filename] = asset
	r.mu.Unlock()

	return r.flush()
}

// flush writes cache to disk
func (r *FileAssetRepository) flush() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := json.MarshalIndent(r.cache, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(r.manifestPath, data, 0644)
}

// Get retrieves an asset by storage filename or id
func (r *FileAssetRepository) Get(ctx context.Context, ref string) (*domain.Asset, error) {
	if len(r.cache) == 0 {
		r.Load()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if asset, ok := r.cache[ref]; ok {
		return &asset, nil
	}
	for _, asset := range r.cache {
		if asset.ID == ref {
			return &asset, nil
		}
	}
	return nil, os.ErrNotExist
}

// List returns all catalog entries
func (r *FileAssetRepository) List(ctx context.Context) ([]domain.Asset, error) {
	if len(r.cache) == 0 {
		r.Load()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Asset, 0, len(r.cache))
	for _, asset := range r.cache {
		out = append(out, asset)
	}
	return out, nil
}

// Search returns entries whose name or description matches the query
func (r *FileAssetRepository) Search(ctx context.Context, query string) ([]domain.Asset, error) {
	if len(r.cache) == 0 {
		r.Load()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	query = strings.ToLower(query)
	var matches []domain.Asset

	for _, asset := range r.cache {
		if strings.Contains(strings.ToLower(asset.Filename), query) ||
			strings.Contains(strings.ToLower(asset.OriginalName), query) ||
			strings.Contains(strings.ToLower(asset.Description), query) {
			matches = append(matches, asset)
		}
	}

	return matches, nil
}

// Delete removes an entry by storage filename or id
func (r *FileAssetRepository) Delete(ctx context.Context, ref string) error {
	if len(r.cache) == 0 {
		r.Load()
	}

	r.mu.Lock()
	if _, ok := r.cache[ref]; ok {
		delete(r.cache, ref)
	} else {
		for key, asset := range r.cache {
			if asset.ID == ref {
				delete(r.cache, key)
				break
			}
		}
	}
	r.mu.Unlock()

	return r.flush()
}
