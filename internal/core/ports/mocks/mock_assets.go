package mocks

import (
	"context"
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/inkpose/inkpose/internal/core/domain"
)

// MockAssetRepository is an in-memory implementation of the
// AssetRepository port for testing
type MockAssetRepository struct {
	mu     sync.RWMutex
	assets map[string]domain.Asset
}

// NewMockAssetRepository creates a new mock repository
func NewMockAssetRepository() *MockAssetRepository {
	return &MockAssetRepository{
		assets: make(map[string]domain.Asset),
	}
}

// Load is a no-op for the in-memory mock
func (m *MockAssetRepository) Load() error {
	return nil
}

// Save persists an asset entry
func (m *MockAssetRepository) Save(ctx context.Context, asset domain.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets[asset.Filename] = asset
	return nil
}

// Get retrieves an asset by id or storage filename
func (m *MockAssetRepository) Get(ctx context.Context, ref string) (*domain.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if a, ok := m.assets[ref]; ok {
		return &a, nil
	}
	for _, a := range m.assets {
		if a.ID == ref {
			return &a, nil
		}
	}
	return nil, fmt.Errorf("asset not found: %s", ref)
}

// List returns all catalog entries
func (m *MockAssetRepository) List(ctx context.Context) ([]domain.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Asset, 0, len(m.assets))
	for _, a := range m.assets {
		out = append(out, a)
	}
	return out, nil
}

// Search returns entries matching the query
func (m *MockAssetRepository) Search(ctx context.Context, query string) ([]domain.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	query = strings.ToLower(query)
	var matches []domain.Asset
	for _, a := range m.assets {
		if strings.Contains(strings.ToLower(a.Filename), query) ||
			strings.Contains(strings.ToLower(a.Description), query) {
			matches = append(matches, a)
		}
	}
	return matches, nil
}

// Delete removes an asset entry
func (m *MockAssetRepository) Delete(ctx context.Context, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, a := range m.assets {
		if key == ref || a.ID == ref {
			delete(m.assets, key)
			return nil
		}
	}
	return fmt.Errorf("asset not found: %s", ref)
}

// MockImageSource is an in-memory implementation of the ImageSource port
type MockImageSource struct {
	mu     sync.RWMutex
	images map[string]image.Image
	broken map[string]error
}

// NewMockImageSource creates a new mock image source
func NewMockImageSource() *MockImageSource {
	return &MockImageSource{
		images: make(map[string]image.Image),
		broken: make(map[string]error),
	}
}

// Add registers a decodable image under path
func (m *MockImageSource) Add(path string, img image.Image) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.images[path] = img
}

// Fail makes every read of path return err
func (m *MockImageSource) Fail(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.broken[path] = err
}

// Decode reads a registered image
func (m *MockImageSource) Decode(path string) (image.Image, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err, ok := m.broken[path]; ok {
		return nil, err
	}
	img, ok := m.images[path]
	if !ok {
		return nil, fmt.Errorf("no image at %s", path)
	}
	return img, nil
}

// Probe returns the registered image's dimensions
func (m *MockImageSource) Probe(path string) (int, int, error) {
	img, err := m.Decode(path)
	if err != nil {
		return 0, 0, err
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), nil
}

// MockGenerator is a canned implementation of the Generator port
type MockGenerator struct {
	Payload []byte
	Err     error

	LastPrompt string
	LastStyle  string
}

// Generate records the request and returns the canned payload
func (m *MockGenerator) Generate(ctx context.Context, prompt, style string) ([]byte, error) {
	m.LastPrompt = prompt
	m.LastStyle = style
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Payload, nil
}
