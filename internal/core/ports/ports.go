package ports

import (
	"context"
	"image"

	"github.com/inkpose/inkpose/internal/core/domain"
)

// AssetRepository defines the port for catalog persistence operations
type AssetRepository interface {
	// Load reads the catalog manifest from storage
	Load() error

	// Save persists an asset entry
	Save(ctx context.Context, asset domain.Asset) error

	// Get retrieves an asset by id or storage filename
	Get(ctx context.Context, ref string) (*domain.Asset, error)

	// List returns all catalog entries
	List(ctx context.Context) ([]domain.Asset, error)

	// Search returns entries matching the query in name or description
	Search(ctx context.Context, query string) ([]domain.Asset, error)

	// Delete removes an asset entry by id or storage filename
	Delete(ctx context.Context, ref string) error
}

// ImageSource defines the port for reading source images
type ImageSource interface {
	// Decode reads and decodes the image at path
	Decode(path string) (image.Image, error)

	// Probe returns the natural pixel dimensions without keeping the
	// decoded image around
	Probe(path string) (width, height int, err error)
}

// Generator defines the port for the external AI image generation call
type Generator interface {
	// Generate submits a prompt and style and returns encoded image bytes
	Generate(ctx context.Context, prompt, style string) ([]byte, error)
}
