package services

import (
	"context"
	"fmt"

	"github.com/inkpose/inkpose/internal/core/domain"
	"github.com/inkpose/inkpose/internal/core/ports"
	"github.com/inkpose/inkpose/pkg/geometry"
	"github.com/inkpose/inkpose/pkg/studio"
)

// PlacementService turns a drop of a catalog asset into a new board
// layer. The unscaled footprint is fixed here, once, from the asset's
// natural aspect ratio and the configured initial width; scale is the
// only size knob after that.
type PlacementService struct {
	assets       ports.AssetRepository
	images       ports.ImageSource
	studio       *studio.Studio
	initialWidth float64
}

// NewPlacementService creates a placement service.
func NewPlacementService(assets ports.AssetRepository, images ports.ImageSource, st *studio.Studio, initialWidth float64) *PlacementService {
	if initialWidth <= 0 {
		initialWidth = 150
	}
	return &PlacementService{
		assets:       assets,
		images:       images,
		studio:       st,
		initialWidth: initialWidth,
	}
}

// PlaceRequest identifies the asset and the canvas point it was dropped on.
type PlaceRequest struct {
	AssetRef string
	Drop     geometry.Point
}

// Execute creates the layer and adds it to the board as the selection.
func (s *PlacementService) Execute(ctx context.Context, board *Board, req PlaceRequest) (*domain.Layer, error) {
	layer, err := s.Build(ctx, req)
	if err != nil {
		return nil, err
	}
	board.AddLayer(*layer)
	board.Select(layer.ID)
	return layer, nil
}

// Build resolves the asset and constructs the layer without touching any
// board. Callers that own a board on another goroutine (the studio TUI)
// use this and apply the layer themselves; Board is not safe for
// concurrent use.
func (s *PlacementService) Build(ctx context.Context, req PlaceRequest) (*domain.Layer, error) {
	asset, err := s.assets.Get(ctx, req.AssetRef)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAsset, req.AssetRef)
	}

	sourceFile := s.studio.GetAssetPath(asset.Filename)

	width, height := asset.Width, asset.Height
	if width <= 0 || height <= 0 {
		// Older manifests may predate dimension tracking; probe the file.
		width, height, err = s.images.Probe(sourceFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidAsset, asset.Filename, err)
		}
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %s has no pixels", domain.ErrInvalidAsset, asset.Filename)
	}

	aspect := float64(width) / float64(height)
	base := geometry.Size{
		W: s.initialWidth,
		H: s.initialWidth / aspect,
	}

	layer := domain.Layer{
		ID:         domain.NewLayerID(),
		AssetID:    asset.ID,
		SourceFile: sourceFile,
		Position: geometry.Point{
			X: req.Drop.X - base.W/2,
			Y: req.Drop.Y - base.H/2,
		},
		BaseSize:   base,
		Scale:      1,
		Rotation:   0,
		Brightness: 100,
		Contrast:   100,
	}

	return &layer, nil
}
