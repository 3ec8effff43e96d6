package services

import (
	"context"
	"fmt"

	"github.com/inkpose/inkpose/internal/core/domain"
	"github.com/inkpose/inkpose/internal/core/ports"
)

// GenerateService is the boundary to the external AI image generation
// call. It owns none of the generation logic; it submits the prompt,
// validates that what comes back decodes, and files it in the catalog
// like any other asset.
type GenerateService struct {
	generator ports.Generator
	catalog   *CatalogService
}

// NewGenerateService creates a generate service.
func NewGenerateService(generator ports.Generator, catalog *CatalogService) *GenerateService {
	return &GenerateService{
		generator: generator,
		catalog:   catalog,
	}
}

// GenerateRequest carries the prompt text and style preset.
type GenerateRequest struct {
	Prompt string
	Style  string
}

// Execute runs the generation and ingests the result. Failures surface
// as user-visible errors; nothing is written on failure.
func (s *GenerateService) Execute(ctx context.Context, req GenerateRequest) (*domain.Asset, error) {
	if req.Prompt == "" {
		return nil, fmt.Errorf("prompt cannot be empty")
	}

	data, err := s.generator.Generate(ctx, req.Prompt, req.Style)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	description := fmt.Sprintf("generated: %s (%s)", req.Prompt, req.Style)
	asset, err := s.catalog.StoreBytes(ctx, data, req.Prompt, description, true)
	if err != nil {
		return nil, err
	}
	return asset, nil
}
