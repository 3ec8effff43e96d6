package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Asset represents a catalog entry for a tattoo cutout image.
type Asset struct {
	ID           string    `json:"id"`            // Stable uuid, survives renames
	Filename     string    `json:"filename"`      // Storage name (e.g. rose.png)
	OriginalName string    `json:"original_name"` // Original upload name
	Description  string    `json:"description"`   // User provided description
	Hash         string    `json:"hash"`          // SHA-256 hash
	Width        int       `json:"width"`         // Natural pixel width
	Height       int       `json:"height"`        // Natural pixel height
	Generated    bool      `json:"generated"`     // True for AI-generated assets
	AddedAt      time.Time `json:"added_at"`
}

// AspectRatio returns width over height of the natural image.
func (a Asset) AspectRatio() float64 {
	if a.Height == 0 {
		return 1
	}
	return float64(a.Width) / float64(a.Height)
}

// GenerateSlug creates a filesystem-friendly slug from a display name.
// Converts "Rose Outline" -> "rose-outline".
func GenerateSlug(name string) string {
	slug := strings.ToLower(name)

	reg := regexp.MustCompile(`[^a-z0-9]+`)
	slug = reg.ReplaceAllString(slug, "-")

	slug = strings.Trim(slug, "-")

	reg = regexp.MustCompile(`-+`)
	slug = reg.ReplaceAllString(slug, "-")

	return slug
}

// ValidateAssetName checks if a display name is usable as a catalog entry.
func ValidateAssetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("asset name cannot be empty")
	}

	if len(name) > 200 {
		return fmt.Errorf("asset name too long (max 200 characters)")
	}

	return nil
}
