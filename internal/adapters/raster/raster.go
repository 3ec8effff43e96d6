// Package raster adapts the filesystem to the ImageSource port and
// handles encoding of export output. PNG and JPEG sources are accepted;
// output is always PNG, a lossless encoding, so the flatten step never
// degrades what was composed.
package raster

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
)

// FileImageSource implements the ImageSource port over the local filesystem
type FileImageSource struct{}

// NewFileImageSource creates a new filesystem-backed image source
func NewFileImageSource() *FileImageSource {
	return &FileImageSource{}
}

// Decode reads and fully decodes the image at path
func (f *FileImageSource) Decode(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// Probe reads only the image header and returns the natural dimensions
func (f *FileImageSource) Probe(path string) (int, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image header %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

// EncodePNG writes img to w in PNG encoding
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// WritePNG encodes img to a file at path. The file is written atomically
// via a temporary sibling so a failed export never leaves a partial file.
func WritePNG(path string, img image.Image) error {
	tmp, err := os.CreateTemp("", "inkpose-export-*.png")
	if err != nil {
		return fmt.Errorf("failed to create temporary export file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to encode export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		// Rename can fail across filesystems; fall back to a copy.
		data, readErr := os.ReadFile(tmpPath)
		os.Remove(tmpPath)
		if readErr != nil {
			return fmt.Errorf("failed to move export into place: %w", err)
		}
		return os.WriteFile(path, data, 0644)
	}
	return nil
}
