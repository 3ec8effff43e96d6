// Package studio manages the on-disk layout inkpose works against: the
// asset catalog, export output and cache directories, plus the config
// file location.
package studio

import (
	"fmt"
	"os"
	"path/filepath"
)

// Studio represents the managed storage directory for inkpose
type Studio struct {
	RootPath    string
	AssetsPath  string
	ExportsPath string
	CachePath   string
	ConfigPath  string
}

// New creates a new Studio instance with XDG-compliant paths
func New() (*Studio, error) {
	rootPath, rootErr := getStudioRoot()
	configPath, configErr := getConfigPath()
	if rootErr != nil {
		return nil, fmt.Errorf("failed to determine studio root: %w", rootErr)
	}
	if configErr != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", configErr)
	}

	s := &Studio{
		RootPath:    rootPath,
		AssetsPath:  filepath.Join(rootPath, "assets"),
		ExportsPath: filepath.Join(rootPath, "exports"),
		CachePath:   filepath.Join(rootPath, "cache"),
		ConfigPath:  configPath,
	}

	return s, nil
}

// getStudioRoot returns the studio root directory path
// Follows XDG Base Directory specification on Unix and uses AppData on Windows
func getStudioRoot() (string, error) {
	// Check XDG_DATA_HOME first (Unix-like systems)
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return filepath.Join(xdgDataHome, "inkpose"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	// Check if we're on Windows by looking for APPDATA
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "inkpose"), nil
	}

	// Fall back to ~/.local/share/inkpose (Unix-like systems)
	return filepath.Join(homeDir, ".local", "share", "inkpose"), nil
}

func getConfigPath() (string, error) {
	// Check XDG_CONFIG_HOME first (Unix-like systems)
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "inkpose", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	// Check if we're on Windows by looking for APPDATA
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "inkpose-config", "config.yaml"), nil
	}

	// Fall back to ~/.config/inkpose/config.yaml (Unix-like systems)
	return filepath.Join(homeDir, ".config", "inkpose", "config.yaml"), nil
}

// Initialize creates the studio directory structure if it doesn't exist
func (s *Studio) Initialize() error {
	directories := []string{
		s.RootPath,
		s.AssetsPath,
		s.ExportsPath,
		s.CachePath,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// Exists checks if the studio has been initialized
func (s *Studio) Exists() bool {
	info, err := os.Stat(s.RootPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// GetAssetPath returns the full path for a catalog image file
func (s *Studio) GetAssetPath(filename string) string {
	return filepath.Join(s.AssetsPath, filename)
}

// GetExportPath returns the full path for an exported composition
func (s *Studio) GetExportPath(filename string) string {
	return filepath.Join(s.ExportsPath, filename)
}

// GetCachePath returns the full path for a cached file
func (s *Studio) GetCachePath(filename string) string {
	return filepath.Join(s.CachePath, filename)
}

// ManifestPath returns the path to the asset catalog manifest
func (s *Studio) ManifestPath() string {
	return filepath.Join(s.AssetsPath, ".manifest.json")
}

// CleanCache removes all files in the cache directory
func (s *Studio) CleanCache() error {
	entries, err := os.ReadDir(s.CachePath)
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	for _, entry := range entries {
		path := filepath.Join(s.CachePath, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}

	return nil
}
