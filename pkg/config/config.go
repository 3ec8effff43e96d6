package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Placement
	InitialWidth float64 `yaml:"initial_width"` // unscaled width of a freshly dropped layer

	// Interaction
	ScaleSensitivity float64 `yaml:"scale_sensitivity"` // drag pixels per 1.0 of scale
	MaxScale         float64 `yaml:"max_scale"`         // slider ceiling; MinScale is fixed at 0.1

	// Export
	ExportFileName string `yaml:"export_file_name"`
	MaxWorkers     int    `yaml:"max_workers"` // concurrent source decodes during export
	CopyExportPath bool   `yaml:"copy_export_path"`

	// Generation
	GenerateEndpoint string `yaml:"generate_endpoint"`
	GenerateStyle    string `yaml:"generate_style"`

	// UI Settings
	ColorTheme string `yaml:"color_theme"`
	TableWidth int    `yaml:"table_width"`

	// Contact sheet
	SheetColumns int `yaml:"sheet_columns"`

	// Performance
	WatchDebounceMS int `yaml:"watch_debounce_ms"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		InitialWidth:     150,
		ScaleSensitivity: 100,
		MaxScale:         3.0,
		ExportFileName:   "tattoo-collage.png",
		MaxWorkers:       4,
		CopyExportPath:   true,
		GenerateEndpoint: "",
		GenerateStyle:    "traditional",
		ColorTheme:       "auto",
		TableWidth:       0,
		SheetColumns:     4,
		WatchDebounceMS:  500,
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	// Start with default config
	cfg := DefaultConfig()

	// Try to read the file
	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config (not an error)
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults for essential values if missing or nonsensical
	if cfg.InitialWidth <= 0 {
		cfg.InitialWidth = 150
	}
	if cfg.ScaleSensitivity <= 0 {
		cfg.ScaleSensitivity = 100
	}
	if cfg.MaxScale <= 0.1 {
		cfg.MaxScale = 3.0
	}
	if cfg.ExportFileName == "" {
		cfg.ExportFileName = "tattoo-collage.png"
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 4
	}
	if cfg.SheetColumns <= 0 {
		cfg.SheetColumns = 4
	}

	return cfg, nil
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
