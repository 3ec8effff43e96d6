package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	if cfg.InitialWidth != 150 {
		t.Errorf("expected default InitialWidth=150, got %v", cfg.InitialWidth)
	}

	if cfg.ScaleSensitivity != 100 {
		t.Errorf("expected default ScaleSensitivity=100, got %v", cfg.ScaleSensitivity)
	}

	if cfg.ExportFileName != "tattoo-collage.png" {
		t.Errorf("expected default ExportFileName='tattoo-collage.png', got %q", cfg.ExportFileName)
	}

	if cfg.MaxWorkers != 4 {
		t.Errorf("expected default MaxWorkers=4, got %d", cfg.MaxWorkers)
	}

	if cfg.MaxScale != 3.0 {
		t.Errorf("expected default MaxScale=3.0, got %v", cfg.MaxScale)
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	// Loading a non-existent file should return default config
	cfg, err := Load("/nonexistent/path/config.yaml")

	if err != nil {
		t.Fatalf("unexpected error loading non-existent file: %v", err)
	}

	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}

	if cfg.InitialWidth != 150 {
		t.Errorf("expected default InitialWidth, got %v", cfg.InitialWidth)
	}
}

func TestLoad_PartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "initial_width: 200\nexport_file_name: out.png\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.InitialWidth != 200 {
		t.Errorf("InitialWidth = %v, want 200", cfg.InitialWidth)
	}
	if cfg.ExportFileName != "out.png" {
		t.Errorf("ExportFileName = %q, want out.png", cfg.ExportFileName)
	}
	// Unspecified keys keep their defaults.
	if cfg.MaxWorkers != 4 {
		t.Errorf("MaxWorkers = %d, want default 4", cfg.MaxWorkers)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "initial_width: -10\nmax_workers: 0\nscale_sensitivity: 0\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.InitialWidth != 150 || cfg.MaxWorkers != 4 || cfg.ScaleSensitivity != 100 {
		t.Errorf("invalid values not replaced with defaults: %+v", cfg)
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.InitialWidth = 175
	cfg.GenerateStyle = "blackwork"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.InitialWidth != 175 {
		t.Errorf("InitialWidth = %v, want 175", loaded.InitialWidth)
	}
	if loaded.GenerateStyle != "blackwork" {
		t.Errorf("GenerateStyle = %q, want blackwork", loaded.GenerateStyle)
	}
}
