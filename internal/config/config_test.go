package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Viewer.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Viewer.Width)
	}
	if cfg.Viewer.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Viewer.Height)
	}
	if cfg.Viewer.Headless {
		t.Error("expected headless to be false by default")
	}
	if !cfg.Viewer.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Playback.Clip != 0 {
		t.Errorf("expected clip 0, got %d", cfg.Playback.Clip)
	}
	if cfg.Playback.Speed != 1.0 {
		t.Errorf("expected speed 1.0, got %f", cfg.Playback.Speed)
	}
	if cfg.Playback.Step <= 0 {
		t.Errorf("expected positive step, got %f", cfg.Playback.Step)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "skelview.yaml")

	yamlContent := `
viewer:
  headless: true
  width: 1920
  height: 1080
  vsync: false

playback:
  clip: 1
  speed: 2.0
  step: 0.01
  duration: 3.5

logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("load config: %v", err)
	}

	if !cfg.Viewer.Headless {
		t.Error("expected headless true")
	}
	if cfg.Viewer.Width != 1920 || cfg.Viewer.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Viewer.Width, cfg.Viewer.Height)
	}
	if cfg.Viewer.VSync {
		t.Error("expected vsync false")
	}
	if cfg.Playback.Clip != 1 {
		t.Errorf("expected clip 1, got %d", cfg.Playback.Clip)
	}
	if cfg.Playback.Speed != 2.0 {
		t.Errorf("expected speed 2.0, got %f", cfg.Playback.Speed)
	}
	if cfg.Playback.Duration != 3.5 {
		t.Errorf("expected duration 3.5, got %f", cfg.Playback.Duration)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected level debug, got %s", cfg.Logging.Level)
	}

	// Fields absent from the file keep their defaults
	if cfg.Viewer.Title != "skelview" {
		t.Errorf("expected default title, got %s", cfg.Viewer.Title)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "skelview.yaml")

	cfg := Default()
	cfg.Playback.Clip = 2
	cfg.Viewer.Headless = true
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Playback.Clip != 2 {
		t.Errorf("expected clip 2 after round trip, got %d", loaded.Playback.Clip)
	}
	if !loaded.Viewer.Headless {
		t.Error("expected headless true after round trip")
	}
}
