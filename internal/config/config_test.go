package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/groversim/internal/grover"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.N != 100 || cfg.Marked != 20 || cfg.Iterations != 2500 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Config)
		err  error
	}{
		{"zero n", func(c *Config) { c.N = 0 }, grover.ErrInvalidSize},
		{"marked too large", func(c *Config) { c.Marked = c.N }, grover.ErrMarkedOutOfRange},
		{"negative marked", func(c *Config) { c.Marked = -1 }, grover.ErrMarkedOutOfRange},
		{"negative iterations", func(c *Config) { c.Iterations = -5 }, grover.ErrNegativeIterations},
		{"zero iterations", func(c *Config) { c.Iterations = 0 }, nil},
		{"last index", func(c *Config) { c.Marked = c.N - 1 }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mut(cfg)
			err := cfg.Validate()
			if tt.err == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("expected %v, got %v", tt.err, err)
			}
		})
	}

	cfg := DefaultConfig()
	cfg.FPS = 0
	if cfg.Validate() == nil {
		t.Error("expected error for zero fps")
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grover.yaml")

	cfg := DefaultConfig()
	cfg.N = 64
	cfg.Marked = 63
	cfg.Iterations = 200
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded %+v, want %+v", loaded, cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("n: 16\nmarked: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.N != 16 || cfg.Marked != 3 {
		t.Errorf("unexpected values: %+v", cfg)
	}
	if cfg.Iterations != DefaultIterations || cfg.FPS != DefaultFPS {
		t.Errorf("defaults not kept: %+v", cfg)
	}
}

func TestLoadInto_OverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	if err := os.WriteFile(path, []byte("marked: 0\niterations: 50\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadInto(path, GetPreset("animate"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.N != 1000 {
		t.Errorf("expected preset n 1000, got %d", cfg.N)
	}
	if cfg.Marked != 0 || cfg.Iterations != 50 {
		t.Errorf("file values not applied: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("n: [1, 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("classic")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.N != 100 || cfg.Marked != 20 || cfg.Iterations != 2500 {
		t.Errorf("unexpected classic preset: %+v", cfg)
	}

	small := GetPreset("small")
	if small.Marked != 0 {
		t.Errorf("expected marked 0, got %d", small.Marked)
	}

	cfg.N = 1
	if Presets["classic"].N != 100 {
		t.Error("GetPreset must not alias the preset table")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
