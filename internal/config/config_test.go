package config

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/skillwall/internal/show"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if len(cfg.Phases) != 8 {
		t.Errorf("expected 8 phases, got %d", len(cfg.Phases))
	}
	if cfg.Phases[0].Key != show.KeyIntro {
		t.Errorf("expected intro first, got %s", cfg.Phases[0].Key)
	}
	if cfg.Phases[len(cfg.Phases)-1].Key != show.KeyQR {
		t.Errorf("expected qr last, got %s", cfg.Phases[len(cfg.Phases)-1].Key)
	}
}

func TestPhaseList(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Phases = append(cfg.Phases, PhaseConfig{Key: "Welding", DurationMs: 1500})

	phases := cfg.PhaseList()
	if phases[1].Duration != 9*time.Second {
		t.Errorf("expected 9s, got %v", phases[1].Duration)
	}
	last := phases[len(phases)-1]
	if last.Label != "Welding" {
		t.Errorf("expected label to default to key, got %q", last.Label)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Canvas.Width = 0 }},
		{"no phases", func(c *Config) { c.Phases = nil }},
		{"duplicate key", func(c *Config) { c.Phases[2].Key = c.Phases[1].Key }},
		{"zero duration", func(c *Config) { c.Phases[1].DurationMs = 0 }},
		{"fraction above one", func(c *Config) { c.Morph.Fraction = 1.5 }},
		{"bad colour", func(c *Config) { c.Bubbles.TeachColor = "orange" }},
		{"inverted sizes", func(c *Config) { c.Bubbles.MinSize = 200 }},
		{"zero stride", func(c *Config) { c.QR.Stride = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestValidate_NoPhasesSentinel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Phases = nil
	if err := cfg.Validate(); !errors.Is(err, show.ErrNoPhases) {
		t.Errorf("expected ErrNoPhases, got %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wall.yaml")
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Phases = cfg.Phases[:3]

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Seed != 42 {
		t.Errorf("expected seed 42, got %d", loaded.Seed)
	}
	if len(loaded.Phases) != 3 {
		t.Errorf("expected 3 phases, got %d", len(loaded.Phases))
	}
	if loaded.Bubbles.Damping != DefaultDamping {
		t.Errorf("expected damping %f, got %f", DefaultDamping, loaded.Bubbles.Damping)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("quick")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Phases[1].DurationMs != 3000 {
		t.Errorf("expected 3000ms, got %d", cfg.Phases[1].DurationMs)
	}

	cfg.Phases[1].DurationMs = 1
	again := GetPreset("quick")
	if again.Phases[1].DurationMs != 3000 {
		t.Error("preset was mutated through a returned copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if _, err := Resolve("nonexistent"); !errors.Is(err, show.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != 3 {
		t.Fatalf("expected 3 presets, got %v", presets)
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestRegions(t *testing.T) {
	cfg := DefaultConfig()
	teach, learn := cfg.Regions(1000, 500)
	if teach.MaxX() > learn.X {
		t.Errorf("teach region %+v overlaps learn region %+v", teach, learn)
	}
	if teach.H != 400 {
		t.Errorf("expected height 400, got %f", teach.H)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff8c0a")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if c.R != 255 || c.G != 140 || c.B != 10 || c.A != 255 {
		t.Errorf("unexpected colour %+v", c)
	}
}
