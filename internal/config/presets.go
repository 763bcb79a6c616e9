package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/skillwall/internal/show"
)

var Presets = map[string]*Config{
	"ceid":     DefaultConfig(),
	"quick":    quickPreset(),
	"portrait": portraitPreset(),
}

// quick shortens every phase to a third and thins the point clouds, for
// previews and recordings.
func quickPreset() *Config {
	cfg := DefaultConfig()
	for i := range cfg.Phases {
		cfg.Phases[i].DurationMs /= 3
	}
	cfg.Morph.TextPoints = 800
	cfg.Morph.QRPoints = 3000
	cfg.Source.Offline = true
	return cfg
}

func portraitPreset() *Config {
	cfg := DefaultConfig()
	cfg.Canvas = CanvasConfig{Width: 1080, Height: 1920}
	cfg.Bubbles.TeachRegion = RegionConfig{X: 0.05, Y: 0.02, W: 0.9, H: 0.26}
	cfg.Bubbles.LearnRegion = RegionConfig{X: 0.05, Y: 0.72, W: 0.9, H: 0.26}
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// Resolve returns the preset or an error naming the available ones.
func Resolve(name string) (*Config, error) {
	cfg := GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s (available: %v)", show.ErrUnknownPreset, name, ListPresets())
	}
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
