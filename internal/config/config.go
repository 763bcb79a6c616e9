package config

import (
	"fmt"
	"image/color"
	"os"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/skillwall/internal/show"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth          = 1280
	DefaultHeight         = 720
	DefaultMorphFraction  = 0.45
	DefaultTextPoints     = 2000
	DefaultQRPoints       = 7000
	DefaultTextDot        = 3.0
	DefaultQRDot          = 4.0
	DefaultColorPeriodMs  = 5236.0 // 50 frames per radian at 60fps
	DefaultFontScale      = 0.125
	DefaultAttemptsFactor = 500
	DefaultMaxPerSide     = 30
	DefaultMinSize        = 70.0
	DefaultMaxSize        = 110.0
	DefaultMargin         = 4.0
	DefaultPlacements     = 80
	DefaultMinSpeed       = 0.02
	DefaultMaxSpeed       = 0.05
	DefaultDamping        = 0.98
	DefaultFadeMs         = 600
	DefaultRefreshSeconds = 60
	DefaultTimeoutSeconds = 15

	DefaultSourceURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vR99IwneoO__xn9mLdq890DqeTBmNjhCdxRDnLUSFQsBshX3E0rZ_LHDHY550jE-YYXqNNhv77NgzAj/pub?output=tsv"
	DefaultTeachColumn = "SKILLS_TEACH"
	DefaultLearnColumn = "SKILLS_LEARN"
)

type Config struct {
	Canvas  CanvasConfig  `yaml:"canvas"`
	Phases  []PhaseConfig `yaml:"phases"`
	Morph   MorphConfig   `yaml:"morph"`
	QR      QRConfig      `yaml:"qr"`
	Bubbles BubbleConfig  `yaml:"bubbles"`
	Source  SourceConfig  `yaml:"source"`
	Seed    int64         `yaml:"seed"`
}

type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type PhaseConfig struct {
	Key        string `yaml:"key"`
	Label      string `yaml:"label"`
	DurationMs int    `yaml:"duration_ms"`
}

type MorphConfig struct {
	Fraction      float64 `yaml:"fraction"`
	TextPoints    int     `yaml:"text_points"`
	QRPoints      int     `yaml:"qr_points"`
	TextDot       float64 `yaml:"text_dot"`
	QRDot         float64 `yaml:"qr_dot"`
	ColorA        string  `yaml:"color_a"`
	ColorB        string  `yaml:"color_b"`
	ColorPeriodMs float64 `yaml:"color_period_ms"`
	// FontScale is the label font size as a fraction of canvas height.
	FontScale float64 `yaml:"font_scale"`
	// MaxAttemptsPerPoint bounds rejection sampling at TextPoints times this.
	MaxAttemptsPerPoint int `yaml:"max_attempts_per_point"`
}

type QRConfig struct {
	Image        string  `yaml:"image"`
	URL          string  `yaml:"url"`
	SizeFraction float64 `yaml:"size_fraction"`
	Stride       int     `yaml:"stride"`
	Threshold    uint8   `yaml:"threshold"`
}

// RegionConfig is a rectangle in canvas fractions.
type RegionConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type BubbleConfig struct {
	MaxPerSide        int          `yaml:"max_per_side"`
	MinSize           float64      `yaml:"min_size"`
	MaxSize           float64      `yaml:"max_size"`
	Margin            float64      `yaml:"margin"`
	PlacementAttempts int          `yaml:"placement_attempts"`
	MinSpeed          float64      `yaml:"min_speed"`
	MaxSpeed          float64      `yaml:"max_speed"`
	Damping           float64      `yaml:"damping"`
	FadeMs            int          `yaml:"fade_ms"`
	TeachRegion       RegionConfig `yaml:"teach_region"`
	LearnRegion       RegionConfig `yaml:"learn_region"`
	TeachColor        string       `yaml:"teach_color"`
	LearnColor        string       `yaml:"learn_color"`
}

type SourceConfig struct {
	URL            string `yaml:"url"`
	TeachColumn    string `yaml:"teach_column"`
	LearnColumn    string `yaml:"learn_column"`
	RefreshSeconds int    `yaml:"refresh_seconds"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Offline        bool   `yaml:"offline"`
}

func DefaultPhases() []PhaseConfig {
	return []PhaseConfig{
		{Key: show.KeyIntro, Label: "CEID Exchange", DurationMs: 7000},
		{Key: "Fabrication", Label: "Fabrication", DurationMs: 9000},
		{Key: "Computer-aided Design", Label: "Computer-aided Design", DurationMs: 9000},
		{Key: "Sewing & Textiles", Label: "Sewing & Textiles", DurationMs: 9000},
		{Key: "3D Printing", Label: "3D Printing", DurationMs: 9000},
		{Key: "Laser Cutting", Label: "Laser Cutting", DurationMs: 9000},
		{Key: "Machining", Label: "Machining", DurationMs: 9000},
		{Key: show.KeyQR, Label: "QR", DurationMs: 10000},
	}
}

func DefaultConfig() *Config {
	return &Config{
		Canvas: CanvasConfig{Width: DefaultWidth, Height: DefaultHeight},
		Phases: DefaultPhases(),
		Morph: MorphConfig{
			Fraction:            DefaultMorphFraction,
			TextPoints:          DefaultTextPoints,
			QRPoints:            DefaultQRPoints,
			TextDot:             DefaultTextDot,
			QRDot:               DefaultQRDot,
			ColorA:              "#ff8c0a",
			ColorB:              "#198cfa",
			ColorPeriodMs:       DefaultColorPeriodMs,
			FontScale:           DefaultFontScale,
			MaxAttemptsPerPoint: DefaultAttemptsFactor,
		},
		QR: QRConfig{
			Image:        "qr.png",
			SizeFraction: 0.4,
			Stride:       4,
			Threshold:    200,
		},
		Bubbles: BubbleConfig{
			MaxPerSide:        DefaultMaxPerSide,
			MinSize:           DefaultMinSize,
			MaxSize:           DefaultMaxSize,
			Margin:            DefaultMargin,
			PlacementAttempts: DefaultPlacements,
			MinSpeed:          DefaultMinSpeed,
			MaxSpeed:          DefaultMaxSpeed,
			Damping:           DefaultDamping,
			FadeMs:            DefaultFadeMs,
			TeachRegion:       RegionConfig{X: 0.02, Y: 0.1, W: 0.28, H: 0.8},
			LearnRegion:       RegionConfig{X: 0.7, Y: 0.1, W: 0.28, H: 0.8},
			TeachColor:        "#ff8c0a",
			LearnColor:        "#198cfa",
		},
		Source: SourceConfig{
			URL:            DefaultSourceURL,
			TeachColumn:    DefaultTeachColumn,
			LearnColumn:    DefaultLearnColumn,
			RefreshSeconds: DefaultRefreshSeconds,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy so presets can be handed out and mutated.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Phases = append([]PhaseConfig(nil), c.Phases...)
	return &cp
}

func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas %dx%d: %w", c.Canvas.Width, c.Canvas.Height, show.ErrInvalidCanvas)
	}
	if len(c.Phases) == 0 {
		return show.ErrNoPhases
	}
	seen := make(map[string]bool, len(c.Phases))
	for i, p := range c.Phases {
		if p.Key == "" {
			return fmt.Errorf("phase %d: key must not be empty", i)
		}
		if seen[p.Key] {
			return fmt.Errorf("phase %d: duplicate key %q", i, p.Key)
		}
		seen[p.Key] = true
		if p.DurationMs <= 0 {
			return fmt.Errorf("phase %q: duration must be positive, got %d", p.Key, p.DurationMs)
		}
	}
	if c.Morph.Fraction <= 0 || c.Morph.Fraction > 1 {
		return fmt.Errorf("morph fraction must be in (0,1], got %f", c.Morph.Fraction)
	}
	if c.Morph.TextPoints <= 0 || c.Morph.QRPoints <= 0 {
		return fmt.Errorf("point counts must be positive, got text=%d qr=%d", c.Morph.TextPoints, c.Morph.QRPoints)
	}
	if c.Morph.ColorPeriodMs <= 0 {
		return fmt.Errorf("color period must be positive, got %f", c.Morph.ColorPeriodMs)
	}
	if c.QR.Stride <= 0 {
		return fmt.Errorf("qr stride must be positive, got %d", c.QR.Stride)
	}
	b := c.Bubbles
	if b.MinSize <= 0 || b.MaxSize < b.MinSize {
		return fmt.Errorf("bubble sizes must satisfy 0 < min <= max, got [%f, %f]", b.MinSize, b.MaxSize)
	}
	if b.MaxSpeed < b.MinSpeed || b.MinSpeed < 0 {
		return fmt.Errorf("bubble speeds must satisfy 0 <= min <= max, got [%f, %f]", b.MinSpeed, b.MaxSpeed)
	}
	if b.MaxPerSide < 0 || b.PlacementAttempts <= 0 {
		return fmt.Errorf("bubble limits must be positive")
	}
	for _, hex := range []string{c.Morph.ColorA, c.Morph.ColorB, b.TeachColor, b.LearnColor} {
		if _, err := ParseColor(hex); err != nil {
			return err
		}
	}
	return nil
}

// PhaseList converts the configured phases to the engine's form.
func (c *Config) PhaseList() []show.Phase {
	phases := make([]show.Phase, len(c.Phases))
	for i, p := range c.Phases {
		label := p.Label
		if label == "" {
			label = p.Key
		}
		phases[i] = show.Phase{
			Key:      p.Key,
			Label:    label,
			Duration: time.Duration(p.DurationMs) * time.Millisecond,
		}
	}
	return phases
}

// Regions returns the teach and learn bubble regions on a w x h canvas.
func (c *Config) Regions(w, h float64) (teach, learn show.Rect) {
	t, l := c.Bubbles.TeachRegion, c.Bubbles.LearnRegion
	return show.Rect{X: t.X, Y: t.Y, W: t.W, H: t.H}.Scale(w, h),
		show.Rect{X: l.X, Y: l.Y, W: l.W, H: l.H}.Scale(w, h)
}

func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Source.RefreshSeconds) * time.Second
}

func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Source.TimeoutSeconds) * time.Second
}

func (c *Config) FadeDuration() time.Duration {
	return time.Duration(c.Bubbles.FadeMs) * time.Millisecond
}

// ParseColor decodes a #rrggbb string into an opaque colour.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// MustColor is ParseColor for values already checked by Validate.
func MustColor(hex string) color.RGBA {
	c, err := ParseColor(hex)
	if err != nil {
		return color.RGBA{A: 255}
	}
	return c
}
