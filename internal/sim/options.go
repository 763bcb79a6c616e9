package sim

import (
	"time"

	"github.com/san-kum/skillwall/internal/config"
	"github.com/san-kum/skillwall/internal/morph"
	"github.com/san-kum/skillwall/internal/physics"
	"github.com/san-kum/skillwall/internal/pointfield"
)

func MorphConfig(cfg *config.Config) morph.Config {
	m := cfg.Morph
	return morph.Config{
		Fraction:   m.Fraction,
		TextPoints: m.TextPoints,
		QRPoints:   m.QRPoints,
		TextDot:    m.TextDot,
		QRDot:      m.QRDot,
		Gradient: morph.NewGradient(
			config.MustColor(m.ColorA),
			config.MustColor(m.ColorB),
			time.Duration(m.ColorPeriodMs*float64(time.Millisecond)),
		),
	}
}

func BubbleParams(cfg *config.Config) physics.Params {
	b := cfg.Bubbles
	return physics.Params{
		MaxPerSide:        b.MaxPerSide,
		MinSize:           b.MinSize,
		MaxSize:           b.MaxSize,
		Margin:            b.Margin,
		PlacementAttempts: b.PlacementAttempts,
		MinSpeed:          b.MinSpeed,
		MaxSpeed:          b.MaxSpeed,
		Damping:           b.Damping,
		Fade:              cfg.FadeDuration(),
	}
}

func FieldOptions(cfg *config.Config) pointfield.Options {
	return pointfield.Options{
		Text: pointfield.TextOptions{
			Target:              cfg.Morph.TextPoints,
			FontScale:           cfg.Morph.FontScale,
			MaxAttemptsPerPoint: cfg.Morph.MaxAttemptsPerPoint,
		},
		QR: pointfield.QROptions{
			Cap:          cfg.Morph.QRPoints,
			SizeFraction: cfg.QR.SizeFraction,
			Stride:       cfg.QR.Stride,
			Threshold:    cfg.QR.Threshold,
		},
	}
}
