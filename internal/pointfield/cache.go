package pointfield

import (
	"errors"
	"image"
	"log/slog"
	"math/rand"

	"github.com/san-kum/skillwall/internal/show"
)

// Options configures how every phase's field is built.
type Options struct {
	Text TextOptions
	QR   QROptions
}

// Cache holds one point field per phase, indexed by phase position.
// Fields are built once and never regenerated.
type Cache struct {
	fields   []show.PointField
	warnings []error
}

// Build generates every phase's field. qr may be nil, in which case the QR
// phase falls back to its label. A phase whose generator yields nothing gets
// a single point at the canvas centre so fields are never empty.
func Build(phases []show.Phase, w, h int, opts Options, qr image.Image, rng *rand.Rand, logger *slog.Logger) (*Cache, error) {
	if len(phases) == 0 {
		return nil, show.ErrNoPhases
	}
	if w <= 0 || h <= 0 {
		return nil, show.ErrInvalidCanvas
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := &Cache{fields: make([]show.PointField, len(phases))}
	for i, p := range phases {
		var (
			field show.PointField
			err   error
		)
		if p.IsQR() && qr != nil {
			field, err = QR(qr, w, h, opts.QR)
		} else {
			field, err = Text(p.Label, w, h, opts.Text, rng)
		}

		if err != nil {
			c.warnings = append(c.warnings, &show.PhaseError{Index: i, Key: p.Key, Wrapped: err})
			logger.Warn("point field degraded", "phase", p.Key, "points", len(field), "error", err)
		}
		if len(field) == 0 && p.IsQR() && qr != nil {
			field, err = Text(p.Label, w, h, opts.Text, rng)
			if err != nil && !errors.Is(err, show.ErrSamplingExhausted) {
				field = nil
			}
		}
		if len(field) == 0 {
			field = show.PointField{{X: float64(w) / 2, Y: float64(h) / 2}}
		}
		c.fields[i] = field
	}
	return c, nil
}

func (c *Cache) Field(i int) show.PointField { return c.fields[i] }

func (c *Cache) Len() int { return len(c.fields) }

// Warnings lists the phases whose fields fell short, as *show.PhaseError.
func (c *Cache) Warnings() []error { return c.warnings }
