// Package morph draws the particle cloud that eases between phase shapes.
package morph

import (
	"image/color"
	"math"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/skillwall/internal/show"
)

// Fields supplies the point field for each phase index.
type Fields interface {
	Field(i int) show.PointField
}

type Config struct {
	// Fraction of a phase's duration spent morphing before the shape holds.
	Fraction   float64
	TextPoints int
	QRPoints   int
	TextDot    float64
	QRDot      float64
	Gradient   Gradient
}

// Blend is the half-cosine eased morph factor. It is 0 when the schedule is
// not morphing, rises monotonically through the morph window and holds at 1
// afterwards.
func Blend(s show.Schedule, duration time.Duration, fraction float64) float64 {
	if !s.Morphing() {
		return 0
	}
	window := float64(duration) * fraction
	if window <= 0 {
		return 1
	}
	raw := clamp01(float64(s.Elapsed) / window)
	return 0.5 - 0.5*math.Cos(math.Pi*raw)
}

// Gradient pulses between two colours on a sine of the session clock.
type Gradient struct {
	A, B   colorful.Color
	Period time.Duration
}

func NewGradient(a, b color.RGBA, period time.Duration) Gradient {
	ca, _ := colorful.MakeColor(a)
	cb, _ := colorful.MakeColor(b)
	return Gradient{A: ca, B: cb, Period: period}
}

// Weight is the blend weight toward B at clock, in [0,1].
func (g Gradient) Weight(clock time.Duration) float64 {
	if g.Period <= 0 {
		return 0
	}
	return math.Sin(2*math.Pi*float64(clock)/float64(g.Period))/2 + 0.5
}

func (g Gradient) At(clock time.Duration) color.RGBA {
	r, gr, b := g.A.BlendRgb(g.B, g.Weight(clock)).Clamped().RGB255()
	return color.RGBA{R: r, G: gr, B: b, A: 255}
}

type Renderer struct {
	phases []show.Phase
	fields Fields
	cfg    Config
}

func NewRenderer(phases []show.Phase, fields Fields, cfg Config) *Renderer {
	return &Renderer{phases: phases, fields: fields, cfg: cfg}
}

// DrawCount is the number of dots drawn while phase i is current.
func (r *Renderer) DrawCount(i int) int {
	if r.phases[i].IsQR() {
		return r.cfg.QRPoints
	}
	return r.cfg.TextPoints
}

func (r *Renderer) DotSize(i int) float64 {
	if r.phases[i].IsQR() {
		return r.cfg.QRDot
	}
	return r.cfg.TextDot
}

// Blend is the morph factor for s under this renderer's phases.
func (r *Renderer) Blend(s show.Schedule) float64 {
	return Blend(s, r.phases[s.Current].Duration, r.cfg.Fraction)
}

// Draw clears dst and draws one frame of the cloud. clock is total session
// time and drives the colour pulse. It returns the morph factor used.
func (r *Renderer) Draw(dst show.Canvas, s show.Schedule, clock time.Duration) float64 {
	dst.Clear()

	t := r.Blend(s)
	from := r.fields.Field(s.Previous)
	to := r.fields.Field(s.Current)
	c := r.cfg.Gradient.At(clock)
	radius := r.DotSize(s.Current) / 2

	n := r.DrawCount(s.Current)
	for i := 0; i < n; i++ {
		p := from.At(i).Lerp(to.At(i), t)
		dst.FillCircle(p.X, p.Y, radius, c)
	}
	return t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
