package show

import (
	"image/color"
	"math"
	"time"
)

// Reserved phase keys. Neither renders bubbles.
const (
	KeyIntro = "intro"
	KeyQR    = "qr"
)

// Phase is one stage of the display cycle.
type Phase struct {
	Key      string
	Label    string
	Duration time.Duration
}

// Reserved reports whether the phase suppresses bubbles.
func (p Phase) Reserved() bool { return IsReserved(p.Key) }

// IsQR reports whether the phase renders the QR code instead of its label.
func (p Phase) IsQR() bool { return p.Key == KeyQR }

func IsReserved(key string) bool { return key == KeyIntro || key == KeyQR }

// Point is a position in canvas pixel space.
type Point struct {
	X, Y float64
}

// Lerp returns the linear interpolation between p and q at t.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// PointField is the ordered set of samples approximating one phase's shape.
type PointField []Point

// At indexes the field circularly so fields of different length can be paired.
func (f PointField) At(i int) Point {
	return f[i%len(f)]
}

// Bounds returns the smallest rectangle holding every point.
func (f PointField) Bounds() Rect {
	if len(f) == 0 {
		return Rect{}
	}
	minX, maxX := f[0].X, f[0].X
	minY, maxY := f[0].Y, f[0].Y
	for _, p := range f[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Rect is an axis-aligned rectangle in canvas pixel space.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) MaxX() float64 { return r.X + r.W }
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Contains reports whether p lies in [X, X+W] x [Y, Y+H].
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.MaxX() && p.Y >= r.Y && p.Y <= r.MaxY()
}

// Scale maps a rectangle given in canvas fractions onto a w x h canvas.
func (r Rect) Scale(w, h float64) Rect {
	return Rect{X: r.X * w, Y: r.Y * h, W: r.W * w, H: r.H * h}
}

// Side identifies which bubble region a respondent lands in.
type Side int

const (
	Teach Side = iota
	Learn
)

func (s Side) String() string {
	if s == Teach {
		return "teach"
	}
	return "learn"
}

// Bucket holds aggregated survey counts for one skill phase.
type Bucket struct {
	Teach int
	Learn int
}

// Count returns the bucket's count for side.
func (b Bucket) Count(s Side) int {
	if s == Teach {
		return b.Teach
	}
	return b.Learn
}

// Buckets maps phase keys to their counts. Reserved phases have no entry.
type Buckets map[string]Bucket

// Canvas is a drawing surface. Frontends implement it over a window, a
// terminal grid, a raster image or an SVG document.
type Canvas interface {
	// Clear resets the surface to transparent.
	Clear()
	FillCircle(cx, cy, r float64, c color.RGBA)
}

// Schedule is the scheduler's position in the phase cycle.
type Schedule struct {
	Current  int
	Previous int
	Elapsed  time.Duration
}

// Morphing reports whether the current shape is still blending in from the
// previous phase's shape.
func (s Schedule) Morphing() bool { return s.Current != s.Previous }

// Fade scales an opaque colour to alpha a in [0,1], keeping it
// alpha-premultiplied as image/color expects.
func Fade(c color.RGBA, a float64) color.RGBA {
	if a >= 1 {
		return c
	}
	if a <= 0 {
		return color.RGBA{}
	}
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

// Straight converts a premultiplied colour to straight alpha, for backends
// that blend non-premultiplied values.
func Straight(c color.RGBA) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
