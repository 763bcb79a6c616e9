package physics

import (
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/skillwall/internal/show"
)

type Params struct {
	MaxPerSide        int
	MinSize           float64
	MaxSize           float64
	Margin            float64
	PlacementAttempts int
	MinSpeed          float64 // px/ms
	MaxSpeed          float64 // px/ms
	Damping           float64
	Fade              time.Duration
}

// Bubble is one respondent's circle.
type Bubble struct {
	Side   show.Side
	X, Y   float64
	VX, VY float64
	Size   float64
	// Fallback marks a bubble placed on top of others after every
	// placement attempt overlapped.
	Fallback bool
}

func (b *Bubble) Radius() float64 { return b.Size / 2 }

// Center is the bubble centre in region-local pixels.
func (b *Bubble) Center() show.Point {
	r := b.Radius()
	return show.Point{X: b.X + r, Y: b.Y + r}
}

func (b *Bubble) Speed() float64 { return math.Hypot(b.VX, b.VY) }

// Bubbles owns every live bubble and both side regions.
type Bubbles struct {
	params  Params
	regions [2]show.Rect
	items   []*Bubble
	rng     *rand.Rand

	fading   bool
	fadeLeft time.Duration
	onFaded  func()
}

func New(params Params, teach, learn show.Rect, rng *rand.Rand) *Bubbles {
	return &Bubbles{
		params:  params,
		regions: [2]show.Rect{teach, learn},
		rng:     rng,
	}
}

// SetRegions replaces the side regions. Live bubbles keep their local
// positions where they still fit; bubbles in a shrunken region are scaled
// down and pulled back inside.
func (b *Bubbles) SetRegions(teach, learn show.Rect) {
	b.regions = [2]show.Rect{teach, learn}
	for _, it := range b.items {
		b.contain(it)
	}
}

// fit is the largest diameter a region can hold.
func fit(rect show.Rect) float64 {
	return math.Max(0, math.Min(rect.W, rect.H))
}

func (b *Bubbles) Region(s show.Side) show.Rect { return b.regions[s] }

// Clear destroys every bubble immediately.
func (b *Bubbles) Clear() {
	clear(b.items)
	b.items = b.items[:0]
}

// Render builds the bubble set for a phase. Reserved phases clear any
// leftovers; a phase without a bucket is left alone. Counts are clamped to
// MaxPerSide.
func (b *Bubbles) Render(key string, buckets show.Buckets) {
	if show.IsReserved(key) {
		b.Clear()
		return
	}
	bucket, ok := buckets[key]
	if !ok {
		return
	}
	for _, side := range []show.Side{show.Teach, show.Learn} {
		n := min(bucket.Count(side), b.params.MaxPerSide)
		for i := 0; i < n; i++ {
			b.Place(side)
		}
	}
}

// Place adds one bubble to side. Its diameter never exceeds the region's
// width or height. It tries PlacementAttempts random spots
// and keeps the first one clear of every same-side bubble by the margin;
// when none is clear the last attempt is kept and the bubble is marked
// Fallback.
func (b *Bubbles) Place(side show.Side) *Bubble {
	p := b.params
	rect := b.regions[side]

	// regions narrower than MinSize get bubbles exactly as wide as they are
	maxSize := math.Min(p.MaxSize, fit(rect))
	minSize := math.Min(p.MinSize, maxSize)
	size := maxSize
	if minSize < maxSize {
		size = minSize + b.rng.Float64()*(maxSize-minSize)
	}
	nb := &Bubble{Side: side, Size: size}

	existing := b.side(side)
	free := false
	for attempt := 0; attempt < p.PlacementAttempts && !free; attempt++ {
		nb.X = b.rng.Float64() * math.Max(1, rect.W-size)
		nb.Y = b.rng.Float64() * math.Max(1, rect.H-size)
		free = !b.overlapsAny(nb, existing)
	}
	nb.Fallback = !free

	speed := p.MinSpeed + b.rng.Float64()*(p.MaxSpeed-p.MinSpeed)
	angle := b.rng.Float64() * 2 * math.Pi
	nb.VX = math.Cos(angle) * speed
	nb.VY = math.Sin(angle) * speed

	b.items = append(b.items, nb)
	return nb
}

func (b *Bubbles) overlapsAny(nb *Bubble, others []*Bubble) bool {
	c := nb.Center()
	for _, o := range others {
		oc := o.Center()
		if math.Hypot(c.X-oc.X, c.Y-oc.Y) < nb.Radius()+o.Radius()+b.params.Margin {
			return true
		}
	}
	return false
}

func (b *Bubbles) side(s show.Side) []*Bubble {
	out := make([]*Bubble, 0, len(b.items))
	for _, it := range b.items {
		if it.Side == s {
			out = append(out, it)
		}
	}
	return out
}

// All returns copies of the live bubbles in creation order.
func (b *Bubbles) All() []Bubble {
	out := make([]Bubble, len(b.items))
	for i, it := range b.items {
		out[i] = *it
	}
	return out
}

func (b *Bubbles) Len() int { return len(b.items) }

func (b *Bubbles) Count(s show.Side) int {
	n := 0
	for _, it := range b.items {
		if it.Side == s {
			n++
		}
	}
	return n
}
