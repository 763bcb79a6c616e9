package physics

import (
	"math"
	"time"

	"github.com/san-kum/skillwall/internal/show"
)

// Step advances every bubble by dt: constant-velocity integration, wall
// reflection, same-side contact resolution, then the fade timer.
func (b *Bubbles) Step(dt time.Duration) {
	ms := float64(dt) / float64(time.Millisecond)

	for _, it := range b.items {
		it.X += it.VX * ms
		it.Y += it.VY * ms
		b.reflect(it)
	}

	b.resolveCollisions(show.Teach)
	b.resolveCollisions(show.Learn)

	// contact pushes may leave a bubble past a wall
	for _, it := range b.items {
		b.contain(it)
	}

	b.tickFade(dt)
}

// reflect clamps a bubble to its region and turns its velocity back inside.
// Wall bounces keep the full speed.
func (b *Bubbles) reflect(it *Bubble) {
	rect := b.regions[it.Side]
	if it.X <= 0 {
		it.X = 0
		it.VX = math.Abs(it.VX)
	} else if it.X+it.Size >= rect.W {
		it.X = rect.W - it.Size
		it.VX = -math.Abs(it.VX)
	}
	if it.Y <= 0 {
		it.Y = 0
		it.VY = math.Abs(it.VY)
	} else if it.Y+it.Size >= rect.H {
		it.Y = rect.H - it.Size
		it.VY = -math.Abs(it.VY)
	}
}

// contain shrinks a bubble that no longer fits its region and clamps its
// box inside.
func (b *Bubbles) contain(it *Bubble) {
	rect := b.regions[it.Side]
	it.Size = math.Min(it.Size, fit(rect))
	it.X = math.Max(0, math.Min(it.X, rect.W-it.Size))
	it.Y = math.Max(0, math.Min(it.Y, rect.H-it.Size))
}

func (b *Bubbles) resolveCollisions(s show.Side) {
	items := b.side(s)
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			b1, b2 := items[i], items[j]
			c1, c2 := b1.Center(), b2.Center()

			dx, dy := c2.X-c1.X, c2.Y-c1.Y
			dist := math.Hypot(dx, dy)
			minDist := b1.Radius() + b2.Radius() + b.params.Margin
			if dist <= 0 || dist >= minDist {
				continue
			}

			overlap := minDist - dist
			dx, dy = dx/dist, dy/dist
			b1.X -= dx * overlap / 2
			b1.Y -= dy * overlap / 2
			b2.X += dx * overlap / 2
			b2.Y += dy * overlap / 2

			d := b.params.Damping
			b1.VX, b1.VY = b1.VX*d, b1.VY*d
			b2.VX, b2.VY = b2.VX*d, b2.VY*d
		}
	}
}
