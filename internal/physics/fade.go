package physics

import (
	"image/color"
	"time"

	"github.com/san-kum/skillwall/internal/show"
)

// FadeOut starts fading every live bubble. When the fade delay has passed
// in frame time the bubbles are destroyed and done runs. With no bubbles
// done runs at once. Calling FadeOut again while a fade is pending replaces
// the pending callback, so only the latest rebuild happens.
func (b *Bubbles) FadeOut(done func()) {
	if len(b.items) == 0 {
		b.fading = false
		b.onFaded = nil
		if done != nil {
			done()
		}
		return
	}
	if !b.fading {
		b.fading = true
		b.fadeLeft = b.params.Fade
	}
	b.onFaded = done
}

func (b *Bubbles) Fading() bool { return b.fading }

// Opacity is 1 for live bubbles and ramps to 0 over the fade window.
func (b *Bubbles) Opacity() float64 {
	if !b.fading {
		return 1
	}
	if b.params.Fade <= 0 {
		return 0
	}
	return float64(b.fadeLeft) / float64(b.params.Fade)
}

func (b *Bubbles) tickFade(dt time.Duration) {
	if !b.fading {
		return
	}
	b.fadeLeft -= dt
	if b.fadeLeft > 0 {
		return
	}
	b.fading = false
	b.Clear()
	done := b.onFaded
	b.onFaded = nil
	if done != nil {
		done()
	}
}

// Draw paints every bubble at its canvas position, in creation order.
func (b *Bubbles) Draw(dst show.Canvas, teach, learn color.RGBA) {
	alpha := b.Opacity()
	cols := [2]color.RGBA{show.Fade(teach, alpha), show.Fade(learn, alpha)}
	for _, it := range b.items {
		rect := b.regions[it.Side]
		c := it.Center()
		dst.FillCircle(rect.X+c.X, rect.Y+c.Y, it.Radius(), cols[it.Side])
	}
}
