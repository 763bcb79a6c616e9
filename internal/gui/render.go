package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/skillwall/internal/show"
)

// Canvas draws session frames straight into the current raylib frame in
// window pixels. It must only be used between BeginDrawing and EndDrawing.
type Canvas struct{}

// Clear is a no-op: the frame is cleared to the background colour before
// the session draws.
func (c *Canvas) Clear() {}

func (c *Canvas) FillCircle(cx, cy, r float64, col color.RGBA) {
	if col.A == 0 {
		return
	}
	rl.DrawCircleV(rl.NewVector2(float32(cx), float32(cy)), float32(r), toRL(col))
}

func toRL(c color.RGBA) rl.Color {
	n := show.Straight(c)
	return rl.NewColor(n.R, n.G, n.B, n.A)
}
