package export

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// kappa places cubic control points so four curves approximate a circle.
const kappa = 0.5522847498

// Raster draws anti-aliased circles onto an RGBA image.
type Raster struct {
	img *image.RGBA
	z   *vector.Rasterizer
}

func NewRaster(w, h int) *Raster {
	return &Raster{
		img: image.NewRGBA(image.Rect(0, 0, w, h)),
		z:   vector.NewRasterizer(1, 1),
	}
}

func (r *Raster) Image() *image.RGBA { return r.img }

// Clear makes every pixel transparent.
func (r *Raster) Clear() {
	clear(r.img.Pix)
}

func (r *Raster) FillCircle(cx, cy, rad float64, c color.RGBA) {
	if c.A == 0 || rad <= 0 {
		return
	}
	box := image.Rect(
		int(math.Floor(cx-rad)), int(math.Floor(cy-rad)),
		int(math.Ceil(cx+rad)), int(math.Ceil(cy+rad)),
	).Intersect(r.img.Bounds())
	if box.Empty() {
		return
	}

	r.z.Reset(box.Dx(), box.Dy())
	r.z.DrawOp = draw.Over
	x, y := float32(cx-float64(box.Min.X)), float32(cy-float64(box.Min.Y))
	rr := float32(rad)
	k := float32(kappa) * rr

	r.z.MoveTo(x+rr, y)
	r.z.CubeTo(x+rr, y+k, x+k, y+rr, x, y+rr)
	r.z.CubeTo(x-k, y+rr, x-rr, y+k, x-rr, y)
	r.z.CubeTo(x-rr, y-k, x-k, y-rr, x, y-rr)
	r.z.CubeTo(x+k, y-rr, x+rr, y-k, x+rr, y)
	r.z.ClosePath()
	r.z.Draw(r.img, box, image.NewUniform(c), image.Point{})
}

// Flatten composites the raster over an opaque background.
func (r *Raster) Flatten(bg color.RGBA) *image.RGBA {
	out := image.NewRGBA(r.img.Bounds())
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), r.img, r.img.Bounds().Min, draw.Over)
	return out
}
