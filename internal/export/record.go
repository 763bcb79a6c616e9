package export

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/png"
	"io"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/san-kum/skillwall/internal/show"
)

// Scene is a steppable display, such as a running session.
type Scene interface {
	Step(dt time.Duration)
	Draw(dst show.Canvas)
	Size() (w, h float64)
}

// Advance steps scene until d of frame time has passed at fps.
func Advance(scene Scene, d time.Duration, fps int) {
	frame := frameTime(fps)
	for t := time.Duration(0); t < d; t += frame {
		scene.Step(frame)
	}
}

func frameTime(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}

// RecordGIF steps scene for d at fps and captures every frame.
func RecordGIF(scene Scene, d time.Duration, fps int, bg color.RGBA) (*gif.GIF, error) {
	if d <= 0 {
		return nil, fmt.Errorf("record: duration must be positive, got %v", d)
	}
	w, h := scene.Size()
	r := NewRaster(int(w), int(h))
	frame := frameTime(fps)
	delay := int(frame / (10 * time.Millisecond))
	if delay < 2 {
		delay = 2
	}

	anim := &gif.GIF{LoopCount: 0}
	for t := time.Duration(0); t < d; t += frame {
		scene.Step(frame)
		scene.Draw(r)
		anim.Image = append(anim.Image, quantize(r.Flatten(bg)))
		anim.Delay = append(anim.Delay, delay)
	}
	return anim, nil
}

func quantize(img image.Image) *image.Paletted {
	p := image.NewPaletted(img.Bounds(), palette.Plan9)
	xdraw.FloydSteinberg.Draw(p, p.Bounds(), img, img.Bounds().Min)
	return p
}

func WriteGIF(w io.Writer, anim *gif.GIF) error {
	if len(anim.Image) == 0 {
		return fmt.Errorf("record: no frames")
	}
	return gif.EncodeAll(w, anim)
}

// WritePNG draws the scene's current frame and encodes it as PNG.
func WritePNG(w io.Writer, scene Scene, bg color.RGBA) error {
	sw, sh := scene.Size()
	r := NewRaster(int(sw), int(sh))
	scene.Draw(r)
	return png.Encode(w, r.Flatten(bg))
}

// WriteSVG draws the scene's current frame as an SVG document.
func WriteSVG(w io.Writer, scene Scene, bg color.RGBA) error {
	sw, sh := scene.Size()
	s := NewSVG(sw, sh, bg)
	scene.Draw(s)
	_, err := s.WriteTo(w)
	return err
}
