package pointfield

import (
	"fmt"
	"image"
	"math/rand"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/san-kum/skillwall/internal/show"
)

// TextOptions configures label sampling.
type TextOptions struct {
	Target int
	// FontScale is the font size as a fraction of canvas height.
	FontScale float64
	// MaxAttemptsPerPoint caps sampling at Target*MaxAttemptsPerPoint
	// candidates. Zero means no cap.
	MaxAttemptsPerPoint int
}

var (
	labelFontOnce sync.Once
	labelFont     *opentype.Font
	labelFontErr  error
)

func loadLabelFont() (*opentype.Font, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = opentype.Parse(gobold.TTF)
	})
	return labelFont, labelFontErr
}

// TextBand is the sampling band on a w x h canvas: the middle 80% of the
// width and the middle 40% of the height.
func TextBand(w, h int) show.Rect {
	fw, fh := float64(w), float64(h)
	return show.Rect{X: fw * 0.1, Y: fh * 0.3, W: fw * 0.8, H: fh * 0.4}
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// RenderLabel draws label in black, centred on a white w x h raster. The
// font shrinks when the label would overflow the sampling band.
func RenderLabel(label string, w, h int, fontScale float64) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, show.ErrInvalidCanvas
	}
	f, err := loadLabelFont()
	if err != nil {
		return nil, fmt.Errorf("parse label font: %w", err)
	}

	size := float64(h) * fontScale
	face, err := newFace(f, size)
	if err != nil {
		return nil, err
	}
	bandW := TextBand(w, h).W
	if adv := fixedToFloat(font.MeasureString(face, label)); adv > bandW {
		face.Close()
		size *= bandW * 0.95 / adv
		if face, err = newFace(f, size); err != nil {
			return nil, err
		}
	}
	defer face.Close()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	m := face.Metrics()
	adv := font.MeasureString(face, label)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(w)/2 - adv/2,
			Y: fixed.I(h)/2 + (m.Ascent-m.Descent)/2,
		},
	}
	d.DrawString(label)
	return img, nil
}

// Text samples target points on the label's ink. Candidates are drawn
// uniformly from the band and kept when the pixel under them is pure black.
//
// The loop terminates almost surely once any ink lies in the band; the
// attempt cap bounds the worst case. When it runs out the partial field is
// returned with ErrSamplingExhausted.
func Text(label string, w, h int, opts TextOptions, rng *rand.Rand) (show.PointField, error) {
	img, err := RenderLabel(label, w, h, opts.FontScale)
	if err != nil {
		return nil, err
	}
	band := TextBand(w, h)
	if !bandHasInk(img, band) {
		return nil, fmt.Errorf("label %q: %w", label, show.ErrNoInk)
	}

	maxAttempts := opts.Target * opts.MaxAttemptsPerPoint
	pts := make(show.PointField, 0, opts.Target)
	for attempts := 0; len(pts) < opts.Target; attempts++ {
		if maxAttempts > 0 && attempts >= maxAttempts {
			return pts, fmt.Errorf("label %q: %d of %d points after %d attempts: %w",
				label, len(pts), opts.Target, attempts, show.ErrSamplingExhausted)
		}
		x := band.X + rng.Float64()*band.W
		y := band.Y + rng.Float64()*band.H
		if isInk(img, int(x), int(y)) {
			pts = append(pts, show.Point{X: x, Y: y})
		}
	}
	return pts, nil
}

func isInk(img *image.RGBA, x, y int) bool {
	c := img.RGBAAt(x, y)
	return c.R == 0 && c.G == 0 && c.B == 0
}

func bandHasInk(img *image.RGBA, band show.Rect) bool {
	for y := int(band.Y); y < int(band.MaxY()); y++ {
		for x := int(band.X); x < int(band.MaxX()); x++ {
			if isInk(img, x, y) {
				return true
			}
		}
	}
	return false
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
