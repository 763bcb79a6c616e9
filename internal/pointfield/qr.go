package pointfield

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	qrcode "github.com/skip2/go-qrcode"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/san-kum/skillwall/internal/show"
)

// QROptions configures the QR grid walk.
type QROptions struct {
	Cap          int
	SizeFraction float64
	Stride       int
	// Threshold is the exclusive upper bound on every 8-bit channel for a
	// cell to count as dark.
	Threshold uint8
}

// QRSquare is the centred square the QR image is scaled into.
func QRSquare(w, h int, fraction float64) show.Rect {
	side := math.Min(float64(w), float64(h)) * fraction
	return show.Rect{
		X: float64(w)/2 - side/2,
		Y: float64(h)/2 - side/2,
		W: side,
		H: side,
	}
}

// QR rasterizes src centred on a white w x h canvas and walks the QR square
// column by column on a Stride grid, keeping dark cells. The result is
// truncated to Cap, never padded.
func QR(src image.Image, w, h int, opts QROptions) (show.PointField, error) {
	if src == nil {
		return nil, errors.New("qr: no image")
	}
	if w <= 0 || h <= 0 {
		return nil, show.ErrInvalidCanvas
	}
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	sq := QRSquare(w, h, opts.SizeFraction)
	dst := image.Rect(int(sq.X), int(sq.Y), int(math.Ceil(sq.MaxX())), int(math.Ceil(sq.MaxY())))
	draw.NearestNeighbor.Scale(canvas, dst, src, src.Bounds(), draw.Over, nil)

	stride := float64(opts.Stride)
	pts := make(show.PointField, 0, opts.Cap)
	for x := sq.X; x < sq.MaxX(); x += stride {
		for y := sq.Y; y < sq.MaxY(); y += stride {
			c := canvas.RGBAAt(int(x), int(y))
			if c.R < opts.Threshold && c.G < opts.Threshold && c.B < opts.Threshold {
				pts = append(pts, show.Point{X: x, Y: y})
			}
		}
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("qr: %w", show.ErrNoInk)
	}
	if len(pts) > opts.Cap {
		pts = pts[:opts.Cap]
	}
	return pts, nil
}

// LoadQRImage decodes a PNG, JPEG, GIF, BMP or WebP file.
func LoadQRImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// EncodeQR renders content as a size x size QR code.
func EncodeQR(content string, size int) (image.Image, error) {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	return q.Image(size), nil
}
