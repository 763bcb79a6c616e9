package export

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/skillwall/internal/show"
)

var (
	orange = color.RGBA{R: 255, G: 140, B: 10, A: 255}
	bg     = color.RGBA{R: 10, G: 10, B: 10, A: 255}
)

type dotScene struct {
	steps int
	clock time.Duration
}

func (s *dotScene) Step(dt time.Duration) {
	s.steps++
	s.clock += dt
}

func (s *dotScene) Draw(dst show.Canvas) {
	dst.Clear()
	dst.FillCircle(10+float64(s.steps), 20, 5, orange)
}

func (s *dotScene) Size() (float64, float64) { return 64, 48 }

func TestSVG(t *testing.T) {
	s := NewSVG(100, 50, bg)
	s.FillCircle(10, 20, 1.5, orange)
	s.FillCircle(30, 20, 35, show.Fade(orange, 0.5))
	s.FillCircle(30, 20, 35, color.RGBA{})

	if s.Len() != 2 {
		t.Fatalf("expected 2 circles, got %d", s.Len())
	}
	out := s.String()
	for _, want := range []string{
		`width="100" height="50"`,
		`fill="#0a0a0a"`,
		`<circle cx="10.0" cy="20.0" r="1.5" fill="#ff8c0a"/>`,
		`fill-opacity="0.498"`,
		"</svg>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}

	s.Clear()
	if s.Len() != 0 {
		t.Error("expected no circles after clear")
	}
}

func TestRasterFillCircle(t *testing.T) {
	r := NewRaster(40, 40)
	r.FillCircle(20, 20, 8, orange)

	img := r.Image()
	if got := img.RGBAAt(20, 20); got != orange {
		t.Errorf("expected centre %v, got %v", orange, got)
	}
	if got := img.RGBAAt(2, 2); got.A != 0 {
		t.Errorf("expected corner transparent, got %v", got)
	}
	if got := img.RGBAAt(20, 30); got.A != 0 {
		t.Errorf("expected pixel outside radius transparent, got %v", got)
	}
}

func TestRasterClipsAtEdges(t *testing.T) {
	r := NewRaster(20, 20)
	r.FillCircle(0, 0, 6, orange)
	r.FillCircle(19, 19, 6, orange)
	r.FillCircle(-50, -50, 6, orange)

	img := r.Image()
	if img.RGBAAt(1, 1) != orange || img.RGBAAt(18, 18) != orange {
		t.Error("expected partially visible circles drawn")
	}
}

func TestRasterClearAndFlatten(t *testing.T) {
	r := NewRaster(10, 10)
	r.FillCircle(5, 5, 3, orange)
	r.Clear()
	if r.Image().RGBAAt(5, 5).A != 0 {
		t.Error("expected transparent after clear")
	}

	r.FillCircle(5, 5, 3, orange)
	flat := r.Flatten(bg)
	if flat.RGBAAt(0, 0) != bg {
		t.Errorf("expected background, got %v", flat.RGBAAt(0, 0))
	}
	if flat.RGBAAt(5, 5) != orange {
		t.Errorf("expected dot over background, got %v", flat.RGBAAt(5, 5))
	}
}

func TestAdvance(t *testing.T) {
	s := &dotScene{}
	Advance(s, time.Second, 60)
	if s.steps != 60 {
		t.Errorf("expected 60 steps, got %d", s.steps)
	}
	Advance(s, 0, 60)
	if s.steps != 60 {
		t.Error("expected no steps for zero duration")
	}
}

func TestRecordGIF(t *testing.T) {
	s := &dotScene{}
	anim, err := RecordGIF(s, time.Second, 10, bg)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(anim.Image) != 10 {
		t.Fatalf("expected 10 frames, got %d", len(anim.Image))
	}
	if anim.Delay[0] != 10 {
		t.Errorf("expected 10cs delay, got %d", anim.Delay[0])
	}
	if b := anim.Image[0].Bounds(); b != image.Rect(0, 0, 64, 48) {
		t.Errorf("unexpected frame bounds %v", b)
	}

	var buf bytes.Buffer
	if err := WriteGIF(&buf, anim); err != nil {
		t.Fatalf("write: %v", err)
	}
	decoded, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded.Image) != 10 {
		t.Errorf("expected 10 decoded frames, got %d", len(decoded.Image))
	}

	if _, err := RecordGIF(s, 0, 10, bg); err == nil {
		t.Error("expected error for zero duration")
	}
	if err := WriteGIF(&buf, &gif.GIF{}); err == nil {
		t.Error("expected error for empty animation")
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, &dotScene{}, bg); err != nil {
		t.Fatalf("write: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("unexpected size %v", b)
	}
	r, g, b, _ := img.At(10, 20).RGBA()
	if r>>8 != 255 || g>>8 != 140 || b>>8 != 10 {
		t.Errorf("expected dot colour at centre")
	}
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, &dotScene{}, bg); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), `<circle cx="10.0" cy="20.0" r="5.0"`) {
		t.Error("expected the scene's circle in output")
	}
}
