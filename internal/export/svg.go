package export

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/san-kum/skillwall/internal/show"
)

type circle struct {
	x, y, r float64
	c       color.RGBA
}

// SVG records drawn circles and writes them as an SVG document.
type SVG struct {
	Width, Height float64
	Background    color.RGBA
	circles       []circle
}

func NewSVG(w, h float64, bg color.RGBA) *SVG {
	return &SVG{Width: w, Height: h, Background: bg}
}

func (s *SVG) Clear() { s.circles = s.circles[:0] }

func (s *SVG) FillCircle(cx, cy, r float64, c color.RGBA) {
	if c.A == 0 {
		return
	}
	s.circles = append(s.circles, circle{cx, cy, r, c})
}

// Len is the number of circles recorded since the last Clear.
func (s *SVG) Len() int { return len(s.circles) }

func (s *SVG) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.Width, s.Height, s.Width, s.Height, hex(s.Background)))

	for _, c := range s.circles {
		n := show.Straight(c.c)
		if n.A == 255 {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, c.x, c.y, c.r, hex(c.c)))
			continue
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" fill-opacity="%.3f"/>
`, c.x, c.y, c.r, hex(c.c), float64(n.A)/255))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

func hex(c color.RGBA) string {
	n := show.Straight(c)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}
