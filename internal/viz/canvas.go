package viz

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/skillwall/internal/show"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = rune(0x2800)

// Canvas is a braille dot grid. Every cell also remembers the colour of the
// last dot set in it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]color.RGBA
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]color.RGBA, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]color.RGBA, w)
	}
	c.Clear()
	return c
}

// Set sets a dot at (x, y) in sub-pixel coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int, col color.RGBA) {
	if x < 0 || y < 0 {
		return
	}
	cell, row := x/2, y/4
	if cell >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][cell] |= rune(pixelMap[y%4][x%2])
	c.Colors[row][cell] = col
}

// Lit reports whether the sub-pixel at (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = color.RGBA{}
		}
	}
}

// String renders the grid without colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render renders the grid with each cell in its dot colour.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if r == blank {
				b.WriteRune(r)
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(hexOf(c.Colors[i][j])).Render(string(r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func hexOf(c color.RGBA) lipgloss.Color {
	cc, _ := colorful.MakeColor(show.Straight(c))
	return lipgloss.Color(cc.Clamped().Hex())
}

// Surface draws display frames in logical pixels onto a braille canvas.
type Surface struct {
	canvas         *Canvas
	scaleX, scaleY float64
}

// NewSurface maps a w x h logical canvas onto c.
func NewSurface(c *Canvas, w, h float64) *Surface {
	return &Surface{
		canvas: c,
		scaleX: float64(c.Width*2) / w,
		scaleY: float64(c.Height*4) / h,
	}
}

func (s *Surface) Clear() { s.canvas.Clear() }

// FillCircle sets every dot whose centre lies inside the scaled circle.
// Circles smaller than a dot still light the dot under their centre.
func (s *Surface) FillCircle(cx, cy, r float64, col color.RGBA) {
	if col.A == 0 {
		return
	}
	x, y := cx*s.scaleX, cy*s.scaleY
	rx, ry := r*s.scaleX, r*s.scaleY
	if rx < 1 && ry < 1 {
		s.canvas.Set(int(x), int(y), col)
		return
	}
	x0, x1 := int(math.Floor(x-rx)), int(math.Ceil(x+rx))
	y0, y1 := int(math.Floor(y-ry)), int(math.Ceil(y+ry))
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			dx := (float64(px) + 0.5 - x) / rx
			dy := (float64(py) + 0.5 - y) / ry
			if dx*dx+dy*dy <= 1 {
				s.canvas.Set(px, py, col)
			}
		}
	}
}
