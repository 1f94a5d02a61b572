package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/globsim/internal/lava"
	"github.com/san-kum/globsim/internal/render"
)

// upper half block: foreground paints the top pixel, background the bottom
const halfBlock = "▀"

// Canvas is a grid of terminal cells, each holding two stacked pixels, so
// pixels come out roughly square.
type Canvas struct {
	Width, Height int
	Pixels        [][]lava.RGB
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Pixels: make([][]lava.RGB, h*2),
	}
	for i := range c.Pixels {
		c.Pixels[i] = make([]lava.RGB, w)
	}
	return c
}

// PixelSize is the canvas size in pixels.
func (c *Canvas) PixelSize() (int, int) { return c.Width, c.Height * 2 }

func (c *Canvas) Set(x, y int, col lava.RGB) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height*2 {
		return
	}
	c.Pixels[y][x] = col
}

func (c *Canvas) Fill(col lava.RGB) {
	for i := range c.Pixels {
		for j := range c.Pixels[i] {
			c.Pixels[i][j] = col
		}
	}
}

// FillCircle paints every pixel whose centre lies inside the circle. Circles
// smaller than a pixel still paint the pixel under their centre.
func (c *Canvas) FillCircle(cx, cy, r float64, col lava.RGB) {
	if r < 0.5 {
		c.Set(int(cx), int(cy), col)
		return
	}
	r2 := r * r
	for y := int(cy - r); y <= int(cy+r); y++ {
		dy := float64(y) + 0.5 - cy
		for x := int(cx - r); x <= int(cx+r); x++ {
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy <= r2 {
				c.Set(x, y, col)
			}
		}
	}
}

// Draw paints a projected frame scaled to fit the canvas.
func (c *Canvas) Draw(f render.Frame) {
	c.Fill(f.Background)
	w, h := c.PixelSize()
	fit := f.Fit(float64(w), float64(h))
	for _, d := range fit.Discs {
		c.FillCircle(d.X, d.Y, d.Radius, d.Color)
	}
}

func (c *Canvas) String() string {
	cache := make(map[[2]lava.RGB]lipgloss.Style)
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		top, bottom := c.Pixels[row*2], c.Pixels[row*2+1]
		for col := 0; col < c.Width; col++ {
			key := [2]lava.RGB{top[col], bottom[col]}
			style, ok := cache[key]
			if !ok {
				style = lipgloss.NewStyle().
					Foreground(lipgloss.Color(key[0].Hex())).
					Background(lipgloss.Color(key[1].Hex()))
				cache[key] = style
			}
			b.WriteString(style.Render(halfBlock))
		}
		b.WriteString("\n")
	}
	return b.String()
}
