// Package render turns world snapshots into flat discs.
//
// The world has no camera. Depth is faked by pushing each glob toward the
// centre of the tank along an ellipsoid, shrinking it with distance and
// fading its color into the background.
package render

import (
	"math"

	"github.com/san-kum/globsim/internal/lava"
)

const (
	// semi-axes of the push-in ellipsoid, in normalised tank units
	pushMajor = 1.5
	pushMinor = pushMajor / 2

	// discs smaller than this are not drawn
	minDrawRadius = 1.0
)

var pushFocus = math.Sqrt(pushMajor*pushMajor - pushMinor*pushMinor)

type Disc struct {
	ID     lava.ParticleID
	X, Y   float64
	Radius float64
	Depth  float64
	Color  lava.RGB
}

// Frame is a projected snapshot, drawn back to front.
type Frame struct {
	Tick       int
	Width      float64
	Height     float64
	Background lava.RGB
	Discs      []Disc
}

func Project(s lava.Snapshot) Frame {
	f := Frame{
		Tick:       s.Tick,
		Width:      s.Bounds.X,
		Height:     s.Bounds.Y,
		Background: s.Background,
		Discs:      make([]Disc, 0, len(s.Globs)),
	}
	for _, g := range s.Globs {
		d, ok := ProjectSprite(g, s.Bounds, s.Background)
		if ok {
			f.Discs = append(f.Discs, d)
		}
	}
	return f
}

// ProjectSprite projects one glob. It reports false when the disc would be
// too small (or inverted) to draw.
func ProjectSprite(g lava.Sprite, bounds lava.Vec3, bg lava.RGB) (Disc, bool) {
	cx, cy, cz := bounds.X/2, bounds.Y/2, bounds.Z/2

	push := PushIn(g.Pos, bounds)
	x := g.Pos.X + (cx-g.Pos.X)*push
	y := g.Pos.Y + (cy-g.Pos.Y)*push
	z := g.Pos.Z + (cz-g.Pos.Z)*push

	scale := ScaleFactor(z, bounds.Z)
	d := Disc{
		ID:     g.ID,
		X:      x*scale + (1-scale)*cx,
		Y:      y*scale + (1-scale)*cy,
		Radius: math.Trunc(g.Radius * scale),
		Depth:  z,
		Color:  Fade(g.Color, bg, scale),
	}
	return d, d.Radius >= minDrawRadius
}

// PushIn is the fraction of the way a point is pulled toward the tank
// centre. Points close to the centre get a negative value and are pushed
// outward instead.
func PushIn(p, bounds lava.Vec3) float64 {
	xr := (p.X - bounds.X/2) / (bounds.X / 2)
	yr := (p.Y - bounds.Y/2) / (bounds.Y / 2)
	zr := (p.Z - bounds.Z/2) / (bounds.Z / 2)

	fromCenter := math.Sqrt(xr*xr + yr*yr + zr*zr)
	if fromCenter == 0 {
		return 0
	}
	fromFocus := math.Sqrt(sq(xr*pushMajor) + sq(yr*pushMajor) + sq(zr*pushMinor))
	return (fromFocus - pushFocus) / fromCenter
}

// ScaleFactor is 1 at the front face and 0 at the back.
func ScaleFactor(z, depth float64) float64 {
	return 1 - z/depth
}

// Fade mixes c toward bg; scale 1 keeps c, scale 0 gives bg.
func Fade(c, bg lava.RGB, scale float64) lava.RGB {
	mix := func(a, b uint8) uint8 {
		v := int(float64(a)*scale + float64(b)*(1-scale))
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return uint8(v)
	}
	return lava.RGB{R: mix(c.R, bg.R), G: mix(c.G, bg.G), B: mix(c.B, bg.B)}
}

// Fit rescales the frame uniformly into a width x height viewport, centred.
func (f Frame) Fit(width, height float64) Frame {
	if f.Width <= 0 || f.Height <= 0 {
		return f
	}
	s := math.Min(width/f.Width, height/f.Height)
	ox := (width - f.Width*s) / 2
	oy := (height - f.Height*s) / 2

	out := f
	out.Width, out.Height = width, height
	out.Discs = make([]Disc, len(f.Discs))
	for i, d := range f.Discs {
		d.X = d.X*s + ox
		d.Y = d.Y*s + oy
		d.Radius *= s
		out.Discs[i] = d
	}
	return out
}

func sq(x float64) float64 { return x * x }
