package lava

import (
	"math"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit color.
type RGB struct {
	R, G, B uint8
}

var Black = RGB{}

func (c RGB) channels() [3]uint8 { return [3]uint8{c.R, c.G, c.B} }

func rgbFrom(ch [3]int) RGB {
	return RGB{uint8(clampInt(ch[0], 0, 255)), uint8(clampInt(ch[1], 0, 255)), uint8(clampInt(ch[2], 0, 255))}
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

// BlendArea mixes two colors weighted by the areas of discs with the given
// radii. Channels are truncated toward zero.
func BlendArea(a RGB, ra float64, b RGB, rb float64) RGB {
	areaA := math.Pi * ra * ra
	areaB := math.Pi * rb * rb
	total := areaA + areaB
	if total <= 0 {
		return a
	}
	ca, cb := a.channels(), b.channels()
	var out [3]int
	for i := range out {
		out[i] = int((areaA*float64(ca[i]) + areaB*float64(cb[i])) / total)
	}
	return rgbFrom(out)
}

// Mutate offsets every channel by a uniform integer in [-spread, spread] and
// clamps the result to [floor, 255].
func Mutate(rng *rand.Rand, c RGB, spread, floor int) RGB {
	ch := c.channels()
	var out [3]int
	for i := range out {
		out[i] = clampInt(int(ch[i])+rng.Intn(2*spread+1)-spread, floor, 255)
	}
	return rgbFrom(out)
}

// RandomColor draws each channel uniformly from [100, 255].
func RandomColor(rng *rand.Rand) RGB {
	return RGB{uint8(100 + rng.Intn(156)), uint8(100 + rng.Intn(156)), uint8(100 + rng.Intn(156))}
}

// Background inverts the average HSV of colors. Hue is averaged on the
// circle; an empty input yields black.
func Background(colors []RGB) RGB {
	if len(colors) == 0 {
		return Black
	}
	var sinSum, cosSum, sSum, vSum float64
	for _, c := range colors {
		h, s, v := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hsv()
		rad := h * math.Pi / 180
		sinSum += math.Sin(rad)
		cosSum += math.Cos(rad)
		sSum += s
		vSum += v
	}
	n := float64(len(colors))
	avgH := 0.0
	if math.Hypot(sinSum, cosSum) > 1e-9 {
		avgH = math.Atan2(sinSum, cosSum) / (2 * math.Pi)
		if avgH < 0 {
			avgH++
		}
	}
	hue := math.Mod(360*(1-avgH), 360)
	r, g, b := colorful.Hsv(hue, 1-sSum/n, 1-vSum/n).Clamped().RGB255()
	return RGB{r, g, b}
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
