package symbol

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// phi is the golden ratio. Stepping the hue by it spreads successive colors
// evenly around the wheel without ever repeating.
var phi = (1 + math.Sqrt(5)) / 2

const (
	// paletteStart is the hue of the first section color.
	paletteStart = 0.6
	// paletteLighten is how far section fills are pushed toward white.
	paletteLighten = 0.75
)

// Sinebow maps a hue in [0,1) onto a perceptually even rainbow starting at
// red.
func Sinebow(hue float64) color.RGBA {
	h := -(hue + 0.5)
	ch := func(off float64) uint8 {
		s := math.Sin(math.Pi * (h + off))
		return uint8(255 * s * s)
	}
	return color.RGBA{R: ch(0), G: ch(1.0 / 3), B: ch(2.0 / 3), A: 0xff}
}

// Lighten moves c toward white by fraction p in HSL lightness.
func Lighten(c color.RGBA, p float64) color.RGBA {
	cf := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	h, s, l := cf.Hsl()
	l = p + l - p*l
	out := colorful.Hsl(h, s, l).Clamped()
	return color.RGBA{R: uint8(out.R * 255), G: uint8(out.G * 255), B: uint8(out.B * 255), A: 0xff}
}

// ColorForIndex is the fill of the i-th port section.
func ColorForIndex(i int) color.RGBA {
	return Lighten(Sinebow(paletteStart+float64(i)*phi), paletteLighten)
}

var classHues = map[string]float64{
	"clocks":  0,
	"data":    0.35,
	"control": 0.15,
}

// ClassColor returns the fixed fill for a known section class.
func ClassColor(class string) (color.RGBA, bool) {
	h, ok := classHues[class]
	if !ok {
		return color.RGBA{}, false
	}
	return Lighten(Sinebow(h), paletteLighten), true
}
