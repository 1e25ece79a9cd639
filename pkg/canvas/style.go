package canvas

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Anchor names the point of a text's bounding box placed at its position.
type Anchor string

// Text anchors. AnchorBaseline centers horizontally and puts the baseline on y.
const (
	AnchorCenter   Anchor = "c"
	AnchorN        Anchor = "n"
	AnchorS        Anchor = "s"
	AnchorE        Anchor = "e"
	AnchorW        Anchor = "w"
	AnchorNE       Anchor = "ne"
	AnchorNW       Anchor = "nw"
	AnchorSE       Anchor = "se"
	AnchorSW       Anchor = "sw"
	AnchorBaseline Anchor = "cs"
)

const defaultFontSize = 12.0

// Font selects a face and size. Family is advisory for vector output;
// metrics always come from the Go font family in the matching weight/slant.
type Font struct {
	Family string
	Size   float64
	Bold   bool
	Italic bool
}

// DefaultFont is used for text shapes with a zero Font.
var DefaultFont = Font{Family: "sans-serif", Size: defaultFontSize}

func (f Font) orDefault() Font {
	if f.Size <= 0 {
		f.Size = DefaultFont.Size
	}
	if f.Family == "" {
		f.Family = DefaultFont.Family
	}
	return f
}

// Style carries the drawing options of one shape.
//
// A color with zero alpha means "unset": no fill for Fill, black for
// LineColor and TextColor. Lines and outlines are stroked only when
// LineWeight is positive.
type Style struct {
	Fill        color.RGBA
	LineColor   color.RGBA
	LineWeight  float64
	TextColor   color.RGBA
	Anchor      Anchor
	Font        Font
	MarkerStart string
	MarkerEnd   string
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Black is the default stroke and text color.
var Black = RGB(0, 0, 0)

// White is the default background.
var White = RGB(255, 255, 255)

func (s Style) hasFill() bool { return s.Fill.A != 0 }

func (s Style) stroke() color.RGBA {
	if s.LineColor.A == 0 {
		return Black
	}
	return s.LineColor
}

func (s Style) text() color.RGBA {
	if s.TextColor.A == 0 {
		return Black
	}
	return s.TextColor
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}
