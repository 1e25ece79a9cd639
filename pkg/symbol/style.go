package symbol

import (
	"image/color"

	"github.com/niosHD/symbolator/pkg/canvas"
)

// Style holds the layout constants. Zero fields take the defaults listed in
// [DefaultStyle], so a partially filled Style from a config file works.
type Style struct {
	PinLength      float64
	PinPadding     float64
	PinWeight      float64
	BusWeight      float64
	RowSpacing     float64
	SectionPadding float64
	SectionWeight  float64
	OutlineWeight  float64
	SymbolSpacing  float64
	WidthQuantum   float64

	LabelFont   canvas.Font
	SectionFont canvas.Font
	TitleFont   canvas.Font

	HighlightColor color.RGBA
	TypeColor      color.RGBA
}

// DefaultStyle returns the stock layout.
func DefaultStyle() Style {
	return Style{
		PinLength:      20,
		PinPadding:     10,
		PinWeight:      1,
		BusWeight:      3,
		RowSpacing:     20,
		SectionPadding: 5,
		SectionWeight:  1,
		OutlineWeight:  3,
		SymbolSpacing:  10,
		WidthQuantum:   20,

		LabelFont:   canvas.Font{Family: "sans-serif", Size: 12},
		SectionFont: canvas.Font{Family: "Times", Size: 12, Italic: true},
		TitleFont:   canvas.Font{Family: "Helvetica", Size: 14, Bold: true},

		HighlightColor: canvas.RGB(0x03, 0x9b, 0xe5),
		TypeColor:      canvas.RGB(150, 150, 150),
	}
}

func orFloat(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}

func orFont(f, def canvas.Font) canvas.Font {
	if f.Size <= 0 {
		f.Size = def.Size
	}
	if f.Family == "" {
		f.Family = def.Family
		f.Bold, f.Italic = f.Bold || def.Bold, f.Italic || def.Italic
	}
	return f
}

func orColor(c, def color.RGBA) color.RGBA {
	if c.A == 0 {
		return def
	}
	return c
}

// Resolved returns s with every zero field replaced by its default.
func (s Style) Resolved() Style {
	d := DefaultStyle()
	return Style{
		PinLength:      orFloat(s.PinLength, d.PinLength),
		PinPadding:     orFloat(s.PinPadding, d.PinPadding),
		PinWeight:      orFloat(s.PinWeight, d.PinWeight),
		BusWeight:      orFloat(s.BusWeight, d.BusWeight),
		RowSpacing:     orFloat(s.RowSpacing, d.RowSpacing),
		SectionPadding: orFloat(s.SectionPadding, d.SectionPadding),
		SectionWeight:  orFloat(s.SectionWeight, d.SectionWeight),
		OutlineWeight:  orFloat(s.OutlineWeight, d.OutlineWeight),
		SymbolSpacing:  orFloat(s.SymbolSpacing, d.SymbolSpacing),
		WidthQuantum:   orFloat(s.WidthQuantum, d.WidthQuantum),

		LabelFont:   orFont(s.LabelFont, d.LabelFont),
		SectionFont: orFont(s.SectionFont, d.SectionFont),
		TitleFont:   orFont(s.TitleFont, d.TitleFont),

		HighlightColor: orColor(s.HighlightColor, d.HighlightColor),
		TypeColor:      orColor(s.TypeColor, d.TypeColor),
	}
}
