package symbol

import (
	"image/color"

	"github.com/niosHD/symbolator/pkg/canvas"
	"github.com/niosHD/symbolator/pkg/hdl"
)

var (
	genericFill = canvas.RGB(200, 200, 200)
	genericLine = canvas.RGB(100, 100, 100)
)

// BuildOptions controls how a component becomes a symbol.
type BuildOptions struct {
	Title  bool // draw the component name above the diagram
	NoType bool // omit type annotations next to pins
	Style  Style
}

// Build turns a component into its diagram. Generics form one gray
// symbol with a single section; ports form a second symbol split at the
// component's section markers. Either is left out when it has no
// parameters.
func Build(comp hdl.Component, opts BuildOptions) *HdlSymbol {
	h := &HdlSymbol{Style: opts.Style}
	if opts.Title {
		h.Title = comp.Name
	}

	if len(comp.Generics) > 0 {
		sec := buildSection(SectionSpec{Params: comp.Generics}, genericFill, opts)
		sec.LineColor = genericLine
		h.Symbols = append(h.Symbols, &Symbol{
			Sections:  []*PinSection{sec},
			LineColor: genericLine,
			Style:     opts.Style,
		})
	}

	if len(comp.Ports) > 0 {
		sym := &Symbol{LineColor: canvas.Black, Style: opts.Style}
		for i, part := range Partition(comp.Ports, comp.Sections) {
			sym.Sections = append(sym.Sections, buildSection(part, ColorForIndex(i), opts))
		}
		h.Symbols = append(h.Symbols, sym)
	}
	return h
}

func buildSection(part SectionSpec, fill color.RGBA, opts BuildOptions) *PinSection {
	sec := NewSection(part.Label, fill)
	sec.Style = opts.Style
	for _, p := range part.Params {
		p.DataType = hdl.Canonicalize(p.DataType)
		sec.Add(Classify(p, !opts.NoType))
	}
	return sec
}

// Render draws h on a fresh canvas with the pin markers registered.
func Render(h *HdlSymbol, m canvas.TextMeasurer) *canvas.Canvas {
	c := canvas.New(m)
	AddPinMarkers(c)
	h.Draw(c.Group, c, 0, 0)
	return c
}
