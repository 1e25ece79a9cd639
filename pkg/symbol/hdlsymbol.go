package symbol

import (
	"math"

	"github.com/niosHD/symbolator/pkg/canvas"
)

// HdlSymbol is the full diagram of one component: usually a generics
// symbol above a ports symbol, all at one width.
type HdlSymbol struct {
	Title   string
	Symbols []*Symbol
	Style   Style
}

// Empty reports whether drawing would produce nothing.
func (h *HdlSymbol) Empty() bool {
	for _, s := range h.Symbols {
		if len(s.Sections) > 0 {
			return false
		}
	}
	return true
}

// Width is the widest section minimum across all symbols, rounded up to the
// next multiple of the width quantum. A minimum that already is a multiple
// still gains one quantum, so the result is always strictly wider.
func (h *HdlSymbol) Width(m canvas.TextMeasurer) float64 {
	q := h.Style.Resolved().WidthQuantum
	var w float64
	for _, s := range h.Symbols {
		w = max(w, s.MinWidth(m))
	}
	return (math.Floor(w/q) + 1) * q
}

// Draw lays the symbols out top to bottom starting at y. When Title is set
// it is centered above the first symbol. The returned box covers all
// symbol outlines; it is empty when nothing was drawn.
func (h *HdlSymbol) Draw(parent *canvas.Group, m canvas.TextMeasurer, x, y float64) canvas.Rect {
	bounds := canvas.EmptyRect()
	if h.Empty() {
		return bounds
	}
	st := h.Style.Resolved()
	w := h.Width(m)

	yoff := y
	first := true
	for _, s := range h.Symbols {
		if len(s.Sections) == 0 {
			continue
		}
		bb := s.Draw(parent, m, x, yoff, &w)
		if first && h.Title != "" {
			parent.Label((bb.X0+bb.X1)/2, bb.Y0-st.SymbolSpacing, h.Title,
				canvas.Style{Anchor: canvas.AnchorBaseline, Font: st.TitleFont})
		}
		first = false
		yoff += bb.Height() + st.SymbolSpacing
		bounds = bounds.Union(bb)
	}
	return bounds
}
