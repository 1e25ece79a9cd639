package symbol

import (
	"image/color"

	"github.com/niosHD/symbolator/pkg/canvas"
)

// Symbol is a stack of sections inside one outline.
type Symbol struct {
	Sections  []*PinSection
	LineColor color.RGBA
	Style     Style
}

// MinWidth is the widest section minimum, so every band of the symbol
// shares one width.
func (s *Symbol) MinWidth(m canvas.TextMeasurer) float64 {
	var w float64
	for _, sec := range s.Sections {
		w = max(w, sec.MinWidth(m))
	}
	return w
}

// Draw stacks the sections downward from y with no gaps and draws the
// outline over them. A nil width means [Symbol.MinWidth].
//
// The returned box is the union of the section boxes inset by half the
// outline weight, which puts the outer edge of the outline stroke on the
// union boundary.
func (s *Symbol) Draw(parent *canvas.Group, m canvas.TextMeasurer, x, y float64, width *float64) canvas.Rect {
	if len(s.Sections) == 0 {
		return canvas.EmptyRect()
	}
	st := s.Style.Resolved()
	w := s.MinWidth(m)
	if width != nil {
		w = *width
	}

	union := canvas.EmptyRect()
	yoff := y
	for _, sec := range s.Sections {
		_, box := sec.Draw(parent, m, x, yoff, w)
		yoff += box.Height()
		union = union.Union(box)
	}

	outline := union.Inset(st.OutlineWeight / 2)
	parent.Rect(outline.X0, outline.Y0, outline.X1, outline.Y1, canvas.Style{
		LineColor:  s.LineColor,
		LineWeight: st.OutlineWeight,
	})
	return outline
}
