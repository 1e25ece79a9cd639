package symbol

import (
	"image/color"

	"github.com/niosHD/symbolator/pkg/canvas"
)

// PinSection is a titled, colored band of pins laid out in two columns.
// Column order follows the order pins were added.
type PinSection struct {
	Name      string
	Class     string
	Fill      color.RGBA
	LineColor color.RGBA
	Pins      []Pin
	Style     Style
}

// NewSection builds a section from a raw marker label. A known class
// overrides fill.
func NewSection(raw string, fill color.RGBA) *PinSection {
	class, name := ParseSectionLabel(raw)
	s := &PinSection{Name: name, Class: class, Fill: fill, LineColor: canvas.Black}
	if c, ok := ClassColor(class); ok {
		s.Fill = c
	}
	return s
}

// Add appends pins in order.
func (s *PinSection) Add(pins ...Pin) {
	s.Pins = append(s.Pins, pins...)
}

func (s *PinSection) side(side Side) []Pin {
	var out []Pin
	for _, p := range s.Pins {
		if p.Side == side {
			out = append(out, p)
		}
	}
	return out
}

// LeftPins returns the inputs in declaration order.
func (s *PinSection) LeftPins() []Pin { return s.side(SideLeft) }

// RightPins returns the outputs and bidirectional pins in declaration order.
func (s *PinSection) RightPins() []Pin { return s.side(SideRight) }

// Rows is the height of the taller column.
func (s *PinSection) Rows() int {
	return max(len(s.LeftPins()), len(s.RightPins()))
}

func columnWidth(pins []Pin, m canvas.TextMeasurer, st Style) float64 {
	var w float64
	for _, p := range pins {
		w = max(w, p.TextWidth(m, st))
	}
	return w
}

// MinWidth is the narrowest width that fits both label columns side by side
// plus padding. The section title has to fit on the column that has
// content, the left one when both do.
func (s *PinSection) MinWidth(m canvas.TextMeasurer) float64 {
	st := s.Style.Resolved()
	lmax := columnWidth(s.LeftPins(), m, st)
	rmax := columnWidth(s.RightPins(), m, st)

	if s.Name != "" {
		box, _ := m.TextBBox(s.Name, st.SectionFont)
		nameWidth := st.SectionPadding + box.Width()
		if lmax > 0 {
			lmax = max(lmax, nameWidth)
		} else {
			rmax = max(rmax, nameWidth)
		}
	}
	return lmax + rmax + st.SectionPadding
}

// titleOffset is the vertical room reserved for the title.
func (s *PinSection) titleOffset(m canvas.TextMeasurer, st Style) float64 {
	if s.Name == "" {
		return 0
	}
	box, _ := m.TextBBox(s.Name, st.SectionFont)
	return box.Height()
}

// Draw lays the section out at width with its first row centered on y.
// It returns the new group and the section box in parent coordinates;
// pin whiskers and type annotations stick out of that box sideways.
func (s *PinSection) Draw(parent *canvas.Group, m canvas.TextMeasurer, x, y, width float64) (*canvas.Group, canvas.Rect) {
	st := s.Style.Resolved()
	dy := st.RowSpacing
	toff := s.titleOffset(m, st)

	g := parent.AddGroup(x, y)
	top := -dy/2 - st.SectionPadding
	bot := toff - dy/2 + float64(s.Rows())*dy + st.SectionPadding
	g.Rect(0, top, width, bot, canvas.Style{Fill: s.Fill, LineColor: s.LineColor, LineWeight: st.SectionWeight})

	if s.Name != "" {
		g.Label(width/2, 0, s.Name, canvas.Style{Anchor: canvas.AnchorCenter, Font: st.SectionFont})
	}
	for i, p := range s.LeftPins() {
		p.Draw(g, 0, toff+float64(i)*dy, st)
	}
	for i, p := range s.RightPins() {
		p.Draw(g, width, toff+float64(i)*dy, st)
	}
	return g, canvas.Rect{X0: x, Y0: y + top, X1: x + width, Y1: y + bot}
}
