package symbol

import (
	"image/color"
	"regexp"

	"github.com/niosHD/symbolator/pkg/canvas"
)

// Marker names registered by [AddPinMarkers].
const (
	MarkerArrowFwd  = "arrow_fwd"
	MarkerArrowBack = "arrow_back"
	MarkerBubble    = "bubble"
	MarkerClock     = "clock"
)

// AddPinMarkers registers the pin end glyphs on c. Every canvas that pins
// are drawn on needs them; they are scoped to that canvas alone.
func AddPinMarkers(c *canvas.Canvas) {
	arrow := canvas.Style{Fill: canvas.Black}
	outlined := canvas.Style{Fill: canvas.White, LineWeight: 1}

	c.AddMarker(canvas.Marker{
		Name: MarkerArrowFwd,
		Shape: &canvas.Path{Style: arrow, Ops: []canvas.PathOp{
			canvas.MoveTo(0, -4), canvas.CubicTo(2, -1, 2, 1, 0, 4), canvas.LineTo(8, 0), canvas.ClosePath(),
		}},
		Ref:    canvas.Point{X: 3.2},
		Orient: canvas.OrientAuto,
	})
	c.AddMarker(canvas.Marker{
		Name: MarkerArrowBack,
		Shape: &canvas.Path{Style: arrow, Ops: []canvas.PathOp{
			canvas.MoveTo(0, -4), canvas.CubicTo(-2, -1, -2, 1, 0, 4), canvas.LineTo(-8, 0), canvas.ClosePath(),
		}},
		Ref:    canvas.Point{X: -3.2},
		Orient: canvas.OrientAuto,
	})
	c.AddMarker(canvas.Marker{
		Name:   MarkerBubble,
		Shape:  &canvas.Oval{X0: -3, Y0: -3, X1: 3, Y1: 3, Style: outlined},
		Orient: canvas.OrientAuto,
	})
	c.AddMarker(canvas.Marker{
		Name: MarkerClock,
		Shape: &canvas.Path{Style: outlined, Ops: []canvas.PathOp{
			canvas.MoveTo(0, -7), canvas.LineTo(0, 7), canvas.LineTo(7, 0), canvas.ClosePath(),
		}},
		Orient: canvas.OrientAuto,
	})
}

var bracketRe = regexp.MustCompile(`\[.*\]`)

// styledSpans highlights the bracketed part of s.
func styledSpans(s string, hl color.RGBA) []canvas.Span {
	loc := bracketRe.FindStringIndex(s)
	if loc == nil {
		return []canvas.Span{{Text: s}}
	}
	spans := make([]canvas.Span, 0, 3)
	if loc[0] > 0 {
		spans = append(spans, canvas.Span{Text: s[:loc[0]]})
	}
	spans = append(spans, canvas.Span{Text: s[loc[0]:loc[1]], Color: hl})
	if loc[1] < len(s) {
		spans = append(spans, canvas.Span{Text: s[loc[1]:]})
	}
	return spans
}

// TextWidth is the room the pin label takes inside the symbol.
func (p Pin) TextWidth(m canvas.TextMeasurer, st Style) float64 {
	st = st.Resolved()
	box, _ := m.TextBBox(p.Label, st.LabelFont)
	return st.PinPadding + box.Width()
}

// lineStyle picks the whisker weight and end glyphs. A clock or bubble
// glyph replaces the inward arrow of a bidirectional pin.
func (p Pin) lineStyle(st Style) canvas.Style {
	ls := canvas.Style{LineWeight: st.PinWeight}
	if p.Bus {
		ls.LineWeight = st.BusWeight
	}
	if p.Bidir {
		ls.MarkerStart = MarkerArrowBack
		ls.MarkerEnd = MarkerArrowFwd
	}
	if p.Bubble {
		ls.MarkerEnd = MarkerBubble
	}
	if p.Clocked {
		ls.MarkerEnd = MarkerClock
	}
	return ls
}

// Draw places the pin with its attachment point at (x, y) of parent. The
// whisker extends outward from the symbol edge; the label sits inside and
// the type annotation outside, beyond the whisker.
func (p Pin) Draw(parent *canvas.Group, x, y float64, st Style) *canvas.Group {
	st = st.Resolved()
	g := parent.AddGroup(x, y)

	xs := -st.PinLength
	labelX, typeX := st.PinPadding, xs-st.PinPadding
	labelAnchor, typeAnchor := canvas.AnchorW, canvas.AnchorE
	if p.Side == SideRight {
		xs = st.PinLength
		labelX, typeX = -st.PinPadding, xs+st.PinPadding
		labelAnchor, typeAnchor = canvas.AnchorE, canvas.AnchorW
	}

	g.Line(xs, 0, 0, 0, p.lineStyle(st))
	g.Text(labelX, 0, styledSpans(p.Label, st.HighlightColor),
		canvas.Style{Anchor: labelAnchor, Font: st.LabelFont})
	if p.DataType != "" {
		g.Text(typeX, 0, styledSpans(p.DataType, st.HighlightColor),
			canvas.Style{Anchor: typeAnchor, Font: st.LabelFont, TextColor: st.TypeColor})
	}
	return g
}
