package symbol

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niosHD/symbolator/pkg/canvas"
	"github.com/niosHD/symbolator/pkg/hdl"
)

// fixedMetrics makes every glyph 10 wide and every line 10 tall.
type fixedMetrics struct{}

func (fixedMetrics) TextBBox(text string, _ canvas.Font) (canvas.Rect, float64) {
	return canvas.Rect{X0: 0, Y0: -8, X1: 10 * float64(len(text)), Y1: 2}, 8
}

func in(name, typ string) hdl.Parameter  { return hdl.Parameter{Name: name, Mode: hdl.ModeIn, DataType: typ} }
func out(name, typ string) hdl.Parameter { return hdl.Parameter{Name: name, Mode: hdl.ModeOut, DataType: typ} }

func section(name string, params ...hdl.Parameter) *PinSection {
	s := &PinSection{Name: name, LineColor: canvas.Black}
	for _, p := range params {
		s.Add(Classify(p, true))
	}
	return s
}

func TestPinSectionColumns(t *testing.T) {
	s := section("", in("a", ""), out("x", ""), in("b", ""), hdl.Parameter{Name: "y", Mode: hdl.ModeInOut}, in("c", ""))

	labels := func(pins []Pin) []string {
		var names []string
		for _, p := range pins {
			names = append(names, p.Label)
		}
		return names
	}
	assert.Equal(t, []string{"a", "b", "c"}, labels(s.LeftPins()))
	assert.Equal(t, []string{"x", "y"}, labels(s.RightPins()))
	assert.Equal(t, 3, s.Rows())
}

func TestPinSectionMinWidth(t *testing.T) {
	m := fixedMetrics{}
	tests := []struct {
		name string
		sec  *PinSection
		want float64
	}{
		{"empty", section(""), 5},
		{"left only", section("", in("abc", "")), 10 + 30 + 5},
		{"both columns", section("", in("a", ""), out("bbbb", "")), (10 + 10) + (10 + 40) + 5},
		// Title fits on the left when the left column has content.
		{"title left", section("control", in("a", ""), out("b", "")), (5 + 70) + 20 + 5},
		// With no inputs the title goes to the right column.
		{"title right", section("ctl", out("q", "")), (5 + 30) + 5},
		{"types ignored", section("", in("a", "[31:0]")), 20 + 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.sec.MinWidth(m), 1e-9)
		})
	}
}

func TestPinSectionMinWidthBounds(t *testing.T) {
	m := canvas.ApproxMetrics{}
	st := DefaultStyle()
	s := section("", in("clk", ""), in("reset_n", ""), out("q", ""), out("data_valid", ""))

	lmax := max(s.Pins[0].TextWidth(m, st), s.Pins[1].TextWidth(m, st))
	rmax := max(s.Pins[2].TextWidth(m, st), s.Pins[3].TextWidth(m, st))
	assert.GreaterOrEqual(t, s.MinWidth(m), lmax+rmax+st.SectionPadding)

	prev := s.MinWidth(m)
	for range 5 {
		s.Pins[1].Label += "x"
		s.Pins[3].Label += "y"
		w := s.MinWidth(m)
		assert.GreaterOrEqual(t, w, prev)
		prev = w
	}
	s.Name = strings.Repeat("n", 40)
	assert.GreaterOrEqual(t, s.MinWidth(m), prev)
}

func TestPinSectionDraw(t *testing.T) {
	m := fixedMetrics{}
	c := canvas.New(m)
	AddPinMarkers(c)

	s := section("", in("a", ""), in("b", ""), in("c", ""), out("q", ""))
	g, box := s.Draw(c.Group, m, 10, 100, 80)

	// Rows centered on y, y+20, y+40 with half a row plus padding around.
	assert.Equal(t, canvas.Rect{X0: 10, Y0: 85, X1: 90, Y1: 155}, box)
	assert.Equal(t, 10.0, g.X)
	assert.Equal(t, 100.0, g.Y)

	rect, ok := g.Shapes[0].(*canvas.Rectangle)
	require.True(t, ok, "section box is drawn first")
	assert.Equal(t, 80.0, rect.X1)

	// One group per pin: three left at x=0, one right at x=width.
	var pins []*canvas.Group
	for _, sh := range g.Shapes {
		if pg, ok := sh.(*canvas.Group); ok {
			pins = append(pins, pg)
		}
	}
	require.Len(t, pins, 4)
	want := [][2]float64{{0, 0}, {0, 20}, {0, 40}, {80, 0}}
	for i, pg := range pins {
		assert.Equal(t, want[i], [2]float64{pg.X, pg.Y}, "pin %d", i)
	}
}

func TestPinSectionDrawTitle(t *testing.T) {
	m := fixedMetrics{}
	c := canvas.New(m)
	s := section("Bus", in("a", ""))
	g, box := s.Draw(c.Group, m, 0, 0, 60)

	// The title takes one text height before the first row.
	assert.Equal(t, canvas.Rect{X0: 0, Y0: -15, X1: 60, Y1: 25}, box)
	title, ok := g.Shapes[1].(*canvas.Text)
	require.True(t, ok)
	assert.Equal(t, "Bus", title.String())
	assert.Equal(t, 30.0, title.X)
	pin := g.Shapes[2].(*canvas.Group)
	assert.Equal(t, 10.0, pin.Y)
}

func TestPinDraw(t *testing.T) {
	c := canvas.New(fixedMetrics{})
	AddPinMarkers(c)

	tests := []struct {
		name       string
		pin        Pin
		x0         float64
		start, end string
		weight     float64
	}{
		{"plain left", Pin{Label: "a", Side: SideLeft}, -20, "", "", 1},
		{"bus right", Pin{Label: "q", Side: SideRight, Bus: true}, 20, "", "", 3},
		{"bidir", Pin{Label: "io", Side: SideRight, Bidir: true}, 20, MarkerArrowBack, MarkerArrowFwd, 1},
		{"bidir bubble", Pin{Label: "io_n", Side: SideRight, Bidir: true, Bubble: true}, 20, MarkerArrowBack, MarkerBubble, 1},
		{"clock", Pin{Label: "clk", Side: SideLeft, Clocked: true}, -20, "", MarkerClock, 1},
		{"clock bubble", Pin{Label: "clk_n", Side: SideLeft, Clocked: true, Bubble: true}, -20, "", MarkerClock, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.pin.Draw(c.Group, 0, 0, Style{})
			line := g.Shapes[0].(*canvas.Line)
			assert.Equal(t, tt.x0, line.X0)
			assert.Equal(t, 0.0, line.X1, "whisker ends on the symbol edge")
			assert.Equal(t, tt.start, line.Style.MarkerStart)
			assert.Equal(t, tt.end, line.Style.MarkerEnd)
			assert.Equal(t, tt.weight, line.Style.LineWeight)
		})
	}
}

func TestPinDrawType(t *testing.T) {
	c := canvas.New(fixedMetrics{})
	st := DefaultStyle()

	g := Pin{Label: "d[3]", Side: SideLeft, DataType: "slv[7:0]"}.Draw(c.Group, 0, 0, st)
	require.Len(t, g.Shapes, 3)

	label := g.Shapes[1].(*canvas.Text)
	assert.Equal(t, canvas.AnchorW, label.Style.Anchor)
	assert.Equal(t, st.PinPadding, label.X)
	if diff := cmp.Diff([]canvas.Span{{Text: "d"}, {Text: "[3]", Color: st.HighlightColor}}, label.Spans); diff != "" {
		t.Errorf("label spans (-want +got):\n%s", diff)
	}

	typ := g.Shapes[2].(*canvas.Text)
	assert.Equal(t, canvas.AnchorE, typ.Style.Anchor)
	assert.Equal(t, -st.PinLength-st.PinPadding, typ.X)
	assert.Equal(t, st.TypeColor, typ.Style.TextColor)
	assert.Equal(t, "slv[7:0]", typ.String())

	g = Pin{Label: "q", Side: SideRight, DataType: "bit"}.Draw(c.Group, 0, 0, st)
	assert.Equal(t, canvas.AnchorE, g.Shapes[1].(*canvas.Text).Style.Anchor)
	assert.Equal(t, canvas.AnchorW, g.Shapes[2].(*canvas.Text).Style.Anchor)
	assert.Equal(t, st.PinLength+st.PinPadding, g.Shapes[2].(*canvas.Text).X)
}

func TestStyledSpans(t *testing.T) {
	hl := DefaultStyle().HighlightColor
	tests := []struct {
		in   string
		want []canvas.Span
	}{
		{"clk", []canvas.Span{{Text: "clk"}}},
		{"[7:0]", []canvas.Span{{Text: "[7:0]", Color: hl}}},
		{"mem[3][7:0]", []canvas.Span{{Text: "mem"}, {Text: "[3][7:0]", Color: hl}}},
		{"a[1]_b", []canvas.Span{{Text: "a"}, {Text: "[1]", Color: hl}, {Text: "_b"}}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, styledSpans(tt.in, hl)); diff != "" {
			t.Errorf("styledSpans(%q) (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestSymbolDraw(t *testing.T) {
	m := fixedMetrics{}
	c := canvas.New(m)

	sym := &Symbol{Sections: []*PinSection{
		section("", in("a", "")),
		section("", in("b", ""), in("c", "")),
	}}
	bb := sym.Draw(c.Group, m, 0, 0, nil)

	// First section spans -15..15, the second abuts it from 15..65.
	w := sym.MinWidth(m)
	union := canvas.Rect{X0: 0, Y0: -15, X1: w, Y1: 65}
	assert.Equal(t, union.Inset(1.5), bb)

	last := c.Shapes[len(c.Shapes)-1].(*canvas.Rectangle)
	assert.Equal(t, canvas.Rectangle{X0: bb.X0, Y0: bb.Y0, X1: bb.X1, Y1: bb.Y1, Style: canvas.Style{LineWeight: 3}}, *last)

	// The outline stroke lies exactly on the union.
	stroke := canvas.Rect{X0: last.X0, Y0: last.Y0, X1: last.X1, Y1: last.Y1}.Inset(-last.Style.LineWeight / 2)
	assert.Equal(t, union, stroke)
}

func TestSymbolExplicitWidth(t *testing.T) {
	m := fixedMetrics{}
	c := canvas.New(m)
	sym := &Symbol{Sections: []*PinSection{section("", in("a", ""), out("b", ""))}}
	w := 200.0
	bb := sym.Draw(c.Group, m, 0, 0, &w)
	assert.Equal(t, 197.0, bb.Width())

	assert.True(t, (&Symbol{}).Draw(c.Group, m, 0, 0, nil).IsEmpty())
}

func TestHdlSymbolWidth(t *testing.T) {
	m := fixedMetrics{}

	tests := []struct {
		name string
		h    *HdlSymbol
		want float64
	}{
		{
			name: "rounded up",
			h:    &HdlSymbol{Symbols: []*Symbol{{Sections: []*PinSection{section("", in("a", ""), out("bbbb", ""))}}}},
			want: 80, // min width 75
		},
		{
			name: "exact multiple gains a quantum",
			h: &HdlSymbol{
				Style:   Style{PinPadding: 5, SectionPadding: 15},
				Symbols: []*Symbol{{Sections: []*PinSection{sectionStyled(Style{PinPadding: 5, SectionPadding: 15}, in("aa", ""))}}},
			},
			want: 60, // min width 40
		},
		{
			name: "at least one quantum",
			h:    &HdlSymbol{Symbols: []*Symbol{{Sections: []*PinSection{section("")}}}},
			want: 20,
		},
		{
			name: "widest across symbols",
			h: &HdlSymbol{Symbols: []*Symbol{
				{Sections: []*PinSection{section("", in("g", ""))}},
				{Sections: []*PinSection{section("", in("a", "")), section("", out(strings.Repeat("z", 12), ""))}},
			}},
			want: 140, // 10+120+5
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := tt.h.Width(m)
			assert.Equal(t, tt.want, w)

			q := tt.h.Style.Resolved().WidthQuantum
			assert.Greater(t, w, 0.0)
			assert.Zero(t, math.Mod(w, q))
			for _, s := range tt.h.Symbols {
				for _, sec := range s.Sections {
					assert.Greater(t, w, sec.MinWidth(m))
				}
			}
		})
	}
}

func sectionStyled(st Style, params ...hdl.Parameter) *PinSection {
	s := section("", params...)
	s.Style = st
	return s
}

func TestHdlSymbolDraw(t *testing.T) {
	m := fixedMetrics{}
	c := canvas.New(m)
	AddPinMarkers(c)

	h := &HdlSymbol{
		Title: "fifo",
		Symbols: []*Symbol{
			{Sections: []*PinSection{section("", in("DEPTH", ""))}},
			{Sections: []*PinSection{section("", in("clk", ""), out("q", ""))}},
		},
	}
	bb := h.Draw(c.Group, m, 0, 0)
	w := h.Width(m)

	var outlines []*canvas.Rectangle
	var title *canvas.Text
	for _, s := range c.Shapes {
		switch v := s.(type) {
		case *canvas.Rectangle:
			outlines = append(outlines, v)
		case *canvas.Text:
			title = v
		}
	}
	require.Len(t, outlines, 2)
	for _, o := range outlines {
		assert.Equal(t, w-3, o.X1-o.X0, "symbols share the quantized width")
	}
	assert.Greater(t, outlines[1].Y0, outlines[0].Y1, "symbols are stacked with a gap")

	require.NotNil(t, title)
	assert.Equal(t, "fifo", title.String())
	assert.Equal(t, canvas.AnchorBaseline, title.Style.Anchor)
	assert.Equal(t, w/2, title.X)
	assert.Equal(t, outlines[0].Y0-10, title.Y)

	assert.Equal(t, outlines[0].Y0, bb.Y0)
	assert.Equal(t, outlines[1].Y1, bb.Y1)
}

func TestHdlSymbolEmpty(t *testing.T) {
	c := canvas.New(nil)
	h := &HdlSymbol{Title: "nothing"}
	assert.True(t, h.Empty())
	assert.True(t, h.Draw(c.Group, c, 0, 0).IsEmpty())
	assert.Empty(t, c.Shapes)
}
