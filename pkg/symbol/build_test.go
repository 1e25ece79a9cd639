package symbol

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niosHD/symbolator/pkg/canvas"
	"github.com/niosHD/symbolator/pkg/hdl"
)

func names(specs []SectionSpec) [][]string {
	var out [][]string
	for _, s := range specs {
		var ns []string
		for _, p := range s.Params {
			ns = append(ns, p.Name)
		}
		out = append(out, ns)
	}
	return out
}

func TestPartition(t *testing.T) {
	ports := []hdl.Parameter{in("a", ""), in("b", ""), out("c", ""), out("d", "")}

	tests := []struct {
		name       string
		markers    map[int]string
		wantNames  [][]string
		wantLabels []string
	}{
		{"no markers", nil, [][]string{{"a", "b", "c", "d"}}, []string{""}},
		{"leading marker", map[int]string{0: "in"}, [][]string{{"a", "b", "c", "d"}}, []string{"in"}},
		{"split", map[int]string{0: "in", 2: "out"}, [][]string{{"a", "b"}, {"c", "d"}}, []string{"in", "out"}},
		{"unlabeled first", map[int]string{1: "rest"}, [][]string{{"a"}, {"b", "c", "d"}}, []string{"", "rest"}},
		{"empty label break", map[int]string{3: ""}, [][]string{{"a", "b", "c"}, {"d"}}, []string{"", ""}},
		{"every index", map[int]string{0: "0", 1: "1", 2: "2", 3: "3"}, [][]string{{"a"}, {"b"}, {"c"}, {"d"}}, []string{"0", "1", "2", "3"}},
		{"out of range", map[int]string{9: "x"}, [][]string{{"a", "b", "c", "d"}}, []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Partition(ports, tt.markers)
			if diff := cmp.Diff(tt.wantNames, names(got)); diff != "" {
				t.Errorf("sections (-want +got):\n%s", diff)
			}
			var labels []string
			for _, s := range got {
				labels = append(labels, s.Label)
			}
			assert.Equal(t, tt.wantLabels, labels)
		})
	}

	assert.Empty(t, Partition(nil, map[int]string{0: "x"}))
}

func TestParseSectionLabel(t *testing.T) {
	tests := []struct {
		raw, class, label string
	}{
		{"Control", "", "Control"},
		{"clocks|Clocks", "clocks", "Clocks"},
		{"DATA | Bus A ", "data", "Bus A"},
		{"control|", "control", ""},
		{"a b|c", "", "a b|c"},
		{"", "", ""},
	}
	for _, tt := range tests {
		class, label := ParseSectionLabel(tt.raw)
		assert.Equal(t, tt.class, class, tt.raw)
		assert.Equal(t, tt.label, label, tt.raw)
	}
}

func TestPalette(t *testing.T) {
	red := Sinebow(0)
	assert.Equal(t, color.RGBA{R: 255, G: 63, B: 63, A: 255}, red)

	c, ok := ClassColor("clocks")
	require.True(t, ok)
	assert.InDelta(t, 255, int(c.R), 1)
	assert.InDelta(t, 206, int(c.G), 2)
	assert.InDelta(t, int(c.G), int(c.B), 1)

	_, ok = ClassColor("misc")
	assert.False(t, ok)

	// Pure function of the index.
	seen := map[color.RGBA]bool{}
	for i := range 8 {
		assert.Equal(t, ColorForIndex(i), ColorForIndex(i))
		seen[ColorForIndex(i)] = true
	}
	assert.Len(t, seen, 8)
	assert.Equal(t, Lighten(Sinebow(0.6), 0.75), ColorForIndex(0))

	white := Lighten(canvas.Black, 1)
	assert.Equal(t, canvas.White, white)
}

func TestNewSectionClassColor(t *testing.T) {
	fill := ColorForIndex(3)
	s := NewSection("data|Payload", fill)
	want, _ := ClassColor("data")
	assert.Equal(t, want, s.Fill)
	assert.Equal(t, "Payload", s.Name)
	assert.Equal(t, "data", s.Class)

	s = NewSection("other|", fill)
	assert.Equal(t, fill, s.Fill)
	assert.Empty(t, s.Name, "empty label draws no title")
}

func TestBuildEndToEnd(t *testing.T) {
	comp := hdl.Component{
		Name: "reg",
		Ports: []hdl.Parameter{
			in("clk", ""),
			in("data_n", "[7:0]"),
			out("q", ""),
		},
	}
	h := Build(comp, BuildOptions{})

	require.Len(t, h.Symbols, 1)
	require.Len(t, h.Symbols[0].Sections, 1)
	sec := h.Symbols[0].Sections[0]

	left := sec.LeftPins()
	require.Len(t, left, 2)
	assert.Equal(t, "clk", left[0].Label)
	assert.True(t, left[0].Clocked)
	assert.Equal(t, "data_n", left[1].Label)
	assert.True(t, left[1].Bubble)
	assert.True(t, left[1].Bus)

	right := sec.RightPins()
	require.Len(t, right, 1)
	assert.Equal(t, "q", right[0].Label)
	assert.Equal(t, 2, sec.Rows())
	assert.Empty(t, h.Title)
}

func TestBuildGenericsOnly(t *testing.T) {
	comp := hdl.Component{
		Name:     "cfg",
		Generics: []hdl.Parameter{{Name: "WIDTH", Mode: hdl.ModeIn, DataType: "natural"}},
	}
	h := Build(comp, BuildOptions{Title: true})
	require.Len(t, h.Symbols, 1)
	sym := h.Symbols[0]
	assert.Equal(t, genericLine, sym.LineColor)
	require.Len(t, sym.Sections, 1)
	assert.Equal(t, genericFill, sym.Sections[0].Fill)
	assert.Equal(t, genericLine, sym.Sections[0].LineColor)
	assert.Equal(t, "cfg", h.Title)

	c := Render(h, canvas.ApproxMetrics{})
	assert.False(t, c.BBox().IsEmpty())
}

func TestBuildEmpty(t *testing.T) {
	h := Build(hdl.Component{Name: "void"}, BuildOptions{Title: true})
	assert.Empty(t, h.Symbols)
	assert.True(t, h.Empty())

	c := Render(h, canvas.ApproxMetrics{})
	assert.True(t, c.BBox().IsEmpty())
	assert.Empty(t, c.Shapes)
}

func TestBuildSectionsAndColors(t *testing.T) {
	comp := hdl.Component{
		Name:     "dma",
		Generics: []hdl.Parameter{{Name: "N", Mode: hdl.ModeIn}},
		Ports: []hdl.Parameter{
			in("clk", ""), in("rst_n", ""),
			in("src", "unsigned(31 downto 0)"), out("dst", "std_logic_vector(0 to 7)"),
			out("irq", ""),
		},
		Sections: map[int]string{0: "clocks|Clocks", 2: "Data", 4: ""},
	}
	h := Build(comp, BuildOptions{NoType: false})
	require.Len(t, h.Symbols, 2)

	ports := h.Symbols[1]
	require.Len(t, ports.Sections, 3)
	clocks, _ := ClassColor("clocks")
	assert.Equal(t, clocks, ports.Sections[0].Fill)
	assert.Equal(t, ColorForIndex(1), ports.Sections[1].Fill)
	assert.Equal(t, ColorForIndex(2), ports.Sections[2].Fill)
	assert.Equal(t, "Data", ports.Sections[1].Name)

	data := ports.Sections[1]
	assert.Equal(t, "unsigned[31:0]", data.Pins[0].DataType)
	assert.Equal(t, "std_logic_vector[0→7]", data.Pins[1].DataType)
	assert.True(t, data.Pins[0].Bus)

	noType := Build(comp, BuildOptions{NoType: true})
	pin := noType.Symbols[1].Sections[1].Pins[0]
	assert.Empty(t, pin.DataType)
	assert.True(t, pin.Bus)
}

func TestRenderRegistersMarkers(t *testing.T) {
	h := Build(hdl.Component{Name: "x", Ports: []hdl.Parameter{in("clk", "")}}, BuildOptions{})
	c := Render(h, canvas.ApproxMetrics{})

	var got []string
	for _, m := range c.Markers() {
		got = append(got, m.Name)
	}
	assert.Equal(t, []string{MarkerArrowFwd, MarkerArrowBack, MarkerBubble, MarkerClock}, got)

	svg := string(canvas.RenderSVG(c))
	assert.Contains(t, svg, "url(#m-"+c.ID()+"-clock)")
}
