package canvas

import (
	"encoding/json"
)

type jsonOutput struct {
	Width   float64         `json:"width"`
	Height  float64         `json:"height"`
	BBox    [4]float64      `json:"bbox"`
	Markers []string        `json:"markers,omitempty"`
	Shapes  []jsonPrimitive `json:"shapes"`
}

// jsonPrimitive is one drawing element in absolute canvas coordinates.
type jsonPrimitive struct {
	Kind        string       `json:"kind"`
	Points      [][2]float64 `json:"points,omitempty"`
	Text        string       `json:"text,omitempty"`
	Anchor      string       `json:"anchor,omitempty"`
	Font        *jsonFont    `json:"font,omitempty"`
	Fill        string       `json:"fill,omitempty"`
	Stroke      string       `json:"stroke,omitempty"`
	LineWeight  float64      `json:"line_weight,omitempty"`
	MarkerStart string       `json:"marker_start,omitempty"`
	MarkerEnd   string       `json:"marker_end,omitempty"`
}

type jsonFont struct {
	Family string  `json:"family"`
	Size   float64 `json:"size"`
	Bold   bool    `json:"bold,omitempty"`
	Italic bool    `json:"italic,omitempty"`
}

// RenderJSON exports the flattened primitive list. Group offsets are folded
// into the coordinates, so consumers never see the tree.
func RenderJSON(c *Canvas, opts ...Option) ([]byte, error) {
	o := newRenderOptions(opts...)
	f := o.frame(c)
	out := jsonOutput{
		Width:  f.Width() * o.scale,
		Height: f.Height() * o.scale,
		BBox:   [4]float64{f.X0, f.Y0, f.X1, f.Y1},
		Shapes: []jsonPrimitive{},
	}
	for _, m := range c.Markers() {
		out.Markers = append(out.Markers, m.Name)
	}
	flatten(c, c.Group, 0, 0, &out.Shapes)
	return json.MarshalIndent(out, "", "  ")
}

func flatten(c *Canvas, g *Group, dx, dy float64, out *[]jsonPrimitive) {
	pt := func(x, y float64) [2]float64 { return [2]float64{x + dx, y + dy} }
	for _, s := range g.Shapes {
		var p jsonPrimitive
		st := s.ShapeStyle()
		switch v := s.(type) {
		case *Group:
			flatten(c, v, dx+v.X, dy+v.Y, out)
			continue
		case *Line:
			p = jsonPrimitive{Kind: "line", Points: [][2]float64{pt(v.X0, v.Y0), pt(v.X1, v.Y1)},
				MarkerStart: v.Style.MarkerStart, MarkerEnd: v.Style.MarkerEnd}
		case *Rectangle:
			p = jsonPrimitive{Kind: "rect", Points: [][2]float64{pt(v.X0, v.Y0), pt(v.X1, v.Y1)}}
		case *Oval:
			p = jsonPrimitive{Kind: "oval", Points: [][2]float64{pt(v.X0, v.Y0), pt(v.X1, v.Y1)}}
		case *Path:
			p = jsonPrimitive{Kind: "path"}
			for _, op := range v.Ops {
				for _, q := range op.Pts {
					p.Points = append(p.Points, pt(q.X, q.Y))
				}
			}
		case *Text:
			f := v.Style.Font.orDefault()
			origin, _ := v.place(c)
			p = jsonPrimitive{
				Kind:   "text",
				Points: [][2]float64{pt(origin.X, origin.Y)},
				Text:   v.String(),
				Anchor: string(v.Style.Anchor),
				Font:   &jsonFont{Family: f.Family, Size: f.Size, Bold: f.Bold, Italic: f.Italic},
			}
		}
		if st.hasFill() {
			p.Fill = Hex(st.Fill)
		}
		if st.LineWeight > 0 {
			p.Stroke = Hex(st.stroke())
			p.LineWeight = st.LineWeight
		}
		*out = append(*out, p)
	}
}
