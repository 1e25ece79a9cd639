package canvas

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"image/color"
	"strings"
)

// Option configures an output backend.
type Option func(*renderOptions)

type renderOptions struct {
	scale       float64
	padding     float64
	transparent bool
	embedFonts  bool
	background  color.RGBA
}

// DefaultPadding is the margin added around the drawing bounding box.
const DefaultPadding = 5.0

func WithScale(s float64) Option   { return func(o *renderOptions) { o.scale = s } }
func WithPadding(p float64) Option { return func(o *renderOptions) { o.padding = p } }
func WithTransparent() Option      { return func(o *renderOptions) { o.transparent = true } }
func WithEmbeddedFonts() Option    { return func(o *renderOptions) { o.embedFonts = true } }
func WithBackground(c color.RGBA) Option {
	return func(o *renderOptions) { o.background = c }
}

func newRenderOptions(opts ...Option) renderOptions {
	o := renderOptions{scale: 1, padding: DefaultPadding, background: White}
	for _, opt := range opts {
		opt(&o)
	}
	if o.scale <= 0 {
		o.scale = 1
	}
	if o.padding < 0 {
		o.padding = 0
	}
	return o
}

// frame returns the padded drawing box. An empty canvas yields a box of
// just the padding.
func (o renderOptions) frame(c *Canvas) Rect {
	bb := c.BBox()
	if bb.IsEmpty() {
		bb = Rect{}
	}
	return bb.Inset(-o.padding)
}

// RenderSVG serializes the canvas as a standalone SVG document.
func RenderSVG(c *Canvas, opts ...Option) []byte {
	o := newRenderOptions(opts...)
	f := o.frame(c)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%s" height="%s">`+"\n",
		num(f.X0), num(f.Y0), num(f.Width()), num(f.Height()),
		num(f.Width()*o.scale), num(f.Height()*o.scale))

	w := &svgWriter{buf: &buf, c: c}
	w.defs(o.embedFonts)
	if !o.transparent {
		fmt.Fprintf(&buf, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
			num(f.X0), num(f.Y0), num(f.Width()), num(f.Height()), Hex(o.background))
	}
	for _, s := range c.Shapes {
		w.shape(s, 1)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

type svgWriter struct {
	buf *bytes.Buffer
	c   *Canvas
}

func (w *svgWriter) markerID(name string) string {
	return "m-" + w.c.ID() + "-" + name
}

func (w *svgWriter) defs(embedFonts bool) {
	markers := w.c.Markers()
	var fonts []Font
	if embedFonts {
		fonts = usedFonts(w.c.Group)
	}
	if len(markers) == 0 && len(fonts) == 0 {
		return
	}
	w.buf.WriteString("  <defs>\n")
	if len(fonts) > 0 {
		w.buf.WriteString("    <style>\n")
		for _, f := range fonts {
			fmt.Fprintf(w.buf, "      @font-face { font-family: %q; font-weight: %s; font-style: %s; src: url(data:font/ttf;base64,%s); }\n",
				f.Family, weight(f), slant(f), base64.StdEncoding.EncodeToString(fontTTF(f)))
		}
		w.buf.WriteString("    </style>\n")
	}
	for _, m := range markers {
		bb := m.Shape.bounds(w.c)
		orient := "0"
		if m.Orient == OrientAuto {
			orient = "auto"
		}
		fmt.Fprintf(w.buf, `    <marker id="%s" markerUnits="userSpaceOnUse" refX="%s" refY="%s" markerWidth="%s" markerHeight="%s" orient="%s" overflow="visible">`+"\n",
			w.markerID(m.Name), num(m.Ref.X), num(m.Ref.Y), num(bb.Width()), num(bb.Height()), orient)
		w.shape(m.Shape, 3)
		w.buf.WriteString("    </marker>\n")
	}
	w.buf.WriteString("  </defs>\n")
}

func (w *svgWriter) indent(depth int) {
	w.buf.WriteString(strings.Repeat("  ", depth))
}

func (w *svgWriter) shape(s Shape, depth int) {
	w.indent(depth)
	switch v := s.(type) {
	case *Group:
		fmt.Fprintf(w.buf, `<g transform="translate(%s,%s)">`+"\n", num(v.X), num(v.Y))
		for _, child := range v.Shapes {
			w.shape(child, depth+1)
		}
		w.indent(depth)
		w.buf.WriteString("</g>\n")
	case *Line:
		fmt.Fprintf(w.buf, `<line x1="%s" y1="%s" x2="%s" y2="%s"%s`,
			num(v.X0), num(v.Y0), num(v.X1), num(v.Y1), paint(v.Style, false))
		if _, ok := w.c.Marker(v.Style.MarkerStart); ok {
			fmt.Fprintf(w.buf, ` marker-start="url(#%s)"`, w.markerID(v.Style.MarkerStart))
		}
		if _, ok := w.c.Marker(v.Style.MarkerEnd); ok {
			fmt.Fprintf(w.buf, ` marker-end="url(#%s)"`, w.markerID(v.Style.MarkerEnd))
		}
		w.buf.WriteString("/>\n")
	case *Rectangle:
		r := rectOf(Point{v.X0, v.Y0}, Point{v.X1, v.Y1})
		fmt.Fprintf(w.buf, `<rect x="%s" y="%s" width="%s" height="%s"%s/>`+"\n",
			num(r.X0), num(r.Y0), num(r.Width()), num(r.Height()), paint(v.Style, true))
	case *Oval:
		r := rectOf(Point{v.X0, v.Y0}, Point{v.X1, v.Y1})
		ctr := r.Center()
		fmt.Fprintf(w.buf, `<ellipse cx="%s" cy="%s" rx="%s" ry="%s"%s/>`+"\n",
			num(ctr.X), num(ctr.Y), num(r.Width()/2), num(r.Height()/2), paint(v.Style, true))
	case *Path:
		fmt.Fprintf(w.buf, `<path d="%s"%s/>`+"\n", pathData(v.Ops), paint(v.Style, true))
	case *Text:
		w.text(v)
	}
}

func (w *svgWriter) text(t *Text) {
	origin, _ := t.place(w.c)
	f := t.Style.Font.orDefault()
	fmt.Fprintf(w.buf, `<text x="%s" y="%s" font-family="%s" font-size="%s" fill="%s" xml:space="preserve"`,
		num(origin.X), num(origin.Y), escape(f.Family), num(f.Size), Hex(t.Style.text()))
	if f.Bold {
		w.buf.WriteString(` font-weight="bold"`)
	}
	if f.Italic {
		w.buf.WriteString(` font-style="italic"`)
	}
	w.buf.WriteString(">")
	for _, s := range t.Spans {
		if s.Color.A == 0 {
			w.buf.WriteString(escape(s.Text))
			continue
		}
		fmt.Fprintf(w.buf, `<tspan fill="%s">%s</tspan>`, Hex(s.Color), escape(s.Text))
	}
	w.buf.WriteString("</text>\n")
}

// paint renders fill and stroke attributes. Open shapes never get a fill.
func paint(s Style, closed bool) string {
	var b strings.Builder
	if closed && s.hasFill() {
		fmt.Fprintf(&b, ` fill="%s"`, Hex(s.Fill))
	} else {
		b.WriteString(` fill="none"`)
	}
	if s.LineWeight > 0 {
		fmt.Fprintf(&b, ` stroke="%s" stroke-width="%s"`, Hex(s.stroke()), num(s.LineWeight))
	}
	return b.String()
}

func pathData(ops []PathOp) string {
	parts := make([]string, 0, len(ops))
	for _, op := range ops {
		var b strings.Builder
		b.WriteByte(byte(op.Cmd))
		for i, p := range op.Pts {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(num(p.X) + "," + num(p.Y))
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, " ")
}

func usedFonts(g *Group) []Font {
	seen := make(map[Font]bool)
	var out []Font
	var walk func(*Group)
	walk = func(g *Group) {
		for _, s := range g.Shapes {
			switch v := s.(type) {
			case *Group:
				walk(v)
			case *Text:
				f := v.Style.Font.orDefault()
				key := Font{Family: f.Family, Bold: f.Bold, Italic: f.Italic}
				if !seen[key] {
					seen[key] = true
					out = append(out, f)
				}
			}
		}
	}
	walk(g)
	return out
}

func weight(f Font) string {
	if f.Bold {
		return "bold"
	}
	return "normal"
}

func slant(f Font) string {
	if f.Italic {
		return "italic"
	}
	return "normal"
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// num formats a coordinate with at most two decimals and no trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}
