package canvas

import (
	"image/color"
	"math"
	"strings"
)

// Shape is a drawing primitive. Bounds are reported in the coordinate
// system of the shape's parent group.
type Shape interface {
	ShapeStyle() Style
	bounds(c *Canvas) Rect
}

// Line is a straight segment, optionally with markers at its ends.
type Line struct {
	X0, Y0, X1, Y1 float64
	Style          Style
}

// Rectangle is an axis-aligned box.
type Rectangle struct {
	X0, Y0, X1, Y1 float64
	Style          Style
}

// Oval is the ellipse inscribed in a box.
type Oval struct {
	X0, Y0, X1, Y1 float64
	Style          Style
}

// PathCmd is a path drawing command.
type PathCmd byte

// Path commands.
const (
	CmdMove  PathCmd = 'M'
	CmdLine  PathCmd = 'L'
	CmdCubic PathCmd = 'C'
	CmdClose PathCmd = 'Z'
)

// PathOp is one command with its points (1 for move/line, 3 for cubic).
type PathOp struct {
	Cmd PathCmd
	Pts []Point
}

// MoveTo starts a subpath.
func MoveTo(x, y float64) PathOp { return PathOp{Cmd: CmdMove, Pts: []Point{{x, y}}} }

// LineTo adds a straight segment.
func LineTo(x, y float64) PathOp { return PathOp{Cmd: CmdLine, Pts: []Point{{x, y}}} }

// CubicTo adds a cubic Bézier segment.
func CubicTo(x1, y1, x2, y2, x, y float64) PathOp {
	return PathOp{Cmd: CmdCubic, Pts: []Point{{x1, y1}, {x2, y2}, {x, y}}}
}

// ClosePath closes the current subpath.
func ClosePath() PathOp { return PathOp{Cmd: CmdClose} }

// Path is a sequence of move/line/curve commands.
type Path struct {
	Ops   []PathOp
	Style Style
}

// Span is a run of text with an optional color override.
type Span struct {
	Text  string
	Color color.RGBA
}

// Text is a single line of styled text placed by its anchor.
type Text struct {
	X, Y  float64
	Spans []Span
	Style Style
}

// Group is a set of shapes sharing an origin.
type Group struct {
	X, Y   float64
	Shapes []Shape
	canvas *Canvas
}

func (l *Line) ShapeStyle() Style      { return l.Style }
func (r *Rectangle) ShapeStyle() Style { return r.Style }
func (o *Oval) ShapeStyle() Style      { return o.Style }
func (p *Path) ShapeStyle() Style      { return p.Style }
func (t *Text) ShapeStyle() Style      { return t.Style }
func (g *Group) ShapeStyle() Style     { return Style{} }

// String returns the concatenated span text.
func (t *Text) String() string {
	var b strings.Builder
	for _, s := range t.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Angle returns the direction of the line in radians.
func (l *Line) Angle() float64 {
	return math.Atan2(l.Y1-l.Y0, l.X1-l.X0)
}

func (l *Line) bounds(c *Canvas) Rect {
	r := rectOf(Point{l.X0, l.Y0}, Point{l.X1, l.Y1}).Inset(-l.Style.LineWeight / 2)
	a := l.Angle()
	if m, ok := c.Marker(l.Style.MarkerStart); ok {
		r = r.Union(m.boundsAt(c, Point{l.X0, l.Y0}, a))
	}
	if m, ok := c.Marker(l.Style.MarkerEnd); ok {
		r = r.Union(m.boundsAt(c, Point{l.X1, l.Y1}, a))
	}
	return r
}

func (r *Rectangle) bounds(*Canvas) Rect {
	return rectOf(Point{r.X0, r.Y0}, Point{r.X1, r.Y1}).Inset(-r.Style.LineWeight / 2)
}

func (o *Oval) bounds(*Canvas) Rect {
	return rectOf(Point{o.X0, o.Y0}, Point{o.X1, o.Y1}).Inset(-o.Style.LineWeight / 2)
}

// Bounds of a path use its control points, which contain the curve.
func (p *Path) bounds(*Canvas) Rect {
	r := EmptyRect()
	for _, op := range p.Ops {
		r = r.Union(rectOf(op.Pts...))
	}
	return r.Inset(-p.Style.LineWeight / 2)
}

func (t *Text) bounds(c *Canvas) Rect {
	_, box := t.place(c)
	return box
}

// place returns the baseline origin of the text and its bounding box.
func (t *Text) place(m TextMeasurer) (Point, Rect) {
	box, _ := m.TextBBox(t.String(), t.Style.Font.orDefault())
	w := box.Width()

	var ox, oy float64
	anchor := t.Style.Anchor
	switch {
	case anchor == AnchorBaseline:
		ox = t.X - w/2
	case strings.Contains(string(anchor), "w"):
		ox = t.X
	case strings.Contains(string(anchor), "e"):
		ox = t.X - w
	default:
		ox = t.X - w/2
	}
	switch {
	case anchor == AnchorBaseline:
		oy = t.Y
	case strings.HasPrefix(string(anchor), "n"):
		oy = t.Y - box.Y0
	case strings.HasPrefix(string(anchor), "s"):
		oy = t.Y - box.Y1
	default:
		oy = t.Y - (box.Y0+box.Y1)/2
	}
	return Point{ox, oy}, box.Translate(ox, oy)
}

func (g *Group) bounds(c *Canvas) Rect {
	r := EmptyRect()
	for _, s := range g.Shapes {
		r = r.Union(s.bounds(c))
	}
	return r.Translate(g.X, g.Y)
}

// BBox returns the extent of the group in its parent's coordinates.
func (g *Group) BBox() Rect {
	return g.bounds(g.canvas)
}

func (g *Group) add(s Shape) {
	g.Shapes = append(g.Shapes, s)
}

// AddGroup adds a child group with its origin at (x, y).
func (g *Group) AddGroup(x, y float64) *Group {
	child := &Group{X: x, Y: y, canvas: g.canvas}
	g.add(child)
	return child
}

// Line adds a line.
func (g *Group) Line(x0, y0, x1, y1 float64, s Style) *Line {
	l := &Line{X0: x0, Y0: y0, X1: x1, Y1: y1, Style: s}
	g.add(l)
	return l
}

// Rect adds a rectangle.
func (g *Group) Rect(x0, y0, x1, y1 float64, s Style) *Rectangle {
	r := &Rectangle{X0: x0, Y0: y0, X1: x1, Y1: y1, Style: s}
	g.add(r)
	return r
}

// Oval adds an ellipse inscribed in the given box.
func (g *Group) Oval(x0, y0, x1, y1 float64, s Style) *Oval {
	o := &Oval{X0: x0, Y0: y0, X1: x1, Y1: y1, Style: s}
	g.add(o)
	return o
}

// Path adds a path.
func (g *Group) Path(ops []PathOp, s Style) *Path {
	p := &Path{Ops: ops, Style: s}
	g.add(p)
	return p
}

// Text adds a text made of spans.
func (g *Group) Text(x, y float64, spans []Span, s Style) *Text {
	t := &Text{X: x, Y: y, Spans: spans, Style: s}
	g.add(t)
	return t
}

// Label adds a single-span text.
func (g *Group) Label(x, y float64, text string, s Style) *Text {
	return g.Text(x, y, []Span{{Text: text}}, s)
}
