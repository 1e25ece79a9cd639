package canvas

import (
	"github.com/google/uuid"
)

// Orientation controls how a marker is rotated at a line end.
type Orientation int

const (
	// OrientFixed draws the marker unrotated.
	OrientFixed Orientation = iota
	// OrientAuto rotates the marker to the line direction.
	OrientAuto
)

// Marker is a named glyph drawn at the end of a line.
// Ref is the point of Shape that lands on the line end.
type Marker struct {
	Name   string
	Shape  Shape
	Ref    Point
	Orient Orientation
}

func (m Marker) angle(lineAngle float64) float64 {
	if m.Orient == OrientAuto {
		return lineAngle
	}
	return 0
}

func (m Marker) boundsAt(c *Canvas, p Point, lineAngle float64) Rect {
	local := m.Shape.bounds(c)
	if local.IsEmpty() {
		return local
	}
	a := m.angle(lineAngle)
	corners := []Point{
		{local.X0, local.Y0}, {local.X1, local.Y0},
		{local.X0, local.Y1}, {local.X1, local.Y1},
	}
	for i, q := range corners {
		corners[i] = transform(Point{q.X - m.Ref.X, q.Y - m.Ref.Y}, a, p.X, p.Y)
	}
	return rectOf(corners...)
}

// Canvas is a retained drawing surface: shapes are recorded into a tree and
// serialized later by one of the Render functions.
//
// The marker registry belongs to the canvas, so separate canvases never
// share glyph definitions. A Canvas is not safe for concurrent use.
type Canvas struct {
	*Group
	measurer TextMeasurer
	markers  map[string]Marker
	order    []string
	id       string
}

// New returns an empty canvas measuring text with m.
func New(m TextMeasurer) *Canvas {
	if m == nil {
		m = ApproxMetrics{}
	}
	c := &Canvas{
		measurer: m,
		markers:  make(map[string]Marker),
		id:       uuid.NewString()[:8],
	}
	c.Group = &Group{canvas: c}
	return c
}

// ID is a short identifier unique to this canvas, used to namespace
// element ids in vector output.
func (c *Canvas) ID() string { return c.id }

// Measurer returns the text measurer backing this canvas.
func (c *Canvas) Measurer() TextMeasurer { return c.measurer }

// TextBBox implements TextMeasurer by delegating to the canvas measurer.
func (c *Canvas) TextBBox(text string, f Font) (Rect, float64) {
	return c.measurer.TextBBox(text, f.orDefault())
}

// AddMarker registers or replaces a marker glyph.
func (c *Canvas) AddMarker(m Marker) {
	if _, ok := c.markers[m.Name]; !ok {
		c.order = append(c.order, m.Name)
	}
	c.markers[m.Name] = m
}

// Marker looks up a registered marker.
func (c *Canvas) Marker(name string) (Marker, bool) {
	if name == "" {
		return Marker{}, false
	}
	m, ok := c.markers[name]
	return m, ok
}

// Markers returns registered markers in registration order.
func (c *Canvas) Markers() []Marker {
	out := make([]Marker, 0, len(c.order))
	for _, n := range c.order {
		out = append(out, c.markers[n])
	}
	return out
}

// Clear removes all shapes. Registered markers are kept.
func (c *Canvas) Clear() {
	c.Group.Shapes = nil
}

// BBox returns the extent of everything drawn.
func (c *Canvas) BBox() Rect {
	return c.Group.bounds(c)
}
