package canvas

import (
	"math"
)

// Point is a position in canvas units.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned box. A Rect with X0 > X1 is empty.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// EmptyRect returns the identity element for [Rect.Union].
func EmptyRect() Rect {
	return Rect{X0: math.Inf(1), Y0: math.Inf(1), X1: math.Inf(-1), Y1: math.Inf(-1)}
}

// IsEmpty reports whether r contains no points.
func (r Rect) IsEmpty() bool { return r.X0 > r.X1 || r.Y0 > r.Y1 }

// Width returns the horizontal extent, 0 for an empty rect.
func (r Rect) Width() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.X1 - r.X0
}

// Height returns the vertical extent, 0 for an empty rect.
func (r Rect) Height() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Y1 - r.Y0
}

// Union returns the smallest rect containing r and o.
func (r Rect) Union(o Rect) Rect {
	if o.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return o
	}
	return Rect{
		X0: min(r.X0, o.X0), Y0: min(r.Y0, o.Y0),
		X1: max(r.X1, o.X1), Y1: max(r.Y1, o.Y1),
	}
}

// Inset shrinks r by d on every side. A negative d grows it.
func (r Rect) Inset(d float64) Rect {
	if r.IsEmpty() {
		return r
	}
	return Rect{X0: r.X0 + d, Y0: r.Y0 + d, X1: r.X1 - d, Y1: r.Y1 - d}
}

// Translate moves r by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	if r.IsEmpty() {
		return r
	}
	return Rect{X0: r.X0 + dx, Y0: r.Y0 + dy, X1: r.X1 + dx, Y1: r.Y1 + dy}
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: (r.X0 + r.X1) / 2, Y: (r.Y0 + r.Y1) / 2}
}

// rectOf returns the bounding box of pts.
func rectOf(pts ...Point) Rect {
	r := EmptyRect()
	for _, p := range pts {
		r = r.Union(Rect{X0: p.X, Y0: p.Y, X1: p.X, Y1: p.Y})
	}
	return r
}

// transform rotates p by angle (radians) around the origin, then translates.
func transform(p Point, angle, dx, dy float64) Point {
	s, c := math.Sincos(angle)
	return Point{X: p.X*c - p.Y*s + dx, Y: p.X*s + p.Y*c + dy}
}
