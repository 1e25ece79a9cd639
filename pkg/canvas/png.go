package canvas

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"
)

// RenderPNG rasterizes the canvas. Text is drawn with the Go fonts at the
// output resolution, so scaling up does not blur glyphs.
func RenderPNG(c *Canvas, opts ...Option) ([]byte, error) {
	o := newRenderOptions(opts...)
	f := o.frame(c)

	fm, ok := c.Measurer().(*FaceMetrics)
	if !ok {
		var err error
		if fm, err = NewFaceMetrics(); err != nil {
			return nil, err
		}
	}

	w := int(math.Ceil(f.Width() * o.scale))
	h := int(math.Ceil(f.Height() * o.scale))
	dc := gg.NewContext(max(w, 1), max(h, 1))
	if !o.transparent {
		dc.SetColor(o.background)
		dc.Clear()
	}
	dc.Scale(o.scale, o.scale)
	dc.Translate(-f.X0, -f.Y0)

	r := &rasterizer{dc: dc, c: c, fm: fm, scale: o.scale}
	for _, s := range c.Shapes {
		if err := r.shape(s); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

type rasterizer struct {
	dc    *gg.Context
	c     *Canvas
	fm    *FaceMetrics
	scale float64
}

func (r *rasterizer) shape(s Shape) error {
	dc := r.dc
	switch v := s.(type) {
	case *Group:
		dc.Push()
		dc.Translate(v.X, v.Y)
		for _, child := range v.Shapes {
			if err := r.shape(child); err != nil {
				dc.Pop()
				return err
			}
		}
		dc.Pop()
	case *Line:
		dc.DrawLine(v.X0, v.Y0, v.X1, v.Y1)
		r.paint(v.Style, false)
		a := v.Angle()
		if m, ok := r.c.Marker(v.Style.MarkerStart); ok {
			r.marker(m, Point{v.X0, v.Y0}, a)
		}
		if m, ok := r.c.Marker(v.Style.MarkerEnd); ok {
			r.marker(m, Point{v.X1, v.Y1}, a)
		}
	case *Rectangle:
		b := rectOf(Point{v.X0, v.Y0}, Point{v.X1, v.Y1})
		dc.DrawRectangle(b.X0, b.Y0, b.Width(), b.Height())
		r.paint(v.Style, true)
	case *Oval:
		b := rectOf(Point{v.X0, v.Y0}, Point{v.X1, v.Y1})
		ctr := b.Center()
		dc.DrawEllipse(ctr.X, ctr.Y, b.Width()/2, b.Height()/2)
		r.paint(v.Style, true)
	case *Path:
		for _, op := range v.Ops {
			switch op.Cmd {
			case CmdMove:
				dc.MoveTo(op.Pts[0].X, op.Pts[0].Y)
			case CmdLine:
				dc.LineTo(op.Pts[0].X, op.Pts[0].Y)
			case CmdCubic:
				dc.CubicTo(op.Pts[0].X, op.Pts[0].Y, op.Pts[1].X, op.Pts[1].Y, op.Pts[2].X, op.Pts[2].Y)
			case CmdClose:
				dc.ClosePath()
			}
		}
		r.paint(v.Style, true)
	case *Text:
		return r.text(v)
	}
	return nil
}

// paint fills and strokes the current path. gg strokes in device space, so
// line weights are scaled here.
func (r *rasterizer) paint(s Style, closed bool) {
	dc := r.dc
	fill := closed && s.hasFill()
	stroke := s.LineWeight > 0
	switch {
	case fill && stroke:
		dc.SetColor(s.Fill)
		dc.FillPreserve()
	case fill:
		dc.SetColor(s.Fill)
		dc.Fill()
		return
	case !stroke:
		dc.ClearPath()
		return
	}
	dc.SetColor(s.stroke())
	dc.SetLineWidth(s.LineWeight * r.scale)
	dc.Stroke()
}

func (r *rasterizer) marker(m Marker, at Point, lineAngle float64) {
	dc := r.dc
	dc.Push()
	dc.Translate(at.X, at.Y)
	dc.Rotate(m.angle(lineAngle))
	dc.Translate(-m.Ref.X, -m.Ref.Y)
	_ = r.shape(m.Shape)
	dc.Pop()
}

// text draws each span at device resolution with an identity matrix.
func (r *rasterizer) text(t *Text) error {
	origin, _ := t.place(r.c)
	face, err := r.fm.Face(t.Style.Font, r.scale)
	if err != nil {
		return fmt.Errorf("text face: %w", err)
	}
	dc := r.dc
	x, y := dc.TransformPoint(origin.X, origin.Y)
	dc.Push()
	dc.Identity()
	dc.SetFontFace(face)
	for _, s := range t.Spans {
		col := t.Style.text()
		if s.Color.A != 0 {
			col = s.Color
		}
		dc.SetColor(col)
		dc.DrawString(s.Text, x, y)
		adv, _ := dc.MeasureString(s.Text)
		x += adv
	}
	dc.Pop()
	return nil
}
