package stroke

import (
	"math"

	"github.com/xlloss/strokepath/curve"
	"github.com/xlloss/strokepath/f32"
	"github.com/xlloss/strokepath/path"
)

// emitJoin draws the connecting geometry at the outer corner of a turn,
// between two offset curves. The builder b is positioned at a; emitJoin
// draws to endPoint and leaves the builder there, except for a miter whose
// rays are parallel, where nothing is drawn.
//
// pivot is the unoffset path point the join bends around; ta, tb are the
// end tangent of the curve arriving at a and the start tangent of the curve
// leaving b; angle is the signed turn angle between them (component B).
//
// Grounded on add_line_join in original_source/gsk/gskpathstroke.c.
func emitJoin(b path.Builder, style Style, pivot, a, ta, endPoint, tb f32.Point, angle float32) {
	hw := style.HalfWidth()
	switch style.Join {
	case Miter, MiterClip:
		p, ok := curve.LineIntersect(a, ta, endPoint, tb)
		if !ok {
			// Parallel rays: nothing sensible to draw, matching the C
			// source's silent no-op for this degenerate case.
			return
		}
		sinHalf := math.Abs(math.Sin((math.Pi - math.Abs(float64(angle))) / 2))
		limit := style.MiterLimit
		if limit <= 0 {
			limit = 1
		}
		if sinHalf > 0 && 1/sinHalf <= float64(limit) {
			b.LineTo(p.X, p.Y)
			b.LineTo(endPoint.X, endPoint.Y)
			return
		}
		if style.Join != MiterClip {
			b.LineTo(endPoint.X, endPoint.Y)
			return
		}
		q := f32.Lerp(pivot, p, 0.5)
		n := f32.Normalize(f32.Rot90CCW(p.Sub(pivot)), 1)
		a1, ok1 := curve.LineIntersect(a, ta, q, n)
		b1, ok2 := curve.LineIntersect(endPoint, tb, q, n)
		if !ok1 || !ok2 {
			b.LineTo(endPoint.X, endPoint.Y)
			return
		}
		b.LineTo(a1.X, a1.Y)
		b.LineTo(b1.X, b1.Y)
		b.LineTo(endPoint.X, endPoint.Y)
	case Round:
		sweep := false
		if angle > 0 {
			sweep = true
		}
		b.ArcTo(hw, hw, 0, false, sweep, endPoint.X, endPoint.Y)
	case Bevel:
		b.LineTo(endPoint.X, endPoint.Y)
	}
}

// emitCap draws the end-cap geometry from s to e (the two offset endpoints
// of an open contour's end), assuming b is positioned at s.
//
// Grounded on add_line_cap in original_source/gsk/gskpathstroke.c.
func emitCap(b path.Builder, style Style, s, e f32.Point) {
	hw := style.HalfWidth()
	switch style.Cap {
	case ButtCap:
		b.LineTo(e.X, e.Y)
	case RoundCap:
		b.ArcTo(hw, hw, 0, true, false, e.X, e.Y)
	case SquareCap:
		cx, cy := (s.X+e.X)/2, (s.Y+e.Y)/2
		dx, dy := s.Y-cy, cx-s.X
		b.LineTo(s.X+dx, s.Y+dy)
		b.LineTo(e.X+dx, e.Y+dy)
		b.LineTo(e.X, e.Y)
	}
}
