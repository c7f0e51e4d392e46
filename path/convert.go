package path

import "github.com/xlloss/strokepath/curve"

// ToCurve converts a LineTo/CubicTo/ConicTo segment into a curve.Curve.
// Move and Close carry no shape and panic if passed here.
func ToCurve(s Segment) curve.Curve {
	switch s.Op {
	case LineTo:
		return curve.NewLine(s.Points[0], s.Points[1])
	case CubicTo:
		return curve.NewCubic(s.Points[0], s.Points[1], s.Points[2], s.Points[3])
	case ConicTo:
		return curve.NewConic(s.Points[0], s.Points[1], s.Points[2], s.Weight)
	default:
		panic("path: segment has no curve representation")
	}
}

func cubicCurve(s Segment) curve.Curve { return ToCurve(s) }
func conicCurve(s Segment) curve.Curve { return ToCurve(s) }

// FromCurve converts a curve.Curve back into the equivalent drawing Segment
// (LineTo/CubicTo/ConicTo), for code that builds curves directly (the
// stroke orchestrator) and needs to hand them to a Builder or record them.
func FromCurve(c curve.Curve) Segment {
	pts := c.ControlPoints()
	switch c.Kind() {
	case curve.Line:
		return LineSeg(pts[0], pts[1])
	case curve.Cubic:
		return CubicSeg(pts[0], pts[1], pts[2], pts[3])
	case curve.Conic:
		return ConicSeg(pts[0], pts[1], pts[2], c.Weight())
	default:
		panic("path: curve has impossible kind")
	}
}

// EmitCurve appends c onto b, assuming b's current point already equals
// c.StartPoint() (the stroke orchestrator always arranges this itself).
func EmitCurve(b Builder, c curve.Curve) {
	pts := c.ControlPoints()
	switch c.Kind() {
	case curve.Line:
		b.LineTo(pts[1].X, pts[1].Y)
	case curve.Cubic:
		b.CubicTo(pts[1].X, pts[1].Y, pts[2].X, pts[2].Y, pts[3].X, pts[3].Y)
	case curve.Conic:
		b.ConicTo(pts[1].X, pts[1].Y, pts[2].X, pts[2].Y, c.Weight())
	default:
		panic("path: curve has impossible kind")
	}
}

// ReverseCurves returns the path's recorded curve segments (Move and Close
// markers dropped) reversed: both in traversal order and, individually,
// each curve's own direction -- so replaying them with EmitCurve from a
// builder positioned at the path's original end point retraces the path
// backwards to its original start point.
func (p *Path) ReverseCurves() []Segment {
	var curves []curve.Curve
	for _, s := range p.segs {
		switch s.Op {
		case LineTo, CubicTo, ConicTo:
			curves = append(curves, ToCurve(s))
		}
	}
	out := make([]Segment, len(curves))
	for i, c := range curves {
		out[len(curves)-1-i] = FromCurve(c.Reverse())
	}
	return out
}
