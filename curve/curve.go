// Package curve implements Component A of the stroker: an immutable value
// type for a single path segment (line, cubic Bézier, or rational quadratic
// "conic"), together with the small set of operations the stroke
// orchestrator needs: evaluation, tangents, splitting, reversal, and
// endpoint-normal offsetting.
//
// Grounded on gsk_curve_* in original_source/gsk/gskpathstroke.c (the
// GskCurve tagged union) and, for the supporting vector math, on
// gioui.org/internal/stroke's free functions (rot90CW, normPt, dotPt,
// perpDot) as vendored in the teacher repo.
package curve

import (
	"math"

	"github.com/xlloss/strokepath/f32"
)

// Kind identifies which of the three closed variants a Curve holds.
type Kind uint8

const (
	Line Kind = iota
	Cubic
	Conic
)

// Curve is an immutable value representing one path segment. All operations
// return new Curves; a Curve is cheap to copy.
//
// Field meaning depends on Kind:
//   - Line:  p0, p1 are the two endpoints.
//   - Cubic: p0, p1, p2, p3 are the four Bézier control points.
//   - Conic: p0, p1, p2 are the three control points and w is the (positive)
//     weight of the middle control point; the endpoint weights are fixed at 1.
type Curve struct {
	kind   Kind
	p0, p1, p2, p3 f32.Point
	w      float32
}

// NewLine returns a line segment from p0 to p1.
func NewLine(p0, p1 f32.Point) Curve {
	return Curve{kind: Line, p0: p0, p1: p1}
}

// NewCubic returns a cubic Bézier curve with the given control points.
func NewCubic(p0, p1, p2, p3 f32.Point) Curve {
	return Curve{kind: Cubic, p0: p0, p1: p1, p2: p2, p3: p3}
}

// NewConic returns a rational quadratic (conic) curve. w must be positive.
func NewConic(p0, p1, p2 f32.Point, w float32) Curve {
	return Curve{kind: Conic, p0: p0, p1: p1, p2: p2, w: w}
}

func (c Curve) Kind() Kind { return c.kind }

// Weight returns the conic weight. It is meaningless for other kinds.
func (c Curve) Weight() float32 { return c.w }

// ControlPoints returns the curve's defining points, in order. Lines report
// two, cubics four, conics three.
func (c Curve) ControlPoints() []f32.Point {
	switch c.kind {
	case Line:
		return []f32.Point{c.p0, c.p1}
	case Cubic:
		return []f32.Point{c.p0, c.p1, c.p2, c.p3}
	case Conic:
		return []f32.Point{c.p0, c.p1, c.p2}
	default:
		panic("curve: impossible kind")
	}
}

func (c Curve) StartPoint() f32.Point { return c.p0 }

func (c Curve) EndPoint() f32.Point {
	switch c.kind {
	case Line:
		return c.p1
	case Cubic:
		return c.p3
	case Conic:
		return c.p2
	default:
		panic("curve: impossible kind")
	}
}

// Evaluate returns the point on the curve at parameter t in [0, 1].
func (c Curve) Evaluate(t float32) f32.Point {
	switch c.kind {
	case Line:
		return f32.Lerp(c.p0, c.p1, t)
	case Cubic:
		a := f32.Lerp(c.p0, c.p1, t)
		b := f32.Lerp(c.p1, c.p2, t)
		d := f32.Lerp(c.p2, c.p3, t)
		ab := f32.Lerp(a, b, t)
		bd := f32.Lerp(b, d, t)
		return f32.Lerp(ab, bd, t)
	case Conic:
		u := 1 - t
		c0 := u * u
		c1 := 2 * u * t * c.w
		c2 := t * t
		num := c.p0.Mul(c0).Add(c.p1.Mul(c1)).Add(c.p2.Mul(c2))
		den := c0 + c1 + c2
		return num.Mul(1 / den)
	default:
		panic("curve: impossible kind")
	}
}

// StartTangent returns the unit tangent vector at t=0, falling back through
// later control points when earlier ones coincide.
func (c Curve) StartTangent() f32.Point {
	switch c.kind {
	case Line:
		return unitOrZero(c.p1.Sub(c.p0))
	case Cubic:
		if t := unitOrZero(c.p1.Sub(c.p0)); t != (f32.Point{}) {
			return t
		}
		if t := unitOrZero(c.p2.Sub(c.p0)); t != (f32.Point{}) {
			return t
		}
		return unitOrZero(c.p3.Sub(c.p0))
	case Conic:
		if t := unitOrZero(c.p1.Sub(c.p0)); t != (f32.Point{}) {
			return t
		}
		return unitOrZero(c.p2.Sub(c.p0))
	default:
		panic("curve: impossible kind")
	}
}

// EndTangent returns the unit tangent vector at t=1, falling back through
// earlier control points when later ones coincide.
func (c Curve) EndTangent() f32.Point {
	switch c.kind {
	case Line:
		return unitOrZero(c.p1.Sub(c.p0))
	case Cubic:
		if t := unitOrZero(c.p3.Sub(c.p2)); t != (f32.Point{}) {
			return t
		}
		if t := unitOrZero(c.p3.Sub(c.p1)); t != (f32.Point{}) {
			return t
		}
		return unitOrZero(c.p3.Sub(c.p0))
	case Conic:
		if t := unitOrZero(c.p2.Sub(c.p1)); t != (f32.Point{}) {
			return t
		}
		return unitOrZero(c.p2.Sub(c.p0))
	default:
		panic("curve: impossible kind")
	}
}

func unitOrZero(v f32.Point) f32.Point {
	if v.X == 0 && v.Y == 0 {
		return f32.Point{}
	}
	return f32.Normalize(v, 1)
}

// Split divides the curve at t into two curves of the same kind whose
// concatenation reproduces the original.
func (c Curve) Split(t float32) (Curve, Curve) {
	switch c.kind {
	case Line:
		m := f32.Lerp(c.p0, c.p1, t)
		return NewLine(c.p0, m), NewLine(m, c.p1)
	case Cubic:
		a := f32.Lerp(c.p0, c.p1, t)
		b := f32.Lerp(c.p1, c.p2, t)
		d := f32.Lerp(c.p2, c.p3, t)
		ab := f32.Lerp(a, b, t)
		bd := f32.Lerp(b, d, t)
		m := f32.Lerp(ab, bd, t)
		return NewCubic(c.p0, a, ab, m), NewCubic(m, bd, d, c.p3)
	case Conic:
		return c.splitConic(t)
	default:
		panic("curve: impossible kind")
	}
}

// splitConic subdivides a rational quadratic at t using de Casteljau in
// homogeneous coordinates (x*w, y*w, w), then renormalizes each half's
// interior weight so the endpoints are weight 1 again. The renormalized
// weight of a half is (interior homogeneous w) / sqrt(w0 * w2) of that
// half's own homogeneous endpoints -- the curve's shape depends only on
// that ratio, not on the absolute scale of the homogeneous weights, so this
// reproduces the exact sub-arc even though it does not preserve the
// original parametrization speed.
func (c Curve) splitConic(t float32) (Curve, Curve) {
	type h struct {
		x, y, w float32
	}
	lerpH := func(a, b h, t float32) h {
		u := 1 - t
		return h{a.x*u + b.x*t, a.y*u + b.y*t, a.w*u + b.w*t}
	}
	q0 := h{c.p0.X, c.p0.Y, 1}
	q1 := h{c.p1.X * c.w, c.p1.Y * c.w, c.w}
	q2 := h{c.p2.X, c.p2.Y, 1}

	l1 := lerpH(q0, q1, t)
	r1 := lerpH(q1, q2, t)
	m := lerpH(l1, r1, t)

	project := func(p h) f32.Point { return f32.Point{X: p.x / p.w, Y: p.y / p.w} }

	leftW := l1.w / float32(math.Sqrt(float64(m.w)))
	rightW := r1.w / float32(math.Sqrt(float64(m.w)))

	left := NewConic(c.p0, project(l1), project(m), leftW)
	right := NewConic(project(m), project(r1), c.p2, rightW)
	return left, right
}

// Segment returns the sub-curve spanning [t0, t1], implemented as two
// splits: first isolating [t0, 1], then isolating [t0, t1] within it.
func (c Curve) Segment(t0, t1 float32) Curve {
	_, tail := c.Split(t0)
	if t1 >= 1 {
		return tail
	}
	rel := (t1 - t0) / (1 - t0)
	head, _ := tail.Split(rel)
	return head
}

// Reverse returns the curve traversed backwards.
func (c Curve) Reverse() Curve {
	switch c.kind {
	case Line:
		return NewLine(c.p1, c.p0)
	case Cubic:
		return NewCubic(c.p3, c.p2, c.p1, c.p0)
	case Conic:
		return NewConic(c.p2, c.p1, c.p0, c.w)
	default:
		panic("curve: impossible kind")
	}
}

// Offset returns a curve of the same kind approximating the locus of points
// displaced by distance d along the outward normal (Rot90CW of the unit
// tangent). This is a good approximation when the curve is "simple" (see
// Subdivide) -- ensuring that is the caller's responsibility.
func (c Curve) Offset(d float32) Curve {
	n0 := f32.Rot90CW(c.StartTangent()).Mul(d)
	n1 := f32.Rot90CW(c.EndTangent()).Mul(d)
	switch c.kind {
	case Line:
		// A line has one normal throughout.
		return NewLine(c.p0.Add(n0), c.p1.Add(n0))
	case Cubic:
		return NewCubic(c.p0.Add(n0), c.p1.Add(n0), c.p2.Add(n1), c.p3.Add(n1))
	case Conic:
		np0 := c.p0.Add(n0)
		np2 := c.p2.Add(n1)
		t0 := c.StartTangent()
		t1 := c.EndTangent()
		if mid, ok := lineIntersect(np0, t0, np2, t1); ok {
			return NewConic(np0, mid, np2, c.w)
		}
		// Parallel tangents: fall back to translating the control point by
		// the average of the two endpoint normals.
		avg := n0.Add(n1).Mul(0.5)
		return NewConic(np0, c.p1.Add(avg), np2, c.w)
	default:
		panic("curve: impossible kind")
	}
}

// lineIntersect returns the intersection of the ray a+t*ab and c+s*cd, and
// whether the two directions are not (nearly) parallel. ParallelEpsilon is
// the shared determinant threshold used throughout the stroker (spec §9).
func lineIntersect(a, ab, c, cd f32.Point) (f32.Point, bool) {
	a1 := ab.Y
	b1 := -ab.X
	c1 := a1*a.X + b1*a.Y

	a2 := cd.Y
	b2 := -cd.X
	c2 := a2*c.X + b2*c.Y

	det := a1*b2 - a2*b1
	if float32(math.Abs(float64(det))) <= ParallelEpsilon {
		return f32.Point{}, false
	}
	return f32.Point{
		X: (b2*c1 - b1*c2) / det,
		Y: (a1*c2 - a2*c1) / det,
	}, true
}

// ParallelEpsilon is the determinant threshold below which two lines are
// considered parallel (spec §6, §9). It doubles as LineIntersect's
// tolerance for callers outside this package (the stroke package's join
// synthesis needs the same ray intersection for miter joins).
const ParallelEpsilon = 1e-3

// LineIntersect exposes the ray-intersection helper used internally for
// conic offsetting to the stroke package, so join synthesis uses exactly
// the same numerics.
func LineIntersect(a, ab, c, cd f32.Point) (f32.Point, bool) {
	return lineIntersect(a, ab, c, cd)
}
