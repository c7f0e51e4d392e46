package curve

import (
	"math"
	"sort"

	"github.com/xlloss/strokepath/f32"
)

// MaxSubdivision is the recursion depth budget handed to Subdivide, per
// spec §6 ("MAX_SUBDIVISION = 8").
const MaxSubdivision = 8

// SimpleNormalAngle is the maximum angle, in radians, between the two
// endpoint normals of a curve for it to be considered "simple" (spec §4.D).
const SimpleNormalAngle = math.Pi / 3

// Subdivide splits a curved segment (Cubic or Conic) into pieces until each
// satisfies IsSimple or the depth budget of MaxSubdivision is spent; a piece
// reached at the last level is returned as it is, simple or not. Lines are
// always simple and are returned unchanged.
//
// Grounded on subdivide_and_add_curve / subdivide_and_add_conic in
// original_source/gsk/gskpathstroke.c.
func Subdivide(c Curve) []Curve {
	switch c.Kind() {
	case Line:
		return []Curve{c}
	case Cubic:
		return subdivideCubic(c, MaxSubdivision)
	case Conic:
		return subdivideConic(c, MaxSubdivision)
	default:
		panic("curve: impossible kind")
	}
}

// IsSimple reports whether c satisfies the "simple" predicate gating
// subdivision (spec §4.D, glossary). Lines are always simple.
func IsSimple(c Curve) bool {
	switch c.Kind() {
	case Line:
		return true
	case Cubic:
		return cubicIsSimple(c)
	case Conic:
		return conicIsSimple(c)
	default:
		panic("curve: impossible kind")
	}
}

func subdivideCubic(c Curve, level int) []Curve {
	if level == 0 || (level < MaxSubdivision && cubicIsSimple(c)) {
		return []Curve{c}
	}

	if level == MaxSubdivision {
		ts := []float32{0, 1}
		ts = append(ts, cubicCurvaturePoints(c)...)
		sort.Slice(ts, func(i, j int) bool { return ts[i] < ts[j] })
		if len(ts) == 2 {
			a, b := c.Split(0.5)
			return append(subdivideCubic(a, level-1), subdivideCubic(b, level-1)...)
		}
		var out []Curve
		for i := 0; i+1 < len(ts); i++ {
			out = append(out, subdivideCubic(c.Segment(ts[i], ts[i+1]), level-1)...)
		}
		return out
	}

	a, b := c.Split(0.5)
	return append(subdivideCubic(a, level-1), subdivideCubic(b, level-1)...)
}

func subdivideConic(c Curve, level int) []Curve {
	if level == 0 || (level < MaxSubdivision && conicIsSimple(c)) {
		return []Curve{c}
	}
	a, b := c.Split(0.5)
	return append(subdivideConic(a, level-1), subdivideConic(b, level-1)...)
}

// cubicIsSimple implements spec §4.D's two conditions for cubics: the
// control-polygon turns at p1 and p2 don't change sign (no inflection), and
// the endpoint normals don't diverge by pi/3 or more.
func cubicIsSimple(c Curve) bool {
	pts := c.ControlPoints()
	p0, p1, p2, p3 := pts[0], pts[1], pts[2], pts[3]

	t1 := tangent(p0, p1)
	t2 := tangent(p1, p2)
	t3 := tangent(p2, p3)
	a1 := angleBetween(t1, t2)
	a2 := angleBetween(t2, t3)
	if (a1 < 0 && a2 > 0) || (a1 > 0 && a2 < 0) {
		return false
	}

	n1 := normal(p0, p1)
	n2 := normal(p2, p3)
	s := f32.Dot(n1, n2)
	if math.Abs(math.Acos(clamp(float64(s)))) >= SimpleNormalAngle {
		return false
	}
	return true
}

// conicIsSimple implements spec §4.D for conics: acos(n(p0p1)·n(p1p2)) < pi/3.
func conicIsSimple(c Curve) bool {
	pts := c.ControlPoints()
	p0, p1, p2 := pts[0], pts[1], pts[2]
	n1 := normal(p0, p1)
	n2 := normal(p1, p2)
	s := f32.Dot(n1, n2)
	return math.Abs(math.Acos(clamp(float64(s)))) < SimpleNormalAngle
}

// cubicCurvaturePoints returns the curvature-extremum and inflection
// parameters of c in the open interval (0, 1), at most three of them.
//
// Grounded on cubic_curvature_points in gskpathstroke.c: align the curve so
// p0 is the origin and p3 lies on the x-axis, then solve the quadratic
// coefficients derived from the aligned interior control points.
func cubicCurvaturePoints(c Curve) []float32 {
	pts := c.ControlPoints()
	aligned := alignPoints(pts, pts[0], pts[3])
	p1, p2, p3 := aligned[1], aligned[2], aligned[3]

	a := p2.X * p1.Y
	b := p3.X * p1.Y
	cc := p1.X * p2.Y
	d := p3.X * p2.Y

	x := -3*a + 2*b + 3*cc - d
	y := 3*a - b - 3*cc
	z := cc - a

	var roots []float32
	if float32(math.Abs(float64(x))) >= 1e-3 {
		tt := -y / (2 * x)
		if 0 < tt && tt < 1 {
			roots = append(roots, tt)
		}
		u2 := y*y - 4*x*z
		if u2 > 0.001 {
			u := float32(math.Sqrt(float64(u2)))
			if tt := (-y + u) / (2 * x); 0 < tt && tt < 1 {
				roots = append(roots, tt)
			}
			if tt := (-y - u) / (2 * x); 0 < tt && tt < 1 {
				roots = append(roots, tt)
			}
		}
	}
	return roots
}

// alignPoints rotates and translates pts so that a maps to the origin and
// the direction from a to b lies along the positive x-axis.
func alignPoints(pts []f32.Point, a, b f32.Point) []f32.Point {
	dir := tangent(a, b)
	angle := -math.Atan2(float64(dir.Y), float64(dir.X))
	s, c := math.Sincos(angle)
	sf, cf := float32(s), float32(c)

	out := make([]f32.Point, len(pts))
	for i, p := range pts {
		dx := p.X - a.X
		dy := p.Y - a.Y
		out[i] = f32.Point{
			X: dx*cf - dy*sf,
			Y: dx*sf + dy*cf,
		}
	}
	return out
}

func tangent(p0, p1 f32.Point) f32.Point { return unitOrZero(p1.Sub(p0)) }

func normal(p0, p1 f32.Point) f32.Point { return f32.Rot90CW(tangent(p0, p1)) }

// angleBetween is the turn classifier of component B: the signed angle in
// (-pi, pi] from t1 to t2.
func angleBetween(t1, t2 f32.Point) float32 {
	angle := math.Atan2(float64(t2.Y), float64(t2.X)) - math.Atan2(float64(t1.Y), float64(t1.X))
	if angle > math.Pi {
		angle -= 2 * math.Pi
	}
	if angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return float32(angle)
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// AngleBetween exposes the turn-angle computation to the stroke package so
// the orchestrator's turn classification (component B) uses identical
// numerics to the subdivider's simplicity checks.
func AngleBetween(t1, t2 f32.Point) float32 { return angleBetween(t1, t2) }
