package path

import (
	"math"

	"github.com/xlloss/strokepath/curve"
	"github.com/xlloss/strokepath/f32"
)

// svgArcToConics converts an SVG-convention elliptical arc into one or more
// conic (rational quadratic) pieces, each spanning at most 90 degrees of
// the arc so that every piece's weight stays comfortably away from the
// degenerate w=0 a half-circle would otherwise produce.
//
// Follows the W3C "Elliptical arc implementation notes" center
// parameterization, then the standard identity that a circular/elliptical
// arc of half-angle h is exactly a rational quadratic Bézier with weight
// cos(h) and middle control point at 1/cos(h) along the bisector -- this is
// the representation join/cap round geometry relies on being exact, not a
// polyline approximation.
func svgArcToConics(p0 f32.Point, rx, ry, rotation float32, largeArc, sweep bool, p1 f32.Point) []curve.Curve {
	if rx == 0 || ry == 0 || f32.Near(p0, p1, 1e-7) {
		mid := f32.Lerp(p0, p1, 0.5)
		return []curve.Curve{curve.NewConic(p0, mid, p1, 1)}
	}
	rx, ry = float32(math.Abs(float64(rx))), float32(math.Abs(float64(ry)))

	cosPhi64, sinPhi64 := math.Cos(float64(rotation)), math.Sin(float64(rotation))
	cosPhi, sinPhi := float32(cosPhi64), float32(sinPhi64)

	dx2 := (p0.X - p1.X) / 2
	dy2 := (p0.Y - p1.Y) / 2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry)
	if lambda > 1 {
		s := float32(math.Sqrt(float64(lambda)))
		rx *= s
		ry *= s
	}

	sign := float32(-1)
	if largeArc != sweep {
		sign = 1
	}
	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	co := float32(0)
	if den != 0 && num > 0 {
		co = sign * float32(math.Sqrt(float64(num/den)))
	}
	cxp := co * rx * y1p / ry
	cyp := -co * ry * x1p / rx

	cx := cosPhi*cxp - sinPhi*cyp + (p0.X+p1.X)/2
	cy := sinPhi*cxp + cosPhi*cyp + (p0.Y+p1.Y)/2

	angle := func(ux, uy, vx, vy float32) float32 {
		dot := ux*vx + uy*vy
		det := ux*vy - uy*vx
		return float32(math.Atan2(float64(det), float64(dot)))
	}

	theta1 := angle(1, 0, (x1p-cxp)/rx, (y1p-cyp)/ry)
	dtheta := angle((x1p-cxp)/rx, (y1p-cyp)/ry, (-x1p-cxp)/rx, (-y1p-cyp)/ry)
	if !sweep && dtheta > 0 {
		dtheta -= 2 * math.Pi
	} else if sweep && dtheta < 0 {
		dtheta += 2 * math.Pi
	}

	const maxSpan = math.Pi / 2
	n := int(math.Ceil(float64(float32(math.Abs(float64(dtheta))) / maxSpan)))
	if n < 1 {
		n = 1
	}
	step := dtheta / float32(n)

	toEllipse := func(ux, uy float32) f32.Point {
		x := rx * ux
		y := ry * uy
		return f32.Point{
			X: cosPhi*x - sinPhi*y + cx,
			Y: sinPhi*x + cosPhi*y + cy,
		}
	}

	pieces := make([]curve.Curve, 0, n)
	cur := p0
	for i := 0; i < n; i++ {
		a0 := theta1 + step*float32(i)
		a1 := theta1 + step*float32(i+1)
		half := (a1 - a0) / 2
		mid := (a0 + a1) / 2
		w := float32(math.Cos(float64(half)))

		var end f32.Point
		if i == n-1 {
			end = p1
		} else {
			end = toEllipse(float32(math.Cos(float64(a1))), float32(math.Sin(float64(a1))))
		}
		ctrl := toEllipse(float32(math.Cos(float64(mid)))/w, float32(math.Sin(float64(mid)))/w)

		pieces = append(pieces, curve.NewConic(cur, ctrl, end, w))
		cur = end
	}
	return pieces
}
