// SPDX-License-Identifier: Unlicense OR MIT

// Package f32 provides the small set of 2D vector primitives the stroker
// needs: points/vectors and the operations (dot, cross, rotate, normalize)
// used throughout curve and stroke math.
package f32

import "math"

// Point is a point or vector in 2D space.
type Point struct {
	X, Y float32
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(s float32) Point { return Point{p.X * s, p.Y * s} }

// Lerp returns the point at parameter t along the segment p->q.
func Lerp(p, q Point, t float32) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Dot returns the dot product of p and q.
func Dot(p, q Point) float32 { return p.X*q.X + p.Y*q.Y }

// Cross returns the 2D perpendicular dot product (a.k.a. the z component of
// the 3D cross product of p and q extended with z=0).
func Cross(p, q Point) float32 { return p.X*q.Y - p.Y*q.X }

// Len returns the Euclidean length of p.
func Len(p Point) float32 { return float32(math.Hypot(float64(p.X), float64(p.Y))) }

// Normalize returns p scaled to length l, or the zero point if p is
// degenerate (zero length).
func Normalize(p Point, l float32) Point {
	d := math.Hypot(float64(p.X), float64(p.Y))
	if d == 0 {
		return Point{}
	}
	n := float32(float64(l) / d)
	return Point{p.X * n, p.Y * n}
}

// Rot90CW rotates p by 90 degrees clockwise (in a Y-down coordinate frame,
// this is the "outward on the right" rotation used throughout the stroker).
func Rot90CW(p Point) Point { return Point{X: -p.Y, Y: p.X} }

// Rot90CCW rotates p by 90 degrees counter-clockwise (in the same Y-down
// frame).
func Rot90CCW(p Point) Point { return Point{X: p.Y, Y: -p.X} }

// Near reports whether p and q are within eps of each other.
func Near(p, q Point, eps float32) bool {
	return Len(p.Sub(q)) <= eps
}
