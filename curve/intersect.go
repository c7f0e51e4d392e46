package curve

import "github.com/xlloss/strokepath/f32"

// Hit is a single curve-curve crossing: parameters along each curve plus
// the crossing point.
type Hit struct {
	T, S  float32
	Point f32.Point
}

const (
	intersectMaxDepth = 24
	intersectTol      = 1e-4
)

// Intersect returns up to maxHits parameter pairs where c and other cross.
// Lines are solved exactly; curved kinds fall back to recursive bounding-box
// subdivision (both curves are split at their midpoint until their convex
// hulls no longer overlap or the parameter interval collapses below
// tolerance), which is robust for the "simple" pieces the orchestrator
// calls this on. Operations are total: a degenerate or non-crossing pair
// simply returns no hits.
func (c Curve) Intersect(other Curve, maxHits int) []Hit {
	if maxHits <= 0 {
		return nil
	}
	if c.kind == Line && other.kind == Line {
		if p, ok := lineIntersect(c.p0, c.p1.Sub(c.p0), other.p0, other.p1.Sub(other.p0)); ok {
			t := paramOnLine(c.p0, c.p1, p)
			s := paramOnLine(other.p0, other.p1, p)
			if inUnit(t) && inUnit(s) {
				return []Hit{{T: t, S: s, Point: p}}
			}
		}
		return nil
	}

	var hits []Hit
	intersectRec(c, 0, 1, other, 0, 1, intersectMaxDepth, &hits, maxHits)
	if len(hits) > maxHits {
		hits = hits[:maxHits]
	}
	return hits
}

func inUnit(t float32) bool { return t >= -1e-6 && t <= 1+1e-6 }

func paramOnLine(p0, p1, p f32.Point) float32 {
	d := p1.Sub(p0)
	denom := f32.Dot(d, d)
	if denom == 0 {
		return 0
	}
	return f32.Dot(p.Sub(p0), d) / denom
}

type box struct{ minX, minY, maxX, maxY float32 }

func boundsOf(c Curve) box {
	pts := c.ControlPoints()
	b := box{pts[0].X, pts[0].Y, pts[0].X, pts[0].Y}
	for _, p := range pts[1:] {
		if p.X < b.minX {
			b.minX = p.X
		}
		if p.Y < b.minY {
			b.minY = p.Y
		}
		if p.X > b.maxX {
			b.maxX = p.X
		}
		if p.Y > b.maxY {
			b.maxY = p.Y
		}
	}
	return b
}

func (a box) overlaps(b box) bool {
	return a.minX <= b.maxX && b.minX <= a.maxX && a.minY <= b.maxY && b.minY <= a.maxY
}

func (a box) diag() float32 {
	dx := a.maxX - a.minX
	dy := a.maxY - a.minY
	return f32.Len(f32.Point{X: dx, Y: dy})
}

// intersectRec recursively narrows [t0,t1]x[s0,s1] using the convex-hull
// (control polygon) bound of Bézier and rational-Bézier curves.
func intersectRec(c1 Curve, t0, t1 float32, c2 Curve, s0, s1 float32, depth int, hits *[]Hit, maxHits int) {
	if len(*hits) >= maxHits {
		return
	}
	b1 := boundsOf(c1)
	b2 := boundsOf(c2)
	if !b1.overlaps(b2) {
		return
	}
	if depth == 0 || (b1.diag() < intersectTol && b2.diag() < intersectTol) {
		t := (t0 + t1) / 2
		s := (s0 + s1) / 2
		*hits = append(*hits, Hit{T: t, S: s, Point: c1.Evaluate(0.5)})
		return
	}

	c1a, c1b := c1.Split(0.5)
	c2a, c2b := c2.Split(0.5)
	tm := (t0 + t1) / 2
	sm := (s0 + s1) / 2

	intersectRec(c1a, t0, tm, c2a, s0, sm, depth-1, hits, maxHits)
	intersectRec(c1a, t0, tm, c2b, sm, s1, depth-1, hits, maxHits)
	intersectRec(c1b, tm, t1, c2a, s0, sm, depth-1, hits, maxHits)
	intersectRec(c1b, tm, t1, c2b, sm, s1, depth-1, hits, maxHits)
}
