package path

import "github.com/xlloss/strokepath/f32"

// samplesPerCurve is the fixed sampling rate used to flatten a curved
// segment into a polyline for area measurement and rasterization in tests.
// It is deliberately generous (this is test/debug tooling, not part of the
// stroker's hot path) rather than adaptive.
const samplesPerCurve = 32

// Flatten renders the path to one polyline per contour, approximating
// curved segments by fixed-rate sampling. It is test/debug tooling (area
// checks, rasterization), not part of the stroker itself.
func (p *Path) Flatten() [][]f32.Point {
	var out [][]f32.Point
	var cur []f32.Point
	for _, s := range p.segs {
		switch s.Op {
		case Move:
			if len(cur) > 1 {
				out = append(out, cur)
			}
			cur = []f32.Point{s.Points[0]}
		case LineTo:
			cur = append(cur, s.Points[1])
		case CubicTo:
			c := cubicCurve(s)
			for i := 1; i <= samplesPerCurve; i++ {
				t := float32(i) / samplesPerCurve
				cur = append(cur, c.Evaluate(t))
			}
		case ConicTo:
			c := conicCurve(s)
			for i := 1; i <= samplesPerCurve; i++ {
				t := float32(i) / samplesPerCurve
				cur = append(cur, c.Evaluate(t))
			}
		case Close:
			if len(cur) > 0 && !f32.Near(cur[len(cur)-1], s.Points[1], 1e-6) {
				cur = append(cur, s.Points[1])
			}
			if len(cur) > 1 {
				out = append(out, cur)
			}
			cur = nil
		}
	}
	if len(cur) > 1 {
		out = append(out, cur)
	}
	return out
}

// Area returns the (unsigned) sum of the shoelace area of every flattened
// contour, useful for spec §8 Property 3 (width fidelity).
func (p *Path) Area() float32 {
	var total float32
	for _, poly := range p.Flatten() {
		total += absf(shoelace(poly))
	}
	return total
}

func shoelace(poly []f32.Point) float32 {
	if len(poly) < 3 {
		return 0
	}
	var sum float32
	for i := range poly {
		j := (i + 1) % len(poly)
		sum += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	return sum / 2
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
