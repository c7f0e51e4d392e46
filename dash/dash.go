// Package dash implements the dash generator collaborator: it turns a
// contour stream plus a dash pattern into a new contour stream containing
// only the "on" spans, for the driver to feed to the stroker in place of
// the original path.
//
// Grounded on gioui.org/internal/stroke's dash.go (vendored in the teacher
// repo), adapted from operating on pre-flattened quadratic spans to
// operating directly on curve.Curve pieces: a dash boundary falling inside
// a curve is resolved with Curve.Segment (an exact cut) rather than a
// quadratic-Bezier-specific arc-length inversion, and curve length is
// approximated by sampling rather than the teacher's Chebyshev/
// Gauss-Legendre arc-length machinery -- curve.Curve's generic Line/Cubic/
// Conic union has no closed-form speed function to integrate the way a
// single quadratic Bezier does.
package dash

import (
	"math"

	"github.com/xlloss/strokepath/curve"
	"github.com/xlloss/strokepath/f32"
	"github.com/xlloss/strokepath/path"
)

// Pattern is a dash pattern: Array holds alternating on/off lengths
// (on, off, on, off, ...; an odd-length array is repeated once per
// convention, so each entry is an "on" length in one copy and an "off"
// length in the other) and
// Phase offsets where along the pattern the first contour point falls.
type Pattern struct {
	Array []float32
	Phase float32
}

// IsSolid reports whether the pattern has no dashing effect at all.
func (p Pattern) IsSolid() bool {
	return p.Phase == 0 && len(p.Array) == 0
}

// Apply returns a Walker yielding only the dash-"on" spans of w's contours.
// A pattern with no entries (or one that canonicalizes to "all gaps")
// leaves w unchanged or empty, respectively.
func Apply(w path.Walker, pattern Pattern) path.Walker {
	canon := canonicalize(pattern)
	out := path.New()

	if len(canon.Array) == 0 {
		w.Walk(func(s path.Segment) { replay(out, s) })
		return out
	}
	if len(canon.Array) == 1 && feq(canon.Array[0], 0) {
		return out
	}

	arr := canon.Array
	if len(arr)%2 == 1 {
		arr = append(append([]float32{}, arr...), arr...)
	}
	i0, pos0 := dashStart(arr, canon.Phase)

	for _, ct := range splitContours(w) {
		dashContour(out, ct, arr, i0, pos0)
	}
	return out
}

func replay(out *path.Path, s path.Segment) {
	switch s.Op {
	case path.Move:
		out.MoveTo(s.Points[0].X, s.Points[0].Y)
	case path.LineTo:
		out.LineTo(s.Points[1].X, s.Points[1].Y)
	case path.CubicTo:
		out.CubicTo(s.Points[1].X, s.Points[1].Y, s.Points[2].X, s.Points[2].Y, s.Points[3].X, s.Points[3].Y)
	case path.ConicTo:
		out.ConicTo(s.Points[1].X, s.Points[1].Y, s.Points[2].X, s.Points[2].Y, s.Weight)
	case path.Close:
		out.Close()
	}
}

// contour is one input sub-path reduced to its curve pieces. closed
// contours have their implicit closing line folded into curves already.
type contour struct {
	curves []curve.Curve
}

func splitContours(w path.Walker) []contour {
	var out []contour
	var cur []curve.Curve
	flush := func() {
		if len(cur) > 0 {
			out = append(out, contour{curves: cur})
			cur = nil
		}
	}
	w.Walk(func(s path.Segment) {
		switch s.Op {
		case path.Move:
			flush()
		case path.LineTo, path.CubicTo, path.ConicTo:
			cur = append(cur, path.ToCurve(s))
		case path.Close:
			if !f32.Near(s.Points[0], s.Points[1], 1e-6) {
				cur = append(cur, curve.NewLine(s.Points[0], s.Points[1]))
			}
			flush()
		}
	})
	flush()
	return out
}

// canonicalize mirrors dashCanonical from the teacher's dash.go: it merges
// away interior zero-length entries, folds a leading or trailing zero into
// the phase, rejects negative entries, and collapses a pattern that simply
// repeats.
func canonicalize(p Pattern) Pattern {
	if len(p.Array) == 0 {
		return p
	}
	ds := append([]float32{}, p.Array...)
	phase := p.Phase

	for i := 1; i < len(ds)-1; i++ {
		if feq(ds[i], 0) {
			ds[i-1] += ds[i+1]
			ds = append(ds[:i], ds[i+2:]...)
			i--
		}
	}

	if feq(ds[0], 0) {
		if len(ds) < 3 {
			return Pattern{Array: []float32{0}}
		}
		phase -= ds[1]
		ds[len(ds)-1] += ds[1]
		ds = ds[2:]
	}

	if feq(ds[len(ds)-1], 0) {
		if len(ds) < 3 {
			return Pattern{}
		}
		phase += ds[len(ds)-2]
		ds[0] += ds[len(ds)-2]
		ds = ds[:len(ds)-2]
	}

	for _, v := range ds {
		if v < 0 || feq(v, 0) {
			return Pattern{Array: []float32{0}}
		}
	}

	for len(ds)%2 == 0 {
		mid := len(ds) / 2
		same := true
		for i := 0; i < mid; i++ {
			if !feq(ds[i], ds[mid+i]) {
				same = false
				break
			}
		}
		if !same {
			break
		}
		ds = ds[:mid]
	}
	return Pattern{Array: ds, Phase: phase}
}

// dashStart advances the pattern cursor past whole dash entries consumed
// by phase, returning the entry index and signed position to resume at.
func dashStart(arr []float32, phase float32) (int, float32) {
	i0 := 0
	for arr[i0] <= phase {
		phase -= arr[i0]
		i0++
		if i0 == len(arr) {
			i0 = 0
		}
	}
	pos0 := -phase
	if phase < 0 {
		var sum float32
		for _, d := range arr {
			sum += d
		}
		pos0 = -(sum + phase)
	}
	return i0, pos0
}

// dashContour walks the dash pattern along ct's cumulative arc length,
// emitting every even-indexed ("on") span as its own sub-contour. Unlike
// the teacher's splitAt/append wraparound stitching for closed contours,
// the first and last on-spans of a closed contour are emitted separately
// rather than merged into one when the contour's start point falls inside
// a dash -- a deliberate simplification (see DESIGN.md).
func dashContour(out *path.Path, ct contour, arr []float32, i0 int, pos0 float32) {
	samples := make([]sampledCurve, len(ct.curves))
	var total float32
	for i, c := range ct.curves {
		samples[i] = sampleCurve(c)
		total += samples[i].length()
	}
	if total == 0 {
		return
	}

	pos := pos0
	i := i0
	for pos < total {
		segStart := pos
		if segStart < 0 {
			segStart = 0
		}
		segEnd := pos + arr[i]
		if segEnd > total {
			segEnd = total
		}
		if i%2 == 0 && segEnd > segStart {
			emitSpan(out, samples, segStart, segEnd)
		}
		pos += arr[i]
		i++
		if i == len(arr) {
			i = 0
		}
	}
}

func emitSpan(out *path.Path, samples []sampledCurve, a, b float32) {
	var cursor float32
	started := false
	for _, sc := range samples {
		segStart := cursor
		segEnd := cursor + sc.length()
		cursor = segEnd
		if segEnd <= a || segStart >= b {
			continue
		}
		t0 := float32(0)
		if a > segStart {
			t0 = sc.paramAt(a - segStart)
		}
		t1 := float32(1)
		if b < segEnd {
			t1 = sc.paramAt(b - segStart)
		}
		if t1 <= t0 {
			continue
		}
		piece := sc.c.Segment(t0, t1)
		if !started {
			p0 := piece.StartPoint()
			out.MoveTo(p0.X, p0.Y)
			started = true
		}
		path.EmitCurve(out, piece)
	}
}

// sampledCurve caches a piecewise-linear arc-length table for one curve,
// used to invert length back to a parameter value.
type sampledCurve struct {
	c   curve.Curve
	ts  []float32
	cum []float32
}

const lengthSamples = 16

func sampleCurve(c curve.Curve) sampledCurve {
	ts := make([]float32, lengthSamples+1)
	cum := make([]float32, lengthSamples+1)
	prev := c.Evaluate(0)
	for i := 0; i <= lengthSamples; i++ {
		t := float32(i) / lengthSamples
		ts[i] = t
		p := c.Evaluate(t)
		if i > 0 {
			cum[i] = cum[i-1] + f32.Len(p.Sub(prev))
		}
		prev = p
	}
	return sampledCurve{c: c, ts: ts, cum: cum}
}

func (s sampledCurve) length() float32 { return s.cum[len(s.cum)-1] }

func (s sampledCurve) paramAt(l float32) float32 {
	if l <= 0 {
		return 0
	}
	total := s.length()
	if l >= total {
		return 1
	}
	for i := 1; i < len(s.cum); i++ {
		if s.cum[i] >= l {
			lo, hi := s.cum[i-1], s.cum[i]
			frac := float32(0)
			if hi > lo {
				frac = (l - lo) / (hi - lo)
			}
			return s.ts[i-1] + (s.ts[i]-s.ts[i-1])*frac
		}
	}
	return 1
}

func feq(a, b float32) bool {
	const epsilon = 1e-10
	return math.Abs(float64(a-b)) < epsilon
}
