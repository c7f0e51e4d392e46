// Package path provides the external collaborators the stroker is built
// against (spec §6): the contour-walk callback the driver consumes, and the
// output sink ("builder") it writes into. Path construction/traversal
// machinery is out of scope for the stroker proper (spec §1), so this
// package stays deliberately small -- just enough of a concrete Path type
// to drive the stroker end to end and to flatten its output for tests.
package path

import "github.com/xlloss/strokepath/f32"

// Op identifies the kind of a Segment.
type Op uint8

const (
	Move Op = iota
	LineTo
	CubicTo
	ConicTo
	Close
)

// Segment is one event of the input segment stream (spec §6).
type Segment struct {
	Op Op

	// Move: Points[0] is the new current point.
	// LineTo: Points[0], Points[1] are p0, p1.
	// CubicTo: Points[0..3] are p0, p1, p2, p3.
	// ConicTo: Points[0..2] are p0, p1, p2; Weight is the conic weight.
	// Close: Points[0], Points[1] are the last point and the contour's start point.
	Points [4]f32.Point
	Weight float32
}

func MoveSeg(p f32.Point) Segment { return Segment{Op: Move, Points: [4]f32.Point{p}} }

func LineSeg(p0, p1 f32.Point) Segment {
	return Segment{Op: LineTo, Points: [4]f32.Point{p0, p1}}
}

func CubicSeg(p0, p1, p2, p3 f32.Point) Segment {
	return Segment{Op: CubicTo, Points: [4]f32.Point{p0, p1, p2, p3}}
}

func ConicSeg(p0, p1, p2 f32.Point, w float32) Segment {
	return Segment{Op: ConicTo, Points: [4]f32.Point{p0, p1, p2}, Weight: w}
}

func CloseSeg(last, start f32.Point) Segment {
	return Segment{Op: Close, Points: [4]f32.Point{last, start}}
}

// Walker is the contour-walk callback interface the driver iterates over.
type Walker interface {
	Walk(func(Segment))
}

// Builder is the output sink the stroker (and the join/cap synthesizer)
// writes into.
type Builder interface {
	MoveTo(x, y float32)
	LineTo(x, y float32)
	CubicTo(x1, y1, x2, y2, x3, y3 float32)
	ConicTo(x1, y1, x2, y2, w float32)
	// ArcTo appends an SVG-convention elliptical arc from the current point
	// to (x, y): rx, ry are the radii, rotation the x-axis rotation in
	// radians, and largeArc/sweep the two SVG arc flags.
	ArcTo(rx, ry, rotation float32, largeArc, sweep bool, x, y float32)
	Close()
	// AddPath appends a complete, independent sub-path verbatim.
	AddPath(p *Path)
}

// Path is both a Builder (it records what is built into it) and a Walker
// (it can replay itself as a segment stream), so stroker output can be fed
// back through Stroke, flattened, or inspected by tests.
type Path struct {
	segs []Segment
	// cur is the builder's current point; start is the current contour's
	// start point (needed so Close can report it in the emitted Segment).
	cur, start f32.Point
	open       bool
}

var _ Builder = (*Path)(nil)
var _ Walker = (*Path)(nil)

func New() *Path { return &Path{} }

func (p *Path) MoveTo(x, y float32) {
	pt := f32.Pt(x, y)
	p.segs = append(p.segs, MoveSeg(pt))
	p.cur, p.start = pt, pt
	p.open = true
}

func (p *Path) LineTo(x, y float32) {
	pt := f32.Pt(x, y)
	p.segs = append(p.segs, LineSeg(p.cur, pt))
	p.cur = pt
}

func (p *Path) CubicTo(x1, y1, x2, y2, x3, y3 float32) {
	p0 := p.cur
	p3 := f32.Pt(x3, y3)
	p.segs = append(p.segs, CubicSeg(p0, f32.Pt(x1, y1), f32.Pt(x2, y2), p3))
	p.cur = p3
}

func (p *Path) ConicTo(x1, y1, x2, y2, w float32) {
	p0 := p.cur
	p2 := f32.Pt(x2, y2)
	p.segs = append(p.segs, ConicSeg(p0, f32.Pt(x1, y1), p2, w))
	p.cur = p2
}

func (p *Path) ArcTo(rx, ry, rotation float32, largeArc, sweep bool, x, y float32) {
	end := f32.Pt(x, y)
	for _, c := range svgArcToConics(p.cur, rx, ry, rotation, largeArc, sweep, end) {
		pts := c.ControlPoints()
		p.segs = append(p.segs, ConicSeg(pts[0], pts[1], pts[2], c.Weight()))
	}
	p.cur = end
}

func (p *Path) Close() {
	p.segs = append(p.segs, CloseSeg(p.cur, p.start))
	p.cur = p.start
	p.open = false
}

func (p *Path) AddPath(other *Path) {
	p.segs = append(p.segs, other.segs...)
	if len(other.segs) > 0 {
		p.cur = other.cur
	}
}

// Walk replays the recorded segments in order.
func (p *Path) Walk(f func(Segment)) {
	for _, s := range p.segs {
		f(s)
	}
}

// Segments returns the recorded segment slice directly, for tests that
// want to inspect structure rather than walk it.
func (p *Path) Segments() []Segment { return p.segs }

// IsOpen reports whether the path's last contour was left without a Close.
func (p *Path) IsOpen() bool { return p.open }

// Contours splits the recorded segments at Move boundaries.
func (p *Path) Contours() [][]Segment {
	var out [][]Segment
	var cur []Segment
	for _, s := range p.segs {
		if s.Op == Move && len(cur) > 0 {
			out = append(out, cur)
			cur = nil
		}
		cur = append(cur, s)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}
