package stroke

import (
	"github.com/xlloss/strokepath/curve"
	"github.com/xlloss/strokepath/f32"
	"github.com/xlloss/strokepath/path"
)

// orchestrator is component E: the per-contour state machine that walks a
// simplified (subdivided) curve stream and accumulates left/right offset
// sub-paths, deferring the very first offset segment of each contour until
// its neighbors are known so that a closed contour's wrap-around join can
// be synthesized and an open contour's start cap can be drawn against the
// right geometry.
//
// Grounded on StrokeData and its methods in
// original_source/gsk/gskpathstroke.c. Field names echo the C struct
// (c, l, r are the pending curve and its offsets; c0, l0, r0 are the first
// curve of the current contour and its offsets).
type orchestrator struct {
	out   path.Builder
	style Style

	left, right *path.Path

	hasCurrentPoint bool
	hasCurrentCurve bool
	isFirstCurve    bool

	c, l, r    curve.Curve
	c0, l0, r0 curve.Curve
}

func newOrchestrator(out path.Builder, style Style) *orchestrator {
	return &orchestrator{out: out, style: style}
}

// move starts a new contour at p (spec §4.E, gsk_contour_default_add_stroke
// handling MOVE and the bare-point case via a synthetic unit segment so
// join code always has a tangent to work with even for a single-point
// "dot" contour).
func (o *orchestrator) move(p f32.Point) {
	if o.hasCurrentPoint {
		o.capAndConnectContours()
	}
	hw := o.style.HalfWidth()
	synth := curve.NewLine(p, p.Add(f32.Pt(1, 0)))
	o.r0 = synth.Offset(hw)
	o.l0 = synth.Offset(-hw)
	o.left = path.New()
	o.right = path.New()
	o.hasCurrentPoint = true
	o.hasCurrentCurve = false
	o.isFirstCurve = false
}

// addCurve feeds one already-simple curve piece into the state machine.
func (o *orchestrator) addCurve(c curve.Curve) {
	hw := o.style.HalfWidth()
	l := c.Offset(-hw)
	r := c.Offset(hw)

	if !o.hasCurrentCurve {
		o.c0, o.r0, o.l0 = c, r, l
		o.right.MoveTo(r.StartPoint().X, r.StartPoint().Y)
		o.left.MoveTo(l.StartPoint().X, l.StartPoint().Y)
		o.c, o.r, o.l = c, r, l
		o.hasCurrentCurve = true
		o.isFirstCurve = true
		return
	}

	o.addSegments(c, r, l)
	o.isFirstCurve = false
}

// addSegments is the heart of the algorithm: it resolves the join between
// the pending curve (o.c/o.r/o.l) and the newly arrived one, trimming
// whichever offset is on the inside of the turn against its successor and
// synthesizing a join on the outside.
//
// Grounded on add_segments in original_source/gsk/gskpathstroke.c.
func (o *orchestrator) addSegments(c, r, l curve.Curve) {
	t1 := o.c.EndTangent()
	t2 := c.StartTangent()
	angle := curve.AngleBetween(t1, t2)
	pivot := c.StartPoint()

	switch Classify(angle) {
	case Straight:
		o.appendRight(o.r)
		o.right.LineTo(r.StartPoint().X, r.StartPoint().Y)
		o.appendLeft(o.l)
		o.left.LineTo(l.StartPoint().X, l.StartPoint().Y)

	case Right:
		if hits := o.r.Intersect(r, 1); len(hits) > 0 {
			trimmedR, _ := o.r.Split(hits[0].T)
			_, rTail := r.Split(hits[0].S)
			o.appendRight(trimmedR)
			r = rTail
		} else {
			o.appendRight(o.r)
			o.right.LineTo(r.StartPoint().X, r.StartPoint().Y)
		}
		o.appendLeft(o.l)
		emitJoin(o.left, o.style, pivot, o.l.EndPoint(), t1, l.StartPoint(), t2, angle)

	case Left:
		o.appendRight(o.r)
		emitJoin(o.right, o.style, pivot, o.r.EndPoint(), t1, r.StartPoint(), t2, angle)
		if hits := o.l.Intersect(l, 1); len(hits) > 0 {
			trimmedL, _ := o.l.Split(hits[0].T)
			_, lTail := l.Split(hits[0].S)
			o.appendLeft(trimmedL)
			l = lTail
		} else {
			o.appendLeft(o.l)
			o.left.LineTo(l.StartPoint().X, l.StartPoint().Y)
		}
	}

	o.c, o.r, o.l = c, r, l
}

// appendRight flushes the previous pending right offset curve. For the
// first curve of a contour the flush is deferred: rather than drawing it,
// it is remembered as r0 and the builder's pen jumps to its end point, so
// the real geometry can be emitted later once the wrap-around (closed) or
// start-cap (open) context is known.
func (o *orchestrator) appendRight(c curve.Curve) {
	if o.isFirstCurve {
		o.r0 = c
		end := c.EndPoint()
		o.right.MoveTo(end.X, end.Y)
		return
	}
	path.EmitCurve(o.right, c)
}

func (o *orchestrator) appendLeft(c curve.Curve) {
	if o.isFirstCurve {
		o.l0 = c
		end := c.EndPoint()
		o.left.MoveTo(end.X, end.Y)
		return
	}
	path.EmitCurve(o.left, c)
}

// closeContours finalizes a closed contour: it resolves the wrap-around
// join between the last curve and the first (c0/r0/l0), flushes the
// pending offsets, and emits both offset sub-paths as independent closed
// contours of the output (spec §4.E: a closed input contour produces two
// closed output contours rather than one capped one).
func (o *orchestrator) closeContours() {
	if o.hasCurrentCurve {
		o.addSegments(o.c0, o.r0, o.l0)
		path.EmitCurve(o.right, o.r)
		path.EmitCurve(o.left, o.l)
	}
	o.right.Close()
	o.left.Close()
	o.out.AddPath(o.right)
	o.out.AddPath(o.left)
	o.left, o.right = nil, nil
}

// capAndConnectContours finalizes an open contour: it flushes the pending
// offsets, caps the end, walks back along the reversed left offset to
// connect to the contour's start, caps the start, and emits the whole
// thing as one closed output contour.
//
// Grounded on cap_and_connect_contours in
// original_source/gsk/gskpathstroke.c.
func (o *orchestrator) capAndConnectContours() {
	r0Start := o.r0.StartPoint()
	l0Start := o.l0.StartPoint()
	r1, l1 := r0Start, l0Start

	if o.hasCurrentCurve {
		path.EmitCurve(o.right, o.r)
		path.EmitCurve(o.left, o.l)
		r1 = o.r.EndPoint()
		l1 = o.l.EndPoint()
	} else {
		o.right.MoveTo(r1.X, r1.Y)
	}

	emitCap(o.right, o.style, r1, l1)

	if o.hasCurrentCurve {
		for _, seg := range o.left.ReverseCurves() {
			appendSegment(o.right, seg)
		}
		if !o.isFirstCurve {
			appendSegment(o.right, pathFromCurve(o.l0.Reverse()))
		}
	}

	emitCap(o.right, o.style, l0Start, r0Start)

	if o.hasCurrentCurve && !o.isFirstCurve {
		appendSegment(o.right, pathFromCurve(o.r0))
	}

	o.right.Close()
	o.out.AddPath(o.right)
	o.left, o.right = nil, nil
}

func pathFromCurve(c curve.Curve) path.Segment { return path.FromCurve(c) }

// appendSegment emits a recorded LineTo/CubicTo/ConicTo segment onto b,
// assuming b's current point already equals the segment's start point.
func appendSegment(b path.Builder, s path.Segment) {
	switch s.Op {
	case path.LineTo:
		b.LineTo(s.Points[1].X, s.Points[1].Y)
	case path.CubicTo:
		b.CubicTo(s.Points[1].X, s.Points[1].Y, s.Points[2].X, s.Points[2].Y, s.Points[3].X, s.Points[3].Y)
	case path.ConicTo:
		b.ConicTo(s.Points[1].X, s.Points[1].Y, s.Points[2].X, s.Points[2].Y, s.Weight)
	}
}

// close ends the current contour, either by an explicit close-path segment
// (last should coincide with the contour's start within CloseEpsilon, and
// if it doesn't a synthetic closing line is stroked first) or, when there
// is no current point at all, as a no-op.
func (o *orchestrator) close(last, start f32.Point) {
	if !o.hasCurrentPoint {
		return
	}
	if !f32.Near(last, start, CloseEpsilon) {
		o.addCurve(curve.NewLine(last, start))
	}
	o.closeContours()
	o.hasCurrentPoint = false
	o.hasCurrentCurve = false
}

// finish flushes a trailing open contour at end of input (no explicit
// Close segment arrived).
func (o *orchestrator) finish() {
	if o.hasCurrentPoint {
		o.capAndConnectContours()
	}
	o.hasCurrentPoint = false
	o.hasCurrentCurve = false
}
