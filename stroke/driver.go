package stroke

import (
	"log"

	"github.com/xlloss/strokepath/curve"
	"github.com/xlloss/strokepath/dash"
	"github.com/xlloss/strokepath/f32"
	"github.com/xlloss/strokepath/path"
)

// Driver is component F: the top-level entry point that walks an input
// contour stream, optionally runs it through dashing first, subdivides
// curved segments into simple pieces, and drives the orchestrator.
//
// Grounded on gsk_contour_default_add_stroke in
// original_source/gsk/gskpathstroke.c, which dispatches MOVE_TO/CLOSE/
// LINE_TO/CURVE_TO/CONIC_TO ops into exactly the calls Stroke makes below,
// and on gsk_path_stroke in the same file for the split between dashing
// (applied to the path before stroking) and the stroke proper.
type Driver struct {
	// Logger, if non-nil, receives one diagnostic message per closed
	// contour, written with the standard library's log.Logger the way the
	// teacher package logs rather than through a structured logging
	// dependency -- this package has no errors worth returning, only
	// observations worth recording. Degenerate joins and skipped
	// zero-length closing segments are not logged.
	Logger *log.Logger
}

// Stroke converts the contours walked by w into filled stroke outlines
// written to out, per style. If pattern is non-nil, w is first broken into
// dash segments (pattern.Array/Phase); a nil pattern strokes w whole.
func (d Driver) Stroke(w path.Walker, style Style, pattern *dash.Pattern, out path.Builder) {
	if pattern != nil {
		w = dash.Apply(w, *pattern)
	}
	o := newOrchestrator(out, style)

	var last, start f32.Point
	w.Walk(func(s path.Segment) {
		switch s.Op {
		case path.Move:
			o.move(s.Points[0])
			last, start = s.Points[0], s.Points[0]
		case path.LineTo:
			o.addCurve(curve.NewLine(s.Points[0], s.Points[1]))
			last = s.Points[1]
		case path.CubicTo:
			c := curve.NewCubic(s.Points[0], s.Points[1], s.Points[2], s.Points[3])
			for _, piece := range curve.Subdivide(c) {
				o.addCurve(piece)
			}
			last = s.Points[3]
		case path.ConicTo:
			c := curve.NewConic(s.Points[0], s.Points[1], s.Points[2], s.Weight)
			for _, piece := range curve.Subdivide(c) {
				o.addCurve(piece)
			}
			last = s.Points[2]
		case path.Close:
			o.close(s.Points[0], s.Points[1])
			start = s.Points[1]
			last = start
			d.logClose(last)
		}
	})
	o.finish()
}

func (d Driver) logClose(p f32.Point) {
	if d.Logger != nil {
		d.Logger.Printf("stroke: closed contour at (%.3f, %.3f)", p.X, p.Y)
	}
}
