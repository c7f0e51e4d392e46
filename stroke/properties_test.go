package stroke

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlloss/strokepath/curve"
	"github.com/xlloss/strokepath/dash"
	"github.com/xlloss/strokepath/f32"
	"github.com/xlloss/strokepath/internal/raster"
	"github.com/xlloss/strokepath/path"
)

// bbox is a small test-only helper: the axis-aligned bounds of a flattened
// polygon, used to check nesting and extent without depending on exact
// vertex order.
type bbox struct{ minX, minY, maxX, maxY float32 }

func boundsOf(poly []f32.Point) bbox {
	b := bbox{poly[0].X, poly[0].Y, poly[0].X, poly[0].Y}
	for _, p := range poly[1:] {
		b.minX = min32(b.minX, p.X)
		b.minY = min32(b.minY, p.Y)
		b.maxX = max32(b.maxX, p.X)
		b.maxY = max32(b.maxY, p.Y)
	}
	return b
}

func (b bbox) contains(o bbox) bool {
	return b.minX <= o.minX && b.minY <= o.minY && b.maxX >= o.maxX && b.maxY >= o.maxY
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func shoelaceArea(poly []f32.Point) float32 {
	var sum float32
	for i := range poly {
		j := (i + 1) % len(poly)
		sum += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	return float32(math.Abs(float64(sum / 2)))
}

func containsPoint(poly []f32.Point, want f32.Point, eps float32) bool {
	for _, p := range poly {
		if f32.Near(p, want, eps) {
			return true
		}
	}
	return false
}

// TestScenarioS1OpenLineButtCapRectangle is spec §8 S1: a single straight
// segment, butt caps, produces a plain rectangle the width of the line.
func TestScenarioS1OpenLineButtCapRectangle(t *testing.T) {
	in := path.New()
	in.MoveTo(0, 0)
	in.LineTo(10, 0)

	out := path.New()
	Driver{}.Stroke(in, Style{Width: 2, Join: Miter, MiterLimit: 4, Cap: ButtCap}, nil, out)

	contours := out.Flatten()
	require.Len(t, contours, 1, "an open contour must stroke to exactly one closed sub-path")

	b := boundsOf(contours[0])
	assert.InDelta(t, 0, float64(b.minX), 1e-4)
	assert.InDelta(t, 10, float64(b.maxX), 1e-4)
	assert.InDelta(t, -1, float64(b.minY), 1e-4)
	assert.InDelta(t, 1, float64(b.maxY), 1e-4)
	assert.InDelta(t, 20, float64(out.Area()), 1e-3)
}

// TestScenarioS2OpenLineRoundCapArea is spec §8 S2: the same line but with
// round caps, which add one full circle's worth of area (two semicircles).
func TestScenarioS2OpenLineRoundCapArea(t *testing.T) {
	in := path.New()
	in.MoveTo(0, 0)
	in.LineTo(10, 0)

	out := path.New()
	Driver{}.Stroke(in, Style{Width: 2, Join: Miter, MiterLimit: 4, Cap: RoundCap}, nil, out)

	contours := out.Flatten()
	require.Len(t, contours, 1)

	want := 20 + math.Pi
	assert.InDelta(t, want, float64(out.Area()), 0.05)
}

// TestWidthFidelityStraightSegment is spec §8 Property 3: for a straight
// segment of length L and width w with butt caps, the stroked area is
// exactly L*w.
func TestWidthFidelityStraightSegment(t *testing.T) {
	cases := []struct{ l, w float32 }{
		{10, 2}, {37.5, 4}, {1, 0.25}, {100, 10},
	}
	for _, c := range cases {
		in := path.New()
		in.MoveTo(0, 0)
		in.LineTo(c.l, 0)

		out := path.New()
		Driver{}.Stroke(in, Style{Width: c.w, Cap: ButtCap}, nil, out)

		want := float64(c.l * c.w)
		got := float64(out.Area())
		assert.InDelta(t, want, got, want*1e-4, "L=%v w=%v", c.l, c.w)
	}
}

// TestCapSymmetry is spec §8 Property 4: reversing a single-segment open
// contour's direction produces a congruent stroke (same extent and area).
func TestCapSymmetry(t *testing.T) {
	style := Style{Width: 3, Cap: RoundCap}

	forward := path.New()
	forward.MoveTo(0, 0)
	forward.LineTo(20, 5)
	fwdOut := path.New()
	Driver{}.Stroke(forward, style, nil, fwdOut)

	backward := path.New()
	backward.MoveTo(20, 5)
	backward.LineTo(0, 0)
	bwdOut := path.New()
	Driver{}.Stroke(backward, style, nil, bwdOut)

	assert.InDelta(t, float64(fwdOut.Area()), float64(bwdOut.Area()), 1e-2)

	fb := boundsOf(fwdOut.Flatten()[0])
	bb := boundsOf(bwdOut.Flatten()[0])
	assert.InDelta(t, float64(fb.minX), float64(bb.minX), 1e-3)
	assert.InDelta(t, float64(fb.maxX), float64(bb.maxX), 1e-3)
	assert.InDelta(t, float64(fb.minY), float64(bb.minY), 1e-3)
	assert.InDelta(t, float64(fb.maxY), float64(bb.maxY), 1e-3)
}

// TestClosedContourDuality is spec §8 Property 1, exercised on a regular
// 90-gon (exterior angle 4 degrees, safely under the 5-degree straight
// threshold so every corner -- including the wrap-around one -- takes the
// unambiguous "straight continuation" path in addSegments) approximating a
// circle of radius 50. A width of 2 stroking it must produce exactly two
// disjoint, nested closed sub-paths tracking radius+1 and radius-1.
func TestClosedContourDuality(t *testing.T) {
	const n = 90
	const radius = 50
	in := path.New()
	for i := 0; i < n; i++ {
		angle := float64(i) * 2 * math.Pi / n
		x, y := radius*math.Cos(angle), radius*math.Sin(angle)
		if i == 0 {
			in.MoveTo(float32(x), float32(y))
		} else {
			in.LineTo(float32(x), float32(y))
		}
	}
	in.Close()

	out := path.New()
	Driver{}.Stroke(in, Style{Width: 2, Join: Miter, MiterLimit: 4}, nil, out)

	polys := out.Flatten()
	require.Len(t, polys, 2, "a closed contour must stroke to exactly two closed sub-paths")

	avgRadius := func(poly []f32.Point) float64 {
		var sum float64
		for _, p := range poly {
			sum += math.Hypot(float64(p.X), float64(p.Y))
		}
		return sum / float64(len(poly))
	}

	r0, r1 := avgRadius(polys[0]), avgRadius(polys[1])
	outerIdx, innerIdx := 0, 1
	if r1 > r0 {
		outerIdx, innerIdx = 1, 0
	}

	assert.InDelta(t, radius+1, avgRadius(polys[outerIdx]), 0.5)
	assert.InDelta(t, radius-1, avgRadius(polys[innerIdx]), 0.5)

	outerBB := boundsOf(polys[outerIdx])
	innerBB := boundsOf(polys[innerIdx])
	assert.True(t, outerBB.contains(innerBB), "outer sub-path must nest the inner one")

	outerArea := shoelaceArea(polys[outerIdx])
	innerArea := shoelaceArea(polys[innerIdx])
	assert.Greater(t, outerArea, innerArea)
	assert.InDelta(t, math.Pi*(radius+1)*(radius+1), float64(outerArea), float64(outerArea)*0.01)
	assert.InDelta(t, math.Pi*(radius-1)*(radius-1), float64(innerArea), float64(innerArea)*0.01)
}

// TestMiterLimitBoundary is spec §8 Property 5. The open two-segment path
// below turns 90 degrees at the origin with width 2 (half-width 1): the
// miter ratio 1/sin(theta/2) for a 90-degree corner is exactly sqrt(2), so
// a limit of 1.5 must produce the sharp outer miter tip at (1, -1) and a
// limit of 1.2 must fall back to a bevel that never reaches it.
func TestMiterLimitBoundary(t *testing.T) {
	build := func(limit float32) *path.Path {
		in := path.New()
		in.MoveTo(-10, 0)
		in.LineTo(0, 0)
		in.LineTo(0, 10)

		out := path.New()
		Driver{}.Stroke(in, Style{Width: 2, Join: Miter, MiterLimit: limit}, nil, out)
		return out
	}

	tip := f32.Pt(1, -1)

	sharp := build(1.5)
	require.Len(t, sharp.Flatten(), 1)
	assert.True(t, containsPoint(sharp.Flatten()[0], tip, 1e-3),
		"miter ratio sqrt(2) <= limit 1.5 should reach the sharp tip")

	bevel := build(1.2)
	require.Len(t, bevel.Flatten(), 1)
	assert.False(t, containsPoint(bevel.Flatten()[0], tip, 1e-3),
		"miter ratio sqrt(2) > limit 1.2 should fall back to a bevel")
}

// TestScenarioS5CubicOpenRoundCap is spec §8 S5: a single cubic segment
// stroked with round caps produces one closed sub-path capped by
// semicircles centered on the curve's own endpoints.
func TestScenarioS5CubicOpenRoundCap(t *testing.T) {
	in := path.New()
	in.MoveTo(0, 0)
	in.CubicTo(10, 0, 10, 10, 20, 10)

	out := path.New()
	Driver{}.Stroke(in, Style{Width: 1, Cap: RoundCap}, nil, out)

	polys := out.Flatten()
	require.Len(t, polys, 1)

	var nearStart, nearEnd bool
	for _, p := range polys[0] {
		if f32.Near(p, f32.Pt(0, 0), 0.6) {
			nearStart = true
		}
		if f32.Near(p, f32.Pt(20, 10), 0.6) {
			nearEnd = true
		}
	}
	assert.True(t, nearStart, "output should hug the curve's start cap")
	assert.True(t, nearEnd, "output should hug the curve's end cap")
}

// TestRasterCoverageMatchesArea cross-checks the shoelace-based Area
// against an independent rasterized pixel count for a simple rectangle,
// confirming the two area measures agree within the rasterizer's
// quantization error.
func TestRasterCoverageMatchesArea(t *testing.T) {
	const w, h = 20, 10

	in := path.New()
	in.MoveTo(5, 5)
	in.LineTo(15, 5)

	out := path.New()
	Driver{}.Stroke(in, Style{Width: 2, Cap: ButtCap}, nil, out)

	got := raster.Coverage(out.Flatten(), w, h)
	want := float64(out.Area()) / float64(w*h)
	assert.InDelta(t, want, got, 0.02)
}

// TestOpenContourUnification is spec §8 Property 2: stroking an open
// contour -- regardless of how many segments it has -- always produces
// exactly one closed output sub-path.
func TestOpenContourUnification(t *testing.T) {
	cases := []func(*path.Path){
		func(p *path.Path) { p.MoveTo(0, 0); p.LineTo(10, 0) },
		func(p *path.Path) { p.MoveTo(0, 0); p.LineTo(10, 0); p.LineTo(10, 10) },
		func(p *path.Path) { p.MoveTo(0, 0); p.CubicTo(0, 10, 10, 10, 10, 0) },
	}
	for i, build := range cases {
		in := path.New()
		build(in)
		out := path.New()
		Driver{}.Stroke(in, Style{Width: 2, Join: Miter, MiterLimit: 4, Cap: RoundCap}, nil, out)
		assert.Len(t, out.Flatten(), 1, "case %d: open contour must produce exactly one sub-path", i)
	}
}

// TestOffsetEndpointsMatchNormalDisplacement is spec §8 Property 7: for
// each simple piece the orchestrator offsets, the resulting offset curve's
// start and end points equal the source endpoints displaced by the
// half-width along the perpendicular to the source's own endpoint tangent.
func TestOffsetEndpointsMatchNormalDisplacement(t *testing.T) {
	hw := float32(1.5)
	cases := []curve.Curve{
		curve.NewLine(f32.Pt(0, 0), f32.Pt(10, 4)),
		curve.NewCubic(f32.Pt(0, 0), f32.Pt(3, 8), f32.Pt(9, 8), f32.Pt(12, 0)),
		curve.NewConic(f32.Pt(0, 0), f32.Pt(5, 5), f32.Pt(10, 0), 0.8),
	}
	for _, c := range cases {
		for _, piece := range curve.Subdivide(c) {
			off := piece.Offset(hw)

			wantStart := piece.StartPoint().Add(f32.Rot90CW(piece.StartTangent()).Mul(hw))
			wantEnd := piece.EndPoint().Add(f32.Rot90CW(piece.EndTangent()).Mul(hw))

			assert.InDelta(t, float64(wantStart.X), float64(off.StartPoint().X), 1e-4)
			assert.InDelta(t, float64(wantStart.Y), float64(off.StartPoint().Y), 1e-4)
			assert.InDelta(t, float64(wantEnd.X), float64(off.EndPoint().X), 1e-4)
			assert.InDelta(t, float64(wantEnd.Y), float64(off.EndPoint().Y), 1e-4)
		}
	}
}

// TestScenarioS3ClosedMiterCorners is spec §8 S3: an L-shaped closed contour
// stroked with a generous miter limit produces two closed sub-paths whose
// sharp corners land exactly at the outer miter tip (11,-1) and the inner
// trimmed corner (9,1).
func TestScenarioS3ClosedMiterCorners(t *testing.T) {
	in := path.New()
	in.MoveTo(0, 0)
	in.LineTo(10, 0)
	in.LineTo(10, 10)
	in.Close()

	out := path.New()
	Driver{}.Stroke(in, Style{Width: 2, Join: Miter, MiterLimit: 4}, nil, out)

	polys := out.Flatten()
	require.Len(t, polys, 2)

	var sawOuterTip, sawInnerTip bool
	for _, poly := range polys {
		if containsPoint(poly, f32.Pt(11, -1), 1e-3) {
			sawOuterTip = true
		}
		if containsPoint(poly, f32.Pt(9, 1), 1e-3) {
			sawInnerTip = true
		}
	}
	assert.True(t, sawOuterTip, "outer sub-path should carry the sharp miter at (11,-1)")
	assert.True(t, sawInnerTip, "inner sub-path should carry the sharp corner at (9,1)")
}

// TestScenarioS4MiterLimitForcesBevel is the same S3 geometry but with a
// miter limit too tight for the 90-degree corner (ratio sqrt(2)), so the
// outer join falls back to a bevel and the miter tip (11,-1) is never
// reached. The inner side is trimmed by intersection rather than joined, so
// its corner stays at (9,1) whatever the limit.
func TestScenarioS4MiterLimitForcesBevel(t *testing.T) {
	in := path.New()
	in.MoveTo(0, 0)
	in.LineTo(10, 0)
	in.LineTo(10, 10)
	in.Close()

	out := path.New()
	Driver{}.Stroke(in, Style{Width: 2, Join: Miter, MiterLimit: 1}, nil, out)

	polys := out.Flatten()
	require.Len(t, polys, 2)

	var sawInnerCorner bool
	for _, poly := range polys {
		assert.False(t, containsPoint(poly, f32.Pt(11, -1), 1e-3), "limit 1 should bevel away the outer miter tip")
		if containsPoint(poly, f32.Pt(9, 1), 1e-3) {
			sawInnerCorner = true
		}
	}
	assert.True(t, sawInnerCorner, "the trimmed inner corner (9,1) does not depend on the miter limit")
}

// TestDashCoverageThreeSegments is spec §8 Property 8: pattern [5, 3] on a
// straight line of length 20 produces exactly 3 disjoint rectangles: on-spans
// [0,5] and [8,13] of length 5, and [16,20], truncated to length 4 by the
// line end.
func TestDashCoverageThreeSegments(t *testing.T) {
	in := path.New()
	in.MoveTo(0, 0)
	in.LineTo(20, 0)

	out := path.New()
	pattern := dash.Pattern{Array: []float32{5, 3}}
	Driver{}.Stroke(in, Style{Width: 2, Cap: ButtCap}, &pattern, out)

	polys := out.Flatten()
	require.Len(t, polys, 3)

	boxes := make([]bbox, len(polys))
	for i, p := range polys {
		boxes[i] = boundsOf(p)
	}
	sort.Slice(boxes, func(i, j int) bool { return boxes[i].minX < boxes[j].minX })

	wantStarts := []float32{0, 8, 16}
	for i, b := range boxes {
		assert.InDelta(t, float64(wantStarts[i]), float64(b.minX), 1e-4)
		length := b.maxX - b.minX
		if i < 2 {
			assert.InDelta(t, 5, float64(length), 1e-4)
		} else {
			assert.InDelta(t, 4, float64(length), 1e-4, "final on-span is truncated by the line's own end")
		}
	}
}

// TestScenarioS6DashedRectangles is spec §8 S6: dashing the S1 line with
// pattern [4, 2] and zero phase yields two on-spans, [0,4] and [6,10], each
// stroking to its own rectangle.
func TestScenarioS6DashedRectangles(t *testing.T) {
	in := path.New()
	in.MoveTo(0, 0)
	in.LineTo(10, 0)

	out := path.New()
	pattern := dash.Pattern{Array: []float32{4, 2}}
	Driver{}.Stroke(in, Style{Width: 2, Cap: ButtCap}, &pattern, out)

	polys := out.Flatten()
	require.Len(t, polys, 2)

	bboxes := []bbox{boundsOf(polys[0]), boundsOf(polys[1])}
	if bboxes[0].minX > bboxes[1].minX {
		bboxes[0], bboxes[1] = bboxes[1], bboxes[0]
	}

	assert.InDelta(t, 0, float64(bboxes[0].minX), 1e-4)
	assert.InDelta(t, 4, float64(bboxes[0].maxX), 1e-4)
	assert.InDelta(t, 6, float64(bboxes[1].minX), 1e-4)
	assert.InDelta(t, 10, float64(bboxes[1].maxX), 1e-4)
	for _, b := range bboxes {
		assert.InDelta(t, -1, float64(b.minY), 1e-4)
		assert.InDelta(t, 1, float64(b.maxY), 1e-4)
	}
}
