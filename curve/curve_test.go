package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlloss/strokepath/f32"
)

func TestLineEvaluateAndTangent(t *testing.T) {
	c := NewLine(f32.Pt(0, 0), f32.Pt(10, 0))
	assert.Equal(t, f32.Pt(5, 0), c.Evaluate(0.5))
	assert.Equal(t, f32.Pt(1, 0), c.StartTangent())
	assert.Equal(t, f32.Pt(1, 0), c.EndTangent())
}

func TestCubicSplitReproducesEndpoints(t *testing.T) {
	c := NewCubic(f32.Pt(0, 0), f32.Pt(0, 10), f32.Pt(10, 10), f32.Pt(10, 0))
	left, right := c.Split(0.5)
	assert.InDelta(t, 0, left.StartPoint().Sub(c.StartPoint()).X, 1e-6)
	mid := c.Evaluate(0.5)
	assert.InDelta(t, 0, float64(left.EndPoint().Sub(mid).X), 1e-4)
	assert.InDelta(t, 0, float64(right.StartPoint().Sub(mid).X), 1e-4)
	assert.Equal(t, c.EndPoint(), right.EndPoint())
}

func TestConicSplitPreservesShape(t *testing.T) {
	// A quarter-circle conic: weight cos(pi/4).
	w := float32(0.70710678)
	c := NewConic(f32.Pt(1, 0), f32.Pt(1, 1), f32.Pt(0, 1), w)
	for _, tt := range []float32{0.25, 0.5, 0.75} {
		left, right := c.Split(tt)
		want := c.Evaluate(tt)
		got := left.EndPoint()
		assert.InDelta(t, 0, float64(got.Sub(want).X), 1e-3)
		assert.InDelta(t, 0, float64(got.Sub(want).Y), 1e-3)
		assert.Equal(t, right.StartPoint(), left.EndPoint())
	}
}

func TestReverseIsInvolution(t *testing.T) {
	cases := []Curve{
		NewLine(f32.Pt(0, 0), f32.Pt(3, 4)),
		NewCubic(f32.Pt(0, 0), f32.Pt(1, 2), f32.Pt(3, 2), f32.Pt(4, 0)),
		NewConic(f32.Pt(0, 0), f32.Pt(2, 2), f32.Pt(4, 0), 0.8),
	}
	for _, c := range cases {
		rr := c.Reverse().Reverse()
		assert.Equal(t, c.ControlPoints(), rr.ControlPoints())
	}
}

func TestOffsetLineIsParallel(t *testing.T) {
	c := NewLine(f32.Pt(0, 0), f32.Pt(10, 0))
	off := c.Offset(2)
	d := off.StartPoint().Sub(c.StartPoint())
	assert.InDelta(t, 0, float64(d.X), 1e-6)
	assert.InDelta(t, 2, float64(d.Y), 1e-6)
}

func TestLineIntersect(t *testing.T) {
	p, ok := LineIntersect(f32.Pt(0, 0), f32.Pt(1, 0), f32.Pt(5, -5), f32.Pt(0, 1))
	require.True(t, ok)
	assert.InDelta(t, 5, float64(p.X), 1e-5)
	assert.InDelta(t, 0, float64(p.Y), 1e-5)

	_, ok = LineIntersect(f32.Pt(0, 0), f32.Pt(1, 0), f32.Pt(0, 1), f32.Pt(1, 0))
	assert.False(t, ok, "parallel lines should report no intersection")
}

func TestCurveIntersectLines(t *testing.T) {
	a := NewLine(f32.Pt(0, 0), f32.Pt(10, 10))
	b := NewLine(f32.Pt(0, 10), f32.Pt(10, 0))
	hits := a.Intersect(b, 4)
	require.Len(t, hits, 1)
	assert.InDelta(t, 0.5, float64(hits[0].T), 1e-5)
	assert.InDelta(t, 0.5, float64(hits[0].S), 1e-5)
}

func TestAngleBetweenStraightVsTurn(t *testing.T) {
	straight := AngleBetween(f32.Pt(1, 0), f32.Pt(1, 0))
	assert.InDelta(t, 0, float64(straight), 1e-6)

	right := AngleBetween(f32.Pt(1, 0), f32.Pt(0, 1))
	assert.Greater(t, right, float32(0))

	left := AngleBetween(f32.Pt(1, 0), f32.Pt(0, -1))
	assert.Less(t, left, float32(0))
}
