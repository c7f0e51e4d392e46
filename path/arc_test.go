package path

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xlloss/strokepath/f32"
)

func TestArcToSemicircleEndpoints(t *testing.T) {
	p := New()
	p.MoveTo(-1, 0)
	p.ArcTo(1, 1, 0, false, true, 1, 0)

	segs := p.Segments()
	last := segs[len(segs)-1]
	assert.InDelta(t, 1, float64(last.Points[2].X), 1e-4)
	assert.InDelta(t, 0, float64(last.Points[2].Y), 1e-4)

	// The arc should bulge away from the chord: with sweep=true the top
	// half-circle is drawn, so some interior point should have y > 0.
	var sawPositiveY bool
	for _, s := range segs {
		if s.Op == ConicTo && s.Points[1].Y > 0.1 {
			sawPositiveY = true
		}
	}
	assert.True(t, sawPositiveY)
}

func TestArcToFullCircleStaysOnRadius(t *testing.T) {
	const r = 5.0
	p := New()
	p.MoveTo(r, 0)
	// A near-full circle via two large arcs (a single 360-degree SVG arc
	// is degenerate and undefined, so it is split as any real path
	// builder would require of its caller).
	p.ArcTo(r, r, 0, true, true, -r, 0)
	p.ArcTo(r, r, 0, true, true, r, 0)

	for _, c := range p.Flatten()[0] {
		d := f32.Len(f32.Pt(c.X, c.Y))
		assert.InDelta(t, r, float64(d), 0.05)
	}
}

func TestArcToQuarterCircleWeight(t *testing.T) {
	p := New()
	p.MoveTo(1, 0)
	p.ArcTo(1, 1, 0, false, true, 0, 1)

	segs := p.Segments()
	diff := math.Abs(float64(segs[len(segs)-1].Weight) - 0.70710678)
	assert.Less(t, diff, 1e-3)
}
