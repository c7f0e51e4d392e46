// Package stroke implements components B, C, E and F of the path stroker:
// turn classification, join/cap synthesis, the stroke orchestrator state
// machine, and the top-level driver. Component A (the Curve primitive) and
// component D (the adaptive subdivider) live in package curve.
//
// Grounded on original_source/gsk/gskpathstroke.c (GskStroke, StrokeData,
// add_curve/add_segments/cap_and_connect_contours/close_contours), in the
// idiom of gioui.org/internal/stroke (vendored in the teacher repo) for
// naming and package shape: a StrokeStyle-like configuration struct, a
// StrokeJoin/StrokeCap pair of small enums, and a package of free functions
// around them rather than a single fat type with methods for every join.
package stroke

import "math"

// Join selects how contour-internal corners are synthesized (spec §3).
type Join uint8

const (
	Miter Join = iota
	MiterClip
	Round
	Bevel
)

// Cap selects how open-contour endpoints are sealed (spec §3).
type Cap uint8

const (
	ButtCap Cap = iota
	RoundCap
	SquareCap
)

// Style is the stroke configuration (spec §3). Dashing is modeled by the
// sibling dash package, not here: the orchestrator only ever sees an
// already-dashed (or undashed) segment stream.
type Style struct {
	Width      float32
	Join       Join
	MiterLimit float32
	Cap        Cap
}

// HalfWidth is the per-side offset distance used throughout the stroker.
func (s Style) HalfWidth() float32 { return s.Width / 2 }

const (
	// StraightAngle is the turn-angle magnitude, in radians, below which a
	// join is treated as a smooth continuation rather than a turn (spec
	// §4.B: "5 degrees").
	StraightAngle = 5 * math.Pi / 180

	// CloseEpsilon is the near-equality tolerance used when deciding
	// whether a contour's close point coincides with its start, and (per
	// spec §9's note that the source reuses one constant for both roles)
	// is numerically equal to curve.ParallelEpsilon. Kept as a separate
	// named constant so the two concerns could be tuned independently
	// without an API break.
	CloseEpsilon = 1e-3

	// PathTolerance is PATH_TOLERANCE_DEFAULT from spec §6.
	PathTolerance = 0.5
)
