package stroke

// Turn is the classification of a corner between two consecutive curves
// (component B, spec §4.B): whether the path continues essentially
// straight, turns right (the right offsets lie on the inside of the turn and
// are trimmed against each other; the left offsets lie on the outside and
// get a join), or turns left (mirrored).
type Turn uint8

const (
	Straight Turn = iota
	Right
	Left
)

// Classify turns the signed angle between two tangents (as produced by
// curve.AngleBetween) into a Turn, using StraightAngle as the deadband.
//
// Grounded on the angle dispatch in add_segments in
// original_source/gsk/gskpathstroke.c: angles within +/-5 degrees of zero
// are treated as straight; positive is a right turn, negative a left turn.
func Classify(angle float32) Turn {
	switch {
	case angle > -StraightAngle && angle < StraightAngle:
		return Straight
	case angle > 0:
		return Right
	default:
		return Left
	}
}
