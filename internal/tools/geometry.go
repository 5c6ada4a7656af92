package tools

import (
	"math"

	"WormBoard/internal/state"
)

// Spacing returns the gap kept between consecutive dots of the given size.
// Slightly less than the diameter so neighbouring worms overlap.
func Spacing(dotSize float64) float64 {
	return dotSize * 0.9
}

// Bearing is the angle in radians from one point towards another.
func Bearing(from, to state.Point) float64 {
	return math.Atan2(to.Y-from.Y, to.X-from.X)
}

// Project returns the point dist away from origin along bearing.
func Project(origin state.Point, bearing, dist float64) state.Point {
	return state.Point{
		X: origin.X + math.Cos(bearing)*dist,
		Y: origin.Y + math.Sin(bearing)*dist,
	}
}

// Direction is the heading interpolated points follow.
type Direction int

const (
	// Straight heads directly at the target.
	Straight Direction = iota
	Horizontal
	Vertical
	// DiagonalUp follows a positive slope: x and y grow together.
	DiagonalUp
	// DiagonalDown follows a negative slope.
	DiagonalDown
)

func (d Direction) String() string {
	switch d {
	case Straight:
		return "straight"
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case DiagonalUp:
		return "diagonal-up"
	case DiagonalDown:
		return "diagonal-down"
	}
	return "unknown"
}

// Slope thresholds for axis snapping, in canvas pixels.
const (
	flatSlope  = 0.5
	steepSlope = 2
)

// SnapDirection picks the axis or diagonal closest to the line from one point
// to another, judged by slope.
func SnapDirection(from, to state.Point) Direction {
	dx, dy := to.X-from.X, to.Y-from.Y
	if dx == 0 {
		return Vertical
	}
	slope := dy / dx
	switch {
	case math.Abs(slope) < flatSlope:
		return Horizontal
	case math.Abs(slope) > steepSlope:
		return Vertical
	case slope > 0:
		return DiagonalUp
	default:
		return DiagonalDown
	}
}

// unit returns the step vector of d for a run from one point towards another.
func (d Direction) unit(from, to state.Point) (ux, uy float64) {
	sx := 1.0
	if to.X < from.X {
		sx = -1
	}
	sy := 1.0
	if to.Y < from.Y {
		sy = -1
	}
	switch d {
	case Horizontal:
		return sx, 0
	case Vertical:
		return 0, sy
	case DiagonalUp:
		return sx * math.Sqrt2 / 2, sx * math.Sqrt2 / 2
	case DiagonalDown:
		return sx * math.Sqrt2 / 2, -sx * math.Sqrt2 / 2
	}
	b := Bearing(from, to)
	return math.Cos(b), math.Sin(b)
}

// remaining is the distance still to cover from cur to target. Axis-snapped
// runs measure along their axis, diagonals along the diagonal.
func (d Direction) remaining(cur, target state.Point, ux, uy float64) float64 {
	if d == Straight {
		return cur.DistanceTo(target)
	}
	return (target.X-cur.X)*ux + (target.Y-cur.Y)*uy
}

// Interpolate walks from start towards target in steps of exactly spacing
// along dir, stopping once less than spacing is left. The result always
// begins with start.
func Interpolate(start, target state.Point, dir Direction, spacing float64) []state.Point {
	out := []state.Point{start}
	if spacing <= 0 {
		return out
	}

	ux, uy := dir.unit(start, target)
	cur := start
	for k := 1; dir.remaining(cur, target, ux, uy) >= spacing; k++ {
		cur = state.Point{
			X: start.X + ux*spacing*float64(k),
			Y: start.Y + uy*spacing*float64(k),
		}
		out = append(out, cur)
	}
	return out
}
