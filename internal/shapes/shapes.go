// Package shapes generates the point clouds used to seed a board.
package shapes

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"WormBoard/internal/state"
)

// ErrUnknownShape is returned by Build for a shape name it does not know.
var ErrUnknownShape = errors.New("unknown shape")

// gap is the dot spacing used for straight edges, relative to the dot size.
// It closes the small gap between neighbouring worms.
const gap = 0.9

// Circle places dots evenly around a circle, one per dot size of
// circumference.
func Circle(center state.Point, dotSize, radius float64) []state.Point {
	if radius <= 0 || dotSize <= 0 {
		return nil
	}
	spots := int(math.Ceil(2 * math.Pi * radius / dotSize))

	out := make([]state.Point, 0, spots)
	for i := 0; i < spots; i++ {
		theta := float64(i) / float64(spots) * 2 * math.Pi
		out = append(out, state.Point{
			X: center.X + math.Cos(theta)*radius,
			Y: center.Y + math.Sin(theta)*radius,
		})
	}
	return out
}

// Line places lengthInDots dots starting at start. The angle is in degrees,
// clockwise from three o'clock.
func Line(start state.Point, dotSize float64, lengthInDots int, angleDegrees float64) []state.Point {
	step := dotSize * gap
	rad := angleDegrees / 180 * math.Pi

	out := make([]state.Point, 0, max(lengthInDots, 0))
	for i := 0; i < lengthInDots; i++ {
		out = append(out, state.Point{
			X: start.X + math.Cos(rad)*step*float64(i),
			Y: start.Y + math.Sin(rad)*step*float64(i),
		})
	}
	return out
}

// Square outlines a square centred on center with sideDots dots per side.
// Corner dots are shared by two sides and so appear twice.
func Square(center state.Point, dotSize float64, sideDots int) []state.Point {
	switch {
	case sideDots <= 0:
		return nil
	case sideDots == 1:
		return []state.Point{center}
	}

	step := dotSize * gap
	half := step * float64(sideDots-1) / 2 // dot origins are centred

	out := make([]state.Point, 0, 4*sideDots)
	for i := 0; i < sideDots; i++ {
		d := step * float64(i)
		out = append(out,
			state.Point{X: center.X - half + d, Y: center.Y - half}, // top
			state.Point{X: center.X + half, Y: center.Y - half + d}, // right
			state.Point{X: center.X + half - d, Y: center.Y + half}, // bottom
			state.Point{X: center.X - half, Y: center.Y + half - d}, // left
		)
	}
	return out
}

// Spec describes a seed shape by name.
type Spec struct {
	Shape  string
	Origin state.Point
	// Size is the radius for circles and the number of dots for lines and
	// squares.
	Size  float64
	Angle float64
}

// Build generates the shape named in s. An empty name yields no points.
func Build(s Spec, dotSize float64) ([]state.Point, error) {
	switch strings.ToLower(s.Shape) {
	case "", "none":
		return nil, nil
	case "circle":
		return Circle(s.Origin, dotSize, s.Size), nil
	case "line":
		return Line(s.Origin, dotSize, int(s.Size), s.Angle), nil
	case "square":
		return Square(s.Origin, dotSize, int(s.Size)), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownShape, s.Shape)
}
