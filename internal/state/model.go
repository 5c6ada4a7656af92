package state

import "math"

// Point is a position in canvas space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// DistanceTo returns the Euclidean distance between p and q.
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// IdentifiedPoint is a Point that has entered history. The ID is the only
// way to address it later; two points at the same position are distinct.
type IdentifiedPoint struct {
	ID string `json:"id"`
	Point
}

// OrderedPoint is a live point together with its rank in render order.
type OrderedPoint struct {
	IdentifiedPoint
	DrawIndex int `json:"draw_index"`
}

type BatchKind string

const (
	BatchAdd    BatchKind = "add"
	BatchRemove BatchKind = "remove"
)

// Batch is one undoable history entry.
type Batch struct {
	Kind   BatchKind         `json:"kind"`
	Points []IdentifiedPoint `json:"points"`
}

func (b Batch) clone() Batch {
	pts := make([]IdentifiedPoint, len(b.Points))
	copy(pts, b.Points)
	return Batch{Kind: b.Kind, Points: pts}
}
