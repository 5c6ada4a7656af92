package state

import "slices"

// Resolve sorts points into render order and assigns dense draw indices.
// Points further right come first; lower y breaks ties. The sort is stable,
// so exact duplicates keep their input order.
func Resolve(points []IdentifiedPoint) []OrderedPoint {
	sorted := make([]IdentifiedPoint, len(points))
	copy(sorted, points)
	slices.SortStableFunc(sorted, func(a, b IdentifiedPoint) int {
		switch {
		case a.X > b.X:
			return -1
		case a.X < b.X:
			return 1
		case a.Y < b.Y:
			return -1
		case a.Y > b.Y:
			return 1
		}
		return 0
	})

	out := make([]OrderedPoint, len(sorted))
	for i, p := range sorted {
		out[i] = OrderedPoint{IdentifiedPoint: p, DrawIndex: i}
	}
	return out
}
