package geometry

import "math"

// PolygonArea returns the area of the simple polygon described by the ordered
// vertices using the shoelace formula. Each vertex is paired with its
// predecessor, which sums the same edge set as the textbook successor pairing
// in the opposite traversal direction and yields the identical unsigned area.
//
// Fewer than 3 vertices describe a degenerate polygon and return 0. For
// self-intersecting polygons the result carries the usual shoelace ambiguity
// and should not be relied on.
func PolygonArea(points []Point) float64 {
	n := len(points)
	if n < 3 {
		return 0
	}

	sum := 0.0
	for i := 0; i < n; i++ {
		j := (i - 1 + n) % n
		sum += (points[j].X + points[i].X) * (points[j].Y - points[i].Y)
	}

	return math.Abs(0.5 * sum)
}
