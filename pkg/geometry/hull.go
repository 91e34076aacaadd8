package geometry

// ConvexHull computes the convex hull of the point set using the Jarvis march
// (gift wrapping). The hull is returned in counter-clockwise order starting
// from the leftmost point (ties broken by smallest y). Collinear points keep
// only the farthest, so the hull carries no redundant interior vertices.
//
// Fewer than 3 points are returned unchanged (as a copy), since no hull
// reduction is meaningful. Complexity is O(n*h) where h is the hull size,
// which is fine for the small contours this package sees.
func ConvexHull(points []Point) []Point {
	if len(points) < 3 {
		out := make([]Point, len(points))
		copy(out, points)
		return out
	}

	leftmost := points[0]
	for _, p := range points[1:] {
		if p.X < leftmost.X || (p.X == leftmost.X && p.Y < leftmost.Y) {
			leftmost = p
		}
	}

	var hull []Point
	current := leftmost
	for {
		hull = append(hull, current)

		next := points[0]
		for _, candidate := range points[1:] {
			if next == current {
				next = candidate
				continue
			}
			cross := Cross(current, next, candidate)
			if cross < 0 || (cross == 0 && Distance(current, candidate) > Distance(current, next)) {
				next = candidate
			}
		}

		// Every point coincides with the current one; without this guard a
		// degenerate input of duplicated points would never advance.
		if next == current {
			break
		}

		current = next
		if current == leftmost || len(hull) > len(points) {
			break
		}
	}

	return hull
}
