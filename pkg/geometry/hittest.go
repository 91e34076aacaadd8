package geometry

import "math"

// PointInPolygon reports whether (x, y) lies inside the polygon using the
// classic ray-casting (PNPOLY) test: a horizontal ray cast rightward toggles
// an inside flag each time it crosses an edge. Points exactly on an edge may
// register as inside or outside depending on floating rounding; that is fine
// for cursor hit-testing but this is not an exact geometric predicate.
func PointInPolygon(x, y float64, polygon []Point) bool {
	n := len(polygon)
	if n == 0 {
		return false
	}

	inside := false
	p1 := polygon[0]
	for i := 1; i <= n; i++ {
		p2 := polygon[i%n]
		if y > math.Min(p1.Y, p2.Y) && y <= math.Max(p1.Y, p2.Y) && x <= math.Max(p1.X, p2.X) {
			var xIntersection float64
			if p1.Y != p2.Y {
				xIntersection = (y-p1.Y)*(p2.X-p1.X)/(p2.Y-p1.Y) + p1.X
			}
			if p1.X == p2.X || x <= xIntersection {
				inside = !inside
			}
		}
		p1 = p2
	}

	return inside
}

// DistanceToSegment returns the shortest distance from (x, y) to the segment
// a-b, computed by projecting the point onto the segment and clamping the
// projection parameter to [0, 1].
func DistanceToSegment(x, y float64, a, b Point) float64 {
	vx := b.X - a.X
	vy := b.Y - a.Y
	wx := x - a.X
	wy := y - a.Y

	c1 := vx*wx + vy*wy
	if c1 <= 0 {
		return math.Hypot(x-a.X, y-a.Y)
	}
	c2 := vx*vx + vy*vy
	if c2 <= 0 {
		return math.Hypot(x-a.X, y-a.Y)
	}
	t := c1 / c2
	if t >= 1 {
		return math.Hypot(x-b.X, y-b.Y)
	}

	return math.Hypot(x-(a.X+t*vx), y-(a.Y+t*vy))
}

// PointNearPoint reports whether (x, y) lies within tolerance of center.
func PointNearPoint(x, y float64, center Point, tolerance float64) bool {
	dx := x - center.X
	dy := y - center.Y
	return dx*dx+dy*dy <= tolerance*tolerance
}

// PointInRotatedRect reports whether (x, y) lies inside a rectangle of the
// given extents centered at center and rotated by angleDegrees about its own
// center. The point is inverse-rotated into the rectangle's frame and tested
// against the half-width/half-height box.
func PointInRotatedRect(x, y float64, center Point, width, height, angleDegrees float64) bool {
	angle := -angleDegrees * math.Pi / 180
	sin, cos := math.Sincos(angle)

	tx := x - center.X
	ty := y - center.Y
	rx := tx*cos - ty*sin
	ry := tx*sin + ty*cos

	halfW := width / 2
	halfH := height / 2
	return rx >= -halfW && rx <= halfW && ry >= -halfH && ry <= halfH
}
