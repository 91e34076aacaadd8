// Package geometry implements the pure 2D math used by the annotation tools:
// polygon area, convex hulls, minimum and axis-aligned bounding rectangles,
// and the hit-testing predicates used for shape selection.
//
// All functions operate in image coordinates: origin at the top-left corner,
// x increasing rightward, y increasing downward, units in pixels. Every
// function is a deterministic, side-effect-free transformation of its inputs
// and is safe to call concurrently.
package geometry

import "math"

// Point is a 2D coordinate in the image plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Rotate rotates p by angle radians about the origin.
func (p Point) Rotate(angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

// RotateAround rotates p by angle radians about center.
func (p Point) RotateAround(angle float64, center Point) Point {
	r := Point{X: p.X - center.X, Y: p.Y - center.Y}.Rotate(angle)
	return Point{X: r.X + center.X, Y: r.Y + center.Y}
}

// Cross returns the 2D cross product of the vectors p1->p2 and p1->p3.
// A negative value means p3 lies to the right of the directed edge p1->p2
// (y-down convention).
func Cross(p1, p2, p3 Point) float64 {
	return (p2.X-p1.X)*(p3.Y-p1.Y) - (p2.Y-p1.Y)*(p3.X-p1.X)
}
