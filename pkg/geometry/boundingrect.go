package geometry

import "fmt"

// BoundingRectangle returns the axis-aligned rectangle enclosing the polygon,
// as 4 corners ordered bottom-left, bottom-right, top-right, top-left in the
// y-down image convention:
//
//	[(xmin,ymin), (xmax,ymin), (xmax,ymax), (xmin,ymax)]
//
// Returns ErrInsufficientVertices for fewer than 3 vertices.
func BoundingRectangle(polygon []Point) ([4]Point, error) {
	if len(polygon) < 3 {
		return [4]Point{}, fmt.Errorf("bounding rectangle of %d vertices: %w", len(polygon), ErrInsufficientVertices)
	}

	xMin, yMin := polygon[0].X, polygon[0].Y
	xMax, yMax := xMin, yMin
	for _, p := range polygon[1:] {
		if p.X < xMin {
			xMin = p.X
		}
		if p.X > xMax {
			xMax = p.X
		}
		if p.Y < yMin {
			yMin = p.Y
		}
		if p.Y > yMax {
			yMax = p.Y
		}
	}

	return [4]Point{
		{X: xMin, Y: yMin},
		{X: xMax, Y: yMin},
		{X: xMax, Y: yMax},
		{X: xMin, Y: yMax},
	}, nil
}
