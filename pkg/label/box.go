package label

import (
	"math"

	"github.com/moonlight-label/moonlight/pkg/geometry"
)

// Box is an axis-aligned bounding box in pixel coordinates, (X1, Y1) top-left
// and (X2, Y2) bottom-right.
type Box struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 { return b.X2 - b.X1 }

// Height returns the vertical extent of the box.
func (b Box) Height() float64 { return b.Y2 - b.Y1 }

// Area returns the box area, treating inverted boxes as empty.
func (b Box) Area() float64 {
	w := b.Width()
	h := b.Height()
	if w < 0 || h < 0 {
		return 0
	}
	return w * h
}

// IoU returns the intersection-over-union of two boxes, 0 when the union is
// empty.
func (b Box) IoU(other Box) float64 {
	ix1 := math.Max(b.X1, other.X1)
	iy1 := math.Max(b.Y1, other.Y1)
	ix2 := math.Min(b.X2, other.X2)
	iy2 := math.Min(b.Y2, other.Y2)

	iw := math.Max(0, ix2-ix1)
	ih := math.Max(0, iy2-iy1)
	intersection := iw * ih

	union := b.Area() + other.Area() - intersection
	if union <= 0 {
		return 0
	}
	return intersection / union
}

// BoundingBox returns the axis-aligned box enclosing the shape.
func (s Shape) BoundingBox() Box {
	switch s.Type {
	case TypeRectangle:
		corners := s.RectCorners()
		return boxAround(corners)
	case TypeOBB:
		return boxAround(s.Corners)
	case TypePolygon, TypeLine:
		return boxAround(s.Points)
	case TypeCircle:
		return Box{
			X1: s.Center.X - s.Radius,
			Y1: s.Center.Y - s.Radius,
			X2: s.Center.X + s.Radius,
			Y2: s.Center.Y + s.Radius,
		}
	default: // point
		return Box{X1: s.Center.X, Y1: s.Center.Y, X2: s.Center.X, Y2: s.Center.Y}
	}
}

func boxAround(points []geometry.Point) Box {
	if len(points) == 0 {
		return Box{}
	}
	b := Box{X1: points[0].X, Y1: points[0].Y, X2: points[0].X, Y2: points[0].Y}
	for _, p := range points[1:] {
		if p.X < b.X1 {
			b.X1 = p.X
		}
		if p.X > b.X2 {
			b.X2 = p.X
		}
		if p.Y < b.Y1 {
			b.Y1 = p.Y
		}
		if p.Y > b.Y2 {
			b.Y2 = p.Y
		}
	}
	return b
}
