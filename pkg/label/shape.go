// Package label models the annotation shapes drawn over an image (rectangles,
// polygons, oriented bounding boxes, points, lines and circles) together with
// the hit-testing, selection and filtering rules the annotation workflow needs.
package label

import (
	"math"

	"github.com/moonlight-label/moonlight/pkg/geometry"
)

// ShapeType identifies the kind of annotation a Shape carries.
type ShapeType string

const (
	TypeRectangle ShapeType = "rectangle"
	TypePolygon   ShapeType = "polygon"
	TypeOBB       ShapeType = "obb"
	TypePoint     ShapeType = "point"
	TypeLine      ShapeType = "line"
	TypeCircle    ShapeType = "circle"
)

// DefaultHitTolerance is the pixel tolerance used when hit-testing point and
// line shapes.
const DefaultHitTolerance = 5.0

// Shape is a single annotation on an image. It is a plain value: construct it,
// read it, never mutate it after handing it to a shape list.
//
// Field usage depends on Type: rectangles use Center/Width/Height plus an
// optional RotationDegrees; polygons use Points as ordered vertices; OBBs use
// Corners; points use Center; lines use Points[0] and Points[1]; circles use
// Center and Radius.
type Shape struct {
	Type      ShapeType `json:"type"`
	ClassID   int       `json:"class_id"`
	ClassName string    `json:"class_name"`

	Center          geometry.Point   `json:"center,omitempty"`
	Width           float64          `json:"width,omitempty"`
	Height          float64          `json:"height,omitempty"`
	RotationDegrees float64          `json:"rotation,omitempty"`
	Points          []geometry.Point `json:"points,omitempty"`
	Corners         []geometry.Point `json:"corners,omitempty"`
	Radius          float64          `json:"radius,omitempty"`
}

// NewRectangle creates an axis-aligned rectangle shape from its center and extents.
func NewRectangle(classID int, className string, cx, cy, w, h float64) Shape {
	return Shape{
		Type:      TypeRectangle,
		ClassID:   classID,
		ClassName: className,
		Center:    geometry.Point{X: cx, Y: cy},
		Width:     w,
		Height:    h,
	}
}

// NewPolygon creates a polygon shape from its ordered vertices.
func NewPolygon(classID int, className string, points []geometry.Point) Shape {
	return Shape{
		Type:      TypePolygon,
		ClassID:   classID,
		ClassName: className,
		Points:    points,
	}
}

// NewOBB creates an oriented bounding box shape from a fitted minimum
// bounding rectangle.
func NewOBB(classID int, className string, rect geometry.MinBoundingRect) Shape {
	return Shape{
		Type:            TypeOBB,
		ClassID:         classID,
		ClassName:       className,
		Center:          rect.Center,
		Width:           rect.Width,
		Height:          rect.Height,
		RotationDegrees: rect.AngleDegrees,
		Corners:         append([]geometry.Point(nil), rect.Corners[:]...),
	}
}

// NewPoint creates a point shape.
func NewPoint(classID int, className string, x, y float64) Shape {
	return Shape{
		Type:      TypePoint,
		ClassID:   classID,
		ClassName: className,
		Center:    geometry.Point{X: x, Y: y},
	}
}

// NewLine creates a line-segment shape.
func NewLine(classID int, className string, a, b geometry.Point) Shape {
	return Shape{
		Type:      TypeLine,
		ClassID:   classID,
		ClassName: className,
		Points:    []geometry.Point{a, b},
	}
}

// NewCircle creates a circle shape.
func NewCircle(classID int, className string, cx, cy, radius float64) Shape {
	return Shape{
		Type:      TypeCircle,
		ClassID:   classID,
		ClassName: className,
		Center:    geometry.Point{X: cx, Y: cy},
		Radius:    radius,
	}
}

// Area returns the shape's area in square pixels. Points and lines have zero
// area, which makes them win smallest-area-first selection over any enclosing
// region shape.
func (s Shape) Area() float64 {
	switch s.Type {
	case TypeRectangle:
		return s.Width * s.Height
	case TypePolygon:
		return geometry.PolygonArea(s.Points)
	case TypeOBB:
		if len(s.Corners) >= 3 {
			return geometry.PolygonArea(s.Corners)
		}
		return s.Width * s.Height
	case TypeCircle:
		return math.Pi * s.Radius * s.Radius
	default:
		return 0
	}
}

// Contains reports whether the pixel (x, y) hits the shape, using
// DefaultHitTolerance for point and line shapes.
func (s Shape) Contains(x, y float64) bool {
	return s.ContainsWithTolerance(x, y, DefaultHitTolerance)
}

// ContainsWithTolerance is Contains with an explicit pixel tolerance for
// point and line shapes.
func (s Shape) ContainsWithTolerance(x, y, tolerance float64) bool {
	switch s.Type {
	case TypePoint:
		return geometry.PointNearPoint(x, y, s.Center, tolerance)

	case TypeLine:
		if len(s.Points) < 2 {
			return false
		}
		a, b := s.Points[0], s.Points[1]
		if s.RotationDegrees != 0 {
			angle := s.RotationDegrees * math.Pi / 180
			a = a.RotateAround(angle, s.Center)
			b = b.RotateAround(angle, s.Center)
		}
		return geometry.DistanceToSegment(x, y, a, b) <= tolerance

	case TypeOBB:
		return geometry.PointInPolygon(x, y, s.Corners)

	case TypePolygon:
		if s.RotationDegrees != 0 {
			return geometry.PointInPolygon(x, y, s.rotatedPoints())
		}
		return geometry.PointInPolygon(x, y, s.Points)

	case TypeRectangle:
		return geometry.PointInRotatedRect(x, y, s.Center, s.Width, s.Height, s.RotationDegrees)

	case TypeCircle:
		return geometry.PointNearPoint(x, y, s.Center, s.Radius)
	}

	return false
}

// RectCorners returns the rectangle's 4 corners with its rotation applied,
// ordered top-left, top-right, bottom-right, bottom-left in the unrotated
// frame. Only meaningful for rectangle shapes; OBB shapes carry their corners
// directly.
func (s Shape) RectCorners() []geometry.Point {
	halfW := s.Width / 2
	halfH := s.Height / 2
	corners := []geometry.Point{
		{X: s.Center.X - halfW, Y: s.Center.Y - halfH},
		{X: s.Center.X + halfW, Y: s.Center.Y - halfH},
		{X: s.Center.X + halfW, Y: s.Center.Y + halfH},
		{X: s.Center.X - halfW, Y: s.Center.Y + halfH},
	}
	if s.RotationDegrees == 0 {
		return corners
	}
	angle := s.RotationDegrees * math.Pi / 180
	for i, c := range corners {
		corners[i] = c.RotateAround(angle, s.Center)
	}
	return corners
}

func (s Shape) rotatedPoints() []geometry.Point {
	angle := s.RotationDegrees * math.Pi / 180
	center := s.Center
	if center == (geometry.Point{}) && len(s.Points) > 0 {
		box := s.BoundingBox()
		center = geometry.Point{X: (box.X1 + box.X2) / 2, Y: (box.Y1 + box.Y2) / 2}
	}
	out := make([]geometry.Point, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.RotateAround(angle, center)
	}
	return out
}

// NormalizeAngle maps an arbitrary rotation in degrees into [0, 180). A
// rectangle rotated by a+180 is indistinguishable from one rotated by a.
func NormalizeAngle(angle float64) float64 {
	for angle < 0 {
		angle += 180
	}
	for angle >= 180 {
		angle -= 180
	}
	return angle
}
