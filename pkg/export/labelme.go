package export

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/moonlight-label/moonlight/pkg/geometry"
	"github.com/moonlight-label/moonlight/pkg/label"
)

// labelMeVersion is the LabelMe file version annotators expect.
const labelMeVersion = "5.0.1"

// circleSegments is how many vertices approximate a circle when LabelMe has
// no native circle shape.
const circleSegments = 32

// LabelMeFile is the on-disk LabelMe JSON document.
type LabelMeFile struct {
	Version     string                 `json:"version"`
	Flags       map[string]interface{} `json:"flags"`
	Shapes      []LabelMeShape         `json:"shapes"`
	ImagePath   string                 `json:"imagePath"`
	ImageData   interface{}            `json:"imageData"`
	ImageHeight int                    `json:"imageHeight"`
	ImageWidth  int                    `json:"imageWidth"`
}

// LabelMeShape is one shape entry in a LabelMe document.
type LabelMeShape struct {
	Label     string                 `json:"label"`
	Points    [][]float64            `json:"points"`
	GroupID   interface{}            `json:"group_id"`
	ShapeType string                 `json:"shape_type"`
	Flags     map[string]interface{} `json:"flags"`
}

// MarshalLabelMe converts an annotated image to LabelMe JSON. OBBs and rotated
// rectangles become 4-point polygons flagged {"obb": true}; circles become
// 32-point polygon approximations flagged with their radius; points and lines
// keep their native LabelMe shape types.
func MarshalLabelMe(ann AnnotatedImage, opts Options) ([]byte, error) {
	file := LabelMeFile{
		Version:     labelMeVersion,
		Flags:       map[string]interface{}{},
		Shapes:      []LabelMeShape{},
		ImagePath:   imageBasename(ann.ImagePath),
		ImageData:   nil,
		ImageHeight: ann.Height,
		ImageWidth:  ann.Width,
	}

	for _, s := range ann.Shapes {
		shape, ok := labelMeShape(s, ann.Width, ann.Height, opts)
		if ok {
			file.Shapes = append(file.Shapes, shape)
		}
	}

	return json.MarshalIndent(file, "", "  ")
}

// WriteLabelMe writes the LabelMe JSON document to path.
func WriteLabelMe(path string, ann AnnotatedImage, opts Options) error {
	data, err := MarshalLabelMe(ann, opts)
	if err != nil {
		return fmt.Errorf("failed to marshal LabelMe document: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write label file: %w", err)
	}
	return nil
}

// ReadLabelMe parses a LabelMe JSON document back into an annotated image.
// Polygon flags are honored: obb-flagged polygons come back as OBB shapes,
// circle-flagged ones as circles.
func ReadLabelMe(path string, classIDs map[string]int) (AnnotatedImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AnnotatedImage{}, fmt.Errorf("failed to read label file: %w", err)
	}

	var file LabelMeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return AnnotatedImage{}, fmt.Errorf("failed to parse LabelMe document %q: %w", path, err)
	}

	ann := AnnotatedImage{
		ImagePath: file.ImagePath,
		Width:     file.ImageWidth,
		Height:    file.ImageHeight,
	}

	for _, s := range file.Shapes {
		classID := classIDs[s.Label]
		points := make([]geometry.Point, 0, len(s.Points))
		for _, p := range s.Points {
			if len(p) >= 2 {
				points = append(points, geometry.Point{X: p[0], Y: p[1]})
			}
		}

		switch s.ShapeType {
		case "point":
			if len(points) >= 1 {
				ann.Shapes = append(ann.Shapes, label.NewPoint(classID, s.Label, points[0].X, points[0].Y))
			}
		case "line":
			if len(points) >= 2 {
				ann.Shapes = append(ann.Shapes, label.NewLine(classID, s.Label, points[0], points[1]))
			}
		case "polygon":
			if obb, _ := s.Flags["obb"].(bool); obb && len(points) == 4 {
				ann.Shapes = append(ann.Shapes, label.Shape{
					Type:      label.TypeOBB,
					ClassID:   classID,
					ClassName: s.Label,
					Corners:   points,
				})
				continue
			}
			if circle, _ := s.Flags["circle"].(bool); circle {
				cx, cy := centroid(points)
				radius, _ := s.Flags["radius"].(float64)
				ann.Shapes = append(ann.Shapes, label.NewCircle(classID, s.Label, cx, cy, radius))
				continue
			}
			ann.Shapes = append(ann.Shapes, label.NewPolygon(classID, s.Label, points))
		}
	}

	return ann, nil
}

func labelMeShape(s label.Shape, width, height int, opts Options) (LabelMeShape, bool) {
	shape := LabelMeShape{
		Label:     s.ClassName,
		GroupID:   nil,
		ShapeType: "polygon",
		Flags:     map[string]interface{}{},
	}

	var points []geometry.Point
	switch s.Type {
	case label.TypeOBB:
		if len(s.Corners) != 4 {
			return LabelMeShape{}, false
		}
		points = s.Corners
		shape.Flags["obb"] = true

	case label.TypeRectangle:
		points = s.RectCorners()
		if s.RotationDegrees != 0 {
			shape.Flags["obb"] = true
		}

	case label.TypePolygon:
		if len(s.Points) == 0 {
			return LabelMeShape{}, false
		}
		points = s.Points

	case label.TypeCircle:
		points = make([]geometry.Point, circleSegments)
		for i := range points {
			angle := 2 * math.Pi * float64(i) / circleSegments
			points[i] = geometry.Point{
				X: s.Center.X + s.Radius*math.Cos(angle),
				Y: s.Center.Y + s.Radius*math.Sin(angle),
			}
		}
		shape.Flags["circle"] = true
		shape.Flags["radius"] = s.Radius

	case label.TypePoint:
		points = []geometry.Point{s.Center}
		shape.ShapeType = "point"

	case label.TypeLine:
		if len(s.Points) < 2 {
			return LabelMeShape{}, false
		}
		points = s.Points[:2]
		shape.ShapeType = "line"

	default:
		return LabelMeShape{}, false
	}

	shape.Points = make([][]float64, len(points))
	for i, p := range points {
		x, y := p.X, p.Y
		if opts.Normalize && width > 0 && height > 0 {
			x /= float64(width)
			y /= float64(height)
		}
		shape.Points[i] = []float64{x, y}
	}

	return shape, true
}

func centroid(points []geometry.Point) (float64, float64) {
	if len(points) == 0 {
		return 0, 0
	}
	var cx, cy float64
	for _, p := range points {
		cx += p.X
		cy += p.Y
	}
	n := float64(len(points))
	return cx / n, cy / n
}
