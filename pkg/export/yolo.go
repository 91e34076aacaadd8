package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/moonlight-label/moonlight/pkg/label"
)

// FormatYOLOLine renders one shape as a YOLO detection line:
//
//	class x_center y_center width height
//
// with coordinates normalized by the image size, 6 decimals. Rectangles use
// their center and extents directly; polygons and OBBs are reduced to their
// axis-aligned bounding box. Points, lines and circles have no YOLO detection
// representation and return ok = false.
func FormatYOLOLine(s label.Shape, width, height int) (string, bool) {
	if width <= 0 || height <= 0 {
		return "", false
	}

	var cx, cy, w, h float64
	switch s.Type {
	case label.TypeRectangle:
		if s.RotationDegrees == 0 {
			cx, cy = s.Center.X, s.Center.Y
			w, h = s.Width, s.Height
			break
		}
		// A rotated rectangle's axis-aligned footprint is wider than its
		// nominal extents.
		box := s.BoundingBox()
		cx, cy = (box.X1+box.X2)/2, (box.Y1+box.Y2)/2
		w, h = box.Width(), box.Height()

	case label.TypePolygon, label.TypeOBB:
		box := s.BoundingBox()
		if box.Width() == 0 && box.Height() == 0 {
			return "", false
		}
		cx, cy = (box.X1+box.X2)/2, (box.Y1+box.Y2)/2
		w, h = box.Width(), box.Height()

	default:
		return "", false
	}

	fw, fh := float64(width), float64(height)
	return fmt.Sprintf("%d %.6f %.6f %.6f %.6f",
		s.ClassID, cx/fw, cy/fh, w/fw, h/fh), true
}

// MarshalYOLO renders all exportable shapes of an annotated image, one line
// per shape.
func MarshalYOLO(ann AnnotatedImage) string {
	var b strings.Builder
	for _, s := range ann.Shapes {
		if line, ok := FormatYOLOLine(s, ann.Width, ann.Height); ok {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// WriteYOLO writes the YOLO detection label file to path.
func WriteYOLO(path string, ann AnnotatedImage) error {
	if err := os.WriteFile(path, []byte(MarshalYOLO(ann)), 0644); err != nil {
		return fmt.Errorf("failed to write label file: %w", err)
	}
	return nil
}
