package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/moonlight-label/moonlight/pkg/geometry"
	"github.com/moonlight-label/moonlight/pkg/label"
)

// FormatOBBLine renders one shape as a YOLO-OBB/DOTA 8-point line:
//
//	class x1 y1 x2 y2 x3 y3 x4 y4
//
// Corner order follows the minimum-bounding-rectangle convention (rotated
// frame top-left, walking clockwise). Corner sources, in priority order: an
// OBB's own corners, a rectangle's rotated corners, a 4-vertex polygon's
// vertices, and finally a fitted minimum bounding rectangle over any larger
// polygon. Shapes without 4 derivable corners return ok = false.
func FormatOBBLine(s label.Shape, width, height int, opts Options) (string, bool) {
	corners, ok := obbCorners(s)
	if !ok {
		return "", false
	}

	parts := make([]string, 0, 9)
	parts = append(parts, fmt.Sprintf("%d", s.ClassID))
	for _, c := range corners {
		x, y := c.X, c.Y
		if opts.Normalize && width > 0 && height > 0 {
			x /= float64(width)
			y /= float64(height)
		}
		parts = append(parts, fmt.Sprintf("%.6f %.6f", x, y))
	}
	return strings.Join(parts, " "), true
}

// MarshalOBB renders all exportable shapes of an annotated image, one line
// per shape.
func MarshalOBB(ann AnnotatedImage, opts Options) string {
	var b strings.Builder
	for _, s := range ann.Shapes {
		if line, ok := FormatOBBLine(s, ann.Width, ann.Height, opts); ok {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// WriteOBB writes the OBB label file to path.
func WriteOBB(path string, ann AnnotatedImage, opts Options) error {
	if err := os.WriteFile(path, []byte(MarshalOBB(ann, opts)), 0644); err != nil {
		return fmt.Errorf("failed to write label file: %w", err)
	}
	return nil
}

func obbCorners(s label.Shape) ([]geometry.Point, bool) {
	switch s.Type {
	case label.TypeOBB:
		if len(s.Corners) == 4 {
			return s.Corners, true
		}
	case label.TypeRectangle:
		return s.RectCorners(), true
	case label.TypePolygon:
		if len(s.Points) == 4 {
			return s.Points, true
		}
		if len(s.Points) > 4 {
			rect, err := geometry.MinimumBoundingRectangle(s.Points)
			if err != nil {
				return nil, false
			}
			return rect.Corners[:], true
		}
	}
	return nil, false
}
