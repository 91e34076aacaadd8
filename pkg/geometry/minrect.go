package geometry

import (
	"fmt"
	"math"
)

// MinBoundingRect describes the least-area rectangle enclosing a point set.
//
// Corners are listed starting at the top-left of the rectangle's own rotated
// frame, walking clockwise in that frame (y-down convention), then mapped back
// to image coordinates. AngleDegrees is the raw edge angle from atan2 and is
// deliberately not normalized to any range; callers that need a canonical
// rotation normalize it themselves.
type MinBoundingRect struct {
	Area         float64  `json:"area"`
	Width        float64  `json:"width"`
	Height       float64  `json:"height"`
	AngleDegrees float64  `json:"angle"`
	Center       Point    `json:"center"`
	Corners      [4]Point `json:"corners"`
}

// MinimumBoundingRectangle finds the minimum-area enclosing rectangle of the
// point set using rotating calipers over the convex hull edges: for each hull
// edge, every hull point is rotated about the origin so the edge lies along
// the x axis, the axis-aligned extent is measured, and the smallest extent
// wins. The rotation pivot is the coordinate origin, not the centroid; the
// recorded center and corners are rotated back by the same angle, so the
// reported rectangle is consistent regardless of pivot.
//
// Returns ErrInsufficientPoints for fewer than 2 input points and
// ErrHullComputation if the hull degenerates below 2 points.
func MinimumBoundingRectangle(points []Point) (MinBoundingRect, error) {
	if len(points) < 2 {
		return MinBoundingRect{}, fmt.Errorf("minimum bounding rectangle of %d points: %w", len(points), ErrInsufficientPoints)
	}

	hull := ConvexHull(points)
	if len(hull) < 2 {
		return MinBoundingRect{}, fmt.Errorf("hull of %d points collapsed to %d: %w", len(points), len(hull), ErrHullComputation)
	}

	// Two collinear points: a zero-height rectangle along the segment, with
	// the endpoints duplicated to fill all 4 corner slots.
	if len(hull) == 2 {
		p1, p2 := hull[0], hull[1]
		width := Distance(p1, p2)
		angle := math.Atan2(p2.Y-p1.Y, p2.X-p1.X)
		return MinBoundingRect{
			Area:         0,
			Width:        width,
			Height:       0,
			AngleDegrees: degrees(angle),
			Center:       Midpoint(p1, p2),
			Corners:      [4]Point{p1, p2, p2, p1},
		}, nil
	}

	best := MinBoundingRect{Area: math.Inf(1)}
	n := len(hull)
	for i := 0; i < n; i++ {
		p1 := hull[i]
		p2 := hull[(i+1)%n]
		edgeAngle := math.Atan2(p2.Y-p1.Y, p2.X-p1.X)

		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, p := range hull {
			r := p.Rotate(-edgeAngle)
			minX = math.Min(minX, r.X)
			maxX = math.Max(maxX, r.X)
			minY = math.Min(minY, r.Y)
			maxY = math.Max(maxY, r.Y)
		}

		width := maxX - minX
		height := maxY - minY
		area := width * height

		if area < best.Area {
			best = MinBoundingRect{
				Area:         area,
				Width:        width,
				Height:       height,
				AngleDegrees: degrees(edgeAngle),
				Center:       Point{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}.Rotate(edgeAngle),
				Corners: [4]Point{
					Point{X: minX, Y: minY}.Rotate(edgeAngle),
					Point{X: maxX, Y: minY}.Rotate(edgeAngle),
					Point{X: maxX, Y: maxY}.Rotate(edgeAngle),
					Point{X: minX, Y: maxY}.Rotate(edgeAngle),
				},
			}
		}
	}

	return best, nil
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
