package label

import (
	"gonum.org/v1/gonum/stat"
)

// DuplicateIoUThreshold is the bounding-box overlap above which an
// auto-generated shape is considered a duplicate of an existing one.
const DuplicateIoUThreshold = 0.5

// IsDuplicate reports whether candidate overlaps any existing shape with an
// axis-aligned bounding-box IoU of at least DuplicateIoUThreshold. Automated
// annotators run masks through this before adding shapes, so re-running a
// model over the same image does not pile up identical labels.
func IsDuplicate(candidate Shape, existing []Shape) bool {
	return IsDuplicateWithThreshold(candidate, existing, DuplicateIoUThreshold)
}

// IsDuplicateWithThreshold is IsDuplicate with an explicit IoU threshold.
func IsDuplicateWithThreshold(candidate Shape, existing []Shape, threshold float64) bool {
	box := candidate.BoundingBox()
	for _, s := range existing {
		if box.IoU(s.BoundingBox()) >= threshold {
			return true
		}
	}
	return false
}

// FilterAreaOutliers removes shapes whose area deviates from the batch mean by
// more than k standard deviations. Automated mask tracing occasionally emits a
// handful of speckle blobs next to the real object; cutting on the area
// distribution drops them without a hand-tuned pixel threshold.
//
// Batches of fewer than 3 shapes are returned unchanged; there is no
// distribution to cut on.
func FilterAreaOutliers(shapes []Shape, k float64) []Shape {
	if len(shapes) < 3 || k <= 0 {
		return shapes
	}

	areas := make([]float64, len(shapes))
	for i, s := range shapes {
		areas[i] = s.Area()
	}

	mean, std := stat.MeanStdDev(areas, nil)
	if std == 0 {
		return shapes
	}

	kept := make([]Shape, 0, len(shapes))
	for i, s := range shapes {
		if areas[i] >= mean-k*std && areas[i] <= mean+k*std {
			kept = append(kept, s)
		}
	}
	return kept
}

// FilterMinArea removes region shapes smaller than minArea square pixels.
// Zero-area shape kinds (points, lines) always pass.
func FilterMinArea(shapes []Shape, minArea float64) []Shape {
	if minArea <= 0 {
		return shapes
	}
	kept := make([]Shape, 0, len(shapes))
	for _, s := range shapes {
		if s.Type == TypePoint || s.Type == TypeLine || s.Area() >= minArea {
			kept = append(kept, s)
		}
	}
	return kept
}
