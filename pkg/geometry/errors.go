package geometry

import "errors"

// Sentinel errors for point-count preconditions. All are local, synchronous
// conditions the caller can recover from; none are fatal.
var (
	// ErrInsufficientPoints is returned by MinimumBoundingRectangle when
	// fewer than 2 points are supplied.
	ErrInsufficientPoints = errors.New("at least 2 points are required")

	// ErrInsufficientVertices is returned by BoundingRectangle when fewer
	// than 3 vertices are supplied.
	ErrInsufficientVertices = errors.New("at least 3 vertices are required")

	// ErrHullComputation is returned when a convex hull degenerates below
	// 2 points.
	ErrHullComputation = errors.New("convex hull computation failed")
)
