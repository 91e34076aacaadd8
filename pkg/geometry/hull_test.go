package geometry

import (
	"testing"
)

func TestConvexHullSquareWithInteriorPoint(t *testing.T) {
	points := []Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {2, 2}}
	hull := ConvexHull(points)

	if len(hull) != 4 {
		t.Fatalf("hull has %d points, want 4: %v", len(hull), hull)
	}
	if hull[0] != (Point{0, 0}) {
		t.Errorf("hull starts at %v, want leftmost (0,0)", hull[0])
	}
	for _, p := range []Point{{2, 2}} {
		for _, h := range hull {
			if h == p {
				t.Errorf("interior point %v appears on hull", p)
			}
		}
	}
}

func TestConvexHullContainment(t *testing.T) {
	points := []Point{
		{1, 3}, {5, 1}, {7, 4}, {6, 8}, {2, 7}, {4, 4}, {3, 5}, {5, 5},
	}
	hull := ConvexHull(points)

	if len(hull) < 3 {
		t.Fatalf("hull has %d points, want >= 3", len(hull))
	}

	// Every input point must lie on or inside the hull polygon. Nudge the
	// query inward slightly so points sitting exactly on a hull edge don't
	// trip the implementation-defined boundary behavior of the ray cast.
	cx, cy := 0.0, 0.0
	for _, h := range hull {
		cx += h.X
		cy += h.Y
	}
	cx /= float64(len(hull))
	cy /= float64(len(hull))

	for _, p := range points {
		qx := p.X + (cx-p.X)*1e-6
		qy := p.Y + (cy-p.Y)*1e-6
		if !PointInPolygon(qx, qy, hull) {
			t.Errorf("point %v lies outside its own hull %v", p, hull)
		}
	}
}

func TestConvexHullIsConvex(t *testing.T) {
	points := []Point{
		{0, 0}, {10, 0}, {10, 10}, {0, 10}, {5, 5}, {3, 8}, {7, 2}, {1, 1},
	}
	hull := ConvexHull(points)

	// Counter-clockwise hull in y-down coordinates: no right turns.
	n := len(hull)
	for i := 0; i < n; i++ {
		c := Cross(hull[i], hull[(i+1)%n], hull[(i+2)%n])
		if c < 0 {
			t.Errorf("right turn at hull index %d (cross %v), hull not convex: %v", i, c, hull)
		}
	}
}

func TestConvexHullCollinearKeepsFarthest(t *testing.T) {
	points := []Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {3, 3}, {0, 3}}
	hull := ConvexHull(points)

	for _, h := range hull {
		if h == (Point{1, 0}) || h == (Point{2, 0}) {
			t.Errorf("collinear interior point %v kept on hull %v", h, hull)
		}
	}
}

func TestConvexHullFewerThanThreePoints(t *testing.T) {
	points := []Point{{1, 2}, {3, 4}}
	hull := ConvexHull(points)

	if len(hull) != 2 || hull[0] != points[0] || hull[1] != points[1] {
		t.Errorf("hull of 2 points = %v, want input unchanged", hull)
	}

	// Must be a copy, not an alias.
	hull[0] = Point{9, 9}
	if points[0] != (Point{1, 2}) {
		t.Error("ConvexHull aliased its input slice")
	}
}

func TestConvexHullAllPointsIdentical(t *testing.T) {
	points := []Point{{2, 2}, {2, 2}, {2, 2}, {2, 2}}

	// Must terminate and return a non-empty hull.
	hull := ConvexHull(points)
	if len(hull) == 0 {
		t.Fatal("hull of identical points is empty")
	}
	if hull[0] != (Point{2, 2}) {
		t.Errorf("hull of identical points starts at %v, want (2,2)", hull[0])
	}
}

func TestConvexHullCollinearPoints(t *testing.T) {
	points := []Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}}

	hull := ConvexHull(points)
	if len(hull) == 0 {
		t.Fatal("hull of collinear points is empty")
	}
}
