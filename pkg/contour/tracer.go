// Package contour extracts ordered boundary point sequences from segmentation
// mask images. The output point sets feed the geometry kernel: polygon labels
// take them directly, oriented boxes are fitted over them with the minimum
// bounding rectangle.
package contour

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/segment"

	"github.com/moonlight-label/moonlight/pkg/geometry"
)

// Config controls mask binarization and which blobs are kept.
type Config struct {
	// Threshold is the luminance above which a mask pixel counts as
	// foreground.
	Threshold uint8
	// MinPoints drops contours with fewer boundary points.
	MinPoints int
	// MinArea drops blobs with fewer foreground pixels, filtering speckle
	// noise in model-generated masks.
	MinArea int
}

// Tracer converts mask images into per-blob boundary contours.
type Tracer struct {
	config Config
}

// New creates a Tracer with default configuration.
func New() *Tracer {
	return &Tracer{
		config: Config{
			Threshold: 128,
			MinPoints: 6,
			MinArea:   16,
		},
	}
}

// NewWithConfig creates a Tracer with custom configuration.
func NewWithConfig(config Config) *Tracer {
	return &Tracer{config: config}
}

// Moore neighborhood in clockwise order (y-down screen coordinates):
// E, SE, S, SW, W, NW, N, NE.
var neighbors = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

const west = 4

// Trace binarizes the mask and returns the outer boundary of every blob that
// passes the size filters, one ordered point sequence per blob. Blobs are
// 8-connected; boundaries are traced clockwise with Moore neighbor tracing,
// so each contour is an ordered polygon ring suitable for PolygonArea and
// MinimumBoundingRectangle.
func (t *Tracer) Trace(mask image.Image) ([][]geometry.Point, error) {
	bounds := mask.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("mask has empty bounds %v", bounds)
	}

	binary := segment.Threshold(mask, t.config.Threshold)

	foreground := func(x, y int) bool {
		if x < 0 || x >= w || y < 0 || y >= h {
			return false
		}
		return binary.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y > 0
	}

	labels := make([][]int, h)
	for y := range labels {
		labels[y] = make([]int, w)
	}

	var contours [][]geometry.Point
	next := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !foreground(x, y) || labels[y][x] != 0 {
				continue
			}
			next++
			size := floodFill(labels, foreground, x, y, w, h, next)
			if size < t.config.MinArea {
				continue
			}
			// (x, y) is the topmost-leftmost pixel of this blob by scan
			// order, which is the boundary-trace start Moore tracing needs.
			points := traceBoundary(labels, next, x, y, w, h, size)
			if len(points) >= t.config.MinPoints {
				contours = append(contours, points)
			}
		}
	}

	return contours, nil
}

// floodFill labels the 8-connected blob containing (sx, sy) and returns its
// pixel count. Iterative with an explicit stack so large masks cannot blow the
// goroutine stack.
func floodFill(labels [][]int, foreground func(int, int) bool, sx, sy, w, h, id int) int {
	stack := [][2]int{{sx, sy}}
	labels[sy][sx] = id
	size := 0

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		size++

		for _, n := range neighbors {
			nx, ny := p[0]+n[0], p[1]+n[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			if labels[ny][nx] == 0 && foreground(nx, ny) {
				labels[ny][nx] = id
				stack = append(stack, [2]int{nx, ny})
			}
		}
	}

	return size
}

// traceBoundary walks the outer boundary of blob id clockwise starting from
// its topmost-leftmost pixel, using Moore neighbor tracing. Tracing stops when
// the walk re-enters the start pixel; the step limit guards against
// pathological 1px-wide blobs that revisit pixels.
func traceBoundary(labels [][]int, id, sx, sy, w, h, size int) []geometry.Point {
	inBlob := func(x, y int) bool {
		return x >= 0 && x < w && y >= 0 && y < h && labels[y][x] == id
	}

	var points []geometry.Point
	px, py := sx, sy
	// The start pixel has no blob pixel to its west, so the initial
	// backtrack direction is west.
	backDir := west

	limit := 4*size + 8
	for step := 0; step < limit; step++ {
		points = append(points, geometry.Point{X: float64(px), Y: float64(py)})

		found := -1
		prev := backDir
		for i := 1; i <= 8; i++ {
			d := (backDir + i) % 8
			if inBlob(px+neighbors[d][0], py+neighbors[d][1]) {
				found = d
				break
			}
			prev = d
		}
		if found < 0 {
			// Isolated single pixel.
			break
		}

		// The new backtrack points from the next pixel to the last
		// background neighbor examined before it.
		bx := px + neighbors[prev][0]
		by := py + neighbors[prev][1]
		px += neighbors[found][0]
		py += neighbors[found][1]
		backDir = directionIndex(bx-px, by-py)

		if px == sx && py == sy {
			break
		}
	}

	return points
}

func directionIndex(dx, dy int) int {
	for i, n := range neighbors {
		if n[0] == dx && n[1] == dy {
			return i
		}
	}
	return west
}
