// Package moonlight provides image annotation primitives: contour tracing of
// binary masks, geometric shape fitting, interactive-style hit testing and
// dataset export.
//
// The package turns segmentation masks (or hand-placed vertices) into labeled
// shapes such as polygons, axis-aligned rectangles and oriented bounding
// boxes, and writes them out in LabelMe, YOLO or OBB form.
//
// Basic usage:
//
//	package main
//
//	import (
//		"log"
//
//		"github.com/moonlight-label/moonlight"
//		"github.com/moonlight-label/moonlight/pkg/export"
//	)
//
//	func main() {
//		ann := moonlight.New()
//
//		// Load a binary mask and fit oriented boxes to its blobs
//		mask, err := ann.LoadImage("mask.png")
//		if err != nil {
//			log.Fatal(err)
//		}
//		shapes, err := ann.ShapesFromMask(mask, 0, "object", moonlight.FitOBB)
//		if err != nil {
//			log.Fatal(err)
//		}
//		for _, s := range shapes {
//			ann.AddShape(s)
//		}
//
//		// Write the annotations next to the source image
//		if err := ann.Export("./dataset", export.FormatLabelMe, "train", "frame.png", 640, 480); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// The package consists of five main components:
//
// 1. Geometry (pkg/geometry): convex hulls, minimum bounding rectangles, areas and hit tests
// 2. Label (pkg/label): shape model, selection, color palette and duplicate filtering
// 3. Contour (pkg/contour): boundary tracing of binary masks
// 4. Export (pkg/export): LabelMe, YOLO and OBB dataset writers
// 5. Processing (pkg/processing): image I/O, overlays and label crops
package moonlight

import (
	"fmt"
	"image"
	"image/color"

	"github.com/moonlight-label/moonlight/pkg/contour"
	"github.com/moonlight-label/moonlight/pkg/export"
	"github.com/moonlight-label/moonlight/pkg/geometry"
	"github.com/moonlight-label/moonlight/pkg/label"
	"github.com/moonlight-label/moonlight/pkg/processing"
)

// Version of the moonlight library
const Version = "1.0.0"

// FitMode selects how a traced contour becomes a shape.
type FitMode string

const (
	// FitPolygon keeps the traced boundary as-is.
	FitPolygon FitMode = "polygon"
	// FitOBB fits a minimum-area rotated rectangle to the contour.
	FitOBB FitMode = "obb"
	// FitRect fits an axis-aligned bounding rectangle to the contour.
	FitRect FitMode = "rect"
)

// ParseFitMode converts a user-supplied name into a FitMode.
func ParseFitMode(name string) (FitMode, error) {
	switch FitMode(name) {
	case FitPolygon, FitOBB, FitRect:
		return FitMode(name), nil
	default:
		return "", fmt.Errorf("unknown fit mode %q (want polygon, obb or rect)", name)
	}
}

// Config bundles the tunables of an Annotator.
type Config struct {
	Contour      contour.Config
	HitTolerance float64
	DedupIoU     float64
	PaletteSeed  int64
	// Normalize divides exported coordinates by the image size where the
	// format supports it.
	Normalize bool
}

// DefaultConfig returns the configuration an Annotator starts with.
func DefaultConfig() Config {
	return Config{
		Contour:      contour.Config{Threshold: 128, MinPoints: 6, MinArea: 16},
		HitTolerance: label.DefaultHitTolerance,
		DedupIoU:     label.DuplicateIoUThreshold,
		PaletteSeed:  0,
	}
}

// Annotator provides a high-level interface for mask tracing, shape
// management and dataset export. It is not safe for concurrent use.
type Annotator struct {
	tracer    *contour.Tracer
	processor *processing.Processor
	selector  *label.Selector
	palette   *label.Palette
	state     *label.SelectionState

	dedupIoU  float64
	normalize bool
	shapes    []label.Shape
}

// New creates a new Annotator with default configuration
func New() *Annotator {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a new Annotator with custom configuration
func NewWithConfig(cfg Config) *Annotator {
	selector := label.NewSelector()
	if cfg.HitTolerance > 0 {
		selector.Tolerance = cfg.HitTolerance
	}
	dedup := cfg.DedupIoU
	if dedup <= 0 {
		dedup = label.DuplicateIoUThreshold
	}
	return &Annotator{
		tracer:    contour.NewWithConfig(cfg.Contour),
		processor: processing.NewProcessor(),
		selector:  selector,
		palette:   label.NewPalette(cfg.PaletteSeed),
		state:     label.NewSelectionState(),
		dedupIoU:  dedup,
		normalize: cfg.Normalize,
	}
}

// LoadImage loads an image or mask from a file path
func (a *Annotator) LoadImage(path string) (image.Image, error) {
	return a.processor.LoadImage(path)
}

// LoadImageSmart loads an image from either a file path or URL
func (a *Annotator) LoadImageSmart(source string) (image.Image, error) {
	return a.processor.LoadImageSmart(source)
}

// SaveImage saves an image with the given format and quality
func (a *Annotator) SaveImage(img image.Image, path, format string, quality int) error {
	return a.processor.SaveImage(img, path, format, quality, false)
}

// ShapesFromMask traces the foreground blobs of a binary mask and fits one
// shape per blob according to mode. Blobs too small or too thin to fit are
// skipped rather than failing the whole mask.
func (a *Annotator) ShapesFromMask(mask image.Image, classID int, className string, mode FitMode) ([]label.Shape, error) {
	contours, err := a.tracer.Trace(mask)
	if err != nil {
		return nil, fmt.Errorf("contour tracing failed: %w", err)
	}

	shapes := make([]label.Shape, 0, len(contours))
	for _, points := range contours {
		s, err := FitShape(points, classID, className, mode)
		if err != nil {
			continue
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}

// FitShape converts an ordered vertex list into a shape according to mode.
func FitShape(points []geometry.Point, classID int, className string, mode FitMode) (label.Shape, error) {
	switch mode {
	case FitPolygon:
		if len(points) < 3 {
			return label.Shape{}, fmt.Errorf("polygon fit needs at least 3 points, got %d", len(points))
		}
		return label.NewPolygon(classID, className, points), nil
	case FitOBB:
		rect, err := geometry.MinimumBoundingRectangle(points)
		if err != nil {
			return label.Shape{}, fmt.Errorf("rotated rectangle fit failed: %w", err)
		}
		return label.NewOBB(classID, className, rect), nil
	case FitRect:
		corners, err := geometry.BoundingRectangle(points)
		if err != nil {
			return label.Shape{}, fmt.Errorf("bounding rectangle fit failed: %w", err)
		}
		cx := (corners[0].X + corners[2].X) / 2
		cy := (corners[0].Y + corners[2].Y) / 2
		return label.NewRectangle(classID, className, cx, cy, corners[2].X-corners[0].X, corners[2].Y-corners[0].Y), nil
	default:
		return label.Shape{}, fmt.Errorf("unknown fit mode %q", mode)
	}
}

// AddShape appends a shape to the working set unless an existing shape of the
// same class already covers it. It reports whether the shape was kept.
func (a *Annotator) AddShape(s label.Shape) bool {
	if label.IsDuplicateWithThreshold(s, a.shapes, a.dedupIoU) {
		return false
	}
	a.shapes = append(a.shapes, s)
	return true
}

// Shapes returns the current working set of shapes.
func (a *Annotator) Shapes() []label.Shape {
	return a.shapes
}

// SetShapes replaces the working set and clears the selection.
func (a *Annotator) SetShapes(shapes []label.Shape) {
	a.shapes = shapes
	a.state = label.NewSelectionState()
}

// RemoveShape deletes the shape at index i, fixing up the selection so it
// keeps pointing at the same shapes.
func (a *Annotator) RemoveShape(i int) error {
	if i < 0 || i >= len(a.shapes) {
		return fmt.Errorf("shape index %d out of range [0,%d)", i, len(a.shapes))
	}
	a.shapes = append(a.shapes[:i], a.shapes[i+1:]...)

	fix := func(idx int) int {
		switch {
		case idx == i:
			return label.None
		case idx > i:
			return idx - 1
		default:
			return idx
		}
	}
	a.state.Hovered = fix(a.state.Hovered)
	a.state.Selected = fix(a.state.Selected)
	return nil
}

// ShapeAt returns the index of the smallest shape containing the point, or
// label.None when nothing is hit.
func (a *Annotator) ShapeAt(x, y float64) int {
	return a.selector.ShapeAt(x, y, a.shapes)
}

// Hover updates the hovered shape for a cursor position and reports whether
// it changed.
func (a *Annotator) Hover(x, y float64) bool {
	return a.selector.Hover(a.state, x, y, a.shapes)
}

// Click updates the selected shape for a click position and reports whether
// it changed.
func (a *Annotator) Click(x, y float64) bool {
	return a.selector.Click(a.state, x, y, a.shapes)
}

// Selection returns the current hover/selection state.
func (a *Annotator) Selection() label.SelectionState {
	return *a.state
}

// Overlay renders the working set's outlines onto a copy of img, one palette
// color per shape.
func (a *Annotator) Overlay(img image.Image) image.Image {
	colors := make([]color.RGBA, len(a.shapes))
	for i := range colors {
		colors[i] = a.palette.Next()
	}
	return a.processor.DrawShapesOverlay(img, a.shapes, colors)
}

// CropShape cuts the bounding box of shape i out of img, for per-label
// thumbnails.
func (a *Annotator) CropShape(img image.Image, i int) (image.Image, error) {
	if i < 0 || i >= len(a.shapes) {
		return nil, fmt.Errorf("shape index %d out of range [0,%d)", i, len(a.shapes))
	}
	return a.processor.CropBox(img, a.shapes[i].BoundingBox())
}

// Export writes the working set as one annotation file under root, using the
// dataset layout root/labels/<split>/.
func (a *Annotator) Export(root string, format export.Format, split, imagePath string, width, height int) error {
	w := export.NewWriter(root, export.Options{Normalize: a.normalize})
	ann := export.AnnotatedImage{
		ImagePath: imagePath,
		Width:     width,
		Height:    height,
		Shapes:    a.shapes,
	}
	return w.WriteImage(ann, format, split)
}

// ProcessMaskFile is a convenience function that loads a mask, fits shapes to
// its blobs, deduplicates them and writes one annotation file for the paired
// image.
func (a *Annotator) ProcessMaskFile(maskPath, imagePath, outDir string, classID int, className string, mode FitMode, format export.Format, split string) (int, error) {
	mask, err := a.LoadImage(maskPath)
	if err != nil {
		return 0, fmt.Errorf("failed to load mask: %w", err)
	}

	shapes, err := a.ShapesFromMask(mask, classID, className, mode)
	if err != nil {
		return 0, err
	}

	kept := 0
	for _, s := range shapes {
		if a.AddShape(s) {
			kept++
		}
	}

	width, height, err := a.processor.ImageSize(imagePath)
	if err != nil {
		// The mask is the same size as its image, so fall back to it.
		b := mask.Bounds()
		width, height = b.Dx(), b.Dy()
	}

	if err := a.Export(outDir, format, split, imagePath, width, height); err != nil {
		return kept, fmt.Errorf("export failed: %w", err)
	}
	return kept, nil
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
