package moonlight

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/moonlight-label/moonlight/pkg/export"
	"github.com/moonlight-label/moonlight/pkg/geometry"
	"github.com/moonlight-label/moonlight/pkg/label"
)

func createMask(width, height int, rects []image.Rectangle) image.Image {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for _, r := range rects {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

func TestParseFitMode(t *testing.T) {
	tests := []struct {
		name    string
		want    FitMode
		wantErr bool
	}{
		{"polygon", FitPolygon, false},
		{"obb", FitOBB, false},
		{"rect", FitRect, false},
		{"circle", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFitMode(tt.name)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFitMode(%q) expected error", tt.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFitMode(%q) failed: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFitMode(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestFitShape(t *testing.T) {
	square := []geometry.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	}

	poly, err := FitShape(square, 1, "box", FitPolygon)
	if err != nil {
		t.Fatalf("polygon fit failed: %v", err)
	}
	if poly.Type != label.TypePolygon || len(poly.Points) != 4 {
		t.Errorf("polygon fit produced %s with %d points", poly.Type, len(poly.Points))
	}

	rect, err := FitShape(square, 1, "box", FitRect)
	if err != nil {
		t.Fatalf("rect fit failed: %v", err)
	}
	if rect.Type != label.TypeRectangle {
		t.Errorf("rect fit produced %s", rect.Type)
	}
	if rect.Center.X != 5 || rect.Center.Y != 5 || rect.Width != 10 || rect.Height != 10 {
		t.Errorf("rect fit = center (%v,%v) size %vx%v, want center (5,5) size 10x10",
			rect.Center.X, rect.Center.Y, rect.Width, rect.Height)
	}

	obb, err := FitShape(square, 1, "box", FitOBB)
	if err != nil {
		t.Fatalf("obb fit failed: %v", err)
	}
	if obb.Type != label.TypeOBB || len(obb.Corners) != 4 {
		t.Errorf("obb fit produced %s with %d corners", obb.Type, len(obb.Corners))
	}
	if diff := obb.Area() - 100; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("obb area = %v, want 100", obb.Area())
	}
}

func TestFitShapeTooFewPoints(t *testing.T) {
	two := []geometry.Point{{X: 0, Y: 0}, {X: 5, Y: 5}}
	if _, err := FitShape(two, 0, "x", FitPolygon); err == nil {
		t.Error("expected error fitting polygon to 2 points")
	}
	if _, err := FitShape(nil, 0, "x", FitRect); err == nil {
		t.Error("expected error fitting rect to no points")
	}
}

func TestAddShapeDeduplicates(t *testing.T) {
	ann := New()

	first := label.NewRectangle(0, "car", 50, 50, 40, 40)
	if !ann.AddShape(first) {
		t.Fatal("first shape should be kept")
	}

	// Nearly identical box: IoU well above the duplicate threshold.
	dup := label.NewRectangle(0, "car", 51, 51, 40, 40)
	if ann.AddShape(dup) {
		t.Error("near-identical shape should be rejected as duplicate")
	}

	// Disjoint box is kept.
	other := label.NewRectangle(0, "car", 200, 200, 40, 40)
	if !ann.AddShape(other) {
		t.Error("disjoint shape should be kept")
	}

	if len(ann.Shapes()) != 2 {
		t.Errorf("working set has %d shapes, want 2", len(ann.Shapes()))
	}
}

func TestRemoveShapeFixesSelection(t *testing.T) {
	ann := New()
	ann.SetShapes([]label.Shape{
		label.NewRectangle(0, "a", 10, 10, 10, 10),
		label.NewRectangle(1, "b", 50, 50, 10, 10),
		label.NewRectangle(2, "c", 90, 90, 10, 10),
	})

	ann.Click(90, 90) // select index 2
	if ann.Selection().Selected != 2 {
		t.Fatalf("selected = %d, want 2", ann.Selection().Selected)
	}

	if err := ann.RemoveShape(1); err != nil {
		t.Fatalf("RemoveShape failed: %v", err)
	}
	if ann.Selection().Selected != 1 {
		t.Errorf("selected = %d after removal, want 1", ann.Selection().Selected)
	}

	if err := ann.RemoveShape(1); err != nil {
		t.Fatalf("RemoveShape failed: %v", err)
	}
	if ann.Selection().Selected != label.None {
		t.Errorf("selected = %d after removing selected shape, want None", ann.Selection().Selected)
	}

	if err := ann.RemoveShape(5); err == nil {
		t.Error("expected error removing out-of-range index")
	}
}

func TestHoverAndClick(t *testing.T) {
	ann := New()
	ann.SetShapes([]label.Shape{
		label.NewRectangle(0, "big", 50, 50, 80, 80),
		label.NewRectangle(1, "small", 50, 50, 20, 20),
	})

	// Inside both: the smaller shape wins.
	if idx := ann.ShapeAt(50, 50); idx != 1 {
		t.Errorf("ShapeAt(50,50) = %d, want 1", idx)
	}
	// Inside only the big one.
	if idx := ann.ShapeAt(15, 15); idx != 0 {
		t.Errorf("ShapeAt(15,15) = %d, want 0", idx)
	}

	if !ann.Hover(50, 50) {
		t.Error("first hover should report a change")
	}
	if ann.Hover(51, 50) {
		t.Error("hovering the same shape should not report a change")
	}

	if !ann.Click(15, 15) {
		t.Error("click on a shape should report a change")
	}
	if ann.Selection().Selected != 0 {
		t.Errorf("selected = %d, want 0", ann.Selection().Selected)
	}

	// Clicking empty space clears the selection.
	if !ann.Click(500, 500) {
		t.Error("click on empty space should report a change")
	}
	if ann.Selection().Selected != label.None {
		t.Errorf("selected = %d, want None", ann.Selection().Selected)
	}
}

func TestShapesFromMask(t *testing.T) {
	ann := New()
	mask := createMask(80, 60, []image.Rectangle{
		image.Rect(10, 10, 30, 25),
		image.Rect(50, 30, 70, 50),
	})

	shapes, err := ann.ShapesFromMask(mask, 3, "cell", FitRect)
	if err != nil {
		t.Fatalf("ShapesFromMask failed: %v", err)
	}
	if len(shapes) != 2 {
		t.Fatalf("got %d shapes, want 2", len(shapes))
	}
	for _, s := range shapes {
		if s.Type != label.TypeRectangle {
			t.Errorf("shape type = %s, want rectangle", s.Type)
		}
		if s.ClassID != 3 || s.ClassName != "cell" {
			t.Errorf("shape class = %d %q, want 3 %q", s.ClassID, s.ClassName, "cell")
		}
	}

	// The first blob spans x 10..29, y 10..24 in pixel coordinates.
	first := shapes[0]
	if first.Width != 19 || first.Height != 14 {
		t.Errorf("first blob fit is %vx%v, want 19x14", first.Width, first.Height)
	}
}

func TestProcessMaskFile(t *testing.T) {
	dir := t.TempDir()

	maskPath := filepath.Join(dir, "frame_mask.png")
	f, err := os.Create(maskPath)
	if err != nil {
		t.Fatalf("failed to create mask file: %v", err)
	}
	mask := createMask(64, 48, []image.Rectangle{image.Rect(8, 8, 40, 32)})
	if err := png.Encode(f, mask); err != nil {
		t.Fatalf("failed to encode mask: %v", err)
	}
	f.Close()

	ann := New()
	outDir := filepath.Join(dir, "dataset")
	kept, err := ann.ProcessMaskFile(maskPath, "frame.png", outDir, 0, "object", FitOBB, export.FormatLabelMe, "train")
	if err != nil {
		t.Fatalf("ProcessMaskFile failed: %v", err)
	}
	if kept != 1 {
		t.Errorf("kept %d shapes, want 1", kept)
	}

	labelPath := filepath.Join(outDir, "labels", "train", "frame.json")
	if _, err := os.Stat(labelPath); err != nil {
		t.Errorf("label file not written: %v", err)
	}
}

func TestOverlayAndCrop(t *testing.T) {
	ann := New()
	ann.SetShapes([]label.Shape{label.NewRectangle(0, "box", 30, 30, 20, 20)})

	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	overlay := ann.Overlay(img)
	if overlay.Bounds().Dx() != 60 || overlay.Bounds().Dy() != 60 {
		t.Errorf("overlay bounds = %v", overlay.Bounds())
	}

	crop, err := ann.CropShape(img, 0)
	if err != nil {
		t.Fatalf("CropShape failed: %v", err)
	}
	if crop.Bounds().Dx() != 20 || crop.Bounds().Dy() != 20 {
		t.Errorf("crop is %dx%d, want 20x20", crop.Bounds().Dx(), crop.Bounds().Dy())
	}

	if _, err := ann.CropShape(img, 3); err == nil {
		t.Error("expected error cropping out-of-range index")
	}
}
