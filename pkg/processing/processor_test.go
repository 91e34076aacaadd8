package processing

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/moonlight-label/moonlight/pkg/geometry"
	"github.com/moonlight-label/moonlight/pkg/label"
)

func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 30, G: 30, B: 30, A: 255})
		}
	}
	return img
}

func TestSaveAndLoadImage(t *testing.T) {
	p := NewProcessor()
	dir := t.TempDir()

	src := createTestImage(64, 48)
	path := filepath.Join(dir, "frame.png")
	if err := p.SaveImage(src, path, "png", 92, false); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	loaded, err := p.LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	b := loaded.Bounds()
	if b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("loaded image is %dx%d, want 64x48", b.Dx(), b.Dy())
	}
}

func TestImageSize(t *testing.T) {
	p := NewProcessor()
	dir := t.TempDir()

	path := filepath.Join(dir, "probe.png")
	if err := p.SaveImage(createTestImage(120, 80), path, "png", 92, false); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	w, h, err := p.ImageSize(path)
	if err != nil {
		t.Fatalf("ImageSize failed: %v", err)
	}
	if w != 120 || h != 80 {
		t.Errorf("ImageSize = %dx%d, want 120x80", w, h)
	}
}

func TestImageSizeMissingFile(t *testing.T) {
	p := NewProcessor()
	if _, _, err := p.ImageSize("/nonexistent/frame.png"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCropBox(t *testing.T) {
	p := NewProcessor()
	img := createTestImage(100, 100)

	crop, err := p.CropBox(img, label.Box{X1: 10, Y1: 20, X2: 40, Y2: 50})
	if err != nil {
		t.Fatalf("CropBox failed: %v", err)
	}
	b := crop.Bounds()
	if b.Dx() != 30 || b.Dy() != 30 {
		t.Errorf("crop is %dx%d, want 30x30", b.Dx(), b.Dy())
	}
}

func TestCropBoxClampsToImage(t *testing.T) {
	p := NewProcessor()
	img := createTestImage(50, 50)

	crop, err := p.CropBox(img, label.Box{X1: 40, Y1: 40, X2: 90, Y2: 90})
	if err != nil {
		t.Fatalf("CropBox failed: %v", err)
	}
	b := crop.Bounds()
	if b.Dx() != 10 || b.Dy() != 10 {
		t.Errorf("clamped crop is %dx%d, want 10x10", b.Dx(), b.Dy())
	}
}

func TestCropBoxOutsideImage(t *testing.T) {
	p := NewProcessor()
	img := createTestImage(50, 50)

	if _, err := p.CropBox(img, label.Box{X1: 100, Y1: 100, X2: 120, Y2: 120}); err == nil {
		t.Error("expected error for crop outside image bounds")
	}
}

func TestDrawShapesOverlay(t *testing.T) {
	p := NewProcessor()
	img := createTestImage(100, 100)

	shapes := []label.Shape{
		label.NewRectangle(0, "box", 50, 50, 40, 30),
	}
	colors := []color.RGBA{{R: 255, G: 0, B: 0, A: 255}}

	overlay := p.DrawShapesOverlay(img, shapes, colors)
	b := overlay.Bounds()
	if b.Dx() != 100 || b.Dy() != 100 {
		t.Fatalf("overlay is %dx%d, want 100x100", b.Dx(), b.Dy())
	}

	// Top edge of the rectangle runs along y=35 from x=30 to x=70.
	r, g, bl, _ := overlay.At(50, 35).RGBA()
	if r>>8 != 255 || g>>8 != 0 || bl>>8 != 0 {
		t.Errorf("edge pixel = (%d,%d,%d), want (255,0,0)", r>>8, g>>8, bl>>8)
	}

	// A pixel well inside the rectangle stays untouched.
	r, g, bl, _ = overlay.At(50, 45).RGBA()
	if r>>8 != 30 || g>>8 != 30 || bl>>8 != 30 {
		t.Errorf("interior pixel = (%d,%d,%d), want (30,30,30)", r>>8, g>>8, bl>>8)
	}
}

func TestDrawShapesOverlayPolygon(t *testing.T) {
	p := NewProcessor()
	img := createTestImage(60, 60)

	poly := label.NewPolygon(1, "tri", []geometry.Point{
		{X: 10, Y: 10}, {X: 50, Y: 10}, {X: 30, Y: 40},
	})
	overlay := p.DrawShapesOverlay(img, []label.Shape{poly}, nil)

	// Default outline color is green when no palette is supplied.
	_, g, _, _ := overlay.At(30, 10).RGBA()
	if g>>8 != 255 {
		t.Errorf("polygon edge pixel green = %d, want 255", g>>8)
	}
}

func TestDrawShapesOverlayDoesNotMutateSource(t *testing.T) {
	p := NewProcessor()
	img := createTestImage(40, 40)

	shape := label.NewRectangle(0, "box", 20, 20, 20, 20)
	_ = p.DrawShapesOverlay(img, []label.Shape{shape}, nil)

	r, g, b, _ := img.At(20, 10).RGBA()
	if r>>8 != 30 || g>>8 != 30 || b>>8 != 30 {
		t.Error("overlay rendering mutated the source image")
	}
}
