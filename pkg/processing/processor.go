package processing

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/moonlight-label/moonlight/pkg/geometry"
	"github.com/moonlight-label/moonlight/pkg/label"
)

// Processor handles image loading, saving, shape overlays and label crops.
type Processor struct{}

// NewProcessor creates a new image processor
func NewProcessor() *Processor {
	return &Processor{}
}

// LoadImageFromURL downloads and loads an image (or mask) from a URL
func (p *Processor) LoadImageFromURL(imageURL string) (image.Image, error) {
	// Validate URL
	parsedURL, err := url.Parse(imageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %v", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme: %s (only http and https are supported)", parsedURL.Scheme)
	}

	// Create HTTP client with timeout
	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	req, err := http.NewRequest("GET", imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("User-Agent", "Moonlight/1.0 (+https://github.com/moonlight-label/moonlight)")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: HTTP %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("URL does not point to an image (Content-Type: %s)", contentType)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %v", err)
	}

	return decodeImageFromBytes(imageData)
}

// LoadImage loads an image from a file path with WebP support
func (p *Processor) LoadImage(path string) (image.Image, error) {
	// Try imaging.Open (registered decoders)
	if img, err := imaging.Open(path); err == nil {
		return img, nil
	}

	// Fallback: explicit WebP decode
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.HasSuffix(strings.ToLower(path), ".webp") {
		if img, err := webp.Decode(f); err == nil {
			return img, nil
		}
	}
	if _, err := f.Seek(0, 0); err == nil {
		if img, _, err := image.Decode(f); err == nil {
			return img, nil
		}
	}
	return nil, fmt.Errorf("image: unknown format for %s", path)
}

// LoadImageSmart loads an image from either a file path or URL
func (p *Processor) LoadImageSmart(source string) (image.Image, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return p.LoadImageFromURL(source)
	}
	return p.LoadImage(source)
}

// ImageSize probes the pixel dimensions of an image file without keeping the
// decoded pixels around. Exporters need the size to normalize coordinates.
func (p *Processor) ImageSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to probe image size of %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

// SaveImage saves an image to a file with the specified format and quality
func (p *Processor) SaveImage(img image.Image, path, format string, quality int, lossless bool) error {
	switch strings.ToLower(format) {
	case "webp":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		opts := &webp.Options{Lossless: lossless, Quality: float32(quality)}
		return webp.Encode(f, img, opts)
	case "png":
		return imaging.Save(img, path)
	default: // jpg/jpeg
		return imaging.Save(img, path, imaging.JPEGQuality(quality))
	}
}

// CropBox crops the pixel-space box out of an image, clamped to the image
// bounds, for per-label thumbnail crops.
func (p *Processor) CropBox(img image.Image, box label.Box) (image.Image, error) {
	bounds := img.Bounds()
	rect := image.Rect(
		int(box.X1+0.5), int(box.Y1+0.5),
		int(box.X2+0.5), int(box.Y2+0.5),
	).Intersect(bounds)
	if rect.Empty() {
		return nil, fmt.Errorf("empty crop rectangle")
	}
	return imaging.Crop(img, rect), nil
}

// DrawShapesOverlay renders shape outlines onto a clone of the image, one
// color per shape, and marks each shape's bounding-box center. Useful to eyeball
// what automated mask tracing produced before committing labels.
func (p *Processor) DrawShapesOverlay(img image.Image, shapes []label.Shape, colors []color.RGBA) image.Image {
	nrgba := imaging.Clone(img)
	w := nrgba.Bounds().Dx()
	h := nrgba.Bounds().Dy()
	cross := int(math.Max(4, 0.01*float64(minInt(w, h)))) // ~1% of min side

	for i, s := range shapes {
		c := color.NRGBA{R: 0, G: 255, B: 0, A: 255}
		if i < len(colors) {
			c = color.NRGBA{R: colors[i].R, G: colors[i].G, B: colors[i].B, A: 255}
		}

		drawOutline(nrgba, s, c)

		box := s.BoundingBox()
		cx := int((box.X1+box.X2)/2 + 0.5)
		cy := int((box.Y1+box.Y2)/2 + 0.5)
		drawHLine(nrgba, cy, cx-cross, cx+cross, c)
		drawVLine(nrgba, cx, cy-cross, cy+cross, c)
	}

	return nrgba
}

func drawOutline(img *image.NRGBA, s label.Shape, c color.NRGBA) {
	switch s.Type {
	case label.TypeRectangle:
		drawRing(img, s.RectCorners(), c)
	case label.TypeOBB:
		drawRing(img, s.Corners, c)
	case label.TypePolygon:
		drawRing(img, s.Points, c)
	case label.TypeLine:
		if len(s.Points) >= 2 {
			drawLine(img, s.Points[0], s.Points[1], c)
		}
	case label.TypeCircle:
		// Polygonal approximation is plenty for an overlay.
		const segments = 48
		ring := make([]geometry.Point, segments)
		for i := range ring {
			a := 2 * math.Pi * float64(i) / segments
			ring[i] = geometry.Point{
				X: s.Center.X + s.Radius*math.Cos(a),
				Y: s.Center.Y + s.Radius*math.Sin(a),
			}
		}
		drawRing(img, ring, c)
	case label.TypePoint:
		x, y := int(s.Center.X+0.5), int(s.Center.Y+0.5)
		drawHLine(img, y, x-3, x+3, c)
		drawVLine(img, x, y-3, y+3, c)
	}
}

func drawRing(img *image.NRGBA, points []geometry.Point, c color.NRGBA) {
	n := len(points)
	if n < 2 {
		return
	}
	for i := 0; i < n; i++ {
		drawLine(img, points[i], points[(i+1)%n], c)
	}
}

// drawLine plots an arbitrary segment with the integer Bresenham walk.
func drawLine(img *image.NRGBA, a, b geometry.Point, c color.NRGBA) {
	x0, y0 := int(a.X+0.5), int(a.Y+0.5)
	x1, y1 := int(b.X+0.5), int(b.Y+0.5)

	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		setPixel(img, x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func drawHLine(img *image.NRGBA, y, x0, x1 int, c color.NRGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		setPixel(img, x, y, c)
	}
}

func drawVLine(img *image.NRGBA, x, y0, y1 int, c color.NRGBA) {
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		setPixel(img, x, y, c)
	}
}

func setPixel(img *image.NRGBA, x, y int, c color.NRGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetNRGBA(x, y, c)
	}
}

func decodeImageFromBytes(data []byte) (image.Image, error) {
	if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	if img, err := webp.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	return nil, fmt.Errorf("failed to decode image data")
}

// Helper functions
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
