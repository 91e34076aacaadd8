// Package export writes annotated images out in dataset label formats:
// LabelMe JSON, YOLO detection text and YOLO-OBB/DOTA 8-point text. It only
// serializes shapes the geometry kernel and label package already produced;
// no geometric reasoning happens here beyond bounding-box reduction.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/moonlight-label/moonlight/internal/utils"
	"github.com/moonlight-label/moonlight/pkg/label"
)

// Format selects a dataset label format.
type Format string

const (
	FormatLabelMe Format = "labelme"
	FormatYOLO    Format = "yolo"
	FormatOBB     Format = "obb"
)

// ParseFormat converts a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatLabelMe:
		return FormatLabelMe, nil
	case FormatYOLO:
		return FormatYOLO, nil
	case FormatOBB:
		return FormatOBB, nil
	}
	return "", fmt.Errorf("unknown export format %q", name)
}

// AnnotatedImage is one image together with its shapes, the unit every writer
// consumes.
type AnnotatedImage struct {
	ImagePath string
	Width     int
	Height    int
	Shapes    []label.Shape
}

// Options controls serialization behavior shared across formats.
type Options struct {
	// Normalize divides coordinates by the image size. YOLO output is
	// always normalized; for LabelMe and OBB it is optional.
	Normalize bool
}

// Writer lays label files out under a dataset root:
//
//	root/labels/<split>/<image-stem>.<ext>
//	root/classes.txt
type Writer struct {
	root string
	opts Options
}

// NewWriter creates a writer rooted at the dataset directory.
func NewWriter(root string, opts Options) *Writer {
	return &Writer{root: root, opts: opts}
}

// WriteImage writes the label file for one annotated image into the given
// split ("train", "val", ...).
func (w *Writer) WriteImage(ann AnnotatedImage, format Format, split string) error {
	dir := filepath.Join(w.root, "labels", split)
	if err := utils.EnsureDir(dir); err != nil {
		return fmt.Errorf("failed to create label directory: %w", err)
	}

	stem := utils.ImageStem(ann.ImagePath)
	switch format {
	case FormatLabelMe:
		return WriteLabelMe(filepath.Join(dir, stem+".json"), ann, w.opts)
	case FormatYOLO:
		return WriteYOLO(filepath.Join(dir, stem+".txt"), ann)
	case FormatOBB:
		return WriteOBB(filepath.Join(dir, stem+".txt"), ann, w.opts)
	}
	return fmt.Errorf("unknown export format %q", format)
}

// WriteClasses writes the class list, one name per line ordered by class id.
func (w *Writer) WriteClasses(names []string) error {
	if err := utils.EnsureDir(w.root); err != nil {
		return fmt.Errorf("failed to create dataset root: %w", err)
	}
	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte('\n')
	}
	return os.WriteFile(filepath.Join(w.root, "classes.txt"), []byte(b.String()), 0644)
}

func imageBasename(imagePath string) string {
	return filepath.Base(imagePath)
}
