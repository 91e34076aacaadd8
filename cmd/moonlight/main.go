package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/moonlight-label/moonlight"
	"github.com/moonlight-label/moonlight/internal/config"
	"github.com/moonlight-label/moonlight/internal/utils"
	"github.com/moonlight-label/moonlight/pkg/contour"
	"github.com/moonlight-label/moonlight/pkg/export"
)

func main() {
	var mask, masks, image, out string
	var formatName, fitName, split string
	var className string
	var classID int
	var normalize bool
	var overlay bool
	var configPath string

	// Overlay format (separate from label format)
	var ovext string
	var ovquality int

	flag.StringVar(&mask, "mask", "", "single binary mask image (png/jpg/webp)")
	flag.StringVar(&masks, "masks", "", "directory of binary mask images")
	flag.StringVar(&image, "image", "", "source image the mask belongs to (single-mask mode)")
	flag.StringVar(&out, "out", "", "dataset output directory (default from config)")

	flag.StringVar(&formatName, "format", "", "label format: labelme|yolo|obb (default from config)")
	flag.StringVar(&fitName, "fit", "obb", "shape fit for traced blobs: polygon|obb|rect")
	flag.StringVar(&split, "split", "train", "dataset split to write into")
	flag.IntVar(&classID, "class", 0, "class id for traced shapes")
	flag.StringVar(&className, "name", "object", "class name for traced shapes")
	flag.BoolVar(&normalize, "normalize", false, "normalize exported coordinates to [0,1]")

	flag.BoolVar(&overlay, "overlay", false, "write outline overlay images next to the labels")
	flag.StringVar(&ovext, "ovext", "", "overlay format: png|jpg|webp (default from config)")
	flag.IntVar(&ovquality, "ovquality", 0, "overlay quality for jpg/webp (default from config)")

	flag.StringVar(&configPath, "config", "", "config file path (default: "+config.GetConfigPath()+")")

	flag.Parse()
	if mask == "" && masks == "" {
		log.Fatalf("usage: %s -mask mask.png -image frame.png [-fit polygon|obb|rect] [-format labelme|yolo|obb] [-out dir]", filepath.Base(os.Args[0]))
	}
	if mask != "" && masks != "" {
		log.Fatal("use either -mask or -masks, not both")
	}

	cfg := loadConfig(configPath)
	if out == "" {
		out = cfg.Output.Dir
	}
	if formatName == "" {
		formatName = cfg.Export.Format
	}
	if ovext == "" {
		ovext = cfg.Output.OverlayFormat
	}
	if ovquality == 0 {
		ovquality = cfg.Output.OverlayQuality
	}

	format, err := export.ParseFormat(formatName)
	if err != nil {
		log.Fatal(err)
	}
	fit, err := moonlight.ParseFitMode(fitName)
	if err != nil {
		log.Fatal(err)
	}
	normalize = normalize || cfg.Export.Normalize

	// Collect the mask/image pairs to process
	type job struct{ maskPath, imagePath string }
	var jobs []job
	if mask != "" {
		imagePath := image
		if imagePath == "" {
			imagePath = pairedImagePath(mask)
		}
		jobs = append(jobs, job{mask, imagePath})
	} else {
		files, err := utils.ListImageFiles(masks)
		if err != nil {
			log.Fatalf("failed to list masks in %s: %v", masks, err)
		}
		for _, f := range files {
			jobs = append(jobs, job{f, pairedImagePath(f)})
		}
	}
	if len(jobs) == 0 {
		log.Fatal("no mask images found")
	}

	for _, j := range jobs {
		ann := moonlight.NewWithConfig(moonlight.Config{
			Contour: contour.Config{
				Threshold: uint8(cfg.Contour.Threshold),
				MinPoints: cfg.Contour.MinPoints,
				MinArea:   cfg.Contour.MinArea,
			},
			HitTolerance: cfg.Selection.HitTolerance,
			Normalize:    normalize,
		})

		kept, err := ann.ProcessMaskFile(j.maskPath, j.imagePath, out, classID, className, fit, format, split)
		if err != nil {
			log.Printf("%s: %v", j.maskPath, err)
			continue
		}
		log.Printf("%s: %d shape(s) -> %s labels", j.maskPath, kept, format)

		if overlay {
			writeOverlay(ann, j.maskPath, j.imagePath, out, ovext, ovquality)
		}
	}
}

// pairedImagePath guesses the source image for a mask named like
// frame_mask.png or frame.mask.png.
func pairedImagePath(maskPath string) string {
	stem := utils.ImageStem(maskPath)
	stem = strings.TrimSuffix(stem, "_mask")
	stem = strings.TrimSuffix(stem, ".mask")
	return filepath.Join(filepath.Dir(maskPath), stem+"."+utils.GetFileExtension(maskPath))
}

func writeOverlay(ann *moonlight.Annotator, maskPath, imagePath, out, ovext string, ovquality int) {
	base, err := ann.LoadImage(imagePath)
	if err != nil {
		// No source image on disk: draw over the mask instead.
		base, err = ann.LoadImage(maskPath)
		if err != nil {
			log.Printf("overlay base load failed: %v", err)
			return
		}
	}

	dir := filepath.Join(out, "overlays")
	if err := utils.EnsureDir(dir); err != nil {
		log.Printf("overlay dir: %v", err)
		return
	}
	path := filepath.Join(dir, fmt.Sprintf("%s.%s", utils.ImageStem(imagePath), strings.ToLower(ovext)))
	if err := ann.SaveImage(ann.Overlay(base), path, ovext, ovquality); err != nil {
		log.Printf("overlay save %s failed: %v", path, err)
	} else {
		log.Printf("wrote %s", path)
	}
}

func loadConfig(path string) *config.Config {
	if path == "" {
		path = config.GetConfigPath()
		if !utils.FileExists(path) {
			return config.Default()
		}
	}
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		log.Fatalf("failed to load config %s: %v", path, err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config %s: %v", path, err)
	}
	return cfg
}
