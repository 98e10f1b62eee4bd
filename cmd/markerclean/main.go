// Command markerclean is a thin CLI over the markerclean engine: load an
// image, optionally load caller-supplied boxes and a calibration override
// file, clean it, and write the result.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"

	markerclean "github.com/markerclean/engine"
	"github.com/markerclean/engine/internal/calibration"
	"github.com/markerclean/engine/internal/codec"
	"github.com/markerclean/engine/internal/debugrender"
	"github.com/markerclean/engine/internal/geometry"
	"github.com/markerclean/engine/internal/rawbox"
	"github.com/markerclean/engine/internal/selfupdate"
)

// version is set at release time; update.go's detection logic treats any
// value that fails semver parsing as "always offer the latest".
const version = "0.1.0"

func main() {
	var (
		inputPath  = flag.String("in", "", "input image path (JPEG/PNG/WEBP)")
		outputPath = flag.String("out", "", "output image path")
		boxesPath  = flag.String("boxes", "", "optional path to a JSON array of raw AI-style boxes")
		configPath = flag.String("config", "", "optional .env-style calibration override file")
		debugPath  = flag.String("debug-overlay", "", "optional path to write a debug overlay PNG showing detected boxes")
		doUpdate   = flag.Bool("update", false, "check GitHub for a newer release and install it")
		batchDir   = flag.String("batch", "", "demo flag: directory of images to clean in parallel, writing results to -out")
	)
	flag.Parse()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	if *doUpdate {
		err := selfupdate.Check(version, func(latest string) bool {
			fmt.Printf("update to %s? [y/N] ", latest)
			var answer string
			fmt.Scanln(&answer)
			return answer == "y" || answer == "yes"
		})
		if err != nil {
			logger.Error("update check failed", "err", err)
			os.Exit(1)
		}
		return
	}

	if *batchDir == "" && (*inputPath == "" || *outputPath == "") {
		fmt.Fprintln(os.Stderr, "usage: markerclean -in <path> -out <path> [-boxes <path>] [-config <path>] [-debug-overlay <path>]")
		fmt.Fprintln(os.Stderr, "   or: markerclean -batch <input dir> -out <output dir> [-config <path>]")
		os.Exit(2)
	}

	cal := calibration.Default()
	if *configPath != "" {
		loaded, err := calibration.LoadOverrides(*configPath)
		if err != nil {
			logger.Error("loading calibration overrides", "err", err)
			os.Exit(1)
		}
		cal = loaded
	}

	if *batchDir != "" {
		if err := runBatch(*batchDir, *outputPath, cal, logger); err != nil {
			logger.Error("batch run failed", "err", err)
			os.Exit(1)
		}
		return
	}

	var boxes []geometry.NormBox
	if *boxesPath != "" {
		var err error
		boxes, err = loadRawBoxes(*boxesPath)
		if err != nil {
			logger.Error("loading boxes", "err", err)
			os.Exit(1)
		}
	}

	image, err := os.ReadFile(*inputPath)
	if err != nil {
		logger.Error("reading input image", "err", err)
		os.Exit(1)
	}

	start := time.Now()
	out, stats, err := markerclean.Clean(context.Background(), image, boxes, markerclean.Options{Calibration: cal})
	if err != nil {
		logger.Error("clean failed", "err", err)
		os.Exit(1)
	}
	stats.DurationMs = time.Since(start).Milliseconds()

	if err := os.WriteFile(*outputPath, out, 0o644); err != nil {
		logger.Error("writing output image", "err", err)
		os.Exit(1)
	}

	logger.Info("cleaned image",
		"changedPixels", stats.ChangedPixels,
		"fallbackPixels", stats.FallbackPixels,
		"totalPixels", stats.TotalPixels,
		"complexScene", stats.ComplexScene,
		"textureScore", stats.TextureScore,
		"durationMs", stats.DurationMs,
	)
	if *debugPath != "" {
		if err := writeDebugOverlay(image, boxes, *debugPath); err != nil {
			logger.Warn("debug overlay failed", "err", err)
		}
	}
}

// runBatch cleans every image in dir, in parallel, writing each result to
// outDir under its original filename. It is a demo of internal/codec's
// batch helper: none of it runs inside a single Clean call, only across
// the independent images this flag hands it.
func runBatch(dir, outDir string, cal calibration.Table, logger *slog.Logger) error {
	if outDir == "" {
		return fmt.Errorf("-out must name an output directory when -batch is set")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if !e.IsDir() {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	if len(paths) == 0 {
		logger.Warn("no files found in batch directory", "dir", dir)
		return nil
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}

	results, errs := codec.BatchProcess(paths, func(path string) ([]byte, error) {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		out, _, err := markerclean.Clean(context.Background(), raw, nil, markerclean.Options{Calibration: cal})
		if err != nil {
			return nil, fmt.Errorf("cleaning %s: %w", path, err)
		}
		return out, nil
	})

	var failures int
	for i, path := range paths {
		if errs[i] != nil {
			logger.Error("batch item failed", "path", path, "err", errs[i])
			failures++
			continue
		}
		dest := filepath.Join(outDir, filepath.Base(path))
		if err := os.WriteFile(dest, results[i], 0o644); err != nil {
			logger.Error("writing batch output", "path", dest, "err", err)
			failures++
			continue
		}
		logger.Info("cleaned batch item", "path", path, "out", dest)
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d batch items failed", failures, len(paths))
	}
	return nil
}

// loadRawBoxes parses a JSON array of raw AI-style box entries (any mix of
// [xmin,ymin,xmax,ymax], {bbox_2d:[...]}, or {xmin:[...],...} encodings) via
// internal/rawbox, discarding entries that fail to validate.
func loadRawBoxes(path string) ([]geometry.NormBox, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s as a JSON array: %w", path, err)
	}
	var boxes []geometry.NormBox
	for _, entry := range raw {
		if box, ok := rawbox.ParseAny(entry); ok {
			boxes = append(boxes, box)
		}
	}
	return boxes, nil
}

// writeDebugOverlay re-decodes the original image and draws each caller box
// (in original pixel coordinates) as a red outline with an index label,
// writing the result as a PNG regardless of the input's original format.
func writeDebugOverlay(image []byte, boxes []geometry.NormBox, outPath string) error {
	buf, _, err := codec.Decode(image)
	if err != nil {
		return fmt.Errorf("decoding for overlay: %w", err)
	}
	rects := make([]geometry.PixRect, len(boxes))
	for i, b := range boxes {
		rects[i] = b.ToPixRect(buf.W, buf.H)
	}
	overlay := debugrender.Overlay(buf.ToNRGBA(), rects, color.NRGBA{R: 255, A: 255})

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer f.Close()
	return png.Encode(f, overlay)
}
