package markerclean

import (
	"context"

	"github.com/markerclean/engine/internal/boxes"
	"github.com/markerclean/engine/internal/calibration"
	"github.com/markerclean/engine/internal/codec"
	"github.com/markerclean/engine/internal/geometry"
	"github.com/markerclean/engine/internal/inpaint"
	"github.com/markerclean/engine/internal/mask"
	"github.com/markerclean/engine/internal/paint"
	"github.com/markerclean/engine/internal/raster"
	"github.com/markerclean/engine/internal/texture"
)

// Options configures a single Clean call beyond the calibration table.
type Options struct {
	Calibration calibration.Table
	// OnWarning is a slot for a best-effort notice of detector-local
	// recoveries. Clean does not call it: safeDetect recovers detector
	// panics silently. The core itself never logs.
	OnWarning func(msg string)
}

// Clean runs the full marker-removal pipeline in a fixed nine-step
// sequence: decode, estimate texture, detect boxes, merge with caller
// boxes, paint strong local masks, paint each merged box, mask and inpaint
// the corner/stroke region of interest, smooth, and re-encode.
// image must be JPEG/PNG/WEBP encoded bytes; boxes may be empty, values
// outside [0,1] are clamped, and swapped mins/maxes are normalized.
func Clean(ctx context.Context, image []byte, callerBoxes []geometry.NormBox, opts Options) ([]byte, Stats, error) {
	cal := opts.Calibration
	if cal.SchemaVersion == "" {
		cal = calibration.Default()
	}

	// Step 1: decode.
	buf, format, err := codec.Decode(image)
	if err != nil {
		return nil, Stats{}, fatalf("decode: %w", err)
	}
	w, h := buf.W, buf.H
	changes := raster.NewChangeMap(w, h)
	stats := Stats{TotalPixels: w * h}

	// Step 2: texture estimation.
	tex := texture.Estimate(buf, cal)
	stats.TextureScore = tex.MeanGradient
	stats.ComplexScene = tex.Complex

	if err := checkCancel(ctx); err != nil {
		return nil, Stats{}, err
	}

	// Step 3: box detectors.
	var localRects []geometry.PixRect
	for _, c := range safeDetect(func() []boxes.Candidate { return boxes.DetectRectangles(buf, cal) }) {
		localRects = append(localRects, c.Rect)
	}
	for _, c := range safeDetect(func() []boxes.Candidate { return boxes.DetectOverlayStrokes(buf, cal) }) {
		localRects = append(localRects, c.Rect)
	}

	if err := checkCancel(ctx); err != nil {
		return nil, Stats{}, err
	}

	// Step 4: merge localBoxes into caller-supplied boxes.
	var callerRects []geometry.PixRect
	for _, b := range callerBoxes {
		callerRects = append(callerRects, b.ToPixRect(w, h))
	}
	combined := append(append([]geometry.PixRect(nil), localRects...), callerRects...)
	merged := geometry.MergeBoxes(combined)
	if len(merged) == 0 {
		return image, Stats{TotalPixels: w * h, TextureScore: tex.MeanGradient, ComplexScene: tex.Complex}, nil
	}

	// Step 5: for each raw localBox, run strong-color masks (steps 6/7) plus
	// the edge-gradient mask, and inpaint immediately.
	for _, rect := range localRects {
		edge, column := paint.StrongMasks(buf, rect, cal)
		stats.FallbackPixels += fillMask(buf, edge, changes, cal)
		stats.FallbackPixels += fillMask(buf, column, changes, cal)
		edgeGrad := mask.EdgeInBox(buf, rect, cal)
		stats.FallbackPixels += fillMask(buf, edgeGrad, changes, cal)
	}

	if err := checkCancel(ctx); err != nil {
		return nil, Stats{}, err
	}

	// Step 6: for each merged box, run Painter steps 1-5.
	usedRects := make([]geometry.PixRect, 0, cal.UsedRectsMax)
	for _, rect := range merged {
		paintOpts := paint.Options{
			Conservative: tex.Complex,
			LocalRects:   localRects,
		}
		result := paint.Paint(buf, changes, rect, cal, paintOpts)
		if result.AxisSwap != nil {
			stats.AxisSwapDecisions = append(stats.AxisSwapDecisions, *result.AxisSwap)
		}
		if len(usedRects) < cal.UsedRectsMax {
			usedRects = append(usedRects, rect)
		}
	}

	if err := checkCancel(ctx); err != nil {
		return nil, Stats{}, err
	}

	// Step 7: build ROI, run corner/stroke masks restricted to it, inpaint.
	roi := buildROI(w, h, usedRects, cal)
	corner := safeDetect(func() raster.Mask { return mask.CornerLines(buf, cal) })
	strokes := safeDetect(func() raster.Mask { return mask.GenericStrokes(buf, tex.Complex, cal) })
	restrictToROI(corner, roi, w, h)
	restrictToROI(strokes, roi, w, h)
	stats.FallbackPixels += fillMask(buf, corner, changes, cal)
	stats.FallbackPixels += fillMask(buf, strokes, changes, cal)

	if err := checkCancel(ctx); err != nil {
		return nil, Stats{}, err
	}

	// Step 8: smoothing.
	inpaint.Smooth(buf, changes, tex.Complex, cal)

	// Step 9: statistics and re-encode.
	stats.ChangedPixels = changes.Count()
	out, err := codec.Encode(buf, format, cal)
	if err != nil {
		return nil, Stats{}, fatalf("encode: %w", err)
	}
	return out, stats, nil
}

func fillMask(buf *raster.Buffer, m raster.Mask, changes raster.ChangeMap, cal calibration.Table) int {
	if m == nil || m.Count() == 0 {
		return 0
	}
	return inpaint.Fill(buf, m, changes, cal).FallbackPixels
}

// buildROI returns a mask covering the union of a frame band around each
// used rectangle, excluding each rectangle's own interior.
func buildROI(w, h int, rects []geometry.PixRect, cal calibration.Table) raster.Mask {
	roi := raster.NewMask(w, h)
	for _, r := range rects {
		band := clampInt(int(0.03*float64(minInt(r.Width(), r.Height()))), cal.ROIFrameBandMin, cal.ROIFrameBandMax)
		padded := r.Pad(band).Clamp(w, h)
		inner := r.Clamp(w, h)
		for y := padded.Y1; y < padded.Y2; y++ {
			for x := padded.X1; x < padded.X2; x++ {
				if x >= inner.X1 && x < inner.X2 && y >= inner.Y1 && y < inner.Y2 {
					continue // interior already handled by the Painter band
				}
				roi.Set(w, x, y)
			}
		}
	}
	return roi
}

func restrictToROI(m raster.Mask, roi raster.Mask, w, h int) {
	if m == nil {
		return
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if m.Get(w, x, y) && !roi.Get(w, x, y) {
				m.Clear(w, x, y)
			}
		}
	}
}

func checkCancel(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return &CoreError{Kind: ErrFatal, Err: ctx.Err()}
	default:
		return nil
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
