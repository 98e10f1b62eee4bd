// Package boxes implements the box detectors: the rectangle-outline
// detector (closed drawn rectangles) and the overlay-stroke detector
// (broken/dashed red strokes anywhere in the image). Both work on a
// downscaled copy and return candidate boxes mapped back to full resolution.
package boxes

import (
	"github.com/markerclean/engine/internal/calibration"
	"github.com/markerclean/engine/internal/classify"
	"github.com/markerclean/engine/internal/geometry"
	"github.com/markerclean/engine/internal/raster"
)

// Candidate is a detected box candidate before orchestrator-level merging.
type Candidate struct {
	Rect  geometry.PixRect
	Score float64
}

// DetectRectangles downscales the image, classifies line-color pixels,
// labels 8-connected components, and keeps the ones that are large enough,
// not too large, don't touch the image border, touch all four of their own
// bounding-box edges (closed outline), and have a fill ratio in the
// hollow-rectangle band.
func DetectRectangles(buf *raster.Buffer, cal calibration.Table) []Candidate {
	targetW := cal.RectDownscaleWidth
	if buf.W >= cal.RectWideThreshold {
		targetW = cal.RectDownscaleWidthWide
	}
	small, scale := raster.DownscaleNearest(buf, targetW)
	w, h := small.W, small.H

	mask := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b := small.At(x, y)
			mask[y*w+x] = classify.IsLineColor(r, g, b, cal)
		}
	}

	comps := raster.ConnectedComponents8(mask, w, h)
	var out []Candidate
	maxSide := int(float64(w) * cal.MaxComponentSideFrac)
	for _, c := range comps {
		if c.Width() < cal.MinComponentSide || c.Height() < cal.MinComponentSide {
			continue
		}
		if c.Width() > maxSide || c.Height() > maxSide {
			continue
		}
		if c.TouchesBorder(w, h, cal.BorderMargin) {
			continue
		}
		if !c.TouchesAllFourEdges(w, cal.EdgeTouchMargin) {
			continue
		}
		fill := c.Fill()
		if fill < cal.ClosedFillMin || fill > cal.ClosedFillMax {
			continue
		}
		x1, y1, x2, y2 := raster.MapRectToFull(c.MinX, c.MinY, c.MaxX+1, c.MaxY+1, scale)
		rect := geometry.PixRect{X1: x1, Y1: y1, X2: x2, Y2: y2}.Clamp(buf.W, buf.H)
		padRect := padRect(rect, buf.W, buf.H, cal)
		out = append(out, Candidate{Rect: padRect, Score: float64(c.Area)})
		if len(out) >= cal.RectMaxCandidates {
			break
		}
	}
	return out
}

// DetectOverlayStrokes downscales the image, classifies pure-red overlay
// pixels, dilates (via a square structuring kernel) to bridge dashed
// strokes, labels components, and keeps the ones whose longest run is long
// enough and that touch at least two of their own bounding-box edges.
func DetectOverlayStrokes(buf *raster.Buffer, cal calibration.Table) []Candidate {
	targetW := cal.RectDownscaleWidth
	if buf.W >= cal.RectWideThreshold {
		targetW = cal.RectDownscaleWidthWide
	}
	small, scale := raster.DownscaleNearest(buf, targetW)
	w, h := small.W, small.H

	raw := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b := small.At(x, y)
			raw[y*w+x] = classify.IsOverlayRed(r, g, b, cal)
		}
	}
	dilated := dilate(raw, w, h, cal.OverlayDilation)

	comps := raster.ConnectedComponents8(dilated, w, h)
	var out []Candidate
	minRun := cal.OverlayRunMinAbs
	for _, c := range comps {
		if c.Area < cal.StrokeMinArea {
			continue
		}
		if c.EdgesTouched(w, cal.EdgeTouchMargin) < cal.OverlayMinEdgesTouched {
			continue
		}
		lh, lv := raster.LongestRun(dilated, w, h, c.MinX, c.MinY, c.MaxX, c.MaxY)
		longest := lh
		if lv > longest {
			longest = lv
		}
		runFrac := float64(longest) / float64(maxInt(c.Width(), c.Height()))
		if float64(longest) < minRun && runFrac < cal.OverlayRunMinFrac {
			continue
		}
		x1, y1, x2, y2 := raster.MapRectToFull(c.MinX, c.MinY, c.MaxX+1, c.MaxY+1, scale)
		rect := geometry.PixRect{X1: x1, Y1: y1, X2: x2, Y2: y2}.Clamp(buf.W, buf.H)
		padRect := padRect(rect, buf.W, buf.H, cal)
		out = append(out, Candidate{Rect: padRect, Score: float64(c.Area)})
		if len(out) >= cal.OverlayMaxCandidates {
			break
		}
	}
	return out
}

// padRect grows a box by max(RectPadMinAbs, RectPadFrac*size) on each side,
// to absorb anti-aliased stroke edges before the box reaches the Painter.
func padRect(r geometry.PixRect, w, h int, cal calibration.Table) geometry.PixRect {
	pad := int(cal.RectPadMinAbs)
	fracPad := int(float64(maxInt(r.Width(), r.Height())) * cal.RectPadFrac)
	if fracPad > pad {
		pad = fracPad
	}
	return r.Pad(pad).Clamp(w, h)
}

// dilate applies a (2*radius+1)^2 square structuring element.
func dilate(mask []bool, w, h, radius int) []bool {
	out := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask[y*w+x] {
				out[y*w+x] = true
				continue
			}
			found := false
			for dy := -radius; dy <= radius && !found; dy++ {
				ny := y + dy
				if ny < 0 || ny >= h {
					continue
				}
				for dx := -radius; dx <= radius; dx++ {
					nx := x + dx
					if nx < 0 || nx >= w {
						continue
					}
					if mask[ny*w+nx] {
						found = true
						break
					}
				}
			}
			out[y*w+x] = found
		}
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
