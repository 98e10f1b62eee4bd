// Package mask implements the mask detectors: corner-connected line masks,
// the generic HSV-banded stroke mask, and the edge-gradient mask restricted
// to a candidate box.
package mask

import (
	"github.com/markerclean/engine/internal/calibration"
	"github.com/markerclean/engine/internal/classify"
	"github.com/markerclean/engine/internal/geometry"
	"github.com/markerclean/engine/internal/raster"
)

// CornerLines finds rectangles whose corners are where a long horizontal
// run of marker-colored pixels meets a long vertical one, the way a drawn
// box's two edges join at a right angle — rather than assuming the box
// touches one of the image's own four physical corners. It downscales the
// way the box detectors do, builds per-row and per-column long-run grids
// (`horiz`/`vert`), seeds wherever both kinds of run pass near each other,
// grows 8-connected regions through their union, and discards components
// that touch the downscaled border, cover too much of the image, look like
// a full-width/full-height banner, or are too solidly filled to be a line.
func CornerLines(buf *raster.Buffer, cal calibration.Table) raster.Mask {
	targetW := cal.RectDownscaleWidth
	if buf.W >= cal.RectWideThreshold {
		targetW = cal.RectDownscaleWidthWide
	}
	small, scale := raster.DownscaleNearest(buf, targetW)
	w, h := small.W, small.H

	colorMask := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b := small.At(x, y)
			colorMask[y*w+x] = classify.IsMarker(r, g, b, cal)
		}
	}

	horiz, vert := runGrids(colorMask, w, h, cal.CornerRunMin)
	union := make([]bool, w*h)
	for i := range union {
		union[i] = horiz[i] || vert[i]
	}

	grown := make([]bool, w*h)
	for _, s := range cornerSeeds(horiz, vert, w, h, cal.CornerSeedRadius) {
		growFrom(union, grown, w, h, s.x, s.y)
	}
	dilated := dilateSquare(grown, w, h, cal.CornerDilation)

	smallOut := raster.NewMask(w, h)
	imgArea := float64(w * h)
	sw, sh := float64(w), float64(h)
	comps := raster.ConnectedComponents8(dilated, w, h)
	for _, c := range comps {
		if c.TouchesBorder(w, h, cal.BorderMargin) {
			continue
		}
		if float64(c.Area)/imgArea > cal.MaxComponentAreaRatio {
			continue
		}
		bw, bh := float64(c.Width()), float64(c.Height())
		banner := (bw > cal.CornerBannerWideFrac*sw && bh < cal.CornerBannerThinFrac*sh) ||
			(bh > cal.CornerBannerWideFrac*sh && bw < cal.CornerBannerThinFrac*sw)
		if banner {
			continue
		}
		if c.Fill() > cal.MaxFillRatio {
			continue
		}
		for _, idx := range c.Pixels {
			smallOut.Set(w, idx%w, idx/w)
		}
	}

	full := make([]bool, buf.W*buf.H)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !smallOut.Get(w, x, y) {
				continue
			}
			x1, y1, x2, y2 := raster.MapRectToFull(x, y, x+1, y+1, scale)
			for fy := y1; fy < y2 && fy < buf.H; fy++ {
				for fx := x1; fx < x2 && fx < buf.W; fx++ {
					full[fy*buf.W+fx] = true
				}
			}
		}
	}
	dilatedFull := dilateSquare(full, buf.W, buf.H, cal.CornerDilation)

	out := raster.NewMask(buf.W, buf.H)
	for y := 0; y < buf.H; y++ {
		for x := 0; x < buf.W; x++ {
			if dilatedFull[y*buf.W+x] {
				out.Set(buf.W, x, y)
			}
		}
	}
	return out
}

// runGrids marks every pixel belonging to a horizontal (resp. vertical) run
// of at least minRun contiguous true pixels in mask.
func runGrids(mask []bool, w, h, minRun int) (horiz, vert []bool) {
	horiz = make([]bool, w*h)
	vert = make([]bool, w*h)
	markRun := func(dst []bool, start, end int) {
		if end-start < minRun {
			return
		}
		for i := start; i < end; i++ {
			dst[i] = true
		}
	}
	for y := 0; y < h; y++ {
		run := 0
		for x := 0; x < w; x++ {
			idx := y*w + x
			if mask[idx] {
				run++
				continue
			}
			markRun(horiz, idx-run, idx)
			run = 0
		}
		markRun(horiz, y*w+w-run, y*w+w)
	}
	for x := 0; x < w; x++ {
		run := 0
		for y := 0; y < h; y++ {
			idx := y*w + x
			if mask[idx] {
				run++
				continue
			}
			if run >= minRun {
				for k := y - run; k < y; k++ {
					vert[k*w+x] = true
				}
			}
			run = 0
		}
		if run >= minRun {
			for k := h - run; k < h; k++ {
				vert[k*w+x] = true
			}
		}
	}
	return
}

// cornerSeeds finds every pixel belonging to a long run (horiz or vert)
// that has both a horiz-run pixel and a vert-run pixel somewhere within
// Chebyshev distance radius — i.e. a point near where two lines cross.
func cornerSeeds(horiz, vert []bool, w, h, radius int) []point {
	var pts []point
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if !horiz[idx] && !vert[idx] {
				continue
			}
			if nearby(horiz, w, h, x, y, radius) && nearby(vert, w, h, x, y, radius) {
				pts = append(pts, point{x, y})
			}
		}
	}
	return pts
}

// nearby reports whether any true pixel of mask lies within Chebyshev
// distance radius of (cx, cy).
func nearby(mask []bool, w, h, cx, cy, radius int) bool {
	for dy := -radius; dy <= radius; dy++ {
		ny := cy + dy
		if ny < 0 || ny >= h {
			continue
		}
		for dx := -radius; dx <= radius; dx++ {
			nx := cx + dx
			if nx < 0 || nx >= w {
				continue
			}
			if mask[ny*w+nx] {
				return true
			}
		}
	}
	return false
}

// GenericStrokes classifies every pixel with the HSV-band classifier
// (narrower bands in complex scenes), labels components, and drops any
// larger than MaxStrokeAreaRatio of the image or with too high a fill
// ratio (solid photographic regions, not strokes).
func GenericStrokes(buf *raster.Buffer, complexScene bool, cal calibration.Table) raster.Mask {
	w, h := buf.W, buf.H
	raw := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b := buf.At(x, y)
			raw[y*w+x] = classify.IsMarkerLikeHSV(r, g, b, complexScene, cal)
		}
	}

	out := raster.NewMask(w, h)
	imgArea := float64(w * h)
	comps := raster.ConnectedComponents8(raw, w, h)
	for _, c := range comps {
		if c.Area < cal.StrokeMinArea {
			continue
		}
		if float64(c.Area)/imgArea > cal.MaxStrokeAreaRatio {
			continue
		}
		if c.Fill() > cal.StrokeMaxFillRatio {
			continue
		}
		for _, idx := range c.Pixels {
			out.Set(w, idx%w, idx/w)
		}
	}
	return out
}

// EdgeInBox marks, within a candidate box padded by a fraction of its size,
// every pixel whose Sobel gradient magnitude clears EdgeBoxGradThreshold.
// Used to capture a drawn rectangle's anti-aliased outline inside its own
// bounding box rather than relying on a pure-color test.
func EdgeInBox(buf *raster.Buffer, box geometry.PixRect, cal calibration.Table) raster.Mask {
	w, h := buf.W, buf.H
	pad := int(float64(maxInt(box.Width(), box.Height(), 1)) * cal.EdgeBoxPadFrac)
	padded := box.Pad(pad).Clamp(w, h)

	mags := raster.SobelMagnitude(buf)
	out := raster.NewMask(w, h)
	for y := padded.Y1; y < padded.Y2; y++ {
		for x := padded.X1; x < padded.X2; x++ {
			if mags[y*w+x] >= cal.EdgeBoxGradThreshold {
				out.Set(w, x, y)
			}
		}
	}
	return out
}

type point struct{ x, y int }

// growFrom runs an 8-connected flood fill over `strong`, starting at (sx,sy)
// if it is itself strong, marking visited pixels in `out`.
func growFrom(strong, out []bool, w, h, sx, sy int) {
	if sx < 0 || sx >= w || sy < 0 || sy >= h {
		return
	}
	start := sy*w + sx
	if !strong[start] || out[start] {
		return
	}
	stack := []point{{sx, sy}}
	out[start] = true
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := p.x+dx, p.y+dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				ni := ny*w + nx
				if strong[ni] && !out[ni] {
					out[ni] = true
					stack = append(stack, point{nx, ny})
				}
			}
		}
	}
}

func dilateSquare(mask []bool, w, h, radius int) []bool {
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

func maxInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
