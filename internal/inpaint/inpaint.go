// Package inpaint fills masked pixels from known context using one of two
// algorithms, selected by calibration.Table.InpaintAlgorithm: a weighted
// inverse-distance onion-peel, or patch synthesis via windowed SSD
// matching. The final smoothing pass reuses internal/raster.WeightedBoxBlur3x3.
package inpaint

import (
	"math"

	"github.com/markerclean/engine/internal/calibration"
	"github.com/markerclean/engine/internal/classify"
	"github.com/markerclean/engine/internal/raster"
)

// Result reports what Fill did, for Stats aggregation.
type Result struct {
	FallbackPixels int
}

var compassDirs = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// Fill dispatches to the configured algorithm, then runs the
// uniform-averaging fallback pass on whatever remains masked.
func Fill(buf *raster.Buffer, mask raster.Mask, changes raster.ChangeMap, cal calibration.Table) Result {
	switch cal.InpaintAlgorithm {
	case calibration.AlgoPatchMatch:
		fillPatchMatch(buf, mask, changes, cal)
	default:
		fillWeightedIDW(buf, mask, changes, cal)
	}

	neighborhood := cal.FallbackNeighborhoodA
	if cal.InpaintAlgorithm == calibration.AlgoPatchMatch {
		neighborhood = cal.FallbackNeighborhoodB
	}
	fallback := fillFallback(buf, mask, changes, neighborhood, cal)
	return Result{FallbackPixels: fallback}
}

// fillWeightedIDW implements Algorithm A: up to IDWMaxPasses onion-peel
// passes, each gathering up to IDWMaxSamples non-masked, non-isLikelyMark
// samples along 8 compass directions, deferring pixels whose per-channel
// sample range is too wide (cross-edge risk), else writing the inverse-
// square-distance-weighted average.
func fillWeightedIDW(buf *raster.Buffer, mask raster.Mask, changes raster.ChangeMap, cal calibration.Table) {
	w, h := buf.W, buf.H
	for pass := 0; pass < cal.IDWMaxPasses; pass++ {
		progressed := false
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if !mask.Get(w, x, y) {
					continue
				}
				samples := gatherIDWSamples(buf, mask, x, y, cal)
				if len(samples) < 2 {
					continue
				}
				if sampleRangeTooWide(samples, cal) {
					continue // deferred to next pass
				}
				r, g, b := idwAverage(samples)
				buf.SetRGB(x, y, r, g, b)
				changes.Set(w, x, y)
				mask.Clear(w, x, y)
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
}

type idwSample struct {
	r, g, b uint8
	dist    int
}

func gatherIDWSamples(buf *raster.Buffer, mask raster.Mask, x, y int, cal calibration.Table) []idwSample {
	var samples []idwSample
	for _, d := range compassDirs {
		for radius := 1; radius <= cal.IDWMaxRadius; radius++ {
			nx, ny := x+d[0]*radius, y+d[1]*radius
			if !buf.InBounds(nx, ny) {
				break
			}
			if mask.Get(buf.W, nx, ny) {
				continue
			}
			r, g, b := buf.At(nx, ny)
			if classify.IsLikelyMark(r, g, b, cal) {
				continue
			}
			samples = append(samples, idwSample{r: r, g: g, b: b, dist: radius})
			break
		}
		if len(samples) >= cal.IDWMaxSamples {
			break
		}
	}
	return samples
}

func sampleRangeTooWide(samples []idwSample, cal calibration.Table) bool {
	minR, maxR := 255, 0
	minG, maxG := 255, 0
	minB, maxB := 255, 0
	for _, s := range samples {
		minR, maxR = minInt(minR, int(s.r)), maxInt(maxR, int(s.r))
		minG, maxG = minInt(minG, int(s.g)), maxInt(maxG, int(s.g))
		minB, maxB = minInt(minB, int(s.b)), maxInt(maxB, int(s.b))
	}
	rangeSum := (maxR - minR) + (maxG - minG) + (maxB - minB)
	threshold := cal.InpaintSampleRange3
	if len(samples) == 2 {
		threshold = cal.InpaintSampleRange2
	}
	return float64(rangeSum) > threshold
}

func idwAverage(samples []idwSample) (uint8, uint8, uint8) {
	var wr, wg, wb, wsum float64
	for _, s := range samples {
		weight := 1.0 / float64(s.dist*s.dist)
		wr += weight * float64(s.r)
		wg += weight * float64(s.g)
		wb += weight * float64(s.b)
		wsum += weight
	}
	if wsum == 0 {
		return samples[0].r, samples[0].g, samples[0].b
	}
	return uint8(clampF(wr/wsum) + 0.5), uint8(clampF(wg/wsum) + 0.5), uint8(clampF(wb/wsum) + 0.5)
}

// fillPatchMatch implements Algorithm B: dilate the mask by 2, then in
// scanline order fill pixels with >=4 known 5x5-patch neighbors from the
// best-matching nearby source location, repeating onion-peel passes.
func fillPatchMatch(buf *raster.Buffer, mask raster.Mask, changes raster.ChangeMap, cal calibration.Table) {
	w, h := buf.W, buf.H
	working := dilateMask(mask, w, h, 2)
	half := cal.PatchSize / 2

	for pass := 0; pass < cal.PatchMaxPasses; pass++ {
		progressed := false
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if !working.Get(w, x, y) {
					continue
				}
				if knownNeighbors(working, w, h, x, y, half) < cal.PatchMinKnownNeighbors {
					continue
				}
				sx, sy, found := bestPatchMatch(buf, working, x, y, half, cal)
				if !found {
					continue
				}
				r, g, b := buf.At(sx, sy)
				buf.SetRGB(x, y, r, g, b)
				changes.Set(w, x, y)
				working.Clear(w, x, y)
				if mask.Get(w, x, y) {
					mask.Clear(w, x, y)
				}
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
}

func knownNeighbors(mask raster.Mask, w, h, x, y, half int) int {
	n := 0
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			if !mask.Get(w, nx, ny) {
				n++
			}
		}
	}
	return n
}

func bestPatchMatch(buf *raster.Buffer, mask raster.Mask, x, y, half int, cal calibration.Table) (int, int, bool) {
	w, h := buf.W, buf.H
	bestSSD := math.MaxFloat64
	bestX, bestY := x, y
	found := false
	radius := cal.PatchSearchRadius
	step := cal.PatchSearchStep

	for dy := -radius; dy <= radius; dy += step {
		for dx := -radius; dx <= radius; dx += step {
			sx, sy := x+dx, y+dy
			if sx-half < 0 || sx+half >= w || sy-half < 0 || sy+half >= h {
				continue
			}
			if mask.Get(w, sx, sy) {
				continue
			}
			ssd := patchSSD(buf, mask, x, y, sx, sy, half)
			distSq := float64(dx*dx + dy*dy)
			score := ssd + cal.PatchDistanceBias*distSq
			if score < bestSSD {
				bestSSD = score
				bestX, bestY = sx, sy
				found = true
				if ssd < cal.PatchSSDEarlyExit {
					return bestX, bestY, true
				}
			}
		}
	}
	return bestX, bestY, found
}

// patchSSD compares the known (non-masked) pixels of the target patch
// against the candidate source patch; each masked target pixel adds a large
// fixed penalty instead of being skipped. The penalty depends only on the
// target's mask, so it is the same for every candidate source.
func patchSSD(buf *raster.Buffer, mask raster.Mask, tx, ty, sx, sy, half int) float64 {
	w, h := buf.W, buf.H
	const maskedPenalty = 255.0 * 255.0 * 3
	sum := 0.0
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			txn, tyn := tx+dx, ty+dy
			sxn, syn := sx+dx, sy+dy
			if txn < 0 || txn >= w || tyn < 0 || tyn >= h || sxn < 0 || sxn >= w || syn < 0 || syn >= h {
				continue
			}
			if mask.Get(w, txn, tyn) {
				sum += maskedPenalty
				continue
			}
			tr, tg, tb := buf.At(txn, tyn)
			sr, sg, sb := buf.At(sxn, syn)
			dr := float64(tr) - float64(sr)
			dg := float64(tg) - float64(sg)
			db := float64(tb) - float64(sb)
			sum += dr*dr + dg*dg + db*db
		}
	}
	return sum
}

// fillFallback fills any pixel still masked with the mean of non-marker
// pixels within a neighborhood x neighborhood window, counted as
// fallbackPixels.
func fillFallback(buf *raster.Buffer, mask raster.Mask, changes raster.ChangeMap, neighborhood int, cal calibration.Table) int {
	w, h := buf.W, buf.H
	half := neighborhood / 2
	count := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !mask.Get(w, x, y) {
				continue
			}
			var sumR, sumG, sumB, n int
			for dy := -half; dy <= half; dy++ {
				for dx := -half; dx <= half; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					r, g, b := buf.At(nx, ny)
					if classify.IsMarker(r, g, b, cal) {
						continue
					}
					sumR += int(r)
					sumG += int(g)
					sumB += int(b)
					n++
				}
			}
			if n > 0 {
				buf.SetRGB(x, y, uint8(sumR/n), uint8(sumG/n), uint8(sumB/n))
			}
			changes.Set(w, x, y)
			mask.Clear(w, x, y)
			count++
		}
	}
	return count
}

// Smooth runs 1-2 passes of a 3x3 weighted box blur restricted to changed
// pixels, when the changed-pixel ratio is low enough and the scene is not
// complex.
func Smooth(buf *raster.Buffer, changes raster.ChangeMap, complexScene bool, cal calibration.Table) {
	totalPixels := buf.W * buf.H
	if totalPixels == 0 {
		return
	}
	changedRatio := float64(changes.Count()) / float64(totalPixels)
	if changedRatio > cal.SmoothChangedRatioMax || complexScene {
		return
	}
	weight := cal.SmoothUnchangedWeightMin
	if changedRatio < cal.SmoothChangedRatioMax/2 {
		weight = cal.SmoothUnchangedWeightMax
	}
	for pass := 0; pass < cal.SmoothPasses; pass++ {
		raster.WeightedBoxBlur3x3(buf, changes, weight)
	}
}

func dilateMask(m raster.Mask, w, h, radius int) raster.Mask {
	out := raster.NewMask(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if m.Get(w, x, y) {
				out.Set(w, x, y)
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
					if m.Get(w, nx, ny) {
						found = true
						break
					}
				}
			}
			if found {
				out.Set(w, x, y)
			}
		}
	}
	return out
}

func clampF(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
