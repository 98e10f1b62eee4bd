// Package paint implements the Painter: for each candidate rectangle,
// locate its true edges, repaint a band along them, and mark strong-color
// strokes near its border for the inpainter.
package paint

import (
	"github.com/markerclean/engine/internal/calibration"
	"github.com/markerclean/engine/internal/classify"
	"github.com/markerclean/engine/internal/geometry"
	"github.com/markerclean/engine/internal/raster"
)

// AxisSwapDecision records one axis-swap sanity-check evaluation, so the
// decision is reported to callers rather than silently made.
type AxisSwapDecision struct {
	Rect    geometry.PixRect
	Swapped bool
	Score1  int
	Score2  int
}

// Options carries the per-call knobs that depend on detector context rather
// than belonging in the calibration table: whether context already forces a
// paint decision, and whether to use the conservative threshold variants.
type Options struct {
	ForcePaint   bool
	Conservative bool
	// LocalRects exempts Rect from the huge-box guard when it overlaps any
	// entry here (IoU > 0.55): a local detector found roughly the same box,
	// even though MergeBoxes may have padded or unioned its coordinates away
	// from an exact match.
	LocalRects []geometry.PixRect
}

// Result reports what Paint did, for Stats aggregation by the orchestrator.
type Result struct {
	AxisSwap       *AxisSwapDecision
	StrongEdgeMask raster.Mask // step 6 output, feed to inpainter
	ColumnMask     raster.Mask // step 7 output, feed to inpainter
}

// Paint runs the full seven-step Painter sequence against a single
// rectangle, writing repainted pixels directly into buf and marking changes
// in the change map.
func Paint(buf *raster.Buffer, changes raster.ChangeMap, rect geometry.PixRect, cal calibration.Table, opts Options) Result {
	w, h := buf.W, buf.H
	result := Result{}

	// Step 1: axis-swap sanity check.
	swappedRect := swapRect(rect, w, h)
	frameBand := clampInt(int(0.08*float64(minInt(rect.Width(), rect.Height()))), 4, 22)
	score1 := countMarkersInFrame(buf, rect, frameBand, cal)
	score2 := countMarkersInFrame(buf, swappedRect, frameBand, cal)
	useSwap := float64(score2) >= cal.AxisSwapMinScore2 && float64(score2) > cal.AxisSwapDominanceFactor*float64(score1)
	result.AxisSwap = &AxisSwapDecision{Rect: rect, Swapped: useSwap, Score1: score1, Score2: score2}
	if useSwap {
		rect = swappedRect
	}
	rect = rect.Clamp(w, h)

	// Step 2: band width.
	band := clampInt(int(0.08*float64(minInt(rect.Width(), rect.Height()))+0.5), int(cal.BandMin), int(cal.BandMax))
	huge := float64(rect.Area()) > cal.HugeBoxAreaRatio*float64(w)*float64(h)
	if huge {
		band = minInt(band, int(cal.HugeBandCap))
	}

	// Step 3: huge-box guard.
	if huge && !matchesAny(rect, opts.LocalRects, hugeBoxLocalIoUMin) {
		minScore := cal.HugeBoxMinScoreSimple
		// The orchestrator sets Conservative from its complex-scene flag, so it
		// selects the complex-scene minimum frame score here.
		if opts.Conservative {
			minScore = cal.HugeBoxMinScoreComplex
		}
		frameScore := float64(maxInt(score1, score2))
		if frameScore < minScore {
			return result
		}
	}

	// Step 4: locate true line rows/columns.
	edgeSearchY := clampInt(int(cal.EdgeSearchYFrac*float64(h)), int(cal.EdgeSearchYMin), int(cal.EdgeSearchYMax))
	runThresholdFrac := cal.RunRowThresholdFrac
	if opts.Conservative {
		runThresholdFrac = cal.RunRowThresholdFracCon
	}
	runThreshold := maxFloat(cal.RunRowThresholdMin, runThresholdFrac*float64(w))

	top := locateLine(buf, rect.X1, rect.X2, rect.Y1, rect.Y1+edgeSearchY, true, runThreshold, cal)
	bottom := locateLine(buf, rect.X1, rect.X2, rect.Y2-edgeSearchY, rect.Y2, true, runThreshold, cal)
	left := locateLine(buf, rect.Y1, rect.Y2, rect.X1, rect.X1+edgeSearchY, false, runThreshold, cal)
	right := locateLine(buf, rect.Y1, rect.Y2, rect.X2-edgeSearchY, rect.X2, false, runThreshold, cal)

	sidesHit := 0
	for _, hit := range []bool{top.hit, bottom.hit, left.hit, right.hit} {
		if hit {
			sidesHit++
		}
	}
	forcePaint := opts.ForcePaint || sidesHit >= 2

	// Step 5: repaint bands at each located line.
	repaintHorizBand(buf, changes, rect.X1, rect.X2, top.pos, band, true, forcePaint, opts.Conservative, cal)
	repaintHorizBand(buf, changes, rect.X1, rect.X2, bottom.pos, band, true, forcePaint, opts.Conservative, cal)
	repaintVertBand(buf, changes, rect.Y1, rect.Y2, left.pos, band, false, forcePaint, opts.Conservative, cal)
	repaintVertBand(buf, changes, rect.Y1, rect.Y2, right.pos, band, false, forcePaint, opts.Conservative, cal)

	// Step 6: strong-color edge band.
	result.StrongEdgeMask = strongEdgeBand(buf, rect, cal)

	// Step 7: strong-color column overpaint.
	result.ColumnMask = columnOverpaint(buf, rect, cal)

	return result
}

// StrongMasks runs only the strong-edge and column-overpaint steps against
// rect, without the axis-swap check or band repaint — the orchestrator
// applies these to every raw local-detector box before the IoU merge
// happens.
func StrongMasks(buf *raster.Buffer, rect geometry.PixRect, cal calibration.Table) (edge, column raster.Mask) {
	rect = rect.Clamp(buf.W, buf.H)
	return strongEdgeBand(buf, rect, cal), columnOverpaint(buf, rect, cal)
}

type lineHit struct {
	hit bool
	pos int
}

// locateLine finds, within [lo,hi) along the perpendicular axis, the
// position whose longest isLikelyMark run (scanned along [a,b)) is longest;
// falls back to the band midline when no run clears runThreshold.
func locateLine(buf *raster.Buffer, a, b, lo, hi int, horizontal bool, runThreshold float64, cal calibration.Table) lineHit {
	bestPos := (lo + hi) / 2
	bestRun := -1
	for p := lo; p < hi; p++ {
		run, longest := 0, 0
		for q := a; q < b; q++ {
			var r, g, bch uint8
			if horizontal {
				r, g, bch = buf.At(q, p)
			} else {
				r, g, bch = buf.At(p, q)
			}
			if classify.IsLikelyMark(r, g, bch, cal) {
				run++
				if run > longest {
					longest = run
				}
			} else {
				run = 0
			}
		}
		if longest > bestRun {
			bestRun = longest
			bestPos = p
		}
	}
	if float64(bestRun) >= runThreshold {
		return lineHit{hit: true, pos: bestPos}
	}
	return lineHit{hit: false, pos: (lo + hi) / 2}
}

func repaintHorizBand(buf *raster.Buffer, changes raster.ChangeMap, x1, x2, rowPos, band int, horiz, forcePaint, conservative bool, cal calibration.Table) {
	half := band / 2
	if half < 1 {
		half = 1
	}
	w := buf.W
	var runStart, runLen int
	flushRun := func(y int) {
		minRun := maxFloat(cal.RunMinAbs, cal.RunMinFrac*float64(w))
		if float64(runLen) >= minRun {
			for x := runStart; x < runStart+runLen; x++ {
				paintPixel(buf, changes, x, y)
			}
		}
		runLen = 0
	}
	for dy := -half; dy <= half; dy++ {
		y := rowPos + dy
		if y < 0 || y >= buf.H {
			continue
		}
		runLen = 0
		for x := x1; x < x2; x++ {
			if shouldReplace(buf, x, y, true, forcePaint, conservative, cal) {
				if runLen == 0 {
					runStart = x
				}
				runLen++
			} else {
				flushRun(y)
			}
		}
		flushRun(y)
	}
}

func repaintVertBand(buf *raster.Buffer, changes raster.ChangeMap, y1, y2, colPos, band int, horiz, forcePaint, conservative bool, cal calibration.Table) {
	half := band / 2
	if half < 1 {
		half = 1
	}
	h := buf.H
	var runStart, runLen int
	flushRun := func(x int) {
		minRun := maxFloat(cal.RunMinAbs, cal.RunMinFrac*float64(h))
		if float64(runLen) >= minRun {
			for y := runStart; y < runStart+runLen; y++ {
				paintPixel(buf, changes, x, y)
			}
		}
		runLen = 0
	}
	for dx := -half; dx <= half; dx++ {
		x := colPos + dx
		if x < 0 || x >= buf.W {
			continue
		}
		runLen = 0
		for y := y1; y < y2; y++ {
			if shouldReplace(buf, x, y, false, forcePaint, conservative, cal) {
				if runLen == 0 {
					runStart = y
				}
				runLen++
			} else {
				flushRun(x)
			}
		}
		flushRun(x)
	}
}

// shouldReplace implements step 5's per-pixel decision tree: always replace
// a marker pixel; otherwise only under forcePaint or outlier color
// thresholds, comparing perpendicular-side diff and directional average diff.
func shouldReplace(buf *raster.Buffer, x, y int, horizontal, forcePaint, conservative bool, cal calibration.Table) bool {
	r, g, b := buf.At(x, y)
	if classify.IsMarker(r, g, b, cal) {
		return true
	}
	sideDiff, colorDiff := sampleDiffs(buf, x, y, horizontal, cal)
	if forcePaint {
		sideMax := cal.SideDiffMax
		colorMin := cal.ForcePaintColorDiffMin
		if conservative {
			sideMax = cal.SideDiffMaxConservative
			colorMin = cal.ForcePaintColorDiffMinConservative
		}
		return sideDiff <= sideMax && colorDiff >= colorMin
	}
	outlier := cal.OutlierDiffThreshold
	if conservative {
		outlier = cal.OutlierDiffThresholdConservative
	}
	return colorDiff >= outlier
}

// sampleDiffs computes the perpendicular two-side L1 diff (sideDiff) and the
// directional relaxed-average color diff (colorDiff) per step 5's bullets.
func sampleDiffs(buf *raster.Buffer, x, y int, horizontal bool, cal calibration.Table) (sideDiff, colorDiff int) {
	// Perpendicular samples start PerpBaseOffsetExtra pixels from (x,y); the
	// band width is not added to this offset. The offset is extended by
	// PerpOffsetStep, up to PerpOffsetMaxExtra further, while one side would
	// otherwise fall outside the buffer (a clamped sample at the base offset
	// would just duplicate the in-bounds side, collapsing sideDiff to 0).
	perpAxisSize := buf.H
	if !horizontal {
		perpAxisSize = buf.W
	}
	pos := y
	if !horizontal {
		pos = x
	}
	off := int(cal.PerpBaseOffsetExtra)
	for pos-off < 0 || pos+off >= perpAxisSize {
		if off+int(cal.PerpOffsetStep) > int(cal.PerpBaseOffsetExtra)+int(cal.PerpOffsetMaxExtra) {
			break
		}
		off += int(cal.PerpOffsetStep)
	}
	var x1, y1, x2, y2 int
	if horizontal {
		x1, y1 = x, clampToRange(y-off, 0, buf.H-1)
		x2, y2 = x, clampToRange(y+off, 0, buf.H-1)
	} else {
		x1, y1 = clampToRange(x-off, 0, buf.W-1), y
		x2, y2 = clampToRange(x+off, 0, buf.W-1), y
	}
	r1, g1, b1 := buf.At(x1, y1)
	r2, g2, b2 := buf.At(x2, y2)
	sideDiff = raster.ColorDiffL1(r1, g1, b1, r2, g2, b2)

	// directional relaxed average: non-marker pixels within radius 8 on both sides.
	radius := cal.DirectionalRadius
	var sumR, sumG, sumB, n int
	for d := 1; d <= radius; d++ {
		var ax, ay, bx, by int
		if horizontal {
			ax, ay = x, clampToRange(y-d, 0, buf.H-1)
			bx, by = x, clampToRange(y+d, 0, buf.H-1)
		} else {
			ax, ay = clampToRange(x-d, 0, buf.W-1), y
			bx, by = clampToRange(x+d, 0, buf.W-1), y
		}
		ra, ga, ba := buf.At(ax, ay)
		if !classify.IsMarker(ra, ga, ba, cal) {
			sumR += int(ra)
			sumG += int(ga)
			sumB += int(ba)
			n++
		}
		rb, gb, bb := buf.At(bx, by)
		if !classify.IsMarker(rb, gb, bb, cal) {
			sumR += int(rb)
			sumG += int(gb)
			sumB += int(bb)
			n++
		}
	}
	cr, cg, cb := buf.At(x, y)
	if n == 0 {
		colorDiff = 0
	} else {
		avgR, avgG, avgB := sumR/n, sumG/n, sumB/n
		colorDiff = raster.ColorDiffL1(cr, cg, cb, uint8(clampToRange(avgR, 0, 255)), uint8(clampToRange(avgG, 0, 255)), uint8(clampToRange(avgB, 0, 255)))
	}
	return
}

func paintPixel(buf *raster.Buffer, changes raster.ChangeMap, x, y int) {
	r, g, b := directionalFill(buf, x, y)
	buf.SetRGB(x, y, r, g, b)
	changes.Set(buf.W, x, y)
}

// directionalFill estimates a replacement color by averaging the adjacent
// pixel in each of the four cardinal directions; marker-colored neighbors
// are not skipped.
func directionalFill(buf *raster.Buffer, x, y int) (uint8, uint8, uint8) {
	var sumR, sumG, sumB, n int
	dirs := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for _, d := range dirs {
		for dist := 1; dist <= 16; dist++ {
			nx, ny := x+d[0]*dist, y+d[1]*dist
			if nx < 0 || nx >= buf.W || ny < 0 || ny >= buf.H {
				break
			}
			r, g, b := buf.At(nx, ny)
			sumR += int(r)
			sumG += int(g)
			sumB += int(b)
			n++
			break
		}
	}
	if n == 0 {
		return buf.At(x, y)
	}
	return uint8(sumR / n), uint8(sumG / n), uint8(sumB / n)
}

// strongEdgeBand implements step 6: mark strong-inpaint-colored pixels in a
// narrow band around the box edges with sufficient luma contrast.
func strongEdgeBand(buf *raster.Buffer, rect geometry.PixRect, cal calibration.Table) raster.Mask {
	w, h := buf.W, buf.H
	out := raster.NewMask(w, h)
	minSide := minInt(rect.Width(), rect.Height())
	bandW := clampInt(int(cal.StrongEdgeBandFrac*float64(minSide)), int(cal.StrongEdgeBandMin), int(cal.StrongEdgeBandMax))
	pad := int(cal.StrongEdgeBandPadFrac * float64(minInt(w, h)))
	padded := rect.Pad(pad).Clamp(w, h)

	mark := func(x, y int) {
		if x < 0 || x >= w || y < 0 || y >= h {
			return
		}
		r, g, b := buf.At(x, y)
		if !classify.IsStrongForInpaint(r, g, b, cal) {
			return
		}
		lum := raster.Luma(r, g, b)
		contrastOK := false
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := x+d[0], y+d[1]
			nr, ng, nb := buf.At(clampToRange(nx, 0, w-1), clampToRange(ny, 0, h-1))
			if absF(lum-raster.Luma(nr, ng, nb)) >= cal.StrongEdgeLumaContrastMin {
				contrastOK = true
				break
			}
		}
		if contrastOK {
			out.Set(w, x, y)
		}
	}
	for x := padded.X1; x < padded.X2; x++ {
		for b := 0; b < bandW; b++ {
			mark(x, padded.Y1+b)
			mark(x, padded.Y2-1-b)
		}
	}
	for y := padded.Y1; y < padded.Y2; y++ {
		for b := 0; b < bandW; b++ {
			mark(padded.X1+b, y)
			mark(padded.X2-1-b, y)
		}
	}
	return dilateMask(out, w, h, 1)
}

// columnOverpaint implements step 7: flag left/right edge columns with a
// long, dense run of overlay-like strong pixels.
func columnOverpaint(buf *raster.Buffer, rect geometry.PixRect, cal calibration.Table) raster.Mask {
	w, h := buf.W, buf.H
	out := raster.NewMask(w, h)
	runMin := maxFloat(cal.ColumnOverpaintRunMinAbs, cal.ColumnOverpaintRunMinFrac*float64(rect.Height()))
	countMin := maxFloat(cal.ColumnOverpaintCountMinAbs, cal.ColumnOverpaintCountMinFrac*float64(rect.Height()))

	check := func(x int) {
		if x < 0 || x >= w {
			return
		}
		run, longest, count := 0, 0, 0
		for y := rect.Y1; y < rect.Y2; y++ {
			r, g, b := buf.At(x, y)
			if classify.IsOverlayLikeStrong(r, g, b, cal) {
				run++
				count++
				if run > longest {
					longest = run
				}
			} else {
				run = 0
			}
		}
		if float64(longest) >= runMin && float64(count) >= countMin {
			for y := rect.Y1; y < rect.Y2; y++ {
				r, g, b := buf.At(x, y)
				if classify.IsOverlayLikeStrong(r, g, b, cal) {
					out.Set(w, x, y)
				}
			}
		}
	}
	check(rect.X1)
	check(rect.X2 - 1)
	return dilateMask(out, w, h, 1)
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

func countMarkersInFrame(buf *raster.Buffer, rect geometry.PixRect, band int, cal calibration.Table) int {
	w, h := buf.W, buf.H
	r := rect.Clamp(w, h)
	n := 0
	visit := func(x, y int) {
		if x < 0 || x >= w || y < 0 || y >= h {
			return
		}
		rr, gg, bb := buf.At(x, y)
		if classify.IsMarker(rr, gg, bb, cal) {
			n++
		}
	}
	for x := r.X1; x < r.X2; x++ {
		for b := 0; b < band; b++ {
			visit(x, r.Y1+b)
			visit(x, r.Y2-1-b)
		}
	}
	for y := r.Y1; y < r.Y2; y++ {
		for b := 0; b < band; b++ {
			visit(r.X1+b, y)
			visit(r.X2-1-b, y)
		}
	}
	return n
}

// hugeBoxLocalIoUMin is the overlap threshold a merged huge box must clear
// against some locally-detected rectangle to skip the huge-box guard; it
// tracks the same IoU>0.55 threshold geometry.MergeBoxes uses for its looser
// merge rule, since both describe "close enough to be the same box."
const hugeBoxLocalIoUMin = 0.55

// matchesAny reports whether rect overlaps any of cands with IoU > min.
func matchesAny(rect geometry.PixRect, cands []geometry.PixRect, min float64) bool {
	for _, c := range cands {
		if geometry.IoU(rect, c) > min {
			return true
		}
	}
	return false
}

func swapRect(r geometry.PixRect, w, h int) geometry.PixRect {
	return geometry.PixRect{X1: r.Y1, Y1: r.X1, X2: r.Y2, Y2: r.X2}.Clamp(w, h)
}

func clampToRange(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int { return clampToRange(v, lo, hi) }

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

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

