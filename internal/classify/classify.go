// Package classify implements the color classifiers: pure (R,G,B)->bool
// functions modeling the appearance of annotation colors under JPEG
// compression and anti-aliasing.
package classify

import (
	"github.com/markerclean/engine/internal/calibration"
	"github.com/markerclean/engine/internal/raster"
)

// IsMarker is the liberal classifier: any saturated red/orange/yellow/blue/
// magenta. It is permissive enough to misclassify skin tones, which is why
// IsLikelyMark exists as a stricter companion used wherever background is
// sampled.
func IsMarker(r, g, b uint8, cal calibration.Table) bool {
	sat := raster.Saturation(r, g, b)
	max := maxU8(r, maxU8(g, b))
	if sat < cal.MarkerMinSaturation || int(max) < cal.MarkerMinMaxChannel {
		return false
	}
	ri, gi, bi := int(r), int(g), int(b)
	redDominant := float64(ri) >= float64(gi)*1.03 && ri > bi
	yellowBand := ri > 150 && gi > 120 && bi < 120 && absInt(ri-gi) < 90
	blueDominant := bi > ri && bi > gi && bi-maxInt(ri, gi) > 20
	magentaBand := ri > 140 && bi > 140 && gi < maxInt(ri, bi)-40
	return redDominant || yellowBand || blueDominant || magentaBand
}

// IsLikelyMark is the stricter variant used when sampling background context
// (e.g. inpaint neighbor gathering): it must reject true line pixels
// reliably, so it layers a second, harder test on top of IsMarker.
func IsLikelyMark(r, g, b uint8, cal calibration.Table) bool {
	if IsMarker(r, g, b, cal) {
		return true
	}
	max := int(maxU8(r, maxU8(g, b)))
	mid := midChannel(r, g, b)
	sat := raster.Saturation(r, g, b)
	return max >= cal.LikelyMarkMinMax && sat >= cal.LikelyMarkMinSat && (max-mid) >= cal.LikelyMarkMinDiff
}

// IsStrongForCorner is the strong line-seed color C4's corner detector uses.
func IsStrongForCorner(r, g, b uint8, cal calibration.Table) bool {
	max := int(maxU8(r, maxU8(g, b)))
	mid := midChannel(r, g, b)
	return max >= cal.CornerStrongMinMax && (max-mid) >= cal.CornerStrongMinDiff
}

// IsStrongForInpaint is the strong-color test for the ROI inpaint mask.
func IsStrongForInpaint(r, g, b uint8, cal calibration.Table) bool {
	max := int(maxU8(r, maxU8(g, b)))
	mid := midChannel(r, g, b)
	return max >= cal.InpaintStrongMinMax && (max-mid) >= cal.InpaintStrongMinDiff
}

// IsLineColor is used by the rectangle-outline detector.
func IsLineColor(r, g, b uint8, cal calibration.Table) bool {
	max := int(maxU8(r, maxU8(g, b)))
	mid := midChannel(r, g, b)
	return max >= cal.LineColorMinMax && (max-mid) >= cal.LineColorMinDiff
}

// IsOverlayRed is the pure-red overlay stroke test.
func IsOverlayRed(r, g, b uint8, cal calibration.Table) bool {
	ri, gi, bi := int(r), int(g), int(b)
	return ri > cal.OverlayRedMinR && gi < cal.OverlayRedMaxGB && bi < cal.OverlayRedMaxGB &&
		float64(ri) > cal.OverlayRedRatio*float64(gi)
}

// IsOverlayLikeStrong is used for the vertical-column overpaint test.
func IsOverlayLikeStrong(r, g, b uint8, cal calibration.Table) bool {
	ri, gi, bi := int(r), int(g), int(b)
	return ri > cal.OverlayStrongMinR && (ri-gi) >= cal.OverlayStrongMinDiff && (ri-bi) >= cal.OverlayStrongMinDiff
}

// IsMarkerLikeHSV is the HSV-band classifier the generic stroke mask uses.
// When complexScene is true, the blue hue band is excluded, since busy
// scenes otherwise pick up too many false positives in that band.
func IsMarkerLikeHSV(r, g, b uint8, complexScene bool, cal calibration.Table) bool {
	h, s, v := raster.RGBtoHSV(r, g, b)
	value255 := v * 255.0
	if value255 < cal.HSVMinValue*255.0 || s < cal.HSVMinSaturation {
		return false
	}
	switch {
	case h <= 30 || h >= 330:
		return true // red
	case h >= 30 && h <= 90:
		return true // orange-yellow
	case h >= 285 && h <= 330:
		return true // magenta
	case h >= 190 && h <= 260 && !complexScene:
		return true // blue, only in simple scenes
	default:
		return false
	}
}

func midChannel(r, g, b uint8) int {
	vals := [3]int{int(r), int(g), int(b)}
	// sort 3 elements
	if vals[0] > vals[1] {
		vals[0], vals[1] = vals[1], vals[0]
	}
	if vals[1] > vals[2] {
		vals[1], vals[2] = vals[2], vals[1]
	}
	if vals[0] > vals[1] {
		vals[0], vals[1] = vals[1], vals[0]
	}
	return vals[1]
}

func maxU8(a, b uint8) uint8 {
	if a > b {
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

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
