package raster

import "math"

// Luma computes ITU-R BT.601 luma, reused wherever the pipeline needs a
// single brightness channel (texture estimation, edge masks) so that "luma"
// means one thing throughout the engine.
func Luma(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}

// RGBtoHSV converts 8-bit RGB to HSV with h in [0,360), s and v in [0,1].
func RGBtoHSV(r, g, b uint8) (h, s, v float64) {
	rf := float64(r) / 255.0
	gf := float64(g) / 255.0
	bf := float64(b) / 255.0
	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))
	v = max
	d := max - min
	if max == 0 {
		s = 0
	} else {
		s = d / max
	}
	if d == 0 {
		h = 0
		return
	}
	switch max {
	case rf:
		h = math.Mod((gf-bf)/d, 6)
	case gf:
		h = (bf-rf)/d + 2
	case bf:
		h = (rf-gf)/d + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return
}

// Saturation returns the classic (max-min)/max saturation in [0,1].
func Saturation(r, g, b uint8) float64 {
	max := maxU8(r, maxU8(g, b))
	if max == 0 {
		return 0
	}
	min := minU8(r, minU8(g, b))
	return float64(int(max)-int(min)) / float64(max)
}

func maxU8(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}

func minU8(a, b uint8) uint8 {
	if a < b {
		return a
	}
	return b
}

// srgbToLinear and the Lab conversion below back LabDistance, a perceptual
// color distance between two sRGB colors.
func srgbToLinear(c uint8) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func linearToXYZ(r, g, b float64) (x, y, z float64) {
	x = 0.4124564*r + 0.3575761*g + 0.1804375*b
	y = 0.2126729*r + 0.7151522*g + 0.0721750*b
	z = 0.0193339*r + 0.1191920*g + 0.9503041*b
	return
}

func xyzToLab(x, y, z float64) (l, a, b float64) {
	xr := x / 0.95047
	yr := y / 1.00000
	zr := z / 1.08883
	f := func(t float64) float64 {
		if t > 0.008856 {
			return math.Cbrt(t)
		}
		return 7.787037*t + 16.0/116.0
	}
	fx, fy, fz := f(xr), f(yr), f(zr)
	l = 116.0*fy - 16.0
	a = 500.0 * (fx - fy)
	b = 200.0 * (fy - fz)
	return
}

// RGBtoLab converts 8-bit sRGB to CIE L*a*b* (D65 reference white).
func RGBtoLab(r, g, b uint8) (l, a, bl float64) {
	lr := srgbToLinear(r)
	lg := srgbToLinear(g)
	lb := srgbToLinear(b)
	x, y, z := linearToXYZ(lr, lg, lb)
	return xyzToLab(x, y, z)
}

// LabDistance returns the perceptual Euclidean distance between two sRGB colors.
func LabDistance(r1, g1, b1, r2, g2, b2 uint8) float64 {
	l1, a1, bb1 := RGBtoLab(r1, g1, b1)
	l2, a2, bb2 := RGBtoLab(r2, g2, b2)
	dl, da, db := l1-l2, a1-a2, bb1-bb2
	return math.Sqrt(dl*dl + da*da + db*db)
}

// ColorDiffL1 is the L1 (sum of absolute per-channel differences) used by the
// Painter's color-diff decisions when deciding whether a pixel should be
// replaced.
func ColorDiffL1(r1, g1, b1, r2, g2, b2 uint8) int {
	return absInt(int(r1)-int(r2)) + absInt(int(g1)-int(g2)) + absInt(int(b1)-int(b2))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
