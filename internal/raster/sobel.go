package raster

import "math"

// sobelGx and sobelGy are the standard 3x3 Sobel kernels.
var sobelGx = [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
var sobelGy = [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}

// SobelMagnitude computes, for every pixel of buf, |Gx|+|Gy| (the L1 gradient
// magnitude) over the luma channel. Edge pixels are handled by clamping the
// kernel footprint to the buffer bounds.
func SobelMagnitude(buf *Buffer) []float64 {
	w, h := buf.W, buf.H
	lum := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b := buf.At(x, y)
			lum[y*w+x] = Luma(r, g, b)
		}
	}
	return sobelFromLuma(lum, w, h)
}

func sobelFromLuma(lum []float64, w, h int) []float64 {
	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var gx, gy float64
			// Luma is taken relative to the center pixel: the kernels sum to
			// zero, so the gradient is unchanged, and a flat neighborhood
			// yields exactly 0 with no floating-point residue.
			center := lum[y*w+x]
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					ix := clampInt(x+kx, 0, w-1)
					iy := clampInt(y+ky, 0, h-1)
					v := lum[iy*w+ix] - center
					gx += v * sobelGx[ky+1][kx+1]
					gy += v * sobelGy[ky+1][kx+1]
				}
			}
			out[y*w+x] = math.Abs(gx) + math.Abs(gy)
		}
	}
	return out
}

// MeanGradient returns the mean of a gradient-magnitude field.
func MeanGradient(mag []float64) float64 {
	if len(mag) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range mag {
		sum += v
	}
	return sum / float64(len(mag))
}
