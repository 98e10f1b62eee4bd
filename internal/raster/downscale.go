package raster

// DownscaleNearest resamples src to a target width, preserving aspect ratio,
// using nearest-neighbor sampling: the detectors need cheap, reproducible
// pixel classification, not photographic resampling quality.
//
// Returns the downscaled buffer and the scale factor (dst pixels per src
// pixel) needed to map detector results back to full resolution.
func DownscaleNearest(src *Buffer, targetW int) (dst *Buffer, scale float64) {
	if targetW <= 0 || targetW >= src.W {
		return src.Clone(), 1.0
	}
	scale = float64(targetW) / float64(src.W)
	dstW := targetW
	dstH := int(float64(src.H)*scale + 0.5)
	if dstH < 1 {
		dstH = 1
	}
	dst = NewBuffer(dstW, dstH)
	invScale := float64(src.W) / float64(dstW)
	for y := 0; y < dstH; y++ {
		sy := clampInt(int(float64(y)*invScale+0.5), 0, src.H-1)
		for x := 0; x < dstW; x++ {
			sx := clampInt(int(float64(x)*invScale+0.5), 0, src.W-1)
			r, g, b := src.At(sx, sy)
			dst.SetRGB(x, y, r, g, b)
		}
	}
	return dst, scale
}

// MapRectToFull scales a rectangle in downscaled-image pixel coordinates back
// to the coordinate space of the full-resolution image.
func MapRectToFull(minX, minY, maxX, maxY int, scale float64) (x1, y1, x2, y2 int) {
	inv := 1.0 / scale
	x1 = int(float64(minX) * inv)
	y1 = int(float64(minY) * inv)
	x2 = int(float64(maxX) * inv)
	y2 = int(float64(maxY) * inv)
	return
}
