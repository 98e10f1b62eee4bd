package raster

// WeightedBoxBlur3x3 runs a single 3x3 box blur applied only to pixels
// marked in changes, weighting unchanged neighbors unchangedWeight times as
// heavily as changed ones so the result leans toward the original
// surrounding texture rather than fogging the patch.
func WeightedBoxBlur3x3(buf *Buffer, changes ChangeMap, unchangedWeight float64) {
	w, h := buf.W, buf.H
	src := buf.Clone()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !changes.Get(w, x, y) {
				continue
			}
			var sr, sg, sb, wsum float64
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := clampInt(x+dx, 0, w-1), clampInt(y+dy, 0, h-1)
					weight := 1.0
					if !changes.Get(w, nx, ny) {
						weight = unchangedWeight
					}
					r, g, b := src.At(nx, ny)
					sr += float64(r) * weight
					sg += float64(g) * weight
					sb += float64(b) * weight
					wsum += weight
				}
			}
			buf.SetRGB(x, y, clampU8(sr/wsum), clampU8(sg/wsum), clampU8(sb/wsum))
		}
	}
}

func clampU8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
