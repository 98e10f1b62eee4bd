// Package geometry holds the two box representations used throughout the
// pipeline (normalized boxes in [0,1] and integer pixel rectangles) plus
// the clamping, IoU, and merge operations the orchestrator needs.
package geometry

// NormBox is a bounding box in normalized [0,1] image coordinates. Values
// are not assumed ordered at construction time; call Normalize to enforce
// xmin<=xmax, ymin<=ymax and clamp to [0,1].
type NormBox struct {
	XMin, YMin, XMax, YMax float64
}

// Normalize clamps all four values to [0,1] and sorts min/max pairs; callers
// may hand it boxes with swapped or out-of-range corners.
func (b NormBox) Normalize() NormBox {
	x1, x2 := clamp01(b.XMin), clamp01(b.XMax)
	y1, y2 := clamp01(b.YMin), clamp01(b.YMax)
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return NormBox{XMin: x1, YMin: y1, XMax: x2, YMax: y2}
}

// Swapped returns the box with {xmin,ymin}<->{ymin,xmin} exchanged: an
// alternate interpretation to check a box against when rows and columns may
// have been transposed upstream.
func (b NormBox) Swapped() NormBox {
	return NormBox{XMin: b.YMin, YMin: b.XMin, XMax: b.YMax, YMax: b.XMax}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ToPixRect converts a normalized box to integer pixel coordinates for an
// image of size w x h, clamped to [0,w]x[0,h].
func (b NormBox) ToPixRect(w, h int) PixRect {
	nb := b.Normalize()
	x1 := clampInt(int(nb.XMin*float64(w)+0.5), 0, w)
	x2 := clampInt(int(nb.XMax*float64(w)+0.5), 0, w)
	y1 := clampInt(int(nb.YMin*float64(h)+0.5), 0, h)
	y2 := clampInt(int(nb.YMax*float64(h)+0.5), 0, h)
	if x2 < x1 {
		x2 = x1
	}
	if y2 < y1 {
		y2 = y1
	}
	return PixRect{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// PixRect is a half-open [x1,x2) x [y1,y2) rectangle in integer pixel
// coordinates.
type PixRect struct {
	X1, Y1, X2, Y2 int
}

// FromPixRect converts an integer pixel rectangle back to a normalized box
// for an image of size w x h.
func FromPixRect(r PixRect, w, h int) NormBox {
	return NormBox{
		XMin: float64(r.X1) / float64(w),
		YMin: float64(r.Y1) / float64(h),
		XMax: float64(r.X2) / float64(w),
		YMax: float64(r.Y2) / float64(h),
	}
}

// Width and Height of the half-open rectangle.
func (r PixRect) Width() int  { return r.X2 - r.X1 }
func (r PixRect) Height() int { return r.Y2 - r.Y1 }

// Area of the rectangle, zero if degenerate.
func (r PixRect) Area() int {
	w, h := r.Width(), r.Height()
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Clamp restricts the rectangle to [0,w]x[0,h].
func (r PixRect) Clamp(w, h int) PixRect {
	return PixRect{
		X1: clampInt(r.X1, 0, w),
		Y1: clampInt(r.Y1, 0, h),
		X2: clampInt(r.X2, 0, w),
		Y2: clampInt(r.Y2, 0, h),
	}
}

// Pad grows the rectangle by px pixels on every side (without clamping;
// callers clamp afterward against the image bounds).
func (r PixRect) Pad(px int) PixRect {
	return PixRect{X1: r.X1 - px, Y1: r.Y1 - px, X2: r.X2 + px, Y2: r.Y2 + px}
}

// IoU computes intersection-over-union between two pixel rectangles, used
// both when merging overlapping boxes and when guarding against
// implausibly huge ones.
func IoU(a, b PixRect) float64 {
	ix1, iy1 := maxInt(a.X1, b.X1), maxInt(a.Y1, b.Y1)
	ix2, iy2 := minInt(a.X2, b.X2), minInt(a.Y2, b.Y2)
	iw, ih := ix2-ix1, iy2-iy1
	if iw <= 0 || ih <= 0 {
		return 0
	}
	inter := float64(iw * ih)
	union := float64(a.Area() + b.Area())
	if union <= inter {
		return 0
	}
	return inter / (union - inter)
}

// Union returns the smallest rectangle containing both a and b.
func Union(a, b PixRect) PixRect {
	return PixRect{
		X1: minInt(a.X1, b.X1),
		Y1: minInt(a.Y1, b.Y1),
		X2: maxInt(a.X2, b.X2),
		Y2: maxInt(a.Y2, b.Y2),
	}
}

// MergeBoxes merges two boxes when IoU > 0.75, or when IoU > 0.55 and the
// smaller area is > 0.55 of the larger; merging takes the component-wise
// union. Runs to a fixed point (merges can chain).
func MergeBoxes(boxes []PixRect) []PixRect {
	merged := append([]PixRect(nil), boxes...)
	for {
		didMerge := false
		for i := 0; i < len(merged); i++ {
			for j := i + 1; j < len(merged); j++ {
				if shouldMerge(merged[i], merged[j]) {
					merged[i] = Union(merged[i], merged[j])
					merged = append(merged[:j], merged[j+1:]...)
					didMerge = true
					break
				}
			}
			if didMerge {
				break
			}
		}
		if !didMerge {
			break
		}
	}
	return merged
}

func shouldMerge(a, b PixRect) bool {
	iou := IoU(a, b)
	if iou > 0.75 {
		return true
	}
	if iou > 0.55 {
		minArea, maxArea := float64(a.Area()), float64(b.Area())
		if minArea > maxArea {
			minArea, maxArea = maxArea, minArea
		}
		if maxArea > 0 && minArea/maxArea > 0.55 {
			return true
		}
	}
	return false
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

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
