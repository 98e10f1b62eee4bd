package raster

// Component is one 8-connected blob produced by ConnectedComponents8, with
// the bounding-box and fill statistics needed to judge "closed rectangle"
// vs. "solid block" vs. "broken stroke".
type Component struct {
	MinX, MinY, MaxX, MaxY int // inclusive bounding box, in the labeled grid's coordinates
	Area                   int // pixel count
	Pixels                 []int // flat y*w+x indices, for callers that need the exact shape (e.g. edge-touch tests)
}

// Width and Height of the component's bounding box.
func (c Component) Width() int  { return c.MaxX - c.MinX + 1 }
func (c Component) Height() int { return c.MaxY - c.MinY + 1 }

// Fill is area / (bw*bh), the fraction of the bounding box occupied.
func (c Component) Fill() float64 {
	bw, bh := c.Width(), c.Height()
	if bw == 0 || bh == 0 {
		return 0
	}
	return float64(c.Area) / float64(bw*bh)
}

// ConnectedComponents8 labels 8-neighbor connected components of a boolean
// mask (true = foreground), using a seed-stack flood fill per unvisited
// foreground pixel.
func ConnectedComponents8(mask []bool, w, h int) []Component {
	visited := make([]bool, w*h)
	var comps []Component

	type seed struct{ x, y int }
	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			start := sy*w + sx
			if !mask[start] || visited[start] {
				continue
			}
			stack := []seed{{sx, sy}}
			visited[start] = true
			comp := Component{MinX: sx, MinY: sy, MaxX: sx, MaxY: sy}
			for len(stack) > 0 {
				s := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				idx := s.y*w + s.x
				comp.Area++
				comp.Pixels = append(comp.Pixels, idx)
				if s.x < comp.MinX {
					comp.MinX = s.x
				}
				if s.x > comp.MaxX {
					comp.MaxX = s.x
				}
				if s.y < comp.MinY {
					comp.MinY = s.y
				}
				if s.y > comp.MaxY {
					comp.MaxY = s.y
				}
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						nx, ny := s.x+dx, s.y+dy
						if nx < 0 || nx >= w || ny < 0 || ny >= h {
							continue
						}
						ni := ny*w + nx
						if mask[ni] && !visited[ni] {
							visited[ni] = true
							stack = append(stack, seed{nx, ny})
						}
					}
				}
			}
			comps = append(comps, comp)
		}
	}
	return comps
}

// TouchesBorder reports whether any pixel of the component lies within
// margin pixels of the grid border.
func (c Component) TouchesBorder(w, h, margin int) bool {
	return c.MinX <= margin-1 || c.MinY <= margin-1 || c.MaxX >= w-margin || c.MaxY >= h-margin
}

// TouchesAllFourEdges reports whether the component has at least one pixel
// within `margin` of each of its own bounding-box's four edges: a closed
// rectangle outline test. w is the width of the grid Pixels indices were
// flattened against.
func (c Component) TouchesAllFourEdges(w, margin int) bool {
	var left, right, top, bottom bool
	for _, idx := range c.Pixels {
		x := idx % w
		y := idx / w
		if x <= c.MinX+margin {
			left = true
		}
		if x >= c.MaxX-margin {
			right = true
		}
		if y <= c.MinY+margin {
			top = true
		}
		if y >= c.MaxY-margin {
			bottom = true
		}
	}
	return left && right && top && bottom
}

// EdgesTouched counts how many of the 4 bounding-box edges (left, right,
// top, bottom) the component touches within `margin` pixels.
func (c Component) EdgesTouched(w, margin int) int {
	var left, right, top, bottom bool
	for _, idx := range c.Pixels {
		x := idx % w
		y := idx / w
		if x <= c.MinX+margin {
			left = true
		}
		if x >= c.MaxX-margin {
			right = true
		}
		if y <= c.MinY+margin {
			top = true
		}
		if y >= c.MaxY-margin {
			bottom = true
		}
	}
	n := 0
	for _, v := range []bool{left, right, top, bottom} {
		if v {
			n++
		}
	}
	return n
}

// LongestRun returns the longest contiguous horizontal and vertical run of
// foreground pixels inside the component's bounding box.
func LongestRun(mask []bool, w, h int, minX, minY, maxX, maxY int) (longestHoriz, longestVert int) {
	for y := minY; y <= maxY; y++ {
		run := 0
		for x := minX; x <= maxX; x++ {
			if mask[y*w+x] {
				run++
				if run > longestHoriz {
					longestHoriz = run
				}
			} else {
				run = 0
			}
		}
	}
	for x := minX; x <= maxX; x++ {
		run := 0
		for y := minY; y <= maxY; y++ {
			if mask[y*w+x] {
				run++
				if run > longestVert {
					longestVert = run
				}
			} else {
				run = 0
			}
		}
	}
	return
}
