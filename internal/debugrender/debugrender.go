// Package debugrender draws diagnostic overlays (box outlines plus a text
// label) onto a copy of an image, for cmd/markerclean's debug-overlay flag.
package debugrender

import (
	"image"
	"image/color"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/markerclean/engine/internal/geometry"
)

// Overlay draws each rect's outline in col plus an index label at its
// top-left corner, onto a clone of src.
func Overlay(src *image.NRGBA, rects []geometry.PixRect, col color.Color) *image.NRGBA {
	out := cloneNRGBA(src)
	for i, r := range rects {
		drawRect(out, r, col)
		drawLabel(out, r.X1+2, r.Y1+12, strconv.Itoa(i), col)
	}
	return out
}

func drawRect(img *image.NRGBA, r geometry.PixRect, col color.Color) {
	b := img.Bounds()
	hline := func(y int) {
		if y < b.Min.Y || y >= b.Max.Y {
			return
		}
		for x := r.X1; x < r.X2; x++ {
			if x >= b.Min.X && x < b.Max.X {
				img.Set(x, y, col)
			}
		}
	}
	vline := func(x int) {
		if x < b.Min.X || x >= b.Max.X {
			return
		}
		for y := r.Y1; y < r.Y2; y++ {
			if y >= b.Min.Y && y < b.Max.Y {
				img.Set(x, y, col)
			}
		}
	}
	hline(r.Y1)
	hline(r.Y2 - 1)
	vline(r.X1)
	vline(r.X2 - 1)
}

// drawLabel uses font.Drawer with the built-in basic font: no TTF loading
// here since debug overlays never need custom fonts.
func drawLabel(img *image.NRGBA, x, y int, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

func cloneNRGBA(src *image.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(src.Bounds())
	copy(out.Pix, src.Pix)
	return out
}
