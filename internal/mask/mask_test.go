package mask

import (
	"testing"

	"github.com/markerclean/engine/internal/calibration"
	"github.com/markerclean/engine/internal/geometry"
	"github.com/markerclean/engine/internal/raster"
)

func whiteBuffer(w, h int) *raster.Buffer {
	buf := raster.NewBuffer(w, h)
	for i := 0; i < len(buf.Pix); i += 4 {
		buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2], buf.Pix[i+3] = 255, 255, 255, 255
	}
	return buf
}

// drawRectOutline draws a 1px-wide rectangle outline (all four edges,
// corners shared between the horizontal and vertical runs) in the given
// color.
func drawRectOutline(buf *raster.Buffer, x1, y1, x2, y2 int, r, g, b uint8) {
	for x := x1; x < x2; x++ {
		buf.SetRGB(x, y1, r, g, b)
		buf.SetRGB(x, y2-1, r, g, b)
	}
	for y := y1; y < y2; y++ {
		buf.SetRGB(x1, y, r, g, b)
		buf.SetRGB(x2-1, y, r, g, b)
	}
}

func TestCornerLinesFindsCenteredRectangle(t *testing.T) {
	buf := whiteBuffer(100, 100)
	drawRectOutline(buf, 30, 30, 70, 70, 230, 10, 10)
	m := CornerLines(buf, calibration.Default())
	if m.Count() == 0 {
		t.Fatal("CornerLines() found no pixels for a rectangle away from the image's own corners")
	}
}

func TestCornerLinesIgnoresLoneHorizontalLine(t *testing.T) {
	buf := whiteBuffer(100, 100)
	for y := 0; y < 5; y++ {
		for x := 0; x < 90; x++ {
			buf.SetRGB(x, y, 230, 15, 15)
		}
	}
	m := CornerLines(buf, calibration.Default())
	if m.Count() != 0 {
		t.Fatalf("CornerLines(lone horizontal line) count = %d, want 0 (no vertical run crosses it)", m.Count())
	}
}

func TestCornerLinesDiscardsFullWidthBanner(t *testing.T) {
	buf := whiteBuffer(300, 300)
	// A rectangle outline wide enough (and short enough) to classify as a
	// full-width banner once its two true corners have been found and grown.
	drawRectOutline(buf, 10, 140, 290, 160, 230, 10, 10)
	m := CornerLines(buf, calibration.Default())
	if m.Count() != 0 {
		t.Fatalf("CornerLines(banner-shaped outline) count = %d, want 0 (banner discard)", m.Count())
	}
}

func TestCornerLinesEmptyOnBlankImage(t *testing.T) {
	buf := whiteBuffer(100, 100)
	if m := CornerLines(buf, calibration.Default()); m.Count() != 0 {
		t.Fatalf("CornerLines(blank) count = %d, want 0", m.Count())
	}
}

func TestGenericStrokesDropsLargeAreas(t *testing.T) {
	buf := whiteBuffer(100, 100)
	// Fill the entire image with a marker-like color: too large an area ratio to be a stroke.
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			buf.SetRGB(x, y, 230, 10, 10)
		}
	}
	m := GenericStrokes(buf, false, calibration.Default())
	if m.Count() != 0 {
		t.Fatalf("GenericStrokes(solid fill) count = %d, want 0", m.Count())
	}
}

func TestGenericStrokesFindsSmallStroke(t *testing.T) {
	buf := whiteBuffer(100, 100)
	// A thin diagonal stroke: small pixel count relative to its bounding box,
	// so it passes the fill-ratio check that a solid block would fail.
	for i := 20; i < 80; i++ {
		buf.SetRGB(i, i, 230, 10, 10)
	}
	m := GenericStrokes(buf, false, calibration.Default())
	if m.Count() == 0 {
		t.Fatal("GenericStrokes() found no pixels for a drawn stroke")
	}
}

func TestEdgeInBoxMarksGradientInsideBox(t *testing.T) {
	buf := whiteBuffer(100, 100)
	for y := 40; y < 60; y++ {
		for x := 40; x < 60; x++ {
			buf.SetRGB(x, y, 0, 0, 0)
		}
	}
	box := geometry.PixRect{X1: 35, Y1: 35, X2: 65, Y2: 65}
	m := EdgeInBox(buf, box, calibration.Default())
	if m.Count() == 0 {
		t.Fatal("EdgeInBox() found no edge pixels around a high-contrast square")
	}
}
