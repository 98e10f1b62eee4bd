package boxes

import (
	"testing"

	"github.com/markerclean/engine/internal/calibration"
	"github.com/markerclean/engine/internal/raster"
)

func drawRectOutline(buf *raster.Buffer, x1, y1, x2, y2, thickness int, r, g, b uint8) {
	for t := 0; t < thickness; t++ {
		for x := x1; x <= x2; x++ {
			buf.SetRGB(x, y1+t, r, g, b)
			buf.SetRGB(x, y2-t, r, g, b)
		}
		for y := y1; y <= y2; y++ {
			buf.SetRGB(x1+t, y, r, g, b)
			buf.SetRGB(x2-t, y, r, g, b)
		}
	}
}

func whiteBuffer(w, h int) *raster.Buffer {
	buf := raster.NewBuffer(w, h)
	for i := 0; i < len(buf.Pix); i += 4 {
		buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2], buf.Pix[i+3] = 255, 255, 255, 255
	}
	return buf
}

func TestDetectRectanglesFindsHollowRectangle(t *testing.T) {
	buf := whiteBuffer(200, 200)
	drawRectOutline(buf, 40, 40, 160, 160, 3, 200, 20, 20)

	candidates := DetectRectangles(buf, calibration.Default())
	if len(candidates) == 0 {
		t.Fatal("DetectRectangles() found no candidates for a drawn hollow rectangle")
	}
	found := false
	for _, c := range candidates {
		if c.Rect.X1 < 50 && c.Rect.Y1 < 50 && c.Rect.X2 > 150 && c.Rect.Y2 > 150 {
			found = true
		}
	}
	if !found {
		t.Fatalf("no candidate matched the drawn rectangle, got %+v", candidates)
	}
}

func TestDetectRectanglesEmptyOnBlankImage(t *testing.T) {
	buf := whiteBuffer(200, 200)
	if candidates := DetectRectangles(buf, calibration.Default()); len(candidates) != 0 {
		t.Fatalf("DetectRectangles(blank) = %v, want none", candidates)
	}
}

func TestDetectOverlayStrokesFindsRedStroke(t *testing.T) {
	buf := whiteBuffer(200, 200)
	// A diagonal-ish overlay stroke near the left and top borders.
	for i := 0; i < 150; i++ {
		buf.SetRGB(5, 5+i, 230, 10, 10)
		buf.SetRGB(5+i, 5, 230, 10, 10)
	}
	candidates := DetectOverlayStrokes(buf, calibration.Default())
	if len(candidates) == 0 {
		t.Fatal("DetectOverlayStrokes() found no candidates for a drawn red stroke")
	}
}

func TestDetectOverlayStrokesEmptyOnBlankImage(t *testing.T) {
	buf := whiteBuffer(200, 200)
	if candidates := DetectOverlayStrokes(buf, calibration.Default()); len(candidates) != 0 {
		t.Fatalf("DetectOverlayStrokes(blank) = %v, want none", candidates)
	}
}
