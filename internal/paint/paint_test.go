package paint

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

func TestSwapRectTransposes(t *testing.T) {
	r := geometry.PixRect{X1: 10, Y1: 20, X2: 110, Y2: 70}
	got := swapRect(r, 1000, 1000)
	want := geometry.PixRect{X1: 20, Y1: 10, X2: 70, Y2: 110}
	if got != want {
		t.Fatalf("swapRect(%+v) = %+v, want %+v", r, got, want)
	}
}

func TestShouldReplaceAlwaysReplacesMarkerPixel(t *testing.T) {
	buf := whiteBuffer(50, 50)
	buf.SetRGB(25, 25, 255, 0, 0)
	cal := calibration.Default()
	if !shouldReplace(buf, 25, 25, true, false, false, cal) {
		t.Fatal("shouldReplace() should always replace a marker-colored pixel")
	}
}

func TestShouldReplaceRejectsUniformBackground(t *testing.T) {
	buf := whiteBuffer(50, 50)
	cal := calibration.Default()
	if shouldReplace(buf, 25, 25, true, false, false, cal) {
		t.Fatal("shouldReplace() should leave a uniform white pixel alone")
	}
}

func TestDirectionalFillAveragesNeighbors(t *testing.T) {
	buf := whiteBuffer(10, 10)
	buf.SetRGB(4, 5, 0, 0, 0)
	buf.SetRGB(6, 5, 0, 0, 0)
	buf.SetRGB(5, 4, 0, 0, 0)
	buf.SetRGB(5, 6, 0, 0, 0)
	r, g, b := directionalFill(buf, 5, 5)
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("directionalFill() = (%d,%d,%d), want all-black average of black neighbors", r, g, b)
	}
}

func TestStrongEdgeBandMarksContrastingBorder(t *testing.T) {
	buf := whiteBuffer(200, 200)
	rect := geometry.PixRect{X1: 40, Y1: 40, X2: 160, Y2: 160}
	// A strong, high-contrast red line just inside the rectangle's border
	// (one dominant channel: magenta's max-mid gap is 0, so it is not strong).
	for x := rect.X1; x < rect.X2; x++ {
		buf.SetRGB(x, rect.Y1, 230, 10, 10)
		buf.SetRGB(x, rect.Y2-1, 230, 10, 10)
	}
	for y := rect.Y1; y < rect.Y2; y++ {
		buf.SetRGB(rect.X1, y, 230, 10, 10)
		buf.SetRGB(rect.X2-1, y, 230, 10, 10)
	}
	edge, _ := StrongMasks(buf, rect, calibration.Default())
	if edge.Count() == 0 {
		t.Fatal("StrongMasks() edge mask should mark the contrasting red border")
	}
}

func TestColumnOverpaintDetectsDenseRun(t *testing.T) {
	buf := whiteBuffer(200, 200)
	rect := geometry.PixRect{X1: 40, Y1: 40, X2: 160, Y2: 160}
	for y := rect.Y1; y < rect.Y2; y++ {
		buf.SetRGB(rect.X1, y, 220, 10, 10)
	}
	_, column := StrongMasks(buf, rect, calibration.Default())
	if column.Count() == 0 {
		t.Fatal("StrongMasks() column mask should flag a full-height strong-colored edge column")
	}
}

func TestPaintOnCleanRectangleMakesNoChanges(t *testing.T) {
	buf := whiteBuffer(200, 200)
	rect := geometry.PixRect{X1: 40, Y1: 40, X2: 160, Y2: 160}
	changes := raster.NewChangeMap(buf.W, buf.H)
	Paint(buf, changes, rect, calibration.Default(), Options{})
	if changes.Count() != 0 {
		t.Fatalf("Paint(blank rectangle) changed %d pixels, want 0", changes.Count())
	}
}

func TestMatchesAnyExemptsOverlappingRect(t *testing.T) {
	// A merged rect padded a few pixels beyond the original local detection:
	// no longer an exact match, but still well above the IoU>0.55 bar.
	merged := geometry.PixRect{X1: 100, Y1: 100, X2: 300, Y2: 300}
	local := geometry.PixRect{X1: 98, Y1: 98, X2: 302, Y2: 302}
	if !matchesAny(merged, []geometry.PixRect{local}, hugeBoxLocalIoUMin) {
		t.Fatal("matchesAny() should exempt a merged rect that closely overlaps a local detection")
	}
}

func TestMatchesAnyRejectsDistantRect(t *testing.T) {
	merged := geometry.PixRect{X1: 100, Y1: 100, X2: 300, Y2: 300}
	local := geometry.PixRect{X1: 280, Y1: 280, X2: 480, Y2: 480}
	if matchesAny(merged, []geometry.PixRect{local}, hugeBoxLocalIoUMin) {
		t.Fatal("matchesAny() should not exempt a rect with little overlap against any candidate")
	}
}

func TestPaintRepaintsMarkerBorderedRectangle(t *testing.T) {
	buf := whiteBuffer(200, 200)
	rect := geometry.PixRect{X1: 40, Y1: 40, X2: 160, Y2: 160}
	for x := rect.X1; x < rect.X2; x++ {
		buf.SetRGB(x, rect.Y1, 230, 10, 10)
		buf.SetRGB(x, rect.Y2-1, 230, 10, 10)
	}
	for y := rect.Y1; y < rect.Y2; y++ {
		buf.SetRGB(rect.X1, y, 230, 10, 10)
		buf.SetRGB(rect.X2-1, y, 230, 10, 10)
	}
	changes := raster.NewChangeMap(buf.W, buf.H)
	Paint(buf, changes, rect, calibration.Default(), Options{})
	if changes.Count() == 0 {
		t.Fatal("Paint() should have repainted the marker-colored border")
	}
}
