package rawbox

import "testing"

func closeEnough(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}

func TestParseAnyCornersArrayScaledTo1000(t *testing.T) {
	box, ok := ParseAny([]byte(`[100, 200, 300, 400]`))
	if !ok {
		t.Fatal("ParseAny() failed on a cornersArray payload")
	}
	if !closeEnough(box.XMin, 0.1) || !closeEnough(box.YMin, 0.2) || !closeEnough(box.XMax, 0.3) || !closeEnough(box.YMax, 0.4) {
		t.Fatalf("ParseAny() = %+v, want {0.1,0.2,0.3,0.4}", box)
	}
}

func TestParseAnyBbox2DAlreadyNormalized(t *testing.T) {
	box, ok := ParseAny([]byte(`{"bbox_2d": [0.1, 0.2, 0.5, 0.6]}`))
	if !ok {
		t.Fatal("ParseAny() failed on a bbox_2d payload")
	}
	if !closeEnough(box.XMin, 0.1) || !closeEnough(box.YMin, 0.2) || !closeEnough(box.XMax, 0.5) || !closeEnough(box.YMax, 0.6) {
		t.Fatalf("ParseAny() = %+v, want {0.1,0.2,0.5,0.6}", box)
	}
}

func TestParseAnyCornersSplitScaledTo1000(t *testing.T) {
	box, ok := ParseAny([]byte(`{"xmin": [50], "ymin": [100], "xmax": [250], "ymax": [300]}`))
	if !ok {
		t.Fatal("ParseAny() failed on a cornersSplit payload")
	}
	if !closeEnough(box.XMin, 0.05) || !closeEnough(box.YMin, 0.1) || !closeEnough(box.XMax, 0.25) || !closeEnough(box.YMax, 0.3) {
		t.Fatalf("ParseAny() = %+v, want {0.05,0.1,0.25,0.3}", box)
	}
}

func TestParseAnyRejectsDegenerateValues(t *testing.T) {
	if _, ok := ParseAny([]byte(`[-5, 200, 300, 400]`)); ok {
		t.Fatal("ParseAny() accepted a negative out-of-range corner")
	}
	if _, ok := ParseAny([]byte(`[100, 200, 2000, 400]`)); ok {
		t.Fatal("ParseAny() accepted a corner beyond the 0-1000 scale")
	}
}

func TestParseAnyRejectsUnrecognizedJSON(t *testing.T) {
	if _, ok := ParseAny([]byte(`{"unrelated": true}`)); ok {
		t.Fatal("ParseAny() should not match an unrecognized JSON shape")
	}
}

func TestParseAnyFallsThroughToLaterEncodings(t *testing.T) {
	// Not a bare array, so parseCornersArray fails; not a bbox_2d object
	// either, so only cornersSplit should match.
	box, ok := ParseAny([]byte(`{"xmin": [10], "ymin": [10], "xmax": [90], "ymax": [90]}`))
	if !ok {
		t.Fatal("ParseAny() should fall through to the cornersSplit parser")
	}
	if !closeEnough(box.XMin, 0.01) || !closeEnough(box.YMax, 0.09) {
		t.Fatalf("ParseAny() = %+v, want {0.01, _, _, 0.09}", box)
	}
}
