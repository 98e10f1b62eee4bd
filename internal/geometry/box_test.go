package geometry

import "testing"

func TestNormBoxNormalizeClampsAndSorts(t *testing.T) {
	b := NormBox{XMin: 1.2, YMin: 0.8, XMax: -0.1, YMax: 0.2}
	got := b.Normalize()
	want := NormBox{XMin: 0, YMin: 0.2, XMax: 1, YMax: 0.8}
	if got != want {
		t.Fatalf("Normalize() = %+v, want %+v", got, want)
	}
}

func TestNormBoxToPixRect(t *testing.T) {
	b := NormBox{XMin: 0.1, YMin: 0.2, XMax: 0.5, YMax: 0.6}
	r := b.ToPixRect(100, 100)
	if r.X1 != 10 || r.Y1 != 20 || r.X2 != 50 || r.Y2 != 60 {
		t.Fatalf("ToPixRect() = %+v", r)
	}
}

func TestNormBoxSwapped(t *testing.T) {
	b := NormBox{XMin: 0.1, YMin: 0.2, XMax: 0.3, YMax: 0.4}
	s := b.Swapped()
	want := NormBox{XMin: 0.2, YMin: 0.1, XMax: 0.4, YMax: 0.3}
	if s != want {
		t.Fatalf("Swapped() = %+v, want %+v", s, want)
	}
}

func TestPixRectAreaDegenerate(t *testing.T) {
	r := PixRect{X1: 5, Y1: 5, X2: 5, Y2: 10}
	if r.Area() != 0 {
		t.Fatalf("Area() of degenerate rect = %d, want 0", r.Area())
	}
}

func TestIoUIdenticalIsOne(t *testing.T) {
	r := PixRect{X1: 0, Y1: 0, X2: 10, Y2: 10}
	if got := IoU(r, r); got != 1.0 {
		t.Fatalf("IoU(r,r) = %v, want 1.0", got)
	}
}

func TestIoUDisjointIsZero(t *testing.T) {
	a := PixRect{X1: 0, Y1: 0, X2: 10, Y2: 10}
	b := PixRect{X1: 100, Y1: 100, X2: 110, Y2: 110}
	if got := IoU(a, b); got != 0 {
		t.Fatalf("IoU(disjoint) = %v, want 0", got)
	}
}

func TestUnion(t *testing.T) {
	a := PixRect{X1: 0, Y1: 0, X2: 10, Y2: 10}
	b := PixRect{X1: 5, Y1: 5, X2: 20, Y2: 20}
	u := Union(a, b)
	want := PixRect{X1: 0, Y1: 0, X2: 20, Y2: 20}
	if u != want {
		t.Fatalf("Union() = %+v, want %+v", u, want)
	}
}

func TestMergeBoxesHighOverlap(t *testing.T) {
	a := PixRect{X1: 0, Y1: 0, X2: 100, Y2: 100}
	b := PixRect{X1: 5, Y1: 5, X2: 105, Y2: 105}
	merged := MergeBoxes([]PixRect{a, b})
	if len(merged) != 1 {
		t.Fatalf("MergeBoxes() produced %d boxes, want 1", len(merged))
	}
}

func TestMergeBoxesNoOverlapKeepsBoth(t *testing.T) {
	a := PixRect{X1: 0, Y1: 0, X2: 10, Y2: 10}
	b := PixRect{X1: 1000, Y1: 1000, X2: 1010, Y2: 1010}
	merged := MergeBoxes([]PixRect{a, b})
	if len(merged) != 2 {
		t.Fatalf("MergeBoxes() produced %d boxes, want 2", len(merged))
	}
}

func TestMergeBoxesEmpty(t *testing.T) {
	if merged := MergeBoxes(nil); len(merged) != 0 {
		t.Fatalf("MergeBoxes(nil) = %v, want empty", merged)
	}
}
