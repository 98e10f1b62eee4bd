package raster

import (
	"image"
	"image/color"
	"testing"
)

func TestBufferSetAndAtRoundTrip(t *testing.T) {
	buf := NewBuffer(10, 10)
	buf.SetRGB(3, 4, 10, 20, 30)
	r, g, b := buf.At(3, 4)
	if r != 10 || g != 20 || b != 30 {
		t.Fatalf("At(3,4) = (%d,%d,%d), want (10,20,30)", r, g, b)
	}
}

func TestBufferAtClampsOutOfBounds(t *testing.T) {
	buf := NewBuffer(10, 10)
	buf.SetRGB(9, 9, 1, 2, 3)
	r, g, b := buf.At(100, 100)
	if r != 1 || g != 2 || b != 3 {
		t.Fatalf("At(100,100) = (%d,%d,%d), want the clamped corner pixel (1,2,3)", r, g, b)
	}
}

func TestBufferValidateDetectsMismatch(t *testing.T) {
	buf := &Buffer{Pix: make([]byte, 10), W: 10, H: 10}
	if err := buf.Validate(); err == nil {
		t.Fatal("Validate() expected an error for a mis-sized Pix slice")
	}
}

func TestFromNRGBANormalizesOrigin(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 15, 15))
	src.Set(7, 7, color.NRGBA{R: 9, G: 8, B: 7, A: 255})
	buf := FromNRGBA(src)
	if buf.W != 10 || buf.H != 10 {
		t.Fatalf("FromNRGBA() size = %dx%d, want 10x10", buf.W, buf.H)
	}
	r, g, b := buf.At(2, 2)
	if r != 9 || g != 8 || b != 7 {
		t.Fatalf("FromNRGBA() pixel(2,2) = (%d,%d,%d), want (9,8,7)", r, g, b)
	}
}

func TestToNRGBARoundTrip(t *testing.T) {
	buf := NewBuffer(4, 4)
	buf.SetRGB(1, 1, 100, 150, 200)
	// NewBuffer zeroes alpha too, and RGBA() premultiplies by it.
	buf.Pix[buf.Offset(1, 1)+3] = 255
	img := buf.ToNRGBA()
	r, g, b, _ := img.At(1, 1).RGBA()
	if r>>8 != 100 || g>>8 != 150 || b>>8 != 200 {
		t.Fatalf("ToNRGBA() pixel(1,1) = (%d,%d,%d), want (100,150,200)", r>>8, g>>8, b>>8)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	buf := NewBuffer(4, 4)
	buf.SetRGB(0, 0, 1, 1, 1)
	clone := buf.Clone()
	clone.SetRGB(0, 0, 2, 2, 2)
	r, _, _ := buf.At(0, 0)
	if r != 1 {
		t.Fatal("Clone() should be independent of the original buffer")
	}
}

func TestChangeMapSetGetCount(t *testing.T) {
	cm := NewChangeMap(5, 5)
	cm.Set(5, 2, 2)
	cm.Set(5, 3, 3)
	if !cm.Get(5, 2, 2) {
		t.Fatal("ChangeMap.Get() should report true for a set pixel")
	}
	if cm.Count() != 2 {
		t.Fatalf("ChangeMap.Count() = %d, want 2", cm.Count())
	}
}

func TestMaskSetClearGetCount(t *testing.T) {
	m := NewMask(5, 5)
	m.Set(5, 1, 1)
	m.Set(5, 2, 2)
	if m.Count() != 2 {
		t.Fatalf("Mask.Count() = %d, want 2", m.Count())
	}
	m.Clear(5, 1, 1)
	if m.Get(5, 1, 1) {
		t.Fatal("Mask.Get() should report false after Clear()")
	}
	if m.Count() != 1 {
		t.Fatalf("Mask.Count() after Clear() = %d, want 1", m.Count())
	}
}

func TestMaskOrUnionsInPlace(t *testing.T) {
	dst := NewMask(4, 4)
	dst.Set(4, 0, 0)
	src := NewMask(4, 4)
	src.Set(4, 1, 1)
	dst.Or(4, src)
	if !dst.Get(4, 0, 0) || !dst.Get(4, 1, 1) {
		t.Fatal("Mask.Or() should keep existing bits and add the source's")
	}
}
