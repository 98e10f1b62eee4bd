package codec

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/markerclean/engine/internal/calibration"
)

func TestSniffDetectsJPEG(t *testing.T) {
	data := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}
	if got := Sniff(data); got != FormatJPEG {
		t.Fatalf("Sniff(jpeg magic) = %v, want jpeg", got)
	}
}

func TestSniffDetectsPNG(t *testing.T) {
	data := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0}
	if got := Sniff(data); got != FormatPNG {
		t.Fatalf("Sniff(png magic) = %v, want png", got)
	}
}

func TestSniffDetectsWEBP(t *testing.T) {
	data := append([]byte("RIFF\x00\x00\x00\x00WEBP"), 0, 0)
	if got := Sniff(data); got != FormatWEBP {
		t.Fatalf("Sniff(webp magic) = %v, want webp", got)
	}
}

func TestSniffUnknownForGarbage(t *testing.T) {
	if got := Sniff([]byte{1, 2, 3, 4}); got != FormatUnknown {
		t.Fatalf("Sniff(garbage) = %v, want unknown", got)
	}
}

func samplePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 60), G: uint8(y * 60), B: 10, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test fixture: %v", err)
	}
	return buf.Bytes()
}

func TestDecodePNGRoundTrip(t *testing.T) {
	data := samplePNG(t)
	buf, format, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if format != FormatPNG {
		t.Fatalf("Decode() format = %v, want png", format)
	}
	if buf.W != 4 || buf.H != 4 {
		t.Fatalf("Decode() size = %dx%d, want 4x4", buf.W, buf.H)
	}
	r, g, b := buf.At(2, 1)
	if r != 120 || g != 60 || b != 10 {
		t.Fatalf("Decode() pixel(2,1) = (%d,%d,%d), want (120,60,10)", r, g, b)
	}

	out, err := Encode(buf, format, calibration.Default())
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	buf2, _, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode(re-encoded) error: %v", err)
	}
	r2, g2, b2 := buf2.At(2, 1)
	if r2 != r || g2 != g || b2 != b {
		t.Fatalf("round-trip pixel(2,1) = (%d,%d,%d), want (%d,%d,%d)", r2, g2, b2, r, g, b)
	}
}

func TestDecodeRejectsUnrecognizedFormat(t *testing.T) {
	if _, _, err := Decode([]byte{1, 2, 3, 4, 5, 6, 7, 8}); err == nil {
		t.Fatal("Decode() expected an error for unrecognized bytes")
	}
}
