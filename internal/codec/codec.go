// Package codec handles format sniffing and decode/encode for JPEG, PNG,
// and WEBP, detected from magic bytes rather than file extension since the
// core only ever sees bytes.
package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/deepteams/webp"

	"github.com/markerclean/engine/internal/calibration"
	"github.com/markerclean/engine/internal/raster"
)

// Format is one of the three container formats the engine understands.
type Format int

const (
	FormatUnknown Format = iota
	FormatJPEG
	FormatPNG
	FormatWEBP
)

func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatPNG:
		return "png"
	case FormatWEBP:
		return "webp"
	default:
		return "unknown"
	}
}

var (
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
	pngMagic  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
)

// Sniff detects a container format from its leading bytes.
func Sniff(data []byte) Format {
	if len(data) >= 3 && bytes.Equal(data[:3], jpegMagic) {
		return FormatJPEG
	}
	if len(data) >= 8 && bytes.Equal(data[:8], pngMagic) {
		return FormatPNG
	}
	if len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")) {
		return FormatWEBP
	}
	return FormatUnknown
}

// Decode sniffs the format, decodes to a raster.Buffer, and reports which
// format was detected (so Encode can re-encode in the same container).
func Decode(data []byte) (*raster.Buffer, Format, error) {
	format := Sniff(data)
	if format == FormatUnknown {
		return nil, format, fmt.Errorf("codec: unrecognized image format (not JPEG/PNG/WEBP magic)")
	}

	var img image.Image
	var err error
	switch format {
	case FormatJPEG:
		img, err = jpeg.Decode(bytes.NewReader(data))
	case FormatPNG:
		img, err = png.Decode(bytes.NewReader(data))
	case FormatWEBP:
		img, err = webp.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, format, fmt.Errorf("codec: decoding %s: %w", format, err)
	}
	if img.Bounds().Dx() <= 0 || img.Bounds().Dy() <= 0 {
		return nil, format, fmt.Errorf("codec: zero-sized image")
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		b := img.Bounds()
		converted := image.NewNRGBA(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				converted.Set(x, y, img.At(x, y))
			}
		}
		nrgba = converted
	}
	return raster.FromNRGBA(nrgba), format, nil
}

// Encode re-encodes buf in the given container format, at the calibrated
// JPEG/WEBP quality, falling back to PNG for anything else.
func Encode(buf *raster.Buffer, format Format, cal calibration.Table) ([]byte, error) {
	img := buf.ToNRGBA()
	var out bytes.Buffer
	switch format {
	case FormatJPEG:
		// image/jpeg only exposes Quality and always writes color images with
		// 4:2:0 chroma subsampling; short of a custom encoder there is no way
		// to get 4:4:4 through the standard library.
		err := jpeg.Encode(&out, img, &jpeg.Options{Quality: cal.JPEGQuality})
		if err != nil {
			return nil, fmt.Errorf("codec: encoding jpeg: %w", err)
		}
	case FormatWEBP:
		opts := webp.DefaultOptions()
		opts.Quality = cal.WebPQuality
		if err := webp.Encode(&out, img, opts); err != nil {
			return nil, fmt.Errorf("codec: encoding webp: %w", err)
		}
	default:
		if err := png.Encode(&out, img); err != nil {
			return nil, fmt.Errorf("codec: encoding png: %w", err)
		}
	}
	return out.Bytes(), nil
}
