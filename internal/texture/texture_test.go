package texture

import (
	"testing"

	"github.com/markerclean/engine/internal/calibration"
	"github.com/markerclean/engine/internal/raster"
)

func TestEstimateFlatImageIsNotComplex(t *testing.T) {
	buf := raster.NewBuffer(64, 64)
	for i := 0; i < len(buf.Pix); i += 4 {
		buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2], buf.Pix[i+3] = 200, 200, 200, 255
	}
	score := Estimate(buf, calibration.Default())
	if score.Complex {
		t.Fatalf("Estimate(flat image) = %+v, want Complex=false", score)
	}
	if score.MeanGradient != 0 {
		t.Fatalf("Estimate(flat image).MeanGradient = %v, want 0", score.MeanGradient)
	}
}

func TestEstimateDividesAndCapsMeanGradient(t *testing.T) {
	buf := raster.NewBuffer(64, 64)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			v := uint8(0)
			if (x+y)%2 == 0 {
				v = 255
			}
			buf.SetRGB(x, y, v, v, v)
		}
	}
	small, _ := raster.DownscaleNearest(buf, 320)
	rawMean := raster.MeanGradient(raster.SobelMagnitude(small))
	score := Estimate(buf, calibration.Default())
	if score.MeanGradient >= rawMean {
		t.Fatalf("Estimate().MeanGradient = %v, want less than the raw mean %v (the /12 divide)", score.MeanGradient, rawMean)
	}
	if score.MeanGradient > 100 {
		t.Fatalf("Estimate().MeanGradient = %v, want capped at 100", score.MeanGradient)
	}
}

func TestEstimateCheckerboardIsComplex(t *testing.T) {
	// 2x2-pixel cells: a 1-pixel checkerboard has identical left/right and
	// top/bottom neighbors, so its interior Sobel response is zero.
	buf := raster.NewBuffer(64, 64)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			v := uint8(0)
			if (x/2+y/2)%2 == 0 {
				v = 255
			}
			buf.SetRGB(x, y, v, v, v)
		}
	}
	score := Estimate(buf, calibration.Default())
	if !score.Complex {
		t.Fatalf("Estimate(checkerboard) = %+v, want Complex=true", score)
	}
}
