// Package texture implements the scene complexity estimator: a cheap
// downscaled Sobel-gradient score used to decide whether the Painter and
// mask detectors should favor conservative or aggressive thresholds.
package texture

import (
	"github.com/markerclean/engine/internal/calibration"
	"github.com/markerclean/engine/internal/raster"
)

// Score is the scene's mean Sobel gradient magnitude, computed on a
// nearest-neighbor downscale to bound cost on large images.
type Score struct {
	MeanGradient float64
	Complex      bool
}

// Estimate downscales buf to at most 320px wide, computes the mean Sobel
// gradient magnitude divided by 12 and capped at 100, and compares that
// scalar against the calibration table's TextureComplexity threshold. The
// /12 divide and cap keep the score in the same ~0-100 range the threshold
// (default 15) was calibrated against; comparing the raw, undivided mean
// would flag nearly every textured photo as complex.
func Estimate(buf *raster.Buffer, cal calibration.Table) Score {
	small, _ := raster.DownscaleNearest(buf, 320)
	mags := raster.SobelMagnitude(small)
	mean := raster.MeanGradient(mags) / 12
	if mean > 100 {
		mean = 100
	}
	return Score{
		MeanGradient: mean,
		Complex:      mean > cal.TextureComplexity,
	}
}
