package calibration

import (
	"fmt"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadOverrides reads a `.env`-style file of MARKERCLEAN_* keys and applies
// them on top of Default(). Config persistence itself is left to the
// caller (a ConfigStore implementation, a flag, whatever) — this is a
// convenience for cmd/markerclean and tests, built on godotenv.Read so
// comments and quoting come for free.
func LoadOverrides(path string) (Table, error) {
	t := Default()
	env, err := godotenv.Read(path)
	if err != nil {
		return t, fmt.Errorf("calibration: reading overrides: %w", err)
	}
	if v, ok := env["MARKERCLEAN_SCHEMA_VERSION"]; ok {
		if !CompatibleSchema(v) {
			return t, fmt.Errorf("calibration: override schema %q incompatible with built-in %q", v, t.SchemaVersion)
		}
		t.SchemaVersion = v
	}
	applyFloat(env, "MARKERCLEAN_TEXTURE_COMPLEXITY", &t.TextureComplexity)
	applyFloat(env, "MARKERCLEAN_HUGE_BOX_AREA_RATIO", &t.HugeBoxAreaRatio)
	applyFloat(env, "MARKERCLEAN_HUGE_BOX_MIN_SCORE_COMPLEX", &t.HugeBoxMinScoreComplex)
	applyFloat(env, "MARKERCLEAN_HUGE_BOX_MIN_SCORE_SIMPLE", &t.HugeBoxMinScoreSimple)
	applyFloat(env, "MARKERCLEAN_INPAINT_SAMPLE_RANGE_3", &t.InpaintSampleRange3)
	applyFloat(env, "MARKERCLEAN_INPAINT_SAMPLE_RANGE_2", &t.InpaintSampleRange2)
	applyFloat(env, "MARKERCLEAN_MAX_COMPONENT_AREA_RATIO", &t.MaxComponentAreaRatio)
	applyFloat(env, "MARKERCLEAN_MAX_FILL_RATIO", &t.MaxFillRatio)
	applyFloat(env, "MARKERCLEAN_STROKE_MAX_FILL", &t.StrokeMaxFillRatio)
	if v, ok := env["MARKERCLEAN_INPAINT_ALGORITHM"]; ok {
		switch v {
		case "idw":
			t.InpaintAlgorithm = AlgoWeightedIDW
		case "patchmatch":
			t.InpaintAlgorithm = AlgoPatchMatch
		default:
			return t, fmt.Errorf("calibration: unknown inpaint algorithm %q", v)
		}
	}
	return t, nil
}

func applyFloat(env map[string]string, key string, dst *float64) {
	if v, ok := env[key]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}
