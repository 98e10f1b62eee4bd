// Package calibration collects every tunable constant the pipeline uses
// into one immutable value, passed by the caller into each Clean call
// rather than held as package-level state.
package calibration

// InpaintAlgo selects between the two inpainting algorithms, kept as a
// configuration choice rather than mixing.
type InpaintAlgo int

const (
	AlgoWeightedIDW InpaintAlgo = iota // Algorithm A: fast
	AlgoPatchMatch                     // Algorithm B: quality
)

// Table holds every calibration knob the pipeline's stages read from.
type Table struct {
	// Schema, for LoadOverrides compatibility checks (see version.go).
	SchemaVersion string

	TextureComplexity      float64 // default 15
	HugeBoxAreaRatio       float64 // default 0.20
	HugeBoxMinScoreComplex float64 // default 32
	HugeBoxMinScoreSimple  float64 // default 24
	InpaintSampleRange3    float64 // default 160
	InpaintSampleRange2    float64 // default 210
	MaxComponentAreaRatio  float64 // default 0.12
	MaxFillRatio           float64 // default 0.55
	StrokeMaxFillRatio     float64 // default 0.38

	// §4.1 classifier thresholds.
	MarkerMinSaturation float64 // 0.22
	MarkerMinMaxChannel int     // 30
	LikelyMarkMinMax    int     // 80
	LikelyMarkMinSat    float64 // 0.45
	LikelyMarkMinDiff   int     // 70
	CornerStrongMinMax  int     // 155
	CornerStrongMinDiff int     // 90
	InpaintStrongMinMax int     // 160
	InpaintStrongMinDiff int    // 95
	LineColorMinMax     int     // 150
	LineColorMinDiff    int     // 80
	OverlayRedMinR      int     // 160
	OverlayRedMaxGB     int     // 140
	OverlayRedRatio     float64 // 1.3
	OverlayStrongMinR   int     // 180
	OverlayStrongMinDiff int    // 70
	HSVMinValue         float64 // 100/255
	HSVMinSaturation    float64 // 0.55

	// §4.3 box detector geometry.
	RectDownscaleWidth     int // 720, or 960 if W>=2000
	RectDownscaleWidthWide int // 960
	RectWideThreshold      int // 2000
	MinComponentSide       int // 25
	MaxComponentSideFrac   float64 // 0.95
	ClosedFillMin          float64 // 0.04
	ClosedFillMax          float64 // 0.38
	EdgeTouchMargin        int     // 2
	BorderMargin           int     // 2
	RectMaxCandidates      int     // 12
	OverlayMaxCandidates   int     // 18
	OverlayDilation        int     // 2 (radius -> 5x5 kernel)
	OverlayMinEdgesTouched int     // 2
	OverlayRunMinAbs       float64 // 6
	OverlayRunMinFrac      float64 // 0.12
	RectPadMinAbs          float64 // 6
	RectPadFrac            float64 // 0.08

	// §4.4 mask detector geometry.
	CornerRunMin              int     // 8
	CornerSeedRadius          int     // 4 (Chebyshev)
	CornerDilation            int     // 2
	CornerBannerWideFrac      float64 // 0.7
	CornerBannerThinFrac      float64 // 0.12
	StrokeMinArea             int     // 12
	MaxStrokeAreaRatio        float64 // configurable, default 0.10
	EdgeBoxGradThreshold      float64 // 420
	EdgeBoxPadFrac            float64 // padPx, derived from box size

	// §4.5 painter geometry.
	BandMin                float64 // 4
	BandMax                float64 // 22
	BandFrac               float64 // 0.08
	HugeBandCap            float64 // 12
	EdgeSearchYMin         float64 // 40
	EdgeSearchYMax         float64 // 280
	EdgeSearchYFrac        float64 // 0.45
	RunRowThresholdMin     float64 // 60
	RunRowThresholdFrac    float64 // 0.22
	RunRowThresholdFracCon float64 // 0.28 conservative
	PerpBaseOffsetExtra    int     // 3 (perpendicular sample offset)
	PerpOffsetStep         int     // 2
	PerpOffsetMaxExtra     int     // 12
	DirectionalRadius      int     // 8
	SideDiffMax            int     // 140
	SideDiffMaxConservative int    // 110
	ForcePaintColorDiffMin int     // 72
	ForcePaintColorDiffMinConservative int // 90
	OutlierDiffThreshold   int     // 84
	OutlierDiffThresholdConservative int // 96
	RunMinAbs              float64 // 8
	RunMinFrac             float64 // 0.06
	StrongEdgeBandMin      float64 // 6
	StrongEdgeBandMax      float64 // 16
	StrongEdgeBandFrac     float64 // 0.06
	StrongEdgeBandPadFrac  float64 // 0.008
	StrongEdgeLumaContrastMin float64 // 22
	ColumnOverpaintRunMinAbs  float64 // 28
	ColumnOverpaintRunMinFrac float64 // 0.28
	ColumnOverpaintCountMinAbs  float64 // 36
	ColumnOverpaintCountMinFrac float64 // 0.22
	AxisSwapMinScore2        float64 // 12
	AxisSwapDominanceFactor  float64 // 2.0

	// §4.6 inpainter.
	InpaintAlgorithm      InpaintAlgo
	IDWMaxPasses          int // 4
	IDWMaxSamples         int // 6
	IDWMaxRadius          int // 12
	PatchSize             int // 5 (5x5)
	PatchSearchRadius     int // 40
	PatchSearchStep       int // 2
	PatchMinKnownNeighbors int // 4
	PatchSSDEarlyExit     float64 // 20
	PatchDistanceBias     float64 // 0.02
	PatchMaxPasses        int     // 10
	FallbackNeighborhoodA int     // 5 (5x5)
	FallbackNeighborhoodB int     // 13 (13x13)
	SmoothChangedRatioMax float64 // 0.35
	SmoothUnchangedWeightMin float64 // 2.0
	SmoothUnchangedWeightMax float64 // 3.0
	SmoothPasses          int     // 1 or 2

	// §4.7 orchestrator geometry.
	ROIFrameBandMin int // 10
	ROIFrameBandMax int // 34
	UsedRectsMax    int // 24

	// Output re-encode quality.
	JPEGQuality int // 98
	WebPQuality float32 // 95
}

// Default returns the pipeline's baseline calibration, assembled into one
// immutable value.
func Default() Table {
	return Table{
		SchemaVersion: "1.0.0",

		TextureComplexity:      15,
		HugeBoxAreaRatio:       0.20,
		HugeBoxMinScoreComplex: 32,
		HugeBoxMinScoreSimple:  24,
		InpaintSampleRange3:    160,
		InpaintSampleRange2:    210,
		MaxComponentAreaRatio:  0.12,
		MaxFillRatio:           0.55,
		StrokeMaxFillRatio:     0.38,

		MarkerMinSaturation:  0.22,
		MarkerMinMaxChannel:  30,
		LikelyMarkMinMax:     80,
		LikelyMarkMinSat:     0.45,
		LikelyMarkMinDiff:    70,
		CornerStrongMinMax:   155,
		CornerStrongMinDiff:  90,
		InpaintStrongMinMax:  160,
		InpaintStrongMinDiff: 95,
		LineColorMinMax:      150,
		LineColorMinDiff:     80,
		OverlayRedMinR:       160,
		OverlayRedMaxGB:      140,
		OverlayRedRatio:      1.3,
		OverlayStrongMinR:    180,
		OverlayStrongMinDiff: 70,
		HSVMinValue:          100.0 / 255.0,
		HSVMinSaturation:     0.55,

		RectDownscaleWidth:     720,
		RectDownscaleWidthWide: 960,
		RectWideThreshold:      2000,
		MinComponentSide:       25,
		MaxComponentSideFrac:   0.95,
		ClosedFillMin:          0.04,
		ClosedFillMax:          0.38,
		EdgeTouchMargin:        2,
		BorderMargin:           2,
		RectMaxCandidates:      12,
		OverlayMaxCandidates:   18,
		OverlayDilation:        2,
		OverlayMinEdgesTouched: 2,
		OverlayRunMinAbs:       6,
		OverlayRunMinFrac:      0.12,
		RectPadMinAbs:          6,
		RectPadFrac:            0.08,

		CornerRunMin:         8,
		CornerSeedRadius:     4,
		CornerDilation:       2,
		CornerBannerWideFrac: 0.7,
		CornerBannerThinFrac: 0.12,
		StrokeMinArea:        12,
		MaxStrokeAreaRatio:   0.10,
		EdgeBoxGradThreshold: 420,
		EdgeBoxPadFrac:       0.02,

		BandMin:                4,
		BandMax:                22,
		BandFrac:               0.08,
		HugeBandCap:            12,
		EdgeSearchYMin:         40,
		EdgeSearchYMax:         280,
		EdgeSearchYFrac:        0.45,
		RunRowThresholdMin:     60,
		RunRowThresholdFrac:    0.22,
		RunRowThresholdFracCon: 0.28,
		PerpBaseOffsetExtra:    3,
		PerpOffsetStep:         2,
		PerpOffsetMaxExtra:     12,
		DirectionalRadius:      8,
		SideDiffMax:            140,
		SideDiffMaxConservative: 110,
		ForcePaintColorDiffMin:  72,
		ForcePaintColorDiffMinConservative: 90,
		OutlierDiffThreshold:               84,
		OutlierDiffThresholdConservative:   96,
		RunMinAbs:                 8,
		RunMinFrac:                0.06,
		StrongEdgeBandMin:         6,
		StrongEdgeBandMax:         16,
		StrongEdgeBandFrac:        0.06,
		StrongEdgeBandPadFrac:     0.008,
		StrongEdgeLumaContrastMin: 22,
		ColumnOverpaintRunMinAbs:  28,
		ColumnOverpaintRunMinFrac: 0.28,
		ColumnOverpaintCountMinAbs:  36,
		ColumnOverpaintCountMinFrac: 0.22,
		AxisSwapMinScore2:           12,
		AxisSwapDominanceFactor:     2.0,

		InpaintAlgorithm:       AlgoWeightedIDW,
		IDWMaxPasses:           4,
		IDWMaxSamples:          6,
		IDWMaxRadius:           12,
		PatchSize:              5,
		PatchSearchRadius:      40,
		PatchSearchStep:        2,
		PatchMinKnownNeighbors: 4,
		PatchSSDEarlyExit:      20,
		PatchDistanceBias:      0.02,
		PatchMaxPasses:         10,
		FallbackNeighborhoodA:  5,
		FallbackNeighborhoodB:  13,
		SmoothChangedRatioMax:  0.35,
		SmoothUnchangedWeightMin: 2.0,
		SmoothUnchangedWeightMax: 3.0,
		SmoothPasses:             2,

		ROIFrameBandMin: 10,
		ROIFrameBandMax: 34,
		UsedRectsMax:    24,

		JPEGQuality: 98,
		WebPQuality: 95,
	}
}
