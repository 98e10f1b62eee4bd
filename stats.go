package markerclean

import "github.com/markerclean/engine/internal/paint"

// AxisSwapDecision records one Painter axis-swap sanity-check evaluation.
// Re-exported from internal/paint so callers never need to import an
// internal package to read Stats.
type AxisSwapDecision = paint.AxisSwapDecision

// Stats reports what Clean did to an image.
type Stats struct {
	ChangedPixels  int
	FallbackPixels int
	TotalPixels    int
	DurationMs     int64

	ComplexScene bool
	TextureScore float64

	// AxisSwapDecisions records every axis-swap sanity-check evaluation the
	// Painter made; callers can inspect these rather than having the
	// decision silently made and forgotten.
	AxisSwapDecisions []AxisSwapDecision
}
