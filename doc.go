// Package markerclean implements a deterministic, synchronous engine that
// removes hand-drawn annotation marks (boxes, circles, arrows, strokes)
// from images. See Clean for the entry point.
//
// The engine never performs I/O or holds state across calls; callers own
// concurrency (run multiple Clean calls in parallel on independent images)
// and cancellation (via the passed context.Context).
package markerclean
