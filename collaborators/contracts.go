// Package collaborators declares the contracts for systems kept deliberately
// external to the cleaning pipeline: an AI box provider, a batch scheduler,
// a report generator, and a config store. None are implemented here — these
// are interfaces only, so the core pipeline never imports a concrete AI
// client, queue, or storage backend.
package collaborators

import (
	"context"

	"github.com/markerclean/engine/internal/calibration"
	"github.com/markerclean/engine/internal/geometry"
)

// Job describes one image to be cleaned, for a BatchScheduler's queue.
type Job struct {
	ImageID string
	Image   []byte
	Boxes   []geometry.NormBox
}

// Ticket is a BatchScheduler's handle for tracking a submitted Job.
type Ticket struct {
	JobID string
}

// AIProvider returns an ordered list of normalized boxes for an image, or an
// empty list. Untrusted input: the engine validates and clamps everything
// it receives.
type AIProvider interface {
	Boxes(ctx context.Context, image []byte) ([]geometry.NormBox, error)
}

// BatchScheduler invokes the core once per image; it owns retries,
// concurrency, and budget accounting, none of which the core is aware of.
type BatchScheduler interface {
	Submit(ctx context.Context, job Job) (Ticket, error)
}

// Stats mirrors the root package's Stats shape without importing it, to
// avoid a collaborators -> markerclean -> collaborators cycle. It is a
// distinct type with a subset of markerclean.Stats' fields (no DurationMs
// or AxisSwapDecisions); callers copy the matching fields across.
type Stats struct {
	ChangedPixels, FallbackPixels, TotalPixels int
	ComplexScene                               bool
	TextureScore                               float64
}

// ReportGenerator renders a human-facing report from statistics plus the
// original and cleaned image bytes.
type ReportGenerator interface {
	Render(stats Stats, input, output []byte) ([]byte, error)
}

// ConfigStore persists and retrieves a calibration table, e.g. to let an
// operator tune thresholds without a redeploy.
type ConfigStore interface {
	Load() (calibration.Table, error)
	Save(calibration.Table) error
}

// Logger is the minimal structured-logging contract cmd/markerclean and the
// core's optional best-effort notices (see markerclean.Options.OnWarning)
// are written against, so the core itself never imports a logging library.
type Logger interface {
	Warn(msg string, kv ...any)
	Info(msg string, kv ...any)
}
