package emitter

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/structlog/internal/pkg/pkgmetrics"
	"github.com/shandysiswandi/structlog/internal/pkg/pkguid"
)

// DefaultInterval is the pause between two entries when none is configured.
const DefaultInterval = 10 * time.Second

// Emitter writes a "Logging step" entry with an increasing counter at a fixed
// interval, outside of any request.
type Emitter struct {
	id       int64
	interval time.Duration
}

func New(interval time.Duration, ids pkguid.NumberID) *Emitter {
	if interval <= 0 {
		interval = DefaultInterval
	}

	var id int64
	if ids != nil {
		id = ids.Generate()
	}

	return &Emitter{id: id, interval: interval}
}

// Run emits the first entry immediately, then one per interval, until ctx is
// canceled. It returns ctx.Err().
func (e *Emitter) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for step := 0; ; step++ {
		slog.InfoContext(ctx, "Logging step", "step", step, "emitter.id", e.id)
		pkgmetrics.EmitterStepsTotal.Inc()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
