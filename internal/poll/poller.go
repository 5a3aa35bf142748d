// Package poll runs a periodic task tied to a context. It backs the live
// views: each open stream owns one runner, cancelled when the client goes
// away.
package poll

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fixer-market/fixer-web/internal/metrics"
)

// Runner invokes a function immediately and then on a fixed interval until
// its context is cancelled.
type Runner struct {
	name     string
	interval time.Duration
	logger   zerolog.Logger
}

func NewRunner(name string, interval time.Duration, logger zerolog.Logger) *Runner {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &Runner{name: name, interval: interval, logger: logger}
}

// Run blocks until ctx is done. fn runs once up front, then once per tick.
// A failing tick is logged and the loop keeps going; transient backend
// hiccups must not kill an open stream.
func (r *Runner) Run(ctx context.Context, fn func(context.Context) error) {
	r.tick(ctx, fn)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.tick(ctx, fn)
		}
	}
}

func (r *Runner) tick(ctx context.Context, fn func(context.Context) error) {
	if ctx.Err() != nil {
		return
	}
	metrics.PollTicksTotal.WithLabelValues(r.name).Inc()
	if err := fn(ctx); err != nil && ctx.Err() == nil {
		r.logger.Warn().Err(err).Str("stream", r.name).Msg("poll tick failed")
	}
}
