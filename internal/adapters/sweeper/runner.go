// Package sweeper runs the periodic job that deactivates stale listings.
// A listing counts as stale when it has not been re-scraped within the
// configured retention window; the sweep flips is_active off, it never deletes.
package sweeper

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jobpulse/jobs-api/internal/core"
	"github.com/jobpulse/jobs-api/internal/observability/statsd"
)

// RunnerOptions groups dependencies for Runner.
type RunnerOptions struct {
	Deactivator core.StaleJobDeactivator
	Logger      *slog.Logger
	Metrics     statsd.Sink
	// Spec is a cron spec, e.g. "@every 6h".
	Spec string
	// MaxAge is the retention window for active listings.
	MaxAge time.Duration
	// BatchSize caps rows touched per repository call.
	BatchSize int
}

// Runner wraps robfig/cron and sweeps stale listings on a schedule.
type Runner struct {
	deactivator core.StaleJobDeactivator
	logger      *slog.Logger
	metrics     statsd.Sink
	cron        *cron.Cron
	spec        string
	maxAge      time.Duration
	batchSize   int
}

const (
	defaultSpec      = "@every 6h"
	defaultMaxAge    = 30 * 24 * time.Hour
	defaultBatchSize = 500
)

// NewRunner constructs a Runner. The deactivator is required.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Deactivator == nil {
		return nil, errors.New("StaleJobDeactivator is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	spec := opts.Spec
	if spec == "" {
		spec = defaultSpec
	}
	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = defaultMaxAge
	}
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Runner{
		deactivator: opts.Deactivator,
		logger:      logger.With("component", "stale_sweeper"),
		metrics:     opts.Metrics,
		cron:        cron.New(),
		spec:        spec,
		maxAge:      maxAge,
		batchSize:   batchSize,
	}, nil
}

// Start registers the sweep on the cron schedule and starts it. The context
// bounds each sweep, not the scheduler lifetime; call Stop to shut down.
func (r *Runner) Start(ctx context.Context) error {
	if _, err := r.cron.AddFunc(r.spec, func() {
		r.Sweep(ctx)
	}); err != nil {
		return err
	}
	r.cron.Start()
	r.logger.InfoContext(ctx, "stale sweeper started",
		"spec", r.spec, "max_age", r.maxAge, "batch_size", r.batchSize)
	return nil
}

// Stop shuts the scheduler down and waits for a running sweep to finish.
func (r *Runner) Stop() {
	<-r.cron.Stop().Done()
	r.logger.Info("stale sweeper stopped")
}

// Sweep deactivates stale listings in batches until none remain, returning
// the total number of listings deactivated.
func (r *Runner) Sweep(ctx context.Context) int64 {
	start := time.Now()
	var total int64
	for {
		n, err := r.deactivator.DeactivateStale(ctx, r.maxAge, r.batchSize)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				r.logger.Debug("sweep cancelled", "error", err, "deactivated", total)
			} else {
				r.logger.ErrorContext(ctx, "sweep failed", "error", err, "deactivated", total)
			}
			r.emitSweepMetrics(total, time.Since(start), err)
			return total
		}
		total += n
		if n == 0 {
			break
		}
		if ctx.Err() != nil {
			r.emitSweepMetrics(total, time.Since(start), ctx.Err())
			return total
		}
	}

	if total > 0 {
		r.logger.InfoContext(ctx, "deactivated stale listings", "count", total, "max_age", r.maxAge)
	}
	r.emitSweepMetrics(total, time.Since(start), nil)
	return total
}

func (r *Runner) emitSweepMetrics(count int64, elapsed time.Duration, err error) {
	if r.metrics == nil {
		return
	}
	result := "success"
	switch {
	case err != nil:
		result = "error"
	case count == 0:
		result = "noop"
	}
	tags := map[string]string{"result": result}
	r.metrics.Count("sweeper.runs", 1, tags)
	r.metrics.Timing("sweeper.duration", elapsed, tags)
	if count > 0 {
		r.metrics.Count("sweeper.deactivated", count, nil)
	}
}
