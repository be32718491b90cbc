package service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jobpulse/jobs-api/internal/core"
)

// Probe status values reported per dependency and for the aggregate.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusDegraded  = "degraded"
)

// DefaultProbeTimeout bounds each dependency check independently so one
// stalled dependency cannot mask the state of the others.
const DefaultProbeTimeout = 2 * time.Second

// ServiceStatus describes the outcome of a single dependency probe.
type ServiceStatus struct {
	Status         string  `json:"status"`
	ResponseTimeMS float64 `json:"response_time_ms"`
	Error          string  `json:"error,omitempty"`
}

// HealthReport is the aggregate health payload. Status is degraded when any
// dependency probe fails; the API entry itself is always healthy because a
// served request proves the process is up.
type HealthReport struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Services  map[string]ServiceStatus `json:"services"`
}

// Healthy reports whether every dependency probe succeeded.
func (r *HealthReport) Healthy() bool {
	return r.Status == StatusHealthy
}

// HealthServiceOptions groups dependencies for HealthService.
type HealthServiceOptions struct {
	DB           core.DatabaseProber
	Cache        core.CachePinger
	Logger       *slog.Logger
	ProbeTimeout time.Duration
	Now          func() time.Time
}

// HealthService probes the database and cache concurrently and aggregates
// the results into a single report.
type HealthService struct {
	db           core.DatabaseProber
	cache        core.CachePinger
	logger       *slog.Logger
	probeTimeout time.Duration
	now          func() time.Time
}

// NewHealthService constructs a new HealthService.
func NewHealthService(opts HealthServiceOptions) *HealthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.ProbeTimeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &HealthService{
		db:           opts.DB,
		cache:        opts.Cache,
		logger:       logger,
		probeTimeout: timeout,
		now:          now,
	}
}

// Check runs the database and cache probes in parallel and returns the
// combined report. A failed probe downgrades the aggregate status but never
// returns an error; the report carries the failure detail.
func (s *HealthService) Check(ctx context.Context) *HealthReport {
	var dbStatus, cacheStatus ServiceStatus

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		dbStatus = s.probe(gctx, "database", s.probeDatabase)
		return nil
	})
	g.Go(func() error {
		cacheStatus = s.probe(gctx, "redis", s.probeCache)
		return nil
	})
	// Probes report failures through their status, never through the group.
	_ = g.Wait()

	report := &HealthReport{
		Status:    StatusHealthy,
		Timestamp: s.now().UTC(),
		Services: map[string]ServiceStatus{
			"database": dbStatus,
			"redis":    cacheStatus,
			"api":      {Status: StatusHealthy},
		},
	}
	if dbStatus.Status != StatusHealthy || cacheStatus.Status != StatusHealthy {
		report.Status = StatusDegraded
	}
	return report
}

func (s *HealthService) probe(ctx context.Context, name string, fn func(context.Context) error) ServiceStatus {
	probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()

	start := s.now()
	err := fn(probeCtx)
	elapsed := s.now().Sub(start)

	status := ServiceStatus{
		Status:         StatusHealthy,
		ResponseTimeMS: float64(elapsed.Microseconds()) / 1000.0,
	}
	if err != nil {
		s.logger.WarnContext(ctx, "dependency probe failed", "service", name, "error", err)
		status.Status = StatusUnhealthy
		status.Error = err.Error()
	}
	return status
}

func (s *HealthService) probeDatabase(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "SELECT 1")
	return err
}

func (s *HealthService) probeCache(ctx context.Context) error {
	return s.cache.Ping(ctx).Err()
}
