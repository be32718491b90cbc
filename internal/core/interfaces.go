package core

import (
	"context"
	"database/sql"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jobpulse/jobs-api/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// JobRepository defines the interface for job listing data operations.
type JobRepository interface {
	Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error)
	GetByID(ctx context.Context, id int64) (*model.Job, error)
	GetByExternalID(ctx context.Context, externalID string, platform model.Platform) (*model.Job, error)
	List(ctx context.Context, opts model.JobsListOptions) ([]*model.Job, error)
	Update(ctx context.Context, id int64, req model.UpdateJobRequest) (*model.Job, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// StaleJobDeactivator marks listings that have not been re-scraped recently as inactive.
// Implemented by the job repository and consumed by the sweeper runner.
type StaleJobDeactivator interface {
	DeactivateStale(ctx context.Context, maxAge time.Duration, batchSize int) (int64, error)
}

// DatabaseProber verifies database reachability with a trivial round-trip query.
// *sql.DB satisfies this interface.
type DatabaseProber interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CachePinger verifies cache reachability. redis.UniversalClient satisfies this interface.
type CachePinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}
