package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jobpulse/jobs-api/internal/data/pgxutil"
	"github.com/jobpulse/jobs-api/internal/domain/model"
	apperrors "github.com/jobpulse/jobs-api/internal/errors"
	"github.com/jobpulse/jobs-api/internal/observability/metrics"
	"github.com/jobpulse/jobs-api/internal/observability/statsd"
)

// Pagination bounds enforced by List.
const (
	minListLimit = 1
	maxListLimit = 1000
)

// provenanceConstraint is the unique index guarding (external_id, platform).
const provenanceConstraint = "uq_jobs_external_id_platform"

// JobRepo provides database operations for scraped job listings.
type JobRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
	metrics      statsd.Sink
}

// RepoConfig groups optional JobRepo dependencies.
type RepoConfig struct {
	// TimeProvider overrides the clock (useful for tests).
	TimeProvider TimeProvider
	// Metrics receives query duration timings. Nil disables emission.
	Metrics statsd.Sink
}

// NewJobRepo creates a new JobRepo.
func NewJobRepo(db *sql.DB, cfg RepoConfig) *JobRepo {
	tp := cfg.TimeProvider
	if tp == nil {
		tp = &RealTimeProvider{}
	}
	return &JobRepo{DB: db, timeProvider: tp, metrics: cfg.Metrics}
}

// Create inserts a new job listing. Identity and audit columns (id, created_at,
// updated_at) are always database-assigned; the request type cannot carry them.
// A provenance-pair collision returns ErrJobExists; any other constraint
// violation is mapped through the shared database error translation.
func (r *JobRepo) Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error) {
	if req == nil {
		return nil, errors.New("create job request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid job payload")
	}
	defer metrics.ObserveQueryDuration(r.metrics, "insert", r.timeProvider.Now())

	// Default scraped_at to now and is_active to true, matching column defaults.
	scrapedAt := r.timeProvider.Now().UTC()
	if req.ScrapedAt != nil {
		scrapedAt = req.ScrapedAt.UTC()
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	var out model.Job
	if err := pgxutil.WithPgxTx(ctx, r.DB, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			INSERT INTO jobs (
				external_id, platform, url, title, company, location, job_type,
				description_short, description_full, posted_date, scraped_at,
				is_active, skills, salary_range
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
			) RETURNING `+jobColumns,
			strings.TrimSpace(req.ExternalID),
			req.Platform,
			req.URL,
			req.Title,
			req.Company,
			req.Location,
			req.JobType,
			req.DescriptionShort,
			req.DescriptionFull,
			req.PostedDate,
			scrapedAt,
			isActive,
			jsonbOrNull(req.Skills),
			jsonbOrNull(req.SalaryRange),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// GetByID retrieves a job by primary key. Returns ErrJobNotFound on absence.
func (r *JobRepo) GetByID(ctx context.Context, id int64) (*model.Job, error) {
	return r.getByQuery(ctx, jobGetByIDQuery, "failed to get job by id", id)
}

// GetByExternalID retrieves a job by its provenance pair.
func (r *JobRepo) GetByExternalID(
	ctx context.Context,
	externalID string,
	platform model.Platform,
) (*model.Job, error) {
	return r.getByQuery(ctx, jobGetByExternalIDQuery, "failed to get job by external id", externalID, platform)
}

// List retrieves jobs filtered by active state and optional platform, ordered
// by descending id (newest first) with pagination applied after ordering.
func (r *JobRepo) List(ctx context.Context, opts model.JobsListOptions) ([]*model.Job, error) {
	if opts.Skip < 0 {
		return nil, apperrors.Validation("skip must be greater than or equal to 0")
	}
	if opts.Limit < minListLimit {
		return nil, apperrors.Validation("limit must be at least 1")
	}
	if opts.Limit > maxListLimit {
		return nil, apperrors.Validationf("limit cannot exceed %d", maxListLimit)
	}
	defer metrics.ObserveQueryDuration(r.metrics, "select", r.timeProvider.Now())

	query, args := buildJobListQuery(opts)

	var rowsOut []model.Job
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Job])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.Job, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update applies the non-nil fields of req to a job. Identity and audit
// columns are not representable in the request; updated_at is bumped by a
// database trigger. An empty update set returns the current row unchanged.
func (r *JobRepo) Update(ctx context.Context, id int64, req model.UpdateJobRequest) (*model.Job, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid job payload")
	}
	defer metrics.ObserveQueryDuration(r.metrics, "update", r.timeProvider.Now())

	var out model.Job
	err := pgxutil.WithPgxTx(ctx, r.DB, func(tx pgx.Tx) error {
		setClause, args := buildJobUpdateClause(req)
		query := jobGetByIDQuery
		if setClause != "" {
			args = append(args, id)
			query = "UPDATE jobs SET " + setClause +
				" WHERE id = $" + strconv.Itoa(len(args)) +
				" RETURNING " + jobColumns
		} else {
			args = []any{id}
		}
		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return e
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

// Delete removes a job row permanently and reports whether a row was removed.
// Production flows soft-delete through Update; this exists for internal
// maintenance and tests.
func (r *JobRepo) Delete(ctx context.Context, id int64) (bool, error) {
	defer metrics.ObserveQueryDuration(r.metrics, "delete", r.timeProvider.Now())

	var removed int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
		if err != nil {
			return err
		}
		removed = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete job: %w", apperrors.MapDBError(err))
	}
	return removed > 0, nil
}

// DeactivateStale flips is_active to false for active listings whose
// scraped_at is older than maxAge, at most batchSize rows per call. An
// advisory lock keeps concurrent sweeper instances from overlapping.
func (r *JobRepo) DeactivateStale(ctx context.Context, maxAge time.Duration, batchSize int) (int64, error) {
	defer metrics.ObserveQueryDuration(r.metrics, "update", r.timeProvider.Now())

	var rowsAffected int64
	err := pgxutil.WithSQLTx(ctx, r.DB, func(tx *sql.Tx) error {
		var locked bool
		if err := tx.QueryRowContext(ctx,
			"SELECT pg_try_advisory_xact_lock($1, $2)",
			advisoryLockSweeperMajor, advisoryLockSweeperDeactivate,
		).Scan(&locked); err != nil {
			return fmt.Errorf("acquire advisory lock: %w", err)
		}
		if !locked {
			rowsAffected = 0
			return nil
		}

		cutoff := r.timeProvider.Now().Add(-maxAge).UTC()
		res, err := tx.ExecContext(ctx, `
			UPDATE jobs
			SET is_active = false
			WHERE id IN (
				SELECT id FROM jobs
				WHERE is_active
				  AND scraped_at < $1
				ORDER BY scraped_at
				LIMIT $2
			)
		`, cutoff, batchSize)
		if err != nil {
			return fmt.Errorf("deactivate stale jobs: %w", err)
		}

		ra, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		rowsAffected = ra
		return nil
	})
	if err != nil {
		return 0, apperrors.MapDBError(err)
	}
	return rowsAffected, nil
}

// --- helpers ---

// Advisory lock keys for sweeper coordination (major, minor).
const (
	advisoryLockSweeperMajor      = 7231
	advisoryLockSweeperDeactivate = 1
)

// jobColumns is the standard column list for job queries.
const jobColumns = `id, external_id, platform, url, title, company, location, job_type,
		description_short, description_full, posted_date, scraped_at, is_active,
		skills, salary_range, created_at, updated_at`

// SQL query constants for static queries (no dynamic WHERE clause).
const (
	jobGetByIDQuery = `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE id = $1`

	jobGetByExternalIDQuery = `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE external_id = $1 AND platform = $2`
)

// buildJobListQuery builds the filtered, ordered, paginated list query.
// Ordering by descending id precedes OFFSET/LIMIT so paging is a stable
// window over insertion order.
func buildJobListQuery(opts model.JobsListOptions) (string, []any) {
	args := []any{opts.IsActive}
	where := "is_active = $1"
	if opts.Platform != nil {
		args = append(args, *opts.Platform)
		where += " AND platform = $" + strconv.Itoa(len(args))
	}
	args = append(args, opts.Limit, opts.Skip)
	query := "SELECT " + jobColumns + " FROM jobs WHERE " + where +
		" ORDER BY id DESC LIMIT $" + strconv.Itoa(len(args)-1) +
		" OFFSET $" + strconv.Itoa(len(args))
	return query, args
}

// buildJobUpdateClause builds the SQL SET clause and args for the non-nil
// fields of req. The explicit per-field mapping is the mutable-column
// allow-list: anything not listed here cannot be written through Update.
func buildJobUpdateClause(req model.UpdateJobRequest) (string, []any) {
	setParts := make([]string, 0, 14)
	args := make([]any, 0, 14)
	add := func(column string, value any) {
		args = append(args, value)
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.ExternalID != nil {
		add("external_id", strings.TrimSpace(*req.ExternalID))
	}
	if req.Platform != nil {
		add("platform", *req.Platform)
	}
	if req.URL != nil {
		add("url", *req.URL)
	}
	if req.Title != nil {
		add("title", *req.Title)
	}
	if req.Company != nil {
		add("company", *req.Company)
	}
	if req.Location != nil {
		add("location", *req.Location)
	}
	if req.JobType != nil {
		add("job_type", *req.JobType)
	}
	if req.DescriptionShort != nil {
		add("description_short", *req.DescriptionShort)
	}
	if req.DescriptionFull != nil {
		add("description_full", *req.DescriptionFull)
	}
	if req.PostedDate != nil {
		add("posted_date", *req.PostedDate)
	}
	if req.ScrapedAt != nil {
		add("scraped_at", req.ScrapedAt.UTC())
	}
	if req.IsActive != nil {
		add("is_active", *req.IsActive)
	}
	if req.Skills != nil {
		add("skills", jsonbOrNull(req.Skills))
	}
	if req.SalaryRange != nil {
		add("salary_range", jsonbOrNull(req.SalaryRange))
	}

	if len(setParts) == 0 {
		return "", nil
	}
	return strings.Join(setParts, ", "), args
}

// getByQuery executes a single-row job query.
func (r *JobRepo) getByQuery(
	ctx context.Context,
	q string,
	errMsg string,
	args ...any,
) (*model.Job, error) {
	defer metrics.ObserveQueryDuration(r.metrics, "select", r.timeProvider.Now())

	var job model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		job, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, apperrors.MapDBError(err))
	}
	return &job, nil
}

// mapWriteErr translates write failures into the repository's error kinds.
// The provenance-pair unique violation is recognized through the structured
// Postgres error, not message text.
func (r *JobRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrJobNotFound
	}
	if apperrors.IsUniqueViolationOn(err, provenanceConstraint, "external_id", "platform") {
		return ErrJobExists
	}
	return apperrors.MapDBError(err)
}

// jsonbOrNull converts empty optional JSONB payloads into SQL NULL so the
// column stores NULL rather than a JSON null literal.
func jsonbOrNull(v any) any {
	switch val := v.(type) {
	case []string:
		if val == nil {
			return nil
		}
	case *model.SalaryRange:
		if val == nil {
			return nil
		}
	}
	return v
}
