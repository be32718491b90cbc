// Package service implements the business rules for scraped job listings.
package service

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"github.com/jobpulse/jobs-api/internal/core"
	"github.com/jobpulse/jobs-api/internal/data"
	"github.com/jobpulse/jobs-api/internal/domain/model"
	apperrors "github.com/jobpulse/jobs-api/internal/errors"
	"github.com/jobpulse/jobs-api/internal/observability/metrics"
	"github.com/jobpulse/jobs-api/internal/observability/statsd"
)

// JobServiceOptions groups dependencies for JobService.
type JobServiceOptions struct {
	Repo    core.JobRepository
	Logger  *slog.Logger
	Metrics statsd.Sink
}

// JobService enforces listing business rules on top of the repository:
// platform/URL pairing, posted-date bounds, provenance immutability,
// description growth, and soft-delete semantics.
type JobService struct {
	repo    core.JobRepository
	logger  *slog.Logger
	metrics statsd.Sink
}

// NewJobService constructs a new JobService.
func NewJobService(opts JobServiceOptions) *JobService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &JobService{repo: opts.Repo, logger: logger, metrics: opts.Metrics}
}

// Get retrieves one job by id.
func (s *JobService) Get(ctx context.Context, id int64) (*model.Job, error) {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrJobNotFound) {
			return nil, apperrors.NotFoundf("Job %d not found.", id)
		}
		s.logger.ErrorContext(ctx, "failed to fetch job", "job_id", id, "error", err)
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "Failed to fetch job.")
	}
	return job, nil
}

// GetByExternalID retrieves one job by its scrape provenance pair.
func (s *JobService) GetByExternalID(ctx context.Context, externalID string, platform model.Platform) (*model.Job, error) {
	if !platform.Valid() {
		return nil, apperrors.Validationf(
			"Invalid platform '%s'. Allowed values: %s.", platform, model.AllowedPlatforms())
	}
	job, err := s.repo.GetByExternalID(ctx, externalID, platform)
	if err != nil {
		if errors.Is(err, data.ErrJobNotFound) {
			return nil, apperrors.NotFoundf("Job with external_id '%s' not found on platform '%s'.", externalID, platform)
		}
		s.logger.ErrorContext(ctx, "failed to fetch job by external id",
			"external_id", externalID, "platform", platform, "error", err)
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "Failed to fetch job.")
	}
	return job, nil
}

// List returns jobs matching the filter options. The platform filter, when
// present, must name a supported platform.
func (s *JobService) List(ctx context.Context, opts model.JobsListOptions) ([]*model.Job, error) {
	if opts.Platform != nil && !opts.Platform.Valid() {
		return nil, apperrors.Validationf(
			"Invalid platform '%s'. Allowed values: %s.", *opts.Platform, model.AllowedPlatforms())
	}

	jobs, err := s.repo.List(ctx, opts)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list jobs", "error", err)
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "Failed to list jobs.")
	}
	return jobs, nil
}

// Create validates and persists a new job listing, then records the
// platform-labelled creation metric. Metric emission never fails the call.
func (s *JobService) Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error) {
	if req == nil {
		return nil, apperrors.Validation("create job request is required")
	}

	if err := s.validatePostedDate(req.PostedDate); err != nil {
		return nil, err
	}
	if err := s.validateURLForPlatform(req.URL, req.Platform); err != nil {
		return nil, err
	}

	job, err := s.repo.Create(ctx, req)
	if err != nil {
		if errors.Is(err, data.ErrJobExists) {
			s.logger.WarnContext(ctx, "duplicate job on create",
				"external_id", req.ExternalID, "platform", req.Platform)
			return nil, apperrors.Conflict(
				"A job with this external_id already exists for the selected platform.")
		}
		s.logger.ErrorContext(ctx, "failed to create job",
			"external_id", req.ExternalID, "platform", req.Platform, "error", err)
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "Failed to create job.")
	}

	metrics.EmitJobCreated(s.metrics, string(job.Platform))

	s.logger.InfoContext(ctx, "created job",
		"job_id", job.ID, "external_id", job.ExternalID, "platform", job.Platform)
	return job, nil
}

// Update applies a partial update with immutability and quality guards.
func (s *JobService) Update(ctx context.Context, id int64, req model.UpdateJobRequest) (*model.Job, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrJobNotFound) {
			return nil, apperrors.NotFoundf("Job %d not found.", id)
		}
		s.logger.ErrorContext(ctx, "failed to fetch job before update", "job_id", id, "error", err)
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "Failed to update job.")
	}

	if err := validateAndStripImmutableFields(existing, &req); err != nil {
		return nil, err
	}

	if !req.HasUpdates() {
		s.logger.InfoContext(ctx, "no mutable fields provided; returning existing job", "job_id", id)
		return existing, nil
	}

	if req.PostedDate != nil {
		if err := s.validatePostedDate(req.PostedDate); err != nil {
			return nil, err
		}
	}
	// The URL is always checked against the stored platform; platform changes
	// are rejected above, so the pairing cannot drift.
	if req.URL != nil {
		if err := s.validateURLForPlatform(*req.URL, existing.Platform); err != nil {
			return nil, err
		}
	}
	if err := validateDescriptionGrowth(existing, req); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrJobExists):
			s.logger.WarnContext(ctx, "duplicate job on update", "job_id", id)
			return nil, apperrors.Conflict(
				"Cannot update job because external_id/platform must remain unique.")
		case errors.Is(err, data.ErrJobNotFound):
			return nil, apperrors.NotFoundf("Job %d not found.", id)
		default:
			s.logger.ErrorContext(ctx, "failed to update job", "job_id", id, "error", err)
			return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "Failed to update job.")
		}
	}

	s.logger.InfoContext(ctx, "updated job", "job_id", id)
	return updated, nil
}

// Delete soft-deletes a job by flipping is_active to false. Deleting an
// already-inactive job succeeds without further state change.
func (s *JobService) Delete(ctx context.Context, id int64) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrJobNotFound) {
			return apperrors.NotFoundf("Job %d not found.", id)
		}
		s.logger.ErrorContext(ctx, "failed to fetch job before delete", "job_id", id, "error", err)
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, "Failed to delete job.")
	}

	if !existing.IsActive {
		s.logger.InfoContext(ctx, "job already inactive", "job_id", id)
		return nil
	}

	inactive := false
	if _, err := s.repo.Update(ctx, id, model.UpdateJobRequest{IsActive: &inactive}); err != nil {
		if errors.Is(err, data.ErrJobNotFound) {
			return apperrors.NotFoundf("Job %d not found.", id)
		}
		s.logger.ErrorContext(ctx, "failed to soft delete job", "job_id", id, "error", err)
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, "Failed to delete job.")
	}

	s.logger.InfoContext(ctx, "soft deleted job", "job_id", id)
	return nil
}

// validatePostedDate rejects posted dates after today.
func (s *JobService) validatePostedDate(posted *model.Date) error {
	if posted != nil && posted.After(model.Today()) {
		return apperrors.ValidationField("posted_date", "posted_date cannot be in the future.")
	}
	return nil
}

// validateURLForPlatform checks that the URL's hostname equals, or is a
// subdomain of, the platform's root domain.
func (s *JobService) validateURLForPlatform(rawURL string, platform model.Platform) error {
	expected := platform.Domain()
	if expected == "" {
		return apperrors.Validationf(
			"Invalid platform '%s'. Allowed values: %s.", platform, model.AllowedPlatforms())
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return apperrors.ValidationField("url", "url must include a valid hostname.")
	}

	hostname := strings.ToLower(parsed.Hostname())
	if !domainMatches(hostname, expected) {
		return apperrors.Validationf(
			"URL domain '%s' does not match platform '%s'.", hostname, platform)
	}
	return nil
}

// validateAndStripImmutableFields rejects changes to the provenance pair and
// removes both fields from the update set; they are never part of a
// legitimate persistence update even when supplied unchanged.
func validateAndStripImmutableFields(existing *model.Job, req *model.UpdateJobRequest) error {
	if req.ExternalID != nil && *req.ExternalID != existing.ExternalID {
		return apperrors.ValidationField("external_id", "external_id cannot be changed after creation.")
	}
	if req.Platform != nil && *req.Platform != existing.Platform {
		return apperrors.ValidationField("platform", "platform cannot be changed after creation.")
	}
	req.ExternalID = nil
	req.Platform = nil
	return nil
}

// validateDescriptionGrowth requires non-null description updates to be
// strictly longer than the stored value, treating an absent value as length
// zero. This is an anti-truncation guard for re-scraped text, not a content
// check: any longer string passes.
func validateDescriptionGrowth(existing *model.Job, req model.UpdateJobRequest) error {
	checks := []struct {
		field   string
		next    *string
		current *string
	}{
		{"description_short", req.DescriptionShort, existing.DescriptionShort},
		{"description_full", req.DescriptionFull, existing.DescriptionFull},
	}

	for _, c := range checks {
		if c.next == nil {
			continue
		}
		currentLen := 0
		if c.current != nil {
			currentLen = len(*c.current)
		}
		if len(*c.next) <= currentLen {
			return apperrors.ValidationField(c.field,
				c.field+" updates must be longer than the existing value.")
		}
	}
	return nil
}

// domainMatches reports whether hostname equals the expected root domain or
// is one of its subdomains (covers regional variants like au.linkedin.com).
func domainMatches(hostname, expected string) bool {
	return hostname == expected || strings.HasSuffix(hostname, "."+expected)
}
