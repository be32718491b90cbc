// Package httpx provides HTTP handlers and utilities for the jobs API.
package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jobpulse/jobs-api/internal/domain/model"
	"github.com/jobpulse/jobs-api/internal/service"
)

// Pagination bounds exposed on the API surface. The repository accepts larger
// windows for internal callers; external clients are capped here.
const (
	defaultListLimit = 100
	maxAPIListLimit  = 100
)

// JobHandlers provides HTTP handlers for job listing operations.
type JobHandlers struct {
	Svc    *service.JobService
	Logger *slog.Logger
}

// ListJobs handles GET /api/v1/jobs.
func (h *JobHandlers) ListJobs(w http.ResponseWriter, r *http.Request) {
	opts, ok := h.parseListOptions(w, r)
	if !ok {
		return
	}

	jobs, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		RenderAppError(w, r, err, h.Logger)
		return
	}
	WriteJSON(w, http.StatusOK, jobs)
}

// GetJob handles GET /api/v1/jobs/{id}.
func (h *JobHandlers) GetJob(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseJobID(w, r)
	if !ok {
		return
	}

	job, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		RenderAppError(w, r, err, h.Logger)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// CreateJob handles POST /api/v1/jobs.
func (h *JobHandlers) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req model.CreateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	// Schema-shape problems are 422; business rules report 400/409 below.
	if err := req.Validate(); err != nil {
		WriteError(w, r, ErrorParams{Code: http.StatusUnprocessableEntity, ErrCode: "invalid_payload", Err: err})
		return
	}

	job, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		RenderAppError(w, r, err, h.Logger)
		return
	}
	WriteJSON(w, http.StatusCreated, job)
}

// UpdateJob handles PATCH /api/v1/jobs/{id}.
func (h *JobHandlers) UpdateJob(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseJobID(w, r)
	if !ok {
		return
	}

	var req model.UpdateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, r, ErrorParams{Code: http.StatusUnprocessableEntity, ErrCode: "invalid_payload", Err: err})
		return
	}

	job, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		RenderAppError(w, r, err, h.Logger)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// DeleteJob handles DELETE /api/v1/jobs/{id}. Soft delete; repeat calls on an
// already-inactive job still return 204.
func (h *JobHandlers) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseJobID(w, r)
	if !ok {
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		RenderAppError(w, r, err, h.Logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *JobHandlers) parseJobID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, r, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("job id must be a positive integer"),
		})
		return 0, false
	}
	return id, true
}

func (h *JobHandlers) parseListOptions(w http.ResponseWriter, r *http.Request) (model.JobsListOptions, bool) {
	opts := model.JobsListOptions{Skip: 0, Limit: defaultListLimit, IsActive: true}

	skip, ok := parseIntQueryStrict(w, r, "skip", 0)
	if !ok {
		return opts, false
	}
	if skip < 0 {
		WriteError(w, r, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_error",
			Err:     errors.New("skip must be greater than or equal to 0"),
		})
		return opts, false
	}
	opts.Skip = skip

	limit, ok := parseIntQueryStrict(w, r, "limit", defaultListLimit)
	if !ok {
		return opts, false
	}
	if limit < 1 || limit > maxAPIListLimit {
		WriteError(w, r, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_error",
			Err:     errors.New("limit must be between 1 and 100"),
		})
		return opts, false
	}
	opts.Limit = limit

	if raw := r.URL.Query().Get("platform"); raw != "" {
		// Unsupported values flow to the service so the error message matches
		// the create path.
		p := model.Platform(raw)
		opts.Platform = &p
	}

	if raw := r.URL.Query().Get("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			WriteError(w, r, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "validation_error",
				Err:     errors.New("is_active must be a boolean"),
			})
			return opts, false
		}
		opts.IsActive = active
	}

	return opts, true
}
