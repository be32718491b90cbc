package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/jobpulse/jobs-api/internal/errors"
)

// genericServerError hides internal failure detail from clients; the real
// error is logged with the request id for correlation.
var genericServerError = errors.New("an internal error occurred")

// RenderAppError translates a service-layer error into the JSON error
// contract: not_found → 404, conflict → 409, validation → 400, anything
// else → 500 with a generic message.
func RenderAppError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		renderInternal(w, r, err, logger)
		return
	}

	switch appErr.Code {
	case apperrors.ErrCodeNotFound:
		WriteError(w, r, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: appErr})
	case apperrors.ErrCodeConflict:
		WriteError(w, r, ErrorParams{Code: http.StatusConflict, ErrCode: "conflict", Err: appErr})
	case apperrors.ErrCodeValidation:
		WriteError(w, r, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_error", Err: appErr})
	default:
		renderInternal(w, r, appErr, logger)
	}
}

func renderInternal(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	if logger != nil {
		logger.ErrorContext(r.Context(), "unhandled request error",
			slog.String("path", r.URL.Path),
			slog.String("method", r.Method),
			slog.String("request_id", RequestIDFromContext(r.Context())),
			slog.Any("error", err),
		)
	}
	WriteError(w, r, ErrorParams{
		Code:    http.StatusInternalServerError,
		ErrCode: "internal_error",
		Err:     genericServerError,
	})
}
