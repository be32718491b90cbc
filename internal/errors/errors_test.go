package errors

import (
	"errors"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeNotFound,
				Message: "job not found",
			},
			want: "job not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeInternal,
				Message: "failed to create job",
				Cause:   errors.New("underlying error"),
			},
			want: "failed to create job: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &AppError{
		Code:    ErrCodeInternal,
		Message: "wrapped error",
		Cause:   cause,
	}

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantCode ErrorCode
		wantMsg  string
	}{
		{"not found", NotFound("job not found"), ErrCodeNotFound, "job not found"},
		{"not found formatted", NotFoundf("Job %d not found.", 42), ErrCodeNotFound, "Job 42 not found."},
		{"conflict", Conflict("already exists"), ErrCodeConflict, "already exists"},
		{"validation", Validation("bad input"), ErrCodeValidation, "bad input"},
		{"validation formatted", Validationf("invalid platform '%s'", "gumtree"), ErrCodeValidation, "invalid platform 'gumtree'"},
		{"internal", Internal("boom"), ErrCodeInternal, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.wantCode)
			}
			if tt.err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", tt.err.Message, tt.wantMsg)
			}
		})
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("posted_date", "posted_date cannot be in the future.")
	if err.Field != "posted_date" {
		t.Errorf("Field = %q, want %q", err.Field, "posted_date")
	}
	if GetField(err) != "posted_date" {
		t.Errorf("GetField() = %q, want %q", GetField(err), "posted_date")
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, ErrCodeInternal, "failed to list jobs")

	if !errors.Is(err, cause) {
		t.Error("wrapped error should match cause with errors.Is")
	}
	if !IsInternal(err) {
		t.Errorf("IsInternal() = false, want true")
	}

	if Wrap(nil, ErrCodeInternal, "ignored") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestWrapf(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Wrapf(cause, ErrCodeConflict, "failed to create job %d", 7)

	if err.Message != "failed to create job 7" {
		t.Errorf("Message = %q", err.Message)
	}
	if !IsConflict(err) {
		t.Error("IsConflict() = false, want true")
	}
	if Wrapf(nil, ErrCodeConflict, "ignored") != nil {
		t.Error("Wrapf(nil) should return nil")
	}
}

func TestPredicates_NonAppError(t *testing.T) {
	plain := errors.New("plain")
	if IsNotFound(plain) || IsConflict(plain) || IsValidation(plain) || IsInternal(plain) {
		t.Error("predicates should be false for non-AppError")
	}
	if GetCode(plain) != "" {
		t.Errorf("GetCode(plain) = %q, want empty", GetCode(plain))
	}
}

func TestPredicates_WrappedAppError(t *testing.T) {
	inner := Conflict("already exists")
	outer := Wrap(inner, ErrCodeValidation, "create failed")

	// errors.As finds the outermost AppError first.
	if GetCode(outer) != ErrCodeValidation {
		t.Errorf("GetCode(outer) = %v, want %v", GetCode(outer), ErrCodeValidation)
	}
}
