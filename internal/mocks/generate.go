// Package mocks provides mock implementations for testing the jobs API.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// our repository interfaces. The mocks are generated using go:generate
// directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockJobRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(job, nil)
package mocks

// Generate mock for JobRepository interface from internal/core package.
// This creates MockJobRepository with methods for all JobRepository interface methods:
// Create, GetByID, GetByExternalID, List, Update, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=job_repository_mock.go github.com/jobpulse/jobs-api/internal/core JobRepository

// Generate mock for StaleJobDeactivator interface from internal/core package.
// This creates MockStaleJobDeactivator with methods for all StaleJobDeactivator interface methods:
// DeactivateStale
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=stale_job_deactivator_mock.go github.com/jobpulse/jobs-api/internal/core StaleJobDeactivator
