package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// ErrJobNotFound is returned when a job does not exist.
	ErrJobNotFound = errors.New("job not found")
	// ErrJobExists is returned when creating or updating a job would violate
	// the (external_id, platform) uniqueness constraint.
	ErrJobExists = errors.New("job with this external_id and platform already exists")
)
