// Package metrics provides standardised metric emission helpers for the jobs API.
package metrics

import (
	"time"

	"github.com/jobpulse/jobs-api/internal/observability/statsd"
)

// Metric names. The StatsD prefix configured on the sink is prepended on emission.
const (
	// MetricJobsCreated counts created job listings, tagged by platform.
	MetricJobsCreated = "jobs.created"
	// MetricDBQueryDuration records database query durations, tagged by operation.
	MetricDBQueryDuration = "db.query.duration"
)

// EmitJobCreated increments the job-creation counter for a platform.
// A nil sink or empty platform label is a no-op; metric emission never
// propagates an error back to the caller.
func EmitJobCreated(sink statsd.Sink, platform string) {
	if sink == nil || platform == "" {
		return
	}
	sink.Count(MetricJobsCreated, 1, map[string]string{"platform": platform})
}

// ObserveQueryDuration records the elapsed time of one database query,
// tagged by operation kind (select, insert, update, delete).
func ObserveQueryDuration(sink statsd.Sink, operation string, start time.Time) {
	if sink == nil || operation == "" {
		return
	}
	sink.Timing(MetricDBQueryDuration, time.Since(start), map[string]string{"operation": operation})
}
