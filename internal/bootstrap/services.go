package bootstrap

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/jobpulse/jobs-api/config"
	"github.com/jobpulse/jobs-api/internal/adapters/sweeper"
	"github.com/jobpulse/jobs-api/internal/data"
	"github.com/jobpulse/jobs-api/internal/observability/statsd"
	"github.com/jobpulse/jobs-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Jobs          *service.JobService
	Health        *service.HealthService
	JobRepo       *data.JobRepo
	Sweeper       *sweeper.Runner
	Observability ObservabilityContainer
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	MetricsSink   *statsd.Client
	MetricsConfig config.ObservabilityMetricsConfig
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient *redis.Client
	Logger      *slog.Logger
}

// BuildServices wires repositories and services from their dependencies.
func BuildServices(deps ServiceDeps) (*ServiceContainer, error) {
	if deps.Config == nil {
		return nil, errors.New("config is required")
	}
	if deps.DB == nil {
		return nil, errors.New("database handle is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	obs := buildObservability(logger, deps.Config.Observability)

	var sink statsd.Sink
	if obs.MetricsSink != nil {
		sink = obs.MetricsSink
	}

	jobRepo := data.NewJobRepo(deps.DB, data.RepoConfig{Metrics: sink})

	jobs := service.NewJobService(service.JobServiceOptions{
		Repo:    jobRepo,
		Logger:  logger,
		Metrics: sink,
	})

	health := service.NewHealthService(service.HealthServiceOptions{
		DB:     deps.DB,
		Cache:  deps.RedisClient,
		Logger: logger,
	})

	container := &ServiceContainer{
		Jobs:          jobs,
		Health:        health,
		JobRepo:       jobRepo,
		Observability: obs,
	}

	if deps.Config.Sweeper.Enabled {
		runner, err := sweeper.NewRunner(sweeper.RunnerOptions{
			Deactivator: jobRepo,
			Logger:      logger,
			Metrics:     sink,
			Spec:        deps.Config.Sweeper.Spec,
			MaxAge:      deps.Config.Sweeper.MaxAge,
			BatchSize:   deps.Config.Sweeper.BatchSize,
		})
		if err != nil {
			return nil, err
		}
		container.Sweeper = runner
	}

	return container, nil
}

// buildObservability configures the metrics sink.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	obsLogger := logger
	if obsLogger == nil {
		obsLogger = slog.Default()
	}

	var metricsSink *statsd.Client
	if cfg.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: cfg.Metrics.StatsdAddress,
			Prefix:  cfg.Metrics.StatsdPrefix,
			Logger:  obsLogger,
		})
		if err != nil {
			obsLogger.Error("failed to initialise statsd client", "error", err)
		} else {
			metricsSink = client
		}
	}

	return ObservabilityContainer{
		MetricsSink:   metricsSink,
		MetricsConfig: cfg.Metrics,
	}
}
