package main

import (
	"context"
	"io"
	"time"

	"automation/internal/app/dispatch"
	"automation/internal/config"
	"automation/internal/domain/capability"
	"automation/internal/infra/capabilities"
	"automation/internal/observability"
	"automation/internal/shared/logging"
	"automation/internal/shared/utils/id"

	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 5 * time.Second

// Container holds the process-wide services built from configuration.
type Container struct {
	Config     config.Config
	Logger     logging.Logger
	Registry   *capability.Registry
	Dispatcher *dispatch.Dispatcher
	Metrics    *prometheus.Registry
	Tracer     *observability.TracerProvider
}

func buildContainer(cfg config.Config, logOutput io.Writer) (*Container, error) {
	strategy, err := id.ParseStrategy(cfg.IDStrategy)
	if err != nil {
		return nil, err
	}
	id.SetStrategy(strategy)

	base := observability.NewLogger(observability.LogConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: logOutput,
	})
	logger := logging.FromObservabilityWithComponent(base, "automation")

	tracer, err := observability.NewTracerProvider(cfg.Tracing)
	if err != nil {
		return nil, err
	}

	deps := capabilities.Dependencies{Tracer: tracer, Logger: logger}
	var metricsRegistry *prometheus.Registry
	if cfg.Metrics.Enabled {
		metricsRegistry = prometheus.NewRegistry()
		deps.Metrics, err = observability.NewCapabilityMetrics(metricsRegistry)
		if err != nil {
			_ = tracer.Shutdown(context.Background())
			return nil, err
		}
	}

	registry, err := capabilities.NewRegistry(cfg, deps)
	if err != nil {
		_ = tracer.Shutdown(context.Background())
		return nil, err
	}

	return &Container{
		Config:     cfg,
		Logger:     logger,
		Registry:   registry,
		Dispatcher: dispatch.New(registry, dispatch.WithLogger(logger), dispatch.WithTracer(tracer)),
		Metrics:    metricsRegistry,
		Tracer:     tracer,
	}, nil
}

// Cleanup flushes pending spans.
func (c *Container) Cleanup() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return c.Tracer.Shutdown(ctx)
}
