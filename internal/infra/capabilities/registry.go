package capabilities

import (
	"automation/internal/config"
	"automation/internal/domain/capability"
	"automation/internal/infra/capabilities/fileops"
	"automation/internal/observability"
	"automation/internal/shared/logging"
)

// Dependencies are the shared collaborators handed to every capability.
// Zero values disable the corresponding instrumentation.
type Dependencies struct {
	Metrics *observability.CapabilityMetrics
	Tracer  *observability.TracerProvider
	Logger  logging.Logger
}

// NewRegistry builds the registry of built-in capabilities for cfg, each
// wrapped with instrumentation.
func NewRegistry(cfg config.Config, deps Dependencies) (*capability.Registry, error) {
	logger := logging.OrNop(deps.Logger)

	fileOpts := []fileops.Option{fileops.WithLogger(logger)}
	if cfg.Sandbox.Strict {
		fileOpts = append(fileOpts, fileops.WithStrictSandbox())
	}

	return capability.NewRegistry(
		Instrument(fileops.New(cfg.BasePath, fileOpts...), deps.Metrics, deps.Tracer, logger),
	)
}
