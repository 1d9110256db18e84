// Package capabilities wires concrete capabilities together with the
// instrumentation every executor shares.
package capabilities

import (
	"context"
	"time"

	"automation/internal/domain/capability"
	"automation/internal/domain/task"
	"automation/internal/observability"
	apperrors "automation/internal/shared/errors"
	"automation/internal/shared/logging"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Instrumented wraps a Capability with metrics, tracing and logging. It never
// alters the delegate's result or error. Nil collaborators are skipped.
type Instrumented struct {
	delegate capability.Capability
	metrics  *observability.CapabilityMetrics
	tracer   *observability.TracerProvider
	logger   logging.Logger
}

// Instrument returns delegate wrapped with the given collaborators.
func Instrument(delegate capability.Capability, metrics *observability.CapabilityMetrics, tracer *observability.TracerProvider, logger logging.Logger) *Instrumented {
	if tracer == nil {
		tracer = observability.NoopTracerProvider()
	}
	return &Instrumented{
		delegate: delegate,
		metrics:  metrics,
		tracer:   tracer,
		logger:   logging.OrNop(logger),
	}
}

func (c *Instrumented) Name() string {
	return c.delegate.Name()
}

func (c *Instrumented) Validate(t *task.Task) error {
	return c.delegate.Validate(t)
}

// Execute runs the delegate inside a span and records its duration and
// outcome.
func (c *Instrumented) Execute(ctx context.Context, t *task.Task) (*task.ExecutionResult, error) {
	name := c.delegate.Name()
	operation := ""
	if t != nil {
		operation = t.Operation
	}

	ctx, span := c.tracer.StartSpan(ctx, observability.SpanCapabilityExecute, observability.CapabilityAttrs(name, operation)...)
	defer span.End()

	start := time.Now()
	result, err := c.delegate.Execute(ctx, t)
	duration := time.Since(start)

	kind := ""
	if err != nil {
		kind = apperrors.KindOf(err).String()
		span.SetAttributes(attribute.String(observability.AttrErrorKind, kind))
		span.SetStatus(codes.Error, err.Error())
	}
	c.metrics.RecordExecution(name, operation, duration, kind)

	logger := logging.FromContext(ctx, c.logger)
	if err != nil {
		logger.Warn("capability %s/%s failed after %s: %v", name, operation, duration, err)
	} else {
		logger.Debug("capability %s/%s finished in %s", name, operation, duration)
	}
	return result, err
}

// Operations delegates when the wrapped capability describes itself.
func (c *Instrumented) Operations() []capability.OperationDefinition {
	if d, ok := c.delegate.(capability.Describer); ok {
		return d.Operations()
	}
	return nil
}

// Delegate returns the wrapped capability.
func (c *Instrumented) Delegate() capability.Capability {
	return c.delegate
}

var (
	_ capability.Capability = (*Instrumented)(nil)
	_ capability.Describer  = (*Instrumented)(nil)
)
