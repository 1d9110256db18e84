// Package dispatch routes tasks to capabilities and owns their lifecycle.
package dispatch

import (
	"context"
	"time"

	"automation/internal/domain/capability"
	"automation/internal/domain/task"
	"automation/internal/observability"
	apperrors "automation/internal/shared/errors"
	"automation/internal/shared/logging"
	"automation/internal/shared/utils/id"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// TransitionHook observes every lifecycle change the dispatcher applies.
type TransitionHook func(task.Transition)

// Dispatcher executes one task at a time against the registered capabilities.
// It is the only component that changes Task.Status.
type Dispatcher struct {
	registry *capability.Registry
	logger   logging.Logger
	tracer   *observability.TracerProvider
	hooks    []TransitionHook
	now      func() time.Time
}

// Option customises a Dispatcher.
type Option func(*Dispatcher)

func WithLogger(logger logging.Logger) Option {
	return func(d *Dispatcher) { d.logger = logger }
}

func WithTracer(tracer *observability.TracerProvider) Option {
	return func(d *Dispatcher) { d.tracer = tracer }
}

// WithTransitionHook registers hook to be called after each status change.
func WithTransitionHook(hook TransitionHook) Option {
	return func(d *Dispatcher) {
		if hook != nil {
			d.hooks = append(d.hooks, hook)
		}
	}
}

// WithClock overrides the time source used for lifecycle timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// New returns a dispatcher backed by registry.
func New(registry *capability.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{registry: registry, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	d.logger = logging.OrNop(d.logger)
	if d.tracer == nil {
		d.tracer = observability.NoopTracerProvider()
	}
	return d
}

// Submit runs a pending task to completion. On return the task is either
// completed or failed, unless it was rejected before starting, in which case
// its status is unchanged. The capability's error is returned as is.
func (d *Dispatcher) Submit(ctx context.Context, t *task.Task) (*task.ExecutionResult, error) {
	if t == nil {
		return nil, apperrors.InvalidConfig("task is nil")
	}
	if t.Status != task.StatusPending {
		return nil, apperrors.InvalidConfig("task %s is %s, expected pending", t.ID, t.Status)
	}

	c, err := d.registry.Get(t.Executor)
	if err != nil {
		return nil, err
	}

	ctx, logID := id.EnsureLogID(ctx, id.NewLogID)
	ctx = id.WithTaskID(ctx, t.ID)
	ctx, span := d.tracer.StartSpan(ctx, observability.SpanTaskSubmit, observability.CapabilityAttrs(t.Executor, t.Operation)...)
	defer span.End()

	logger := logging.WithLogID(d.logger, logID)

	if err := d.advance(t, task.StatusRunning, ""); err != nil {
		return nil, err
	}
	logger.Info("task %s started: %s/%s", t.ID, t.Executor, t.Operation)

	result, execErr := c.Execute(ctx, t)
	if execErr != nil {
		kind := apperrors.KindOf(execErr).String()
		span.SetAttributes(attribute.String(observability.AttrErrorKind, kind))
		span.SetStatus(codes.Error, execErr.Error())
		if err := d.advance(t, task.StatusFailed, execErr.Error()); err != nil {
			logger.Error("task %s: %v", t.ID, err)
		}
		logger.Warn("task %s failed: %v", t.ID, execErr)
		return nil, execErr
	}

	if err := d.advance(t, task.StatusCompleted, ""); err != nil {
		logger.Error("task %s: %v", t.ID, err)
	}
	logger.Info("task %s completed", t.ID)
	return result, nil
}

// Cancel withdraws a task that has not started.
func (d *Dispatcher) Cancel(t *task.Task, reason string) error {
	if t == nil {
		return apperrors.InvalidConfig("task is nil")
	}
	if err := d.advance(t, task.StatusCancelled, reason); err != nil {
		return err
	}
	d.logger.Info("task %s cancelled", t.ID)
	return nil
}

func (d *Dispatcher) advance(t *task.Task, to task.Status, reason string) error {
	transition, err := t.Advance(to, reason, d.now())
	if err != nil {
		return err
	}
	for _, hook := range d.hooks {
		hook(transition)
	}
	return nil
}
