// Package fileops implements the "file" capability: filesystem operations
// confined to a sandbox root.
package fileops

import (
	"context"
	"slices"
	"strings"

	"automation/internal/domain/capability"
	"automation/internal/domain/task"
	apperrors "automation/internal/shared/errors"
	"automation/internal/shared/logging"
)

// Name is the executor name tasks use to address this capability.
const Name = "file"

type handler func(ctx context.Context, params []byte) (*task.ExecutionResult, error)

type operation struct {
	def    capability.OperationDefinition
	handle handler
}

// Executor performs filesystem operations under a fixed root. All fields are
// set at construction, so one Executor may serve concurrent callers.
type Executor struct {
	basePath   string
	strict     bool
	logger     logging.Logger
	operations map[string]operation
}

// Option customises an Executor.
type Option func(*Executor)

// WithLogger sets the logger used for per-operation diagnostics.
func WithLogger(logger logging.Logger) Option {
	return func(e *Executor) { e.logger = logger }
}

// WithStrictSandbox additionally rejects resolved paths that fall outside the
// root, such as absolute inputs.
func WithStrictSandbox() Option {
	return func(e *Executor) { e.strict = true }
}

// New creates an executor rooted at basePath.
func New(basePath string, opts ...Option) *Executor {
	e := &Executor{basePath: basePath}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	e.logger = logging.OrNop(e.logger)
	e.operations = e.operationTable()
	return e
}

// BasePath returns the sandbox root.
func (e *Executor) BasePath() string {
	return e.basePath
}

func (e *Executor) Name() string {
	return Name
}

func (e *Executor) Validate(t *task.Task) error {
	return capability.ValidateExecutor(Name, t)
}

func (e *Executor) Execute(ctx context.Context, t *task.Task) (*task.ExecutionResult, error) {
	if err := e.Validate(t); err != nil {
		return nil, err
	}

	op, ok := e.operations[t.Operation]
	if !ok {
		return nil, apperrors.InvalidConfig("Unknown operation: %s", t.Operation)
	}

	logger := logging.FromContext(ctx, e.logger)
	logger.Debug("file operation %s task=%s", t.Operation, t.ID)

	result, err := op.handle(ctx, t.Params)
	if err != nil {
		logger.Warn("file operation %s failed task=%s: %v", t.Operation, t.ID, err)
		return nil, err
	}
	return result, nil
}

// Operations lists the supported operations sorted by name.
func (e *Executor) Operations() []capability.OperationDefinition {
	defs := make([]capability.OperationDefinition, 0, len(e.operations))
	for _, op := range e.operations {
		defs = append(defs, op.def)
	}
	slices.SortFunc(defs, func(a, b capability.OperationDefinition) int {
		return strings.Compare(a.Name, b.Name)
	})
	return defs
}

var (
	_ capability.Capability = (*Executor)(nil)
	_ capability.Describer  = (*Executor)(nil)
)
