// Package capability defines the contract every task executor satisfies and
// the registry that routes tasks to executors by name.
package capability

import (
	"context"

	"automation/internal/domain/task"
	apperrors "automation/internal/shared/errors"
)

// Capability executes tasks addressed to it.
//
// Execute must call Validate before acting and must surface every failure as
// an error rather than a result with Success=false. Implementations whose only
// state is fixed at construction are safe for concurrent use.
type Capability interface {
	// Name is the stable identifier used to route tasks.
	Name() string
	// Validate fails with an invalid-config error when the task is addressed
	// to another capability.
	Validate(t *task.Task) error
	// Execute performs the task. ctx carries log and trace identifiers only;
	// execution is not cancelled through it.
	Execute(ctx context.Context, t *task.Task) (*task.ExecutionResult, error)
}

// ValidateExecutor is the shared Validate implementation: the task's
// executor must equal the capability's name.
func ValidateExecutor(name string, t *task.Task) error {
	if t == nil {
		return apperrors.InvalidConfig("task is nil")
	}
	if t.Executor != name {
		return apperrors.InvalidConfig("Wrong executor: expected '%s', got '%s'", name, t.Executor)
	}
	return nil
}
