package task

import (
	"time"

	apperrors "automation/internal/shared/errors"
	jsonx "automation/internal/shared/json"
	"automation/internal/shared/utils/id"
)

// Status is the lifecycle state of a Task. Capabilities never change it; the
// dispatcher owns every transition.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Task is one unit of work: a target capability, an operation, and opaque
// parameters whose schema depends on the operation.
type Task struct {
	ID          string           `json:"id"`
	Executor    string           `json:"executor"`
	Operation   string           `json:"operation"`
	Params      jsonx.RawMessage `json:"params"`
	Status      Status           `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	StartedAt   *time.Time       `json:"started_at"`
	CompletedAt *time.Time       `json:"completed_at"`
}

// New builds a pending task, encoding params to JSON.
func New(executor, operation string, params any) (*Task, error) {
	raw, err := jsonx.Marshal(params)
	if err != nil {
		return nil, apperrors.Serialization(err)
	}
	return NewRaw(executor, operation, raw), nil
}

// NewRaw builds a pending task from already encoded params. Empty params are
// stored as JSON null.
func NewRaw(executor, operation string, params jsonx.RawMessage) *Task {
	if len(params) == 0 {
		params = jsonx.RawMessage("null")
	}
	return &Task{
		ID:        id.NewTaskID(),
		Executor:  executor,
		Operation: operation,
		Params:    params,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
}
