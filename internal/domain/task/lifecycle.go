package task

import (
	"slices"
	"time"

	apperrors "automation/internal/shared/errors"
)

// Transition records a state change in the task lifecycle.
type Transition struct {
	TaskID     string    `json:"task_id"`
	FromStatus Status    `json:"from_status"`
	ToStatus   Status    `json:"to_status"`
	Reason     string    `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

var allowedTransitions = map[Status][]Status{
	StatusPending: {StatusRunning, StatusCancelled},
	StatusRunning: {StatusCompleted, StatusFailed},
}

// CanTransition reports whether from -> to is a legal lifecycle step.
func CanTransition(from, to Status) bool {
	return slices.Contains(allowedTransitions[from], to)
}

// Advance moves the task to status `to`, stamping StartedAt when it starts
// running and CompletedAt when it reaches a terminal state. ID and CreatedAt
// are never touched.
func (t *Task) Advance(to Status, reason string, now time.Time) (Transition, error) {
	from := t.Status
	if !CanTransition(from, to) {
		return Transition{}, apperrors.InvalidConfig("task %s cannot move from %s to %s", t.ID, from, to)
	}

	now = now.UTC()
	t.Status = to
	if to == StatusRunning {
		t.StartedAt = &now
	}
	if to.IsTerminal() {
		t.CompletedAt = &now
	}

	return Transition{
		TaskID:     t.ID,
		FromStatus: from,
		ToStatus:   to,
		Reason:     reason,
		CreatedAt:  now,
	}, nil
}
