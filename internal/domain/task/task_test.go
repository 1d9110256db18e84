package task

import (
	"strings"
	"testing"
	"time"

	apperrors "automation/internal/shared/errors"
	jsonx "automation/internal/shared/json"
)

func TestStatusIsTerminal(t *testing.T) {
	tests := []struct {
		status   Status
		terminal bool
	}{
		{StatusPending, false},
		{StatusRunning, false},
		{StatusCompleted, true},
		{StatusFailed, true},
		{StatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.terminal {
				t.Errorf("Status(%q).IsTerminal() = %v, want %v", tt.status, got, tt.terminal)
			}
		})
	}
}

func TestNewProducesPendingTask(t *testing.T) {
	before := time.Now().UTC()
	tk, err := New("file", "read", map[string]any{"path": "a.txt"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if !strings.HasPrefix(tk.ID, "task-") {
		t.Fatalf("unexpected id %q", tk.ID)
	}
	if tk.Status != StatusPending {
		t.Fatalf("expected pending, got %s", tk.Status)
	}
	if tk.CreatedAt.Before(before) {
		t.Fatalf("created_at %v precedes construction %v", tk.CreatedAt, before)
	}
	if tk.StartedAt != nil || tk.CompletedAt != nil {
		t.Fatalf("expected nil started/completed timestamps")
	}
	if string(tk.Params) != `{"path":"a.txt"}` {
		t.Fatalf("unexpected params %s", tk.Params)
	}
}

func TestNewAssignsDistinctIDs(t *testing.T) {
	a, _ := New("file", "read", nil)
	b, _ := New("file", "read", nil)
	if a.ID == b.ID {
		t.Fatalf("expected unique ids, both %q", a.ID)
	}
}

func TestNewRejectsUnencodableParams(t *testing.T) {
	_, err := New("file", "write", map[string]any{"bad": make(chan int)})
	if !apperrors.IsKind(err, apperrors.KindSerialization) {
		t.Fatalf("expected serialization error, got %v", err)
	}
}

func TestNewRawDefaultsToNull(t *testing.T) {
	tk := NewRaw("file", "list", nil)
	if string(tk.Params) != "null" {
		t.Fatalf("expected null params, got %s", tk.Params)
	}
}

func TestAdvanceLifecycle(t *testing.T) {
	tk := NewRaw("file", "read", jsonx.RawMessage(`{}`))
	id, created := tk.ID, tk.CreatedAt
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tr, err := tk.Advance(StatusRunning, "", start)
	if err != nil {
		t.Fatalf("pending -> running: %v", err)
	}
	if tr.FromStatus != StatusPending || tr.ToStatus != StatusRunning {
		t.Fatalf("unexpected transition %+v", tr)
	}
	if tk.StartedAt == nil || !tk.StartedAt.Equal(start) {
		t.Fatalf("started_at not stamped: %v", tk.StartedAt)
	}

	end := start.Add(time.Second)
	if _, err := tk.Advance(StatusCompleted, "", end); err != nil {
		t.Fatalf("running -> completed: %v", err)
	}
	if tk.CompletedAt == nil || !tk.CompletedAt.Equal(end) {
		t.Fatalf("completed_at not stamped: %v", tk.CompletedAt)
	}
	if tk.ID != id || !tk.CreatedAt.Equal(created) {
		t.Fatalf("identity fields mutated")
	}
}

func TestAdvanceRejectsIllegalTransitions(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
	}{
		{StatusPending, StatusCompleted},
		{StatusRunning, StatusCancelled},
		{StatusCompleted, StatusRunning},
		{StatusCancelled, StatusRunning},
		{StatusFailed, StatusCompleted},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			tk := NewRaw("file", "read", nil)
			tk.Status = tt.from
			_, err := tk.Advance(tt.to, "", time.Now())
			if !apperrors.IsKind(err, apperrors.KindInvalidConfig) {
				t.Fatalf("expected invalid config, got %v", err)
			}
			if tk.Status != tt.from {
				t.Fatalf("status changed on rejected transition")
			}
		})
	}
}

func TestResultConstructors(t *testing.T) {
	ok := Succeeded(map[string]any{"exists": true})
	if !ok.Success || ok.Error != nil {
		t.Fatalf("unexpected success result %+v", ok)
	}

	data, err := jsonx.Marshal(Succeeded(nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"success":true,"output":null,"error":null}` {
		t.Fatalf("unexpected wire shape %s", data)
	}

	failed := Failed("disk full")
	if failed.Success || failed.Error == nil || *failed.Error != "disk full" {
		t.Fatalf("unexpected failed result %+v", failed)
	}
}
