package id

import (
	"context"
	"strings"
	"testing"
)

func TestNewTaskIDIsPrefixedAndUnique(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		taskID := NewTaskID()
		if !strings.HasPrefix(taskID, "task-") {
			t.Fatalf("expected task- prefix, got %q", taskID)
		}
		if _, dup := seen[taskID]; dup {
			t.Fatalf("duplicate id generated: %s", taskID)
		}
		seen[taskID] = struct{}{}
	}
}

func TestSetStrategyUUIDv7(t *testing.T) {
	SetStrategy(StrategyUUIDv7)
	defer SetStrategy(StrategyKSUID)

	taskID := NewTaskID()
	body := strings.TrimPrefix(taskID, "task-")
	if len(body) != 36 || strings.Count(body, "-") != 4 {
		t.Fatalf("expected uuid body, got %q", body)
	}
}

func TestEnsureLogIDKeepsExisting(t *testing.T) {
	ctx := WithLogID(context.Background(), "log-fixed")
	ctx, logID := EnsureLogID(ctx, func() string { return "log-other" })
	if logID != "log-fixed" {
		t.Fatalf("expected existing log id, got %q", logID)
	}
	if LogIDFromContext(ctx) != "log-fixed" {
		t.Fatalf("context lost log id")
	}
}

func TestEnsureLogIDGenerates(t *testing.T) {
	ctx, logID := EnsureLogID(context.Background(), NewLogID)
	if !strings.HasPrefix(logID, "log-") {
		t.Fatalf("expected generated log id, got %q", logID)
	}
	if LogIDFromContext(ctx) != logID {
		t.Fatalf("generated id not stored on context")
	}
}

func TestTaskIDContextRoundTrip(t *testing.T) {
	ctx := WithTaskID(context.Background(), "task-1")
	if got := TaskIDFromContext(ctx); got != "task-1" {
		t.Fatalf("TaskIDFromContext = %q", got)
	}
	if got := TaskIDFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty task id, got %q", got)
	}
}

func TestParseStrategy(t *testing.T) {
	cases := map[string]Strategy{"": StrategyKSUID, "KSUID": StrategyKSUID, "uuidv7": StrategyUUIDv7, " uuid ": StrategyUUIDv7}
	for name, want := range cases {
		got, err := ParseStrategy(name)
		if err != nil {
			t.Fatalf("ParseStrategy(%q) returned error: %v", name, err)
		}
		if got != want {
			t.Fatalf("ParseStrategy(%q) = %v, want %v", name, got, want)
		}
	}
	if _, err := ParseStrategy("snowflake"); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}
