package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "io wraps cause",
			err:      IO(fs.ErrNotExist),
			expected: "IO error: file does not exist",
		},
		{
			name:     "io formatted",
			err:      IOf("found record with %d fields", 3),
			expected: "IO error: found record with 3 fields",
		},
		{
			name:     "serialization",
			err:      Serialization(errors.New("unexpected end of JSON input")),
			expected: "Serialization error: unexpected end of JSON input",
		},
		{
			name:     "task not found",
			err:      TaskNotFound("task-1"),
			expected: "Task not found: task-1",
		},
		{
			name:     "permission denied",
			err:      PermissionDenied("Path traversal not allowed"),
			expected: "Permission denied: Path traversal not allowed",
		},
		{
			name:     "timeout",
			err:      Timeout(),
			expected: "Execution timeout",
		},
		{
			name:     "invalid config",
			err:      InvalidConfig("Unknown operation: %s", "frobnicate"),
			expected: "Invalid configuration: Unknown operation: frobnicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Fatalf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorsIsMatchesKindSentinel(t *testing.T) {
	err := fmt.Errorf("dispatch: %w", PermissionDenied("nope"))

	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected errors.Is to match permission denied sentinel")
	}
	if errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("did not expect invalid config match")
	}
}

func TestUnwrapReachesCause(t *testing.T) {
	err := IO(fs.ErrPermission)
	if !errors.Is(err, fs.ErrPermission) {
		t.Fatalf("expected underlying fs.ErrPermission to be reachable")
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(nil) != 0 {
		t.Fatalf("nil error should have no kind")
	}
	if KindOf(errors.New("plain")) != 0 {
		t.Fatalf("plain error should have no kind")
	}
	if KindOf(fmt.Errorf("wrapped: %w", Serialization(errors.New("x")))) != KindSerialization {
		t.Fatalf("expected serialization kind through wrapping")
	}
	if !IsKind(InvalidConfig("x"), KindInvalidConfig) {
		t.Fatalf("IsKind mismatch")
	}
	if IsKind(nil, KindIO) {
		t.Fatalf("nil must not match any kind")
	}
}

func TestKindString(t *testing.T) {
	if KindPermissionDenied.String() != "permission_denied" {
		t.Fatalf("unexpected kind label %q", KindPermissionDenied.String())
	}
	if Kind(42).String() != "unknown" {
		t.Fatalf("unexpected label for unknown kind")
	}
}
