package logging

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"automation/internal/observability"
	"automation/internal/shared/utils/id"
)

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Debug(format string, args ...any) { r.add("DEBUG", format, args...) }
func (r *recordingLogger) Info(format string, args ...any)  { r.add("INFO", format, args...) }
func (r *recordingLogger) Warn(format string, args ...any)  { r.add("WARN", format, args...) }
func (r *recordingLogger) Error(format string, args ...any) { r.add("ERROR", format, args...) }

func (r *recordingLogger) add(level, format string, args ...any) {
	r.lines = append(r.lines, level+" "+fmt.Sprintf(format, args...))
}

func TestOrNopHandlesTypedNil(t *testing.T) {
	var typed *recordingLogger
	if !IsNil(typed) {
		t.Fatalf("typed nil pointer should be reported as nil")
	}
	OrNop(typed).Info("must not panic")
}

func TestFromContextPrefixesLogID(t *testing.T) {
	rec := &recordingLogger{}
	ctx := id.WithLogID(context.Background(), "log-123")
	FromContext(ctx, rec).Info("ran %s", "read")

	if len(rec.lines) != 1 || rec.lines[0] != "INFO logid=log-123 ran read" {
		t.Fatalf("unexpected lines: %v", rec.lines)
	}
}

func TestObservabilityAdapterWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	base := observability.NewLogger(observability.LogConfig{Level: "debug", Format: "text", Output: &buf})
	logger := WithLogID(FromObservabilityWithComponent(base, "file"), "log-9")
	logger.Debug("operation %s", "list")

	out := buf.String()
	for _, want := range []string{"component=file", "log_id=log-9", `msg="operation list"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output %q", want, out)
		}
	}
}
