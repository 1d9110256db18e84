package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure. The set is closed and shared by every capability.
type Kind int

const (
	// KindIO wraps filesystem and stream failures.
	KindIO Kind = iota + 1
	// KindSerialization wraps structured-value encode/decode failures.
	KindSerialization
	// KindTaskNotFound is reserved for task lookups.
	KindTaskNotFound
	// KindPermissionDenied reports a sandbox violation.
	KindPermissionDenied
	// KindTimeout is reserved; nothing enforces timeouts.
	KindTimeout
	// KindInvalidConfig covers a wrongly addressed capability, an unknown
	// operation, or malformed parameters.
	KindInvalidConfig
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindSerialization:
		return "serialization"
	case KindTaskNotFound:
		return "task_not_found"
	case KindPermissionDenied:
		return "permission_denied"
	case KindTimeout:
		return "timeout"
	case KindInvalidConfig:
		return "invalid_config"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned by capabilities and the dispatcher.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	detail := e.Message
	if detail == "" && e.Err != nil {
		detail = e.Err.Error()
	}
	switch e.Kind {
	case KindIO:
		return "IO error: " + detail
	case KindSerialization:
		return "Serialization error: " + detail
	case KindTaskNotFound:
		return "Task not found: " + detail
	case KindPermissionDenied:
		return "Permission denied: " + detail
	case KindTimeout:
		return "Execution timeout"
	case KindInvalidConfig:
		return "Invalid configuration: " + detail
	default:
		return detail
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind, so sentinels like ErrTimeout
// work with errors.Is.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind && other.Message == "" && other.Err == nil
}

// Kind sentinels for errors.Is checks.
var (
	ErrIO               = &Error{Kind: KindIO}
	ErrSerialization    = &Error{Kind: KindSerialization}
	ErrTaskNotFound     = &Error{Kind: KindTaskNotFound}
	ErrPermissionDenied = &Error{Kind: KindPermissionDenied}
	ErrTimeout          = &Error{Kind: KindTimeout}
	ErrInvalidConfig    = &Error{Kind: KindInvalidConfig}
)

// IO wraps an underlying filesystem or stream error.
func IO(err error) *Error {
	return &Error{Kind: KindIO, Err: err}
}

// IOf builds an IO error from a formatted message, for failures (such as
// malformed CSV) that have no OS error behind them.
func IOf(format string, args ...any) *Error {
	return &Error{Kind: KindIO, Message: fmt.Sprintf(format, args...)}
}

// Serialization wraps a JSON encode or decode error.
func Serialization(err error) *Error {
	return &Error{Kind: KindSerialization, Err: err}
}

// TaskNotFound reports a missing task.
func TaskNotFound(taskID string) *Error {
	return &Error{Kind: KindTaskNotFound, Message: taskID}
}

// PermissionDenied reports a sandbox violation.
func PermissionDenied(msg string) *Error {
	return &Error{Kind: KindPermissionDenied, Message: msg}
}

// Timeout reports an execution timeout.
func Timeout() *Error {
	return &Error{Kind: KindTimeout, Message: "timeout"}
}

// InvalidConfig reports a misaddressed or malformed request.
func InvalidConfig(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidConfig, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}
	return 0
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
