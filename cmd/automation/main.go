package main

import (
	"errors"
	"fmt"
	"os"

	apperrors "automation/internal/shared/errors"
)

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, failure(err.Error()))
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to a process exit status: 2 for bad requests,
// 3 for sandbox refusals, 1 otherwise.
func exitCode(err error) int {
	var coded *ExitCodeError
	if errors.As(err, &coded) {
		return coded.Code
	}
	switch apperrors.KindOf(err) {
	case apperrors.KindInvalidConfig:
		return 2
	case apperrors.KindPermissionDenied:
		return 3
	default:
		return 1
	}
}

// ExitCodeError wraps an error with a specific process exit code.
type ExitCodeError struct {
	Code int
	Err  error
}

func (e *ExitCodeError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitCodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
