package fileops

import (
	"path/filepath"
	"strings"

	apperrors "automation/internal/shared/errors"
)

// resolvePath maps a task-supplied path onto the sandbox root.
//
// The guard is a raw substring check: any input containing ".." is refused,
// wherever it appears. Nothing is canonicalized, so an absolute input replaces
// the root entirely and symlinks inside the root are followed. Executors built
// with WithStrictSandbox additionally require the joined path to stay lexically
// under the root.
func (e *Executor) resolvePath(input string) (string, error) {
	if strings.Contains(input, "..") {
		return "", apperrors.PermissionDenied("Path traversal not allowed")
	}

	resolved := joinPath(e.basePath, input)
	if e.strict && !pathWithinBase(e.basePath, resolved) {
		return "", apperrors.PermissionDenied("path must stay within the sandbox root")
	}
	return resolved, nil
}

// joinPath appends input to base; an absolute input is returned unchanged.
func joinPath(base, input string) string {
	if filepath.IsAbs(input) {
		return input
	}
	return filepath.Join(base, input)
}

func pathWithinBase(base, target string) bool {
	baseClean, err := filepath.Abs(filepath.Clean(base))
	if err != nil {
		return false
	}
	targetClean, err := filepath.Abs(filepath.Clean(target))
	if err != nil {
		return false
	}

	rel, err := filepath.Rel(baseClean, targetClean)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	if strings.HasPrefix(rel, ".."+string(filepath.Separator)) || rel == ".." {
		return false
	}
	return true
}
