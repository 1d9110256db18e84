package fileops

import (
	"context"
	"errors"
	"io"
	"os"
	"unicode/utf8"

	"automation/internal/domain/task"
	apperrors "automation/internal/shared/errors"
)

const fileMode = 0o644

var errIsDirectory = errors.New("is a directory")

func (e *Executor) readFile(_ context.Context, raw []byte) (*task.ExecutionResult, error) {
	var params pathParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	fullPath, err := e.resolvePath(*params.Path)
	if err != nil {
		return nil, err
	}
	content, err := readText(fullPath)
	if err != nil {
		return nil, err
	}
	return task.Succeeded(map[string]any{"content": content}), nil
}

func (e *Executor) writeFile(_ context.Context, raw []byte) (*task.ExecutionResult, error) {
	var params writeParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	fullPath, err := e.resolvePath(*params.Path)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(fullPath, []byte(*params.Content), fileMode); err != nil {
		return nil, apperrors.IO(err)
	}
	return task.Succeeded(map[string]any{"path": fullPath}), nil
}

func (e *Executor) deleteFile(_ context.Context, raw []byte) (*task.ExecutionResult, error) {
	var params pathParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	fullPath, err := e.resolvePath(*params.Path)
	if err != nil {
		return nil, err
	}
	info, err := os.Lstat(fullPath)
	if err != nil {
		return nil, apperrors.IO(err)
	}
	if info.IsDir() {
		return nil, apperrors.IOf("%s is a directory", fullPath)
	}
	if err := os.Remove(fullPath); err != nil {
		return nil, apperrors.IO(err)
	}
	return task.Succeeded(nil), nil
}

func (e *Executor) copyFile(_ context.Context, raw []byte) (*task.ExecutionResult, error) {
	from, to, err := e.resolveTransfer(raw)
	if err != nil {
		return nil, err
	}
	if err := copyContents(from, to); err != nil {
		return nil, apperrors.IO(err)
	}
	return task.Succeeded(map[string]any{"from": from, "to": to}), nil
}

func (e *Executor) moveFile(_ context.Context, raw []byte) (*task.ExecutionResult, error) {
	from, to, err := e.resolveTransfer(raw)
	if err != nil {
		return nil, err
	}
	if err := os.Rename(from, to); err != nil {
		return nil, apperrors.IO(err)
	}
	return task.Succeeded(map[string]any{"from": from, "to": to}), nil
}

func (e *Executor) listDir(_ context.Context, raw []byte) (*task.ExecutionResult, error) {
	var params pathParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	fullPath, err := e.resolvePath(*params.Path)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, apperrors.IO(err)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		files = append(files, entry.Name())
	}
	return task.Succeeded(map[string]any{"files": files}), nil
}

func (e *Executor) createDir(_ context.Context, raw []byte) (*task.ExecutionResult, error) {
	var params pathParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	fullPath, err := e.resolvePath(*params.Path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(fullPath, 0o755); err != nil {
		return nil, apperrors.IO(err)
	}
	return task.Succeeded(map[string]any{"path": fullPath}), nil
}

func (e *Executor) exists(_ context.Context, raw []byte) (*task.ExecutionResult, error) {
	var params pathParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	fullPath, err := e.resolvePath(*params.Path)
	if err != nil {
		return nil, err
	}
	// Stat failures of any kind count as absent.
	_, statErr := os.Stat(fullPath)
	return task.Succeeded(map[string]any{"exists": statErr == nil}), nil
}

func (e *Executor) resolveTransfer(raw []byte) (string, string, error) {
	var params transferParams
	if err := decodeParams(raw, &params); err != nil {
		return "", "", err
	}
	from, err := e.resolvePath(*params.From)
	if err != nil {
		return "", "", err
	}
	to, err := e.resolvePath(*params.To)
	if err != nil {
		return "", "", err
	}
	return from, to, nil
}

// readText reads a whole file and requires it to be valid UTF-8.
func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", apperrors.IO(err)
	}
	if !utf8.Valid(data) {
		return "", apperrors.IOf("stream did not contain valid UTF-8")
	}
	return string(data), nil
}

// copyContents copies bytes and permission bits, overwriting the destination.
func copyContents(from, to string) (err error) {
	src, err := os.Open(from)
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return &os.PathError{Op: "copy", Path: from, Err: errIsDirectory}
	}

	dst, err := os.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := dst.Close(); err == nil {
			err = closeErr
		}
	}()

	if _, err = io.Copy(dst, src); err != nil {
		return err
	}
	return dst.Chmod(info.Mode().Perm())
}
