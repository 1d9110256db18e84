package fileops

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"automation/internal/domain/task"
	apperrors "automation/internal/shared/errors"
	jsonx "automation/internal/shared/json"
)

func (e *Executor) readJSON(_ context.Context, raw []byte) (*task.ExecutionResult, error) {
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
	value, err := jsonx.DecodeValue([]byte(content))
	if err != nil {
		return nil, apperrors.Serialization(err)
	}
	return task.Succeeded(value), nil
}

func (e *Executor) writeJSON(_ context.Context, raw []byte) (*task.ExecutionResult, error) {
	var params writeJSONParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	fullPath, err := e.resolvePath(*params.Path)
	if err != nil {
		return nil, err
	}
	value, err := jsonx.DecodeValue(params.Data)
	if err != nil {
		return nil, apperrors.Serialization(err)
	}
	encoded, err := jsonx.MarshalPretty(value)
	if err != nil {
		return nil, apperrors.Serialization(err)
	}
	if err := os.WriteFile(fullPath, encoded, fileMode); err != nil {
		return nil, apperrors.IO(err)
	}
	return task.Succeeded(map[string]any{"path": fullPath}), nil
}

func (e *Executor) readCSV(_ context.Context, raw []byte) (*task.ExecutionResult, error) {
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
	headers, rows, err := parseCSV(content)
	if err != nil {
		return nil, apperrors.IO(err)
	}
	return task.Succeeded(map[string]any{"headers": headers, "rows": rows}), nil
}

func (e *Executor) writeCSV(_ context.Context, raw []byte) (*task.ExecutionResult, error) {
	var params writeCSVParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	fullPath, err := e.resolvePath(*params.Path)
	if err != nil {
		return nil, err
	}
	encoded, err := encodeCSV(params.Headers, params.Rows)
	if err != nil {
		return nil, apperrors.IO(err)
	}
	if err := os.WriteFile(fullPath, encoded, fileMode); err != nil {
		return nil, apperrors.IO(err)
	}
	return task.Succeeded(map[string]any{"path": fullPath}), nil
}

// parseCSV treats the first record as the header. Every later record must
// have the same number of fields as the header. A stray quote inside an
// unquoted field is kept as data.
func parseCSV(content string) ([]string, [][]string, error) {
	reader := csv.NewReader(bytes.NewReader([]byte(content)))
	reader.FieldsPerRecord = 0
	reader.LazyQuotes = true

	headers := []string{}
	rows := [][]string{}

	first, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return headers, rows, nil
	}
	if err != nil {
		return nil, nil, err
	}
	headers = first

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, record)
	}
	return headers, rows, nil
}

// encodeCSV writes the header then each row. A row whose width differs from
// the previous record is rejected before anything reaches disk.
func encodeCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	records := make([][]string, 0, len(rows)+1)
	records = append(records, headers)
	records = append(records, rows...)

	for i, record := range records {
		if i > 0 && len(record) != len(records[i-1]) {
			return nil, fmt.Errorf("found record with %d fields, but the previous record has %d fields", len(record), len(records[i-1]))
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
