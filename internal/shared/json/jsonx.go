package jsonx

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// Thin wrapper so hot paths can swap JSON implementations in one place.
var (
	Marshal       = json.Marshal
	MarshalIndent = json.MarshalIndent
	Unmarshal     = json.Unmarshal
	NewDecoder    = json.NewDecoder
)

type RawMessage = json.RawMessage
type Number = json.Number

// DecodeValue parses a single JSON document into a generic value. Numbers are
// kept as Number so integers survive a decode/encode cycle unchanged, and any
// non-whitespace input after the document is rejected.
func DecodeValue(data []byte) (any, error) {
	dec := NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	var trailing any
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("trailing characters after JSON value")
	}
	return value, nil
}

// MarshalPretty renders v with two-space indentation and no trailing newline.
func MarshalPretty(v any) ([]byte, error) {
	return MarshalIndent(v, "", "  ")
}
