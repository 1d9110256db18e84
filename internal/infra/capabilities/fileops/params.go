package fileops

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	apperrors "automation/internal/shared/errors"
	jsonx "automation/internal/shared/json"

	"github.com/go-playground/validator/v10"
)

// Required fields are pointers (or slices) so that an empty string or empty
// list is accepted while an absent field is not.

type pathParams struct {
	Path *string `json:"path" validate:"required"`
}

type writeParams struct {
	Path    *string `json:"path" validate:"required"`
	Content *string `json:"content" validate:"required"`
}

type transferParams struct {
	From *string `json:"from" validate:"required"`
	To   *string `json:"to" validate:"required"`
}

type writeJSONParams struct {
	Path *string          `json:"path" validate:"required"`
	Data jsonx.RawMessage `json:"data" validate:"required"`
}

type writeCSVParams struct {
	Path    *string    `json:"path" validate:"required"`
	Headers []string   `json:"headers" validate:"required"`
	Rows    [][]string `json:"rows" validate:"required"`
}

var paramValidator = newParamValidator()

func newParamValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// decodeParams decodes raw task params into dst and checks required fields.
// Any mismatch is reported as an invalid-config error.
func decodeParams(raw jsonx.RawMessage, dst any) error {
	if trimmed := strings.TrimSpace(string(raw)); trimmed != "" && trimmed != "null" {
		if !strings.HasPrefix(trimmed, "{") {
			return apperrors.InvalidConfig("parameters must be a JSON object, got %s", describeJSONKind(trimmed))
		}
		if err := jsonx.Unmarshal(raw, dst); err != nil {
			return apperrors.InvalidConfig("%s", err.Error())
		}
	}
	if err := paramValidator.Struct(dst); err != nil {
		return apperrors.InvalidConfig("%s", describeValidation(err))
	}
	return nil
}

func describeJSONKind(doc string) string {
	switch doc[0] {
	case '[':
		return "an array"
	case '"':
		return "a string"
	case 't', 'f':
		return "a boolean"
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return "a number"
	default:
		return "malformed JSON"
	}
}

func describeValidation(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}
	fe := fieldErrs[0]
	if fe.Tag() == "required" {
		return fmt.Sprintf("missing field `%s`", fe.Field())
	}
	return fmt.Sprintf("invalid field `%s`: failed %s", fe.Field(), fe.Tag())
}
