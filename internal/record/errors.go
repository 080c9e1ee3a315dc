package record

import (
	"fmt"

	"restmapper/internal/descriptor"
)

// TypeCoercionError reports a scalar that cannot be represented as the
// field's semantic type. Path locates the value inside the document,
// e.g. "orderActions[2].sequence".
type TypeCoercionError struct {
	Object   string
	Field    string
	Path     string
	Expected descriptor.SemanticType
	Value    string
	Err      error
}

func (e *TypeCoercionError) Error() string {
	msg := fmt.Sprintf("%s: cannot convert %s to %s (%s.%s)", e.Path, e.Value, e.Expected, e.Object, e.Field)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *TypeCoercionError) Unwrap() error {
	return e.Err
}

// ShapeMismatchError reports a value of the wrong structure: a scalar
// where an array or object is required, or the reverse. An empty Path
// refers to the document root.
type ShapeMismatchError struct {
	Object   string
	Field    string
	Path     string
	Expected string
	Got      string
}

func (e *ShapeMismatchError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: expected %s document, got %s", e.Object, e.Expected, e.Got)
	}

	return fmt.Sprintf("%s: expected %s, got %s (%s.%s)", e.Path, e.Expected, e.Got, e.Object, e.Field)
}

// UnknownFieldError is returned by Record.Set for names outside the schema.
type UnknownFieldError struct {
	Object string
	Field  string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%s: unknown field %q", e.Object, e.Field)
}
