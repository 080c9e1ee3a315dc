package server

import (
	"errors"
	"net/http"

	"restmapper/internal/record"
	"restmapper/internal/registry"
	"restmapper/internal/schema"
)

// Error codes

// 10xx - request errors
const (
	CodeNoRoute = 1000 + iota
	CodeBodyInvalid
	CodeParamInvalid
)

// 11xx - internal errors
const (
	CodeServer = 1100 + iota
	CodeMetadata
)

// 13xx - resource errors
const (
	CodeObjectNotFound = 1300 + iota
	CodeConversionFailed
)

// Error is the JSON body of failed requests.
type Error struct {
	Code    int    `json:"code"`
	Status  int    `json:"status"`
	Message string `json:"message"`
	Object  string `json:"object,omitempty"`
	Field   string `json:"field,omitempty"`
	Path    string `json:"path,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

func newError(status, code int, err error) *Error {
	return &Error{Code: code, Status: status, Message: err.Error()}
}

// classify maps engine errors onto HTTP errors.
func classify(err error) *Error {
	var (
		apiErr   *Error
		unknown  *registry.UnknownObjectError
		coercion *record.TypeCoercionError
		shape    *record.ShapeMismatchError
	)

	switch {
	case errors.As(err, &apiErr):
		return apiErr

	case errors.As(err, &unknown):
		e := newError(http.StatusNotFound, CodeObjectNotFound, err)
		e.Object = unknown.Object

		return e

	case errors.As(err, &coercion):
		e := newError(http.StatusUnprocessableEntity, CodeConversionFailed, err)
		e.Object, e.Field, e.Path = coercion.Object, coercion.Field, coercion.Path

		return e

	case errors.As(err, &shape):
		e := newError(http.StatusUnprocessableEntity, CodeConversionFailed, err)
		e.Object, e.Field, e.Path = shape.Object, shape.Field, shape.Path

		return e

	case errors.Is(err, schema.ErrInvalidCustomField):
		return newError(http.StatusBadRequest, CodeParamInvalid, err)

	default:
		return newError(http.StatusInternalServerError, CodeServer, err)
	}
}
