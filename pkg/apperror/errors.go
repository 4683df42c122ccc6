package apperror

import (
	"errors"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrNotFound        = errors.New("resource not found")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrInternal        = errors.New("internal server error")
)

// ValidationError is a field-scoped 400: a mapping from field name to the
// human-readable messages for that field. It is always recoverable by the
// caller correcting input.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidation creates a ValidationError with a single field message.
func NewValidation(field, message string) *ValidationError {
	e := &ValidationError{Fields: map[string][]string{}}
	return e.Add(field, message)
}

// Add appends a message to a field and returns the error for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "invalid input: " + strings.Join(fields, ", ")
}

// AsValidation unwraps err into a ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// MapErrorToStatus maps domain errors to HTTP status codes.
func MapErrorToStatus(err error) int {
	if _, ok := AsValidation(err); ok {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthenticated) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
