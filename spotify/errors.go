package spotify

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidShape marks input that does not match the expected record schema.
	// The API is trusted to be schema-conformant, so callers treat it as fatal.
	ErrInvalidShape = errors.New("invalid JSON shape")

	// ErrInvalidMethod is returned for methods other than GET, POST, PUT and DELETE
	ErrInvalidMethod = errors.New("unsupported HTTP method")

	// ErrNotFound matches an APIError with a 404 status
	ErrNotFound = errors.New("resource not found")
)

// DecodeError describes the first schema violation found while decoding a record
type DecodeError struct {
	Type   string // record being decoded, e.g. "album"
	Field  string // offending key or array index, empty for the value itself
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("decode %s: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("decode %s.%s: %s", e.Type, e.Field, e.Reason)
}

func (e *DecodeError) Unwrap() error { return ErrInvalidShape }

// TransportError is a request that could not be performed or whose body was not JSON
type TransportError struct {
	Method string
	URL    string
	Status int // 0 when no response was received
	Cause  error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Method, e.URL, e.Status, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// APIError is an application-level error object returned by the API
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// IsRecoverable reports whether err only means "absent result".
// Every other error is a protocol or transport failure.
func IsRecoverable(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
