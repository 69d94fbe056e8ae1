package rest

import (
	"fmt"
	"net/http"

	"github.com/slidelab/pathclient/internal/domain"
)

// ErrorKind is the transport-level error classification. The domain layer
// maps kinds into user-facing messages; none of them are auto-retried here.
type ErrorKind string

const (
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindValidation   ErrorKind = "validation"
	KindServer       ErrorKind = "server"
	KindTimeout      ErrorKind = "timeout"
	KindNetwork      ErrorKind = "network"
	KindUnknown      ErrorKind = "unknown"
)

// APIError is a normalized backend error carrying its HTTP-status-derived
// classification.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %s (status %d)", e.Kind, e.Status)
	}
	return fmt.Sprintf("api: %s (status %d): %s", e.Kind, e.Status, e.Message)
}

// Unwrap maps the kind onto the matching domain sentinel so callers can use
// errors.Is against domain errors without importing this package.
func (e *APIError) Unwrap() error {
	switch e.Kind {
	case KindUnauthorized:
		return domain.ErrUnauthorized
	case KindForbidden:
		return domain.ErrForbidden
	case KindNotFound:
		return domain.ErrNotFound
	case KindConflict:
		return domain.ErrConflict
	case KindValidation:
		return domain.ErrValidation
	default:
		return nil
	}
}

// classifyStatus derives the error kind from an HTTP status code.
func classifyStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return KindValidation
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return KindTimeout
	case status >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}

// rawError mirrors the backend's error body.
type rawError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
