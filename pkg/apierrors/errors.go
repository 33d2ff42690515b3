package apierrors

import (
	"fmt"
	"net/http"
)

// HTTPError is a framework-level error that already carries its HTTP status
// and client-facing message. The classifier extracts both directly.
type HTTPError struct {
	Status  int
	Message string
}

func (e HTTPError) Error() string { return e.Message }

// NewHTTPError creates an HTTPError with the given status and message.
func NewHTTPError(status int, message string) HTTPError {
	return HTTPError{Status: status, Message: message}
}

// Common HTTP errors for handler code.
var (
	ErrBadRequest          = HTTPError{Status: http.StatusBadRequest, Message: "Bad request"}
	ErrUnauthorized        = HTTPError{Status: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden           = HTTPError{Status: http.StatusForbidden, Message: "Forbidden"}
	ErrNotFound            = HTTPError{Status: http.StatusNotFound, Message: "Not found"}
	ErrMethodNotAllowed    = HTTPError{Status: http.StatusMethodNotAllowed, Message: "Method not allowed"}
	ErrConflict            = HTTPError{Status: http.StatusConflict, Message: "Conflict"}
	ErrUnprocessableEntity = HTTPError{Status: http.StatusUnprocessableEntity, Message: "Unprocessable entity"}
	ErrTooManyRequests     = HTTPError{Status: http.StatusTooManyRequests, Message: "Too many requests"}
	ErrInternalServerError = HTTPError{Status: http.StatusInternalServerError, Message: "Internal server error"}
	ErrBadGateway          = HTTPError{Status: http.StatusBadGateway, Message: "Bad gateway"}
	ErrServiceUnavailable  = HTTPError{Status: http.StatusServiceUnavailable, Message: "Service unavailable"}
	ErrGatewayTimeout      = HTTPError{Status: http.StatusGatewayTimeout, Message: "Gateway timeout"}
)

// QueryError is the storage layer's wrapper for a failed query. It carries
// the statement and parameters for error details and usually wraps a
// *pgconn.PgError whose SQLSTATE drives classification.
type QueryError struct {
	Query  string
	Params []any
	Err    error
}

func (e *QueryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("query failed: %v", e.Err)
	}
	return "query failed"
}

func (e *QueryError) Unwrap() error { return e.Err }

// NotFoundError reports that a requested entity does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Entity)
}
