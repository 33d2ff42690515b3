package tenant

import (
	"errors"
	"fmt"
)

var (
	// ErrTenantNotFound is returned when a tenant cannot be found in the registry.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInvalidIdentifier is returned when a resolved identifier has an invalid format.
	ErrInvalidIdentifier = errors.New("invalid tenant identifier")

	// ErrUnknownStrategy is returned when the resolution config names a
	// strategy this package does not implement.
	ErrUnknownStrategy = errors.New("unknown tenant resolution strategy")
)

// ErrorKind tags the closed set of domain failures a multi-tenant data layer
// can raise. The error classifier maps each kind to a stable HTTP response.
type ErrorKind string

const (
	KindNoTenantContext       ErrorKind = "NO_TENANT_CONTEXT"
	KindInvalidTenantCode     ErrorKind = "INVALID_TENANT_CODE"
	KindSchemaNotFound        ErrorKind = "SCHEMA_NOT_FOUND"
	KindPoolExhausted         ErrorKind = "CONNECTION_POOL_EXHAUSTED"
	KindInvalidConnectionType ErrorKind = "INVALID_CONNECTION_TYPE"
	KindValidationFailed      ErrorKind = "TENANT_VALIDATION_FAILED"
	KindConflict              ErrorKind = "TENANT_CONFLICT"
	KindTransactionFailed     ErrorKind = "TRANSACTION_FAILED"
)

// Error is a tagged domain error. One struct covers all eight kinds; the
// payload fields are populated per kind so the error response builder can
// surface structured details without type switches per concrete type.
type Error struct {
	Kind ErrorKind

	// Code is the tenant code involved, when one is known.
	Code string

	// ConflictingCode is set for KindConflict.
	ConflictingCode string

	// ValidationErrors is set for KindValidationFailed.
	ValidationErrors []string

	// Suggestion is operator guidance, set for KindPoolExhausted.
	Suggestion string

	message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.message, e.cause)
	}
	return e.message
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches against another *Error by kind, so sentinels like
// &Error{Kind: KindConflict} work with errors.Is.
func (e *Error) Is(target error) bool {
	var te *Error
	if !errors.As(target, &te) {
		return false
	}
	return te.Kind == e.Kind
}

// NewNoContextError reports an operation that required a tenant context
// when none was resolved for the request.
func NewNoContextError() *Error {
	return &Error{
		Kind:    KindNoTenantContext,
		message: "no tenant context available for this operation",
	}
}

// NewInvalidCodeError reports a tenant code that failed format or registry checks.
func NewInvalidCodeError(code string) *Error {
	return &Error{
		Kind:    KindInvalidTenantCode,
		Code:    code,
		message: fmt.Sprintf("invalid tenant code %q", code),
	}
}

// NewSchemaNotFoundError reports a tenant whose storage schema does not exist.
func NewSchemaNotFoundError(schema string) *Error {
	return &Error{
		Kind:    KindSchemaNotFound,
		Code:    schema,
		message: fmt.Sprintf("tenant schema %q not found", schema),
	}
}

// NewPoolExhaustedError reports that no connection could be acquired for the
// tenant. Suggestion carries operator guidance surfaced in error details.
func NewPoolExhaustedError(suggestion string) *Error {
	return &Error{
		Kind:       KindPoolExhausted,
		Suggestion: suggestion,
		message:    "tenant connection pool exhausted",
	}
}

// NewInvalidConnectionTypeError reports a request for an unsupported
// connection type from the per-tenant pool.
func NewInvalidConnectionTypeError(connType string) *Error {
	return &Error{
		Kind:    KindInvalidConnectionType,
		Code:    connType,
		message: fmt.Sprintf("invalid connection type %q", connType),
	}
}

// NewValidationFailedError reports a tenant that failed registry validation,
// with the individual check failures attached.
func NewValidationFailedError(code string, validationErrors []string) *Error {
	return &Error{
		Kind:             KindValidationFailed,
		Code:             code,
		ValidationErrors: validationErrors,
		message:          fmt.Sprintf("tenant %q failed validation", code),
	}
}

// NewConflictError reports a tenant code that collides with an existing tenant.
func NewConflictError(code string) *Error {
	return &Error{
		Kind:            KindConflict,
		Code:            code,
		ConflictingCode: code,
		message:         fmt.Sprintf("tenant %q already exists", code),
	}
}

// NewTransactionFailedError wraps a failed tenant-scoped transaction.
func NewTransactionFailedError(cause error) *Error {
	return &Error{
		Kind:    KindTransactionFailed,
		cause:   cause,
		message: "tenant transaction failed",
	}
}
