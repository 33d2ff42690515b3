package apierrors

import (
	"net/http"

	"github.com/reymi-tech/multitenant/pkg/tenant"
)

// Category is the closed classification of all failures. Every error maps
// to exactly one category.
type Category string

const (
	CategoryDatabase   Category = "DATABASE"
	CategoryTenant     Category = "TENANT"
	CategoryConnection Category = "CONNECTION"
	CategoryValidation Category = "VALIDATION"
	CategorySystem     Category = "SYSTEM"
)

// GenericSystemMessage is the only message ever shown to clients for
// SYSTEM-category failures, regardless of the underlying cause.
const GenericSystemMessage = "An internal error occurred. Please try again later."

// Mapping is the normalized result of classifying an error: the full
// client-facing triple plus category. Produced fresh per classification and
// never mutated afterwards.
type Mapping struct {
	StatusCode int
	Message    string
	ErrorCode  string
	Category   Category
}

// pgErrorMappings maps PostgreSQL SQLSTATE codes to normalized responses.
// Read-only after init; safe to share across requests.
var pgErrorMappings = map[string]Mapping{
	// Integrity violations
	"23505": {StatusCode: http.StatusConflict, Message: "A record with this value already exists", ErrorCode: "DUPLICATE_ENTRY", Category: CategoryDatabase},
	"23503": {StatusCode: http.StatusBadRequest, Message: "Referenced record does not exist", ErrorCode: "FOREIGN_KEY_VIOLATION", Category: CategoryDatabase},
	"23502": {StatusCode: http.StatusBadRequest, Message: "A required field is missing", ErrorCode: "NOT_NULL_VIOLATION", Category: CategoryValidation},
	"23514": {StatusCode: http.StatusBadRequest, Message: "Value violates a data constraint", ErrorCode: "CHECK_VIOLATION", Category: CategoryValidation},

	// Concurrency
	"40001": {StatusCode: http.StatusConflict, Message: "Operation conflicted with another transaction, please retry", ErrorCode: "SERIALIZATION_FAILURE", Category: CategoryDatabase},

	// Connection establishment
	"08000": {StatusCode: http.StatusServiceUnavailable, Message: "Database connection error", ErrorCode: "CONNECTION_ERROR", Category: CategoryConnection},
	"08003": {StatusCode: http.StatusServiceUnavailable, Message: "Database connection is no longer available", ErrorCode: "CONNECTION_DOES_NOT_EXIST", Category: CategoryConnection},
	"08006": {StatusCode: http.StatusServiceUnavailable, Message: "Database connection failed", ErrorCode: "CONNECTION_FAILURE", Category: CategoryConnection},

	// Schema
	"42P01": {StatusCode: http.StatusInternalServerError, Message: "A database error occurred", ErrorCode: "UNDEFINED_TABLE", Category: CategoryDatabase},
}

// domainErrorMappings maps the closed set of tenant error kinds to
// normalized responses.
var domainErrorMappings = map[tenant.ErrorKind]Mapping{
	tenant.KindNoTenantContext:       {StatusCode: http.StatusBadRequest, Message: "No tenant context available for this request", ErrorCode: "NO_TENANT_CONTEXT", Category: CategoryTenant},
	tenant.KindInvalidTenantCode:     {StatusCode: http.StatusBadRequest, Message: "Invalid tenant code", ErrorCode: "INVALID_TENANT_CODE", Category: CategoryTenant},
	tenant.KindSchemaNotFound:        {StatusCode: http.StatusNotFound, Message: "Tenant schema not found", ErrorCode: "SCHEMA_NOT_FOUND", Category: CategoryTenant},
	tenant.KindPoolExhausted:         {StatusCode: http.StatusServiceUnavailable, Message: "Tenant connections are exhausted, please retry shortly", ErrorCode: "CONNECTION_POOL_EXHAUSTED", Category: CategoryConnection},
	tenant.KindInvalidConnectionType: {StatusCode: http.StatusInternalServerError, Message: "Invalid connection type requested", ErrorCode: "INVALID_CONNECTION_TYPE", Category: CategorySystem},
	tenant.KindValidationFailed:      {StatusCode: http.StatusUnprocessableEntity, Message: "Tenant validation failed", ErrorCode: "TENANT_VALIDATION_FAILED", Category: CategoryValidation},
	tenant.KindConflict:              {StatusCode: http.StatusConflict, Message: "Tenant already exists", ErrorCode: "TENANT_CONFLICT", Category: CategoryTenant},
	tenant.KindTransactionFailed:     {StatusCode: http.StatusInternalServerError, Message: "Transaction failed", ErrorCode: "TRANSACTION_FAILED", Category: CategoryDatabase},
}

// statusErrorCodes derives a stable machine-readable code from an HTTP
// status when the error itself carries none. Clients rely on these codes
// staying stable across releases.
var statusErrorCodes = map[int]string{
	http.StatusBadRequest:          "BAD_REQUEST",
	http.StatusUnauthorized:        "UNAUTHORIZED",
	http.StatusForbidden:           "FORBIDDEN",
	http.StatusNotFound:            "NOT_FOUND",
	http.StatusConflict:            "CONFLICT",
	http.StatusUnprocessableEntity: "UNPROCESSABLE_ENTITY",
	http.StatusTooManyRequests:     "TOO_MANY_REQUESTS",
	http.StatusInternalServerError: "INTERNAL_SERVER_ERROR",
	http.StatusBadGateway:          "BAD_GATEWAY",
	http.StatusServiceUnavailable:  "SERVICE_UNAVAILABLE",
	http.StatusGatewayTimeout:      "GATEWAY_TIMEOUT",
}

// errorCodeForStatus returns the stable code for a status, UNKNOWN_ERROR for
// anything unlisted.
func errorCodeForStatus(status int) string {
	if code, ok := statusErrorCodes[status]; ok {
		return code
	}
	return "UNKNOWN_ERROR"
}

// categoryForStatus derives a category from an HTTP status. Gateway-style
// statuses are checked before the generic 5xx range so they classify as
// CONNECTION rather than SYSTEM.
func categoryForStatus(status int) Category {
	switch status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return CategoryConnection
	case http.StatusConflict, http.StatusBadRequest, http.StatusUnprocessableEntity:
		return CategoryValidation
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return CategoryTenant
	}
	return CategorySystem
}
