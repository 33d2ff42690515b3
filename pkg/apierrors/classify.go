package apierrors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/reymi-tech/multitenant/pkg/tenant"
)

// Fallback mappings for errors that match a rule but not a table entry.
var (
	genericTenantMapping = Mapping{
		StatusCode: http.StatusBadRequest,
		Message:    "Tenant operation failed",
		ErrorCode:  "TENANT_ERROR",
		Category:   CategoryTenant,
	}
	genericDatabaseMapping = Mapping{
		StatusCode: http.StatusInternalServerError,
		Message:    "A database error occurred",
		ErrorCode:  "DATABASE_ERROR",
		Category:   CategoryDatabase,
	}
	entityNotFoundMapping = Mapping{
		StatusCode: http.StatusNotFound,
		Message:    "Requested entity was not found",
		ErrorCode:  "ENTITY_NOT_FOUND",
		Category:   CategoryDatabase,
	}
	connectionMapping = Mapping{
		StatusCode: http.StatusServiceUnavailable,
		Message:    "A connection error occurred, please try again",
		ErrorCode:  "SERVICE_UNAVAILABLE",
		Category:   CategoryConnection,
	}
	unclassifiedMapping = Mapping{
		StatusCode: http.StatusInternalServerError,
		Message:    "Internal server error",
		ErrorCode:  "INTERNAL_SERVER_ERROR",
		Category:   CategorySystem,
	}
)

// Classify maps an arbitrary error to exactly one Mapping. It is a total
// function: any input, including nil, produces a well-formed result, and it
// never fails itself.
//
// Rules run first-match-wins, in this exact order. Reordering changes
// observable status codes for ambiguous inputs (a tenant error whose
// message happens to contain "timeout" must still classify as TENANT).
func Classify(err error) Mapping {
	if err == nil {
		return unclassifiedMapping
	}

	// 1. Framework HTTP errors already carry status and message.
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return Mapping{
			StatusCode: httpErr.Status,
			Message:    httpErr.Message,
			ErrorCode:  errorCodeForStatus(httpErr.Status),
			Category:   categoryForStatus(httpErr.Status),
		}
	}

	// 2. The closed set of domain tenant errors.
	var tenantErr *tenant.Error
	if errors.As(err, &tenantErr) {
		if m, ok := domainErrorMappings[tenantErr.Kind]; ok {
			return m
		}
		return genericTenantMapping
	}

	// 3. Storage-layer query failures carrying a driver SQLSTATE.
	var queryErr *QueryError
	if errors.As(err, &queryErr) {
		var pgErr *pgconn.PgError
		if errors.As(queryErr.Err, &pgErr) {
			if m, ok := pgErrorMappings[pgErr.Code]; ok {
				return m
			}
		}
		return genericDatabaseMapping
	}

	// 4. Entity-not-found, from either our wrapper or the driver sentinel.
	var notFound *NotFoundError
	if errors.As(err, &notFound) || errors.Is(err, pgx.ErrNoRows) {
		return entityNotFoundMapping
	}

	// 5. Generic connection-ish failures, recognized by message.
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "connection") || strings.Contains(msg, "timeout") {
		return connectionMapping
	}

	// 6. Query-ish failures wrapping a mapped SQLSTATE without the
	// QueryError wrapper.
	if strings.Contains(msg, "query") {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if m, ok := pgErrorMappings[pgErr.Code]; ok {
				return m
			}
		}
	}

	// 7. Everything else is an internal failure.
	return unclassifiedMapping
}
