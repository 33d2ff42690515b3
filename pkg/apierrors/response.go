package apierrors

import (
	"errors"
	"time"

	"github.com/reymi-tech/multitenant/pkg/tenant"
)

// ErrorResponse is the sole externally observable failure shape. StatusCode
// is always within [400, 599] and mirrored in the transport status line.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// ErrorBody carries the normalized failure description.
type ErrorBody struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Category   Category       `json:"category"`
	StatusCode int            `json:"statusCode"`
	Timestamp  time.Time      `json:"timestamp"`
	TraceID    string         `json:"traceId"`
	Details    map[string]any `json:"details,omitempty"`
	Request    RequestInfo    `json:"request"`
}

// RequestInfo identifies the failed request.
type RequestInfo struct {
	Method     string `json:"method"`
	URL        string `json:"url"`
	TenantCode string `json:"tenantCode,omitempty"`
}

// BuildResponse assembles the client-facing body from a classified error.
// SYSTEM-category messages are replaced with the fixed generic string so
// internal details never leak; all other categories surface the mapped
// message verbatim.
func BuildResponse(err error, m Mapping, lc LogContext) ErrorResponse {
	message := m.Message
	if m.Category == CategorySystem {
		message = GenericSystemMessage
	}

	status := m.StatusCode
	if status < 400 || status > 599 {
		status = 500
	}

	return ErrorResponse{
		Success: false,
		Error: ErrorBody{
			Code:       m.ErrorCode,
			Message:    message,
			Category:   m.Category,
			StatusCode: status,
			Timestamp:  lc.Timestamp,
			TraceID:    lc.TraceID,
			Details:    extractDetails(err),
			Request: RequestInfo{
				Method:     lc.Method,
				URL:        lc.URL,
				TenantCode: lc.TenantCode,
			},
		},
	}
}

// extractDetails pulls category-specific structured detail out of the error
// instance. Only the subset applicable to the actual error is included; the
// result is nil when there is nothing to say, which omits the details field
// entirely. Extraction must never break response building, so it recovers
// its own panics.
func extractDetails(err error) (details map[string]any) {
	defer func() {
		if recover() != nil {
			details = nil
		}
	}()

	var queryErr *QueryError
	if errors.As(err, &queryErr) {
		db := map[string]any{}
		if queryErr.Query != "" {
			db["query"] = queryErr.Query
		}
		if len(queryErr.Params) > 0 {
			db["parameters"] = queryErr.Params
		}
		if queryErr.Err != nil {
			db["driverError"] = queryErr.Err.Error()
		}
		if len(db) > 0 {
			return map[string]any{"database": db}
		}
		return nil
	}

	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		entity := map[string]any{"name": notFound.Entity}
		if notFound.ID != "" {
			entity["id"] = notFound.ID
		}
		return map[string]any{"entity": entity}
	}

	var tenantErr *tenant.Error
	if errors.As(err, &tenantErr) {
		return tenantDetails(tenantErr)
	}

	return nil
}

func tenantDetails(e *tenant.Error) map[string]any {
	switch e.Kind {
	case tenant.KindInvalidTenantCode:
		return map[string]any{"tenant": map[string]any{"invalidCode": e.Code}}
	case tenant.KindConflict:
		return map[string]any{"tenant": map[string]any{"conflictingCode": e.ConflictingCode}}
	case tenant.KindValidationFailed:
		d := map[string]any{}
		if e.Code != "" {
			d["code"] = e.Code
		}
		if len(e.ValidationErrors) > 0 {
			d["validationErrors"] = e.ValidationErrors
		}
		if len(d) > 0 {
			return map[string]any{"tenant": d}
		}
	case tenant.KindPoolExhausted:
		if e.Suggestion != "" {
			return map[string]any{"connection": map[string]any{"suggestion": e.Suggestion}}
		}
	}
	return nil
}
