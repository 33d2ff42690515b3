package logger

import "log/slog"

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// TraceID records the trace identifier under the key "trace_id".
func TraceID(id string) slog.Attr {
	return slog.String("trace_id", id)
}

// TenantCode records the tenant code under the key "tenant_code".
// If code is empty, it returns an empty Attr.
func TenantCode(code string) slog.Attr {
	if code == "" {
		return slog.Attr{}
	}
	return slog.String("tenant_code", code)
}

// UserID records the user identifier under the key "user_id".
// If id is empty, it returns an empty Attr.
func UserID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("user_id", id)
}

// ErrorCode records the taxonomy error code under the key "error_code".
func ErrorCode(code string) slog.Attr {
	return slog.String("error_code", code)
}

// Category records the taxonomy category under the key "category".
func Category(category string) slog.Attr {
	return slog.String("category", category)
}

// StatusCode records the HTTP status under the key "status_code".
func StatusCode(status int) slog.Attr {
	return slog.Int("status_code", status)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Strategy records the tenant resolution strategy under the key "strategy".
func Strategy(name string) slog.Attr {
	return slog.String("strategy", name)
}
