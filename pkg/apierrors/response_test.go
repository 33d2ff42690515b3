package apierrors_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reymi-tech/multitenant/pkg/apierrors"
	"github.com/reymi-tech/multitenant/pkg/tenant"
)

func testLogContext() apierrors.LogContext {
	return apierrors.LogContext{
		TraceID:    "mt_1756700000000_a1b2c3d4e",
		TenantCode: "acme",
		Method:     "POST",
		URL:        "/orders",
		Timestamp:  time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuildResponse(t *testing.T) {
	t.Parallel()

	t.Run("non-system messages pass through", func(t *testing.T) {
		t.Parallel()

		err := tenant.NewConflictError("acme")
		m := apierrors.Classify(err)
		resp := apierrors.BuildResponse(err, m, testLogContext())

		assert.False(t, resp.Success)
		assert.Equal(t, "TENANT_CONFLICT", resp.Error.Code)
		assert.Equal(t, "Tenant already exists", resp.Error.Message)
		assert.Equal(t, apierrors.CategoryTenant, resp.Error.Category)
		assert.Equal(t, 409, resp.Error.StatusCode)
		assert.Equal(t, "mt_1756700000000_a1b2c3d4e", resp.Error.TraceID)
		assert.Equal(t, "POST", resp.Error.Request.Method)
		assert.Equal(t, "/orders", resp.Error.Request.URL)
		assert.Equal(t, "acme", resp.Error.Request.TenantCode)
	})

	t.Run("system messages are replaced with the generic string", func(t *testing.T) {
		t.Parallel()

		err := errors.New("pointer dereference at 0xdeadbeef in internal/billing")
		m := apierrors.Classify(err)
		resp := apierrors.BuildResponse(err, m, testLogContext())

		assert.Equal(t, apierrors.CategorySystem, resp.Error.Category)
		assert.Equal(t, apierrors.GenericSystemMessage, resp.Error.Message)
		assert.NotContains(t, resp.Error.Message, "0xdeadbeef")
	})

	t.Run("status outside error range is clamped to 500", func(t *testing.T) {
		t.Parallel()

		for _, status := range []int{0, 200, 302, 600, -1} {
			m := apierrors.Mapping{StatusCode: status, Message: "x", ErrorCode: "X", Category: apierrors.CategorySystem}
			resp := apierrors.BuildResponse(errors.New("x"), m, testLogContext())
			assert.Equal(t, 500, resp.Error.StatusCode, "input status %d", status)
		}
	})

	t.Run("valid error statuses are preserved", func(t *testing.T) {
		t.Parallel()

		m := apierrors.Mapping{StatusCode: 418, Message: "x", ErrorCode: "X", Category: apierrors.CategoryTenant}
		resp := apierrors.BuildResponse(errors.New("x"), m, testLogContext())
		assert.Equal(t, 418, resp.Error.StatusCode)
	})
}

func TestResponseDetails(t *testing.T) {
	t.Parallel()

	lc := testLogContext()

	t.Run("query error surfaces database details", func(t *testing.T) {
		t.Parallel()

		err := &apierrors.QueryError{
			Query:  "INSERT INTO tenants (code) VALUES ($1)",
			Params: []any{"acme"},
			Err:    pgError("23505"),
		}
		resp := apierrors.BuildResponse(err, apierrors.Classify(err), lc)

		require.Contains(t, resp.Error.Details, "database")
		db, ok := resp.Error.Details["database"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "INSERT INTO tenants (code) VALUES ($1)", db["query"])
		assert.Equal(t, []any{"acme"}, db["parameters"])
		assert.NotEmpty(t, db["driverError"])
	})

	t.Run("not found surfaces entity details", func(t *testing.T) {
		t.Parallel()

		err := &apierrors.NotFoundError{Entity: "tenant", ID: "acme"}
		resp := apierrors.BuildResponse(err, apierrors.Classify(err), lc)

		require.Contains(t, resp.Error.Details, "entity")
		entity, ok := resp.Error.Details["entity"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "tenant", entity["name"])
		assert.Equal(t, "acme", entity["id"])
	})

	t.Run("invalid tenant code surfaces tenant details", func(t *testing.T) {
		t.Parallel()

		err := tenant.NewInvalidCodeError("bad code")
		resp := apierrors.BuildResponse(err, apierrors.Classify(err), lc)

		require.Contains(t, resp.Error.Details, "tenant")
		td, ok := resp.Error.Details["tenant"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "bad code", td["invalidCode"])
	})

	t.Run("conflict surfaces conflicting code", func(t *testing.T) {
		t.Parallel()

		err := tenant.NewConflictError("acme")
		resp := apierrors.BuildResponse(err, apierrors.Classify(err), lc)

		td, ok := resp.Error.Details["tenant"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "acme", td["conflictingCode"])
	})

	t.Run("validation failure surfaces individual errors", func(t *testing.T) {
		t.Parallel()

		err := tenant.NewValidationFailedError("acme", []string{"code too short"})
		resp := apierrors.BuildResponse(err, apierrors.Classify(err), lc)

		td, ok := resp.Error.Details["tenant"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "acme", td["code"])
		assert.Equal(t, []string{"code too short"}, td["validationErrors"])
	})

	t.Run("pool exhaustion surfaces suggestion", func(t *testing.T) {
		t.Parallel()

		err := tenant.NewPoolExhaustedError("raise max connections")
		resp := apierrors.BuildResponse(err, apierrors.Classify(err), lc)

		conn, ok := resp.Error.Details["connection"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "raise max connections", conn["suggestion"])
	})

	t.Run("plain errors carry no details", func(t *testing.T) {
		t.Parallel()

		err := errors.New("mystery")
		resp := apierrors.BuildResponse(err, apierrors.Classify(err), lc)
		assert.Nil(t, resp.Error.Details)
	})
}
