package tenant_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/reymi-tech/multitenant/pkg/tenant"
)

func invokeUnary(t *testing.T, ic grpc.UnaryServerInterceptor, md metadata.MD, handler grpc.UnaryHandler) {
	t.Helper()

	ctx := context.Background()
	if md != nil {
		ctx = metadata.NewIncomingContext(ctx, md)
	}
	_, err := ic(ctx, "req", &grpc.UnaryServerInfo{FullMethod: "/orders.Orders/List"}, handler)
	require.NoError(t, err)
}

func TestUnaryServerInterceptor(t *testing.T) {
	t.Parallel()

	headerCfg := tenant.ResolutionConfig{Strategy: tenant.StrategyHeader}

	t.Run("metadata key resolves into handler context", func(t *testing.T) {
		t.Parallel()

		var called bool
		invokeUnary(t,
			tenant.UnaryServerInterceptor(headerCfg),
			metadata.Pairs("x-tenant-id", "acme"),
			func(ctx context.Context, req any) (any, error) {
				called = true
				tc, ok := tenant.FromContext(ctx)
				require.True(t, ok)
				assert.Equal(t, "acme", tc.TenantID)
				assert.Equal(t, "tenant_acme", tc.TenantSchema)
				return nil, nil
			},
		)
		assert.True(t, called)
	})

	t.Run("missing metadata continues without tenant", func(t *testing.T) {
		t.Parallel()

		var called bool
		invokeUnary(t,
			tenant.UnaryServerInterceptor(headerCfg),
			nil,
			func(ctx context.Context, req any) (any, error) {
				called = true
				_, ok := tenant.FromContext(ctx)
				assert.False(t, ok)
				return nil, nil
			},
		)
		assert.True(t, called)
	})

	t.Run("subdomain strategy reads authority", func(t *testing.T) {
		t.Parallel()

		cfg := tenant.ResolutionConfig{Strategy: tenant.StrategySubdomain}
		invokeUnary(t,
			tenant.UnaryServerInterceptor(cfg),
			metadata.Pairs(":authority", "acme.api.example.com:443"),
			func(ctx context.Context, req any) (any, error) {
				tc, ok := tenant.FromContext(ctx)
				require.True(t, ok)
				assert.Equal(t, "acme", tc.TenantID)
				return nil, nil
			},
		)
	})

	t.Run("default tenant fallback matches the http adapter", func(t *testing.T) {
		t.Parallel()

		cfg := tenant.ResolutionConfig{Strategy: tenant.StrategyHeader, DefaultTenant: "public"}
		invokeUnary(t,
			tenant.UnaryServerInterceptor(cfg),
			metadata.MD{},
			func(ctx context.Context, req any) (any, error) {
				tc, ok := tenant.FromContext(ctx)
				require.True(t, ok)
				assert.Equal(t, "public", tc.TenantID)
				return nil, nil
			},
		)
	})

	t.Run("unknown strategy continues without tenant", func(t *testing.T) {
		t.Parallel()

		cfg := tenant.ResolutionConfig{Strategy: "carrier-pigeon"}
		var called bool
		invokeUnary(t,
			tenant.UnaryServerInterceptor(cfg, tenant.WithLogger(slog.New(slog.DiscardHandler))),
			metadata.Pairs("x-tenant-id", "acme"),
			func(ctx context.Context, req any) (any, error) {
				called = true
				_, ok := tenant.FromContext(ctx)
				assert.False(t, ok)
				return nil, nil
			},
		)
		assert.True(t, called)
	})

	t.Run("panicking custom resolver continues without tenant", func(t *testing.T) {
		t.Parallel()

		cfg := tenant.ResolutionConfig{
			Strategy: tenant.StrategyCustom,
			Custom:   func(tenant.Carrier) (string, error) { panic("resolver bug") },
		}
		var called bool
		invokeUnary(t,
			tenant.UnaryServerInterceptor(cfg, tenant.WithLogger(slog.New(slog.DiscardHandler))),
			metadata.MD{},
			func(ctx context.Context, req any) (any, error) {
				called = true
				return nil, nil
			},
		)
		assert.True(t, called)
	})
}
