package tenant

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// UnaryServerInterceptor creates a gRPC interceptor with the same resolution
// semantics as Middleware: the incoming metadata is adapted to the Carrier
// capability, the shared decision procedure runs once, and the result lands
// in the handler context plus the response header metadata. Resolution never
// fails an RPC.
func UnaryServerInterceptor(rcfg ResolutionConfig, opts ...Option) grpc.UnaryServerInterceptor {
	cfg := newConfig(opts...)

	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		md, _ := metadata.FromIncomingContext(ctx)

		tc, ok := cfg.establish(ctx, metadataCarrier{md}, rcfg)
		if !ok {
			return handler(ctx, req)
		}

		// Mirror the HTTP adapter's response headers. SetHeader fails only
		// when the transport is already gone, which resolution ignores.
		_ = grpc.SetHeader(ctx, metadata.Pairs(
			strings.ToLower(HeaderTenantID), tc.TenantID,
			strings.ToLower(HeaderTenantSchema), tc.TenantSchema,
		))

		return handler(WithContext(ctx, tc), req)
	}
}

// metadataCarrier adapts incoming gRPC metadata to the Carrier capability.
// gRPC metadata keys are lowercase by convention, matching the Carrier's
// case-insensitive header contract.
type metadataCarrier struct {
	md metadata.MD
}

func (c metadataCarrier) Header(name string) string {
	if vals := c.md.Get(strings.ToLower(name)); len(vals) > 0 {
		return vals[0]
	}
	return ""
}

func (c metadataCarrier) Host() string {
	host := c.Header(":authority")
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}
	return host
}
