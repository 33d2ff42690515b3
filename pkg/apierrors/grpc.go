package apierrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/reymi-tech/multitenant/pkg/tenant"
	"github.com/reymi-tech/multitenant/pkg/trace"
)

// UnaryServerInterceptor is the gRPC analogue of Responder.Write: any error
// returned by a handler (or a recovered panic) goes through the same
// classification pipeline and comes back as a status error with the
// equivalent gRPC code. Correlation IDs travel in the trailer metadata.
func (h *Responder) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if rec := recover(); rec != nil {
				perr, ok := rec.(error)
				if !ok {
					perr = fmt.Errorf("panic: %v", rec)
				}
				resp, err = nil, h.handleRPCError(ctx, perr, info.FullMethod, string(debug.Stack()))
			}
		}()

		resp, err = handler(ctx, req)
		if err != nil {
			return nil, h.handleRPCError(ctx, err, info.FullMethod, "")
		}
		return resp, nil
	}
}

func (h *Responder) handleRPCError(ctx context.Context, err error, fullMethod, stack string) error {
	// A handler that already produced a gRPC status is passed through
	// untouched; it made its own classification decision.
	var se interface{ GRPCStatus() *status.Status }
	if stack == "" && errors.As(err, &se) {
		return err
	}

	lc := grpcLogContext(ctx, fullMethod)
	if h.userID != nil {
		lc.UserID = h.userID(ctx)
	}

	m := Classify(err)
	h.logFailure(ctx, err, m, lc, stack)

	md := metadata.Pairs(strings.ToLower(trace.Header), lc.TraceID)
	if lc.TenantCode != "" {
		md.Append(strings.ToLower(HeaderTenantCode), lc.TenantCode)
	}
	_ = grpc.SetTrailer(ctx, md)

	message := m.Message
	if m.Category == CategorySystem {
		message = GenericSystemMessage
	}
	return status.Error(grpcCode(m.StatusCode), message)
}

// grpcLogContext derives the correlation context from an RPC context.
func grpcLogContext(ctx context.Context, fullMethod string) LogContext {
	lc := LogContext{
		Method:    "POST",
		URL:       fullMethod,
		Timestamp: time.Now().UTC(),
	}

	lc.TraceID = trace.FromContext(ctx)
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if lc.TraceID == "" {
			if vals := md.Get(strings.ToLower(trace.Header)); len(vals) > 0 && trace.Valid(vals[0]) {
				lc.TraceID = vals[0]
			}
		}
		if vals := md.Get("user-agent"); len(vals) > 0 {
			lc.UserAgent = vals[0]
		}
	}
	if lc.TraceID == "" {
		lc.TraceID = trace.New()
	}

	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		lc.IP = p.Addr.String()
	}

	if tc, ok := tenant.FromContext(ctx); ok {
		lc.TenantCode = tc.TenantID
	}

	return lc
}

// grpcCode translates the taxonomy's HTTP status to the nearest gRPC code.
func grpcCode(httpStatus int) codes.Code {
	switch httpStatus {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return codes.InvalidArgument
	case http.StatusUnauthorized:
		return codes.Unauthenticated
	case http.StatusForbidden:
		return codes.PermissionDenied
	case http.StatusNotFound:
		return codes.NotFound
	case http.StatusConflict:
		return codes.Aborted
	case http.StatusTooManyRequests:
		return codes.ResourceExhausted
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return codes.Unavailable
	case http.StatusGatewayTimeout:
		return codes.DeadlineExceeded
	default:
		return codes.Internal
	}
}
