package tenant

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Carrier is the minimal transport-agnostic view of an inbound request that
// resolution needs. Both the HTTP middleware and the gRPC interceptor adapt
// their native request shapes to this interface, so the decision procedure
// below exists exactly once.
type Carrier interface {
	// Header returns the value of the named header, case-insensitively.
	// Empty string when absent.
	Header(name string) string

	// Host returns the host the request was addressed to, without port.
	Host() string
}

// Resolve extracts a candidate tenant identifier from the request using the
// configured strategy. An empty result with a nil error means no tenant was
// resolvable; that is not an error condition at this layer. The only error
// surfaced is ErrUnknownStrategy, which adapters log and swallow.
func Resolve(c Carrier, cfg ResolutionConfig) (string, error) {
	switch cfg.Strategy {
	case StrategyHeader, "":
		return strings.TrimSpace(c.Header(cfg.headerName())), nil
	case StrategySubdomain:
		return resolveSubdomain(c.Host()), nil
	case StrategyJWT:
		return resolveJWTClaim(c.Header("Authorization"), cfg.claimName()), nil
	case StrategyCustom:
		if cfg.Custom == nil {
			return "", nil
		}
		id, err := cfg.Custom(c)
		if err != nil {
			// A throwing custom resolver never aborts the request.
			return "", nil
		}
		return strings.TrimSpace(id), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, cfg.Strategy)
	}
}

// resolveSubdomain treats the first label before the registrable domain as
// the tenant code: "acme.api.example.com" resolves to "acme", a bare
// "example.com" resolves to nothing.
func resolveSubdomain(host string) string {
	if host == "" {
		return ""
	}
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}

	labels := strings.Split(host, ".")
	// The last two labels are domain + TLD; anything before them is a
	// subdomain chain, indexed at position 0.
	if len(labels) < 3 {
		return ""
	}
	return labels[0]
}

// resolveJWTClaim reads the configured claim from an unverified bearer token.
//
// The token signature is deliberately NOT verified here: this layer has no
// key material, and verification is a documented caller responsibility.
// Treat the extracted value as untrusted input. Any malformed token yields
// an absent tenant, never an error.
func resolveJWTClaim(authorization, claim string) string {
	token, ok := strings.CutPrefix(authorization, "Bearer ")
	if !ok {
		return ""
	}
	token = strings.TrimSpace(token)
	if strings.Count(token, ".") != 2 {
		return ""
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}

	v, ok := claims[claim]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
