package tenant

// Strategy selects how a tenant identifier is extracted from a request.
// Exactly one strategy runs per request.
type Strategy string

const (
	StrategyHeader    Strategy = "header"
	StrategySubdomain Strategy = "subdomain"
	StrategyJWT       Strategy = "jwt"
	StrategyCustom    Strategy = "custom"
)

// CustomResolver extracts a tenant identifier from a transport-agnostic
// request view. Returning an empty string means "no tenant".
type CustomResolver func(c Carrier) (string, error)

// ResolutionConfig controls tenant resolution. It is immutable for the
// process lifetime; load it once at startup (see pkg/config).
type ResolutionConfig struct {
	Strategy      Strategy `env:"TENANT_RESOLUTION_STRATEGY" envDefault:"header"`
	HeaderName    string   `env:"TENANT_HEADER_NAME" envDefault:"x-tenant-id"`
	JWTClaimName  string   `env:"TENANT_JWT_CLAIM" envDefault:"tenantId"`
	DefaultTenant string   `env:"TENANT_DEFAULT_TENANT"`

	// Custom is consulted only for StrategyCustom. Not loadable from the
	// environment; wire it in code.
	Custom CustomResolver `env:"-"`
}

// headerName returns the configured header name or the default.
func (c ResolutionConfig) headerName() string {
	if c.HeaderName == "" {
		return "x-tenant-id"
	}
	return c.HeaderName
}

// claimName returns the configured JWT claim name or the default.
func (c ResolutionConfig) claimName() string {
	if c.JWTClaimName == "" {
		return "tenantId"
	}
	return c.JWTClaimName
}
