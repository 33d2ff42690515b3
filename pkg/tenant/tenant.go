package tenant

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tenant is a registry record for a logical customer unit. Code is the
// stable external identifier used by resolution; SchemaName is the storage
// schema the tenant's data lives in.
type Tenant struct {
	ID         uuid.UUID  `json:"id"`
	Code       string     `json:"code"`
	Name       string     `json:"name"`
	SchemaName string     `json:"schema_name"`
	CreatedAt  time.Time  `json:"created_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

// Deleted reports whether the tenant is soft-deleted. Soft-deleted tenants
// are treated as non-existent everywhere in this module.
func (t *Tenant) Deleted() bool {
	return t != nil && t.DeletedAt != nil
}

// Validator checks tenant existence against a registry. Implementations
// must degrade on failure: a broken registry yields false/absent, never an
// error, so resolution can always continue without a tenant.
type Validator interface {
	// ValidateTenantExists reports whether a non-deleted tenant with the
	// given code exists.
	ValidateTenantExists(ctx context.Context, code string) bool

	// FindByCode returns the tenant with the given code, or absent.
	FindByCode(ctx context.Context, code string) (*Tenant, bool)
}

// SchemaName derives the conventional storage schema name for a tenant code
// when no registry record supplies one.
func SchemaName(code string) string {
	s := strings.ToLower(code)
	s = strings.ReplaceAll(s, "-", "_")
	return "tenant_" + s
}
