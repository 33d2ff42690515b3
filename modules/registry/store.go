package registry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/reymi-tech/multitenant/pkg/apierrors"
	"github.com/reymi-tech/multitenant/pkg/logger"
	"github.com/reymi-tech/multitenant/pkg/tenant"
)

// Store is the pgx-backed tenant registry. It doubles as the local
// validation strategy: its Validator methods degrade to false/absent on
// storage failures so resolution never depends on registry availability.
type Store struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewStore creates a registry store on an existing connection pool.
func NewStore(pool *pgxpool.Pool, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{pool: pool, log: log}
}

const tenantColumns = "id, code, name, schema_name, created_at, deleted_at"

func scanTenant(row pgx.Row) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := row.Scan(&t.ID, &t.Code, &t.Name, &t.SchemaName, &t.CreatedAt, &t.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByCode returns the non-deleted tenant with the given code, or a
// NotFoundError suitable for the error classifier.
func (s *Store) GetByCode(ctx context.Context, code string) (*tenant.Tenant, error) {
	const q = "SELECT " + tenantColumns + " FROM tenants WHERE code = $1 AND deleted_at IS NULL"

	t, err := scanTenant(s.pool.QueryRow(ctx, q, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &apierrors.NotFoundError{Entity: "tenant", ID: code}
		}
		return nil, &apierrors.QueryError{Query: q, Params: []any{code}, Err: err}
	}
	return t, nil
}

// Create inserts a new tenant. A duplicate code surfaces as the domain
// conflict error rather than a raw driver error.
func (s *Store) Create(ctx context.Context, t *tenant.Tenant) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.SchemaName == "" {
		t.SchemaName = tenant.SchemaName(t.Code)
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	const q = "INSERT INTO tenants (id, code, name, schema_name, created_at) VALUES ($1, $2, $3, $4, $5)"

	_, err := s.pool.Exec(ctx, q, t.ID, t.Code, t.Name, t.SchemaName, t.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return tenant.NewConflictError(t.Code)
		}
		return &apierrors.QueryError{Query: q, Params: []any{t.ID, t.Code, t.Name, t.SchemaName, t.CreatedAt}, Err: err}
	}
	return nil
}

// SoftDelete marks a tenant as deleted. Deleted tenants are invisible to
// every lookup in this module.
func (s *Store) SoftDelete(ctx context.Context, code string) error {
	const q = "UPDATE tenants SET deleted_at = now() WHERE code = $1 AND deleted_at IS NULL"

	tag, err := s.pool.Exec(ctx, q, code)
	if err != nil {
		return &apierrors.QueryError{Query: q, Params: []any{code}, Err: err}
	}
	if tag.RowsAffected() == 0 {
		return &apierrors.NotFoundError{Entity: "tenant", ID: code}
	}
	return nil
}

// ValidateTenantExists implements tenant.Validator.
func (s *Store) ValidateTenantExists(ctx context.Context, code string) bool {
	const q = "SELECT EXISTS (SELECT 1 FROM tenants WHERE code = $1 AND deleted_at IS NULL)"

	var exists bool
	if err := s.pool.QueryRow(ctx, q, code).Scan(&exists); err != nil {
		s.log.WarnContext(ctx, "tenant existence check failed", logger.Error(err), logger.TenantCode(code))
		return false
	}
	return exists
}

// FindByCode implements tenant.Validator. Storage failures degrade to absent.
func (s *Store) FindByCode(ctx context.Context, code string) (*tenant.Tenant, bool) {
	t, err := s.GetByCode(ctx, code)
	if err != nil {
		var notFound *apierrors.NotFoundError
		if !errors.As(err, &notFound) {
			s.log.WarnContext(ctx, "tenant lookup failed", logger.Error(err), logger.TenantCode(code))
		}
		return nil, false
	}
	return t, true
}
