// Package pg bootstraps the PostgreSQL layer: a pgx/v5 connection pool with
// retrying Connect, goose-based schema migrations, and a health probe. The
// tenant registry store in modules/registry builds on it.
package pg
