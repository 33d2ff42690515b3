// Package registry is the tenant registry module: a pgx-backed store that
// serves as the local tenant validation strategy, and a chi router exposing
// the admin endpoints the remote validation strategy consumes.
package registry
