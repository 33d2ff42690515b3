// Package httpserver wraps net/http with graceful shutdown, env-driven
// timeouts, and health probes. The registry service runs on it.
package httpserver
