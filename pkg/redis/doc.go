// Package redis provides a retrying connector and health probe for the
// go-redis client, used by the shared tenant cache.
package redis
