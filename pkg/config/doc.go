// Package config loads typed configuration structs from environment
// variables (with optional .env support) and caches them per type, so every
// component observes one immutable configuration for the process lifetime.
package config
