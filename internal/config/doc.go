// Package config handles configuration loading, parsing, and validation
// from environment variables (TASKS_ prefix) and an optional config.yaml.
// It provides type-safe access to the settings needed by the server, the
// database layer and the authentication services.
package config
