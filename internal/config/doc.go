// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional config file. It provides
// type-safe access to the server and database settings needed by different
// components while keeping configuration details separate from business
// logic. Environment variables use the TASKLIST_ prefix and take precedence
// over file values.
package config
