package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
// The endpoint fields are provided by the deployment environment; the
// retry policy fields bound how long the application waits for the
// database to accept connections.
type DatabaseConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	User     string `mapstructure:"user" validate:"required"`
	Password string `mapstructure:"password" validate:"required"`
	Name     string `mapstructure:"name" validate:"required"`
	SSLMode  string `mapstructure:"ssl_mode" validate:"required,oneof=disable allow prefer require verify-ca verify-full"`

	// ConnectAttempts caps how many times session acquisition retries
	// before reporting the database unreachable.
	ConnectAttempts int `mapstructure:"connect_attempts" validate:"required,gte=1"`

	// ConnectIntervalSeconds is the fixed pause between attempts.
	ConnectIntervalSeconds int `mapstructure:"connect_interval_seconds" validate:"required,gte=1"`

	// HealthCheckAttempts is the shorter retry budget used by the health
	// endpoint, so probes fail fast instead of hanging for the full
	// boot-time budget.
	HealthCheckAttempts int `mapstructure:"health_check_attempts" validate:"required,gte=1"`
}

// DSN returns the connection URL for the configured database.
func (c DatabaseConfig) DSN() string {
	return c.dsn(c.Password)
}

// Redacted returns the connection URL with the password masked, safe for
// inclusion in logs and diagnostics.
func (c DatabaseConfig) Redacted() string {
	return c.dsn("****")
}

func (c DatabaseConfig) dsn(password string) string {
	u := url.URL{
		Scheme:   "postgres",
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	if password != "" {
		u.User = url.UserPassword(c.User, password)
	} else {
		u.User = url.User(c.User)
	}
	return u.String()
}

// ConnectInterval returns the pause between connection attempts as a
// time.Duration.
func (c DatabaseConfig) ConnectInterval() time.Duration {
	return time.Duration(c.ConnectIntervalSeconds) * time.Second
}
