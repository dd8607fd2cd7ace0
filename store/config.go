package store

import (
	"fmt"
	"net/url"
)

// Config holds connection settings for the backing database.
type Config struct {
	// Host is the database server host.
	// Default: "localhost"
	Host string

	// Port is the database server port.
	// Default: 5432
	Port int

	// User is the database role to connect as.
	User string

	// Password is the role's password.
	Password string

	// Database is the database name.
	Database string

	// OnLostConnection, when set, is invoked once with the underlying error
	// before a transport-level failure is propagated to the caller. The store
	// performs no reconnection of its own.
	OnLostConnection func(error)
}

// DefaultConfig returns settings for a local development server.
func DefaultConfig() Config {
	return Config{
		Host: "localhost",
		Port: 5432,
	}
}

// validate ensures config values are within acceptable bounds.
func (c *Config) validate() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port <= 0 || c.Port > 65535 {
		c.Port = 5432
	}
}

// dsn renders the config as a connection URL.
func (c *Config) dsn() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   "/" + c.Database,
	}
	if c.User != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}
	return u.String()
}
