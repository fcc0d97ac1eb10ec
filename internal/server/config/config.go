// Package config handles configuration for the server component,
// including defaults, a JSON overlay, environment variables and
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
)

// Password hashing schemes understood by auth.NewHasher.
const (
	SchemeDigest   = auth.SchemeDigest
	SchemeArgon2id = auth.SchemeArgon2id
	SchemeBcrypt   = auth.SchemeBcrypt
)

// Config holds runtime settings for the gophauth server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DatabaseDriver / DatabaseDSN: "pgx" (PostgreSQL) or "sqlite" and its DSN.
//   - SessionTTL: lifetime of a login session; also the cookie Max-Age.
//   - SessionCookieName: name of the cookie carrying the session token.
//   - CookieSecure: set the Secure attribute on the session cookie.
//   - PasswordScheme / HashRounds: password hashing algorithm and, for the
//     digest scheme, its iteration count.
//   - CORSAllowedOrigins: comma-separated origins; empty disables CORS.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddrHTTP   string
	DatabaseDriver     string
	DatabaseDSN        string
	SessionTTL         time.Duration
	SessionCookieName  string
	CookieSecure       bool
	PasswordScheme     string
	HashRounds         int
	CORSAllowedOrigins string
	LogLevel           string
}

// LoadDefaults populates Config with development defaults: an embedded
// SQLite file next to the binary and a one-day session.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDriver = dbx.DriverSQLite
	c.DatabaseDSN = "file:gophauth.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	c.SessionTTL = 24 * time.Hour
	c.SessionCookieName = "AUTHSESSION"
	c.CookieSecure = false
	c.PasswordScheme = SchemeDigest
	c.HashRounds = 12
	c.CORSAllowedOrigins = ""
	c.LogLevel = "info"
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case dbx.DriverPostgres, dbx.DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver %q", c.DatabaseDriver))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database DSN is required"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("session TTL must be positive, got %s", c.SessionTTL))
	}
	if c.SessionCookieName == "" {
		errs = append(errs, errors.New("session cookie name is required"))
	}
	switch c.PasswordScheme {
	case SchemeDigest, SchemeArgon2id, SchemeBcrypt:
	default:
		errs = append(errs, fmt.Errorf("unsupported password scheme %q", c.PasswordScheme))
	}
	if c.HashRounds < 1 {
		errs = append(errs, fmt.Errorf("hash rounds must be at least 1, got %d", c.HashRounds))
	}

	return errors.Join(errs...)
}

// CORSOrigins splits CORSAllowedOrigins into trimmed, non-empty origins.
func (c *Config) CORSOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
