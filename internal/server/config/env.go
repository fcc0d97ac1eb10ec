package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables recognised by parseEnv.
const (
	EnvHTTPAddr           = "AUTH_HTTP_ADDR"
	EnvDatabaseDriver     = "AUTH_DATABASE_DRIVER"
	EnvDatabaseDSN        = "AUTH_DATABASE_DSN"
	EnvSessionTTLSeconds  = "AUTH_SESSION_TTL_SECONDS"
	EnvSessionCookieName  = "AUTH_SESSION_COOKIE_NAME"
	EnvCookieSecure       = "AUTH_COOKIE_SECURE"
	EnvPasswordScheme     = "AUTH_PASSWORD_SCHEME"
	EnvHashRounds         = "AUTH_HASH_ROUNDS"
	EnvCORSAllowedOrigins = "AUTH_CORS_ALLOWED_ORIGINS"
	EnvLogLevel           = "AUTH_LOG_LEVEL"
)

// envFile is loaded before the environment is read. Variables already set in
// the process environment win over the file.
var envFile = ".env"

// parseEnv overlays AUTH_* environment variables onto config. Malformed
// numeric or boolean values are reported rather than silently ignored.
func parseEnv(config *Config) error {
	_ = godotenv.Load(envFile)

	if v, ok := os.LookupEnv(EnvHTTPAddr); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := os.LookupEnv(EnvDatabaseDriver); ok {
		config.DatabaseDriver = v
	}
	if v, ok := os.LookupEnv(EnvDatabaseDSN); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv(EnvSessionTTLSeconds); ok {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSessionTTLSeconds, err)
		}
		config.SessionTTL = time.Duration(secs) * time.Second
	}
	if v, ok := os.LookupEnv(EnvSessionCookieName); ok {
		config.SessionCookieName = v
	}
	if v, ok := os.LookupEnv(EnvCookieSecure); ok {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCookieSecure, err)
		}
		config.CookieSecure = secure
	}
	if v, ok := os.LookupEnv(EnvPasswordScheme); ok {
		config.PasswordScheme = v
	}
	if v, ok := os.LookupEnv(EnvHashRounds); ok {
		rounds, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvHashRounds, err)
		}
		config.HashRounds = rounds
	}
	if v, ok := os.LookupEnv(EnvCORSAllowedOrigins); ok {
		config.CORSAllowedOrigins = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		config.LogLevel = v
	}

	return nil
}
