package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	full := writeTempJSON(t, dir, "full.json", map[string]any{
		"endpoint_addr_http":   "127.0.0.1:9000",
		"database_driver":      "pgx",
		"database_dsn":         "postgres://u:p@db:5432/auth",
		"session_ttl":          3600,
		"session_cookie_name":  "sid",
		"cookie_secure":        true,
		"password_scheme":      "argon2id",
		"hash_rounds":          7,
		"cors_allowed_origins": "http://localhost:5173",
		"log_level":            "debug",
	})

	t.Run("loads every field", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", full}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "127.0.0.1:9000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "pgx", cfg.DatabaseDriver)
		assert.Equal(t, "postgres://u:p@db:5432/auth", cfg.DatabaseDSN)
		assert.Equal(t, time.Hour, cfg.SessionTTL)
		assert.Equal(t, "sid", cfg.SessionCookieName)
		assert.True(t, cfg.CookieSecure)
		assert.Equal(t, "argon2id", cfg.PasswordScheme)
		assert.Equal(t, 7, cfg.HashRounds)
		assert.Equal(t, "http://localhost:5173", cfg.CORSAllowedOrigins)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("partial file keeps other values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"session_ttl": "30m"})
		os.Args = []string{"testbin", "-c", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
		assert.Equal(t, "AUTHSESSION", cfg.SessionCookieName)
		assert.Equal(t, 12, cfg.HashRounds)
	})

	t.Run("no flag, no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{SessionCookieName: "keep"}
		parseJson(cfg)

		assert.Equal(t, "keep", cfg.SessionCookieName)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		os.Args = []string{"testbin", "-config", bad}

		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "nope.json")}

		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
