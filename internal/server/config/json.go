package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
	"github.com/dmitrijs2005/gophauth/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Pointer fields
// distinguish "absent" from zero values, so a file only overrides what it
// names.
type JsonConfig struct {
	EndpointAddrHTTP   *string         `json:"endpoint_addr_http"`
	DatabaseDriver     *string         `json:"database_driver"`
	DatabaseDSN        *string         `json:"database_dsn"`
	SessionTTL         *timex.Duration `json:"session_ttl"`
	SessionCookieName  *string         `json:"session_cookie_name"`
	CookieSecure       *bool           `json:"cookie_secure"`
	PasswordScheme     *string         `json:"password_scheme"`
	HashRounds         *int            `json:"hash_rounds"`
	CORSAllowedOrigins *string         `json:"cors_allowed_origins"`
	LogLevel           *string         `json:"log_level"`
}

// parseJson loads the file named by -c/-config into config. Without the flag
// nothing happens. An unreadable file or invalid JSON panics: the operator
// asked for a file that cannot be honoured.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setIf(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setIf(&config.DatabaseDriver, c.DatabaseDriver)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	if c.SessionTTL != nil {
		config.SessionTTL = c.SessionTTL.Duration
	}
	setIf(&config.SessionCookieName, c.SessionCookieName)
	setIf(&config.CookieSecure, c.CookieSecure)
	setIf(&config.PasswordScheme, c.PasswordScheme)
	setIf(&config.HashRounds, c.HashRounds)
	setIf(&config.CORSAllowedOrigins, c.CORSAllowedOrigins)
	setIf(&config.LogLevel, c.LogLevel)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
