package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-k string   database driver: pgx or sqlite
//	-d string   database DSN
//	-t int      session TTL, seconds
//	-n string   session cookie name
//	-secure     set the Secure attribute on the session cookie
//	-m string   password scheme: digest, argon2id or bcrypt
//	-r int      digest rounds
//	-o string   comma-separated CORS origins
//	-l string   log level
//
// os.Args is first filtered with flagx.FilterArgs so flags owned by other
// components (-c/-config) do not abort parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-a", "-k", "-d", "-t", "-n", "-m", "-r", "-o", "-l"},
		"-secure")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDriver, "k", config.DatabaseDriver, "database driver (pgx, sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	sessionTTL := fs.Int("t", int(config.SessionTTL.Seconds()), "session TTL (in seconds)")
	fs.StringVar(&config.SessionCookieName, "n", config.SessionCookieName, "session cookie name")
	fs.BoolVar(&config.CookieSecure, "secure", config.CookieSecure, "mark the session cookie Secure")
	fs.StringVar(&config.PasswordScheme, "m", config.PasswordScheme, "password scheme (digest, argon2id, bcrypt)")
	fs.IntVar(&config.HashRounds, "r", config.HashRounds, "digest rounds")
	fs.StringVar(&config.CORSAllowedOrigins, "o", config.CORSAllowedOrigins, "comma-separated CORS origins")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionTTL = time.Duration(*sessionTTL) * time.Second
}
