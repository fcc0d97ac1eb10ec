package dbx

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/filex"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// Open opens and pings a database for one of the supported drivers.
//
// SQLite is limited to a single open connection: writers serialize anyway,
// and in-memory databases are private to the connection that created them.
func Open(ctx context.Context, driverName, dsn string) (*sql.DB, error) {
	switch driverName {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driverName)
	}

	if driverName == DriverSQLite {
		if path, ok := sqliteFilePath(dsn); ok {
			if _, err := filex.EnsureDir(filepath.Dir(path)); err != nil {
				return nil, fmt.Errorf("db dir error: %w", err)
			}
		}
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if driverName == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return db, nil
}

// sqliteFilePath extracts the database file from a SQLite DSN. In-memory
// databases report false.
func sqliteFilePath(dsn string) (string, bool) {
	path, query, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	if path == "" || path == ":memory:" || strings.Contains(query, "mode=memory") {
		return "", false
	}
	return path, true
}
