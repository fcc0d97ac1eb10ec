// Package repomanager provides a concrete RepositoryManager for the supported
// SQL drivers, wiring together repository constructors and database
// migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/migrations"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// dialect maps a database/sql driver name to the goose dialect and the
// embedded migrations directory.
type dialect struct {
	goose string
	dir   string
}

var dialects = map[string]dialect{
	dbx.DriverPostgres: {goose: "pgx", dir: "postgres"},
	dbx.DriverSQLite:   {goose: "sqlite3", dir: "sqlite"},
}

// SQLRepositoryManager vends repositories whose queries are rebound to the
// placeholder style of its driver.
type SQLRepositoryManager struct {
	driver  string
	dialect dialect
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(dbx.Rebind(db, m.driver))
}

// Sessions returns a sessions.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Sessions(db dbx.DBTX) sessions.Repository {
	return sessions.NewSQLRepository(dbx.Rebind(db, m.driver))
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations for the manager's
// dialect and applies them.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.dialect.goose); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, m.dialect.dir); err != nil {
		return err
	}
	return nil
}

// NewSQLRepositoryManager constructs a RepositoryManager for driverName
// (dbx.DriverPostgres or dbx.DriverSQLite).
func NewSQLRepositoryManager(driverName string) (RepositoryManager, error) {
	d, ok := dialects[driverName]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driverName)
	}
	return &SQLRepositoryManager{driver: driverName, dialect: d}, nil
}
