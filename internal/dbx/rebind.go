package dbx

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Rebind wraps db so that queries written with '?' placeholders are
// translated to the bind style of driverName ("$1" for pgx) before they
// reach the driver. Drivers that accept '?' get db back unchanged.
func Rebind(db DBTX, driverName string) DBTX {
	bindType := sqlx.BindType(driverName)
	if bindType == sqlx.QUESTION || bindType == sqlx.UNKNOWN {
		return db
	}
	return &reboundDB{db: db, bindType: bindType}
}

type reboundDB struct {
	db       DBTX
	bindType int
}

func (r *reboundDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return r.db.ExecContext(ctx, sqlx.Rebind(r.bindType, query), args...)
}

func (r *reboundDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return r.db.QueryContext(ctx, sqlx.Rebind(r.bindType, query), args...)
}

func (r *reboundDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return r.db.QueryRowContext(ctx, sqlx.Rebind(r.bindType, query), args...)
}
