package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Supported values of the database driver setting.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// MemoryDSN names a shared in-memory SQLite database that lives as long as
// at least one connection to it is open.
const MemoryDSN = "file:gophauth?mode=memory&cache=shared"

// Open connects to the database selected by driver, pings it, and returns
// the matching RepositoryManager. Migrations are not applied here.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, RepositoryManager, error) {
	var (
		db  *sql.DB
		rm  RepositoryManager
		err error
	)

	switch strings.ToLower(driver) {
	case DriverPostgres:
		db, err = sql.Open("pgx", dsn)
		rm = NewPostgresRepositoryManager()
	case DriverSQLite, DriverMemory:
		if strings.EqualFold(driver, DriverMemory) || dsn == "" {
			dsn = MemoryDSN
		}
		db, err = sql.Open("sqlite", dsn)
		if err == nil {
			// SQLite has a single writer; one connection makes concurrent
			// inserts queue in database/sql instead of failing with SQLITE_BUSY.
			db.SetMaxOpenConns(1)
		}
		rm = NewSQLiteRepositoryManager()
	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", driver)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("db open: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db ping: %w", err)
	}

	return db, rm, nil
}
