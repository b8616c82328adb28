// Package storage opens the persistent store selected by configuration.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/dmitrijs2005/coursekeeper/internal/client/config"
	"github.com/dmitrijs2005/coursekeeper/internal/client/migrations"
	"github.com/dmitrijs2005/coursekeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/coursekeeper/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// RunMigrations applies the embedded goose migrations. It is idempotent.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// InitDatabase opens the SQLite file at path and migrates it. The pool is
// capped at one connection: SQLite has a single writer and the store is
// used by one process.
func InitDatabase(ctx context.Context, path string, busyTimeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open("sqlite", sqliteDSN(path, busyTimeout))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// sqliteDSN builds a SQLite URI for path. The path is percent-escaped so
// "?" and "#" in file names stay part of the path.
func sqliteDSN(path string, busyTimeout time.Duration) string {
	dsn := "file:" + (&url.URL{Path: path}).EscapedPath()
	if busyTimeout <= 0 {
		return dsn
	}
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeout.Milliseconds()))
	return dsn + "?" + q.Encode()
}

// Open returns the repository for cfg.StorageDriver together with a closer
// that releases it.
func Open(ctx context.Context, cfg *config.Config) (kv.Repository, io.Closer, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		return kv.NewMemoryRepository(), nopCloser{}, nil

	case config.DriverSQLite, "":
		if err := filex.EnsureParentDir(cfg.DataPath); err != nil {
			return nil, nil, err
		}
		db, err := InitDatabase(ctx, cfg.DataPath, cfg.BusyTimeout)
		if err != nil {
			return nil, nil, fmt.Errorf("error initializing database: %w", err)
		}
		return kv.NewSQLiteRepository(db), db, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
