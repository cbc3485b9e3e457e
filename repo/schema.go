package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/htol/ebookstore/config"
	"github.com/htol/ebookstore/logger"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names
const (
	DriverMattn   = "sqlite3"
	DriverModernc = "sqlite"
)

const memoryPath = ":memory:"

// Open opens the store described by cfg and makes sure the schema exists
func Open(cfg config.DatabaseConfig) (*Repo, error) {
	dsn, err := dataSourceName(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.Path, err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen < 1 {
		maxOpen = 1
	}
	db.SetMaxOpenConns(maxOpen)
	// an in-memory database lives only as long as its connection
	db.SetMaxIdleConns(max(cfg.MaxIdleConns, 1))

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database %s: %w", cfg.Path, err)
	}

	r := &Repo{db: db, path: cfg.Path}
	if err := r.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	logger.Info("Database opened", "path", cfg.Path, "driver", cfg.Driver)
	return r, nil
}

func dataSourceName(cfg config.DatabaseConfig) (string, error) {
	if cfg.Path == "" {
		return "", fmt.Errorf("database path is empty")
	}
	switch cfg.Driver {
	case DriverMattn:
		if cfg.Path == memoryPath {
			return memoryPath, nil
		}
		return fmt.Sprintf("file:%s?mode=rwc&_journal_mode=WAL&_busy_timeout=%d", cfg.Path, cfg.BusyTimeout), nil
	case DriverModernc:
		if cfg.Path == memoryPath {
			return memoryPath, nil
		}
		return fmt.Sprintf("file:%s?mode=rwc&_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)", cfg.Path, cfg.BusyTimeout), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// EnsureSchema creates the book table. It is a no-op when the table exists.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	sqlStmt := `
           CREATE TABLE IF NOT EXISTS book (
               id INTEGER PRIMARY KEY,
               Title TEXT NOT NULL,
               Author TEXT NOT NULL,
               qty INTEGER
           );
	`
	if _, err := r.db.ExecContext(ctx, sqlStmt); err != nil {
		return classify(err)
	}
	return nil
}
