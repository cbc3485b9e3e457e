package repo

import (
	"database/sql"

	"github.com/htol/ebookstore/logger"
)

// Repo is the book store. It owns a single database handle for its whole
// lifetime; callers release it with Close.
type Repo struct {
	db   *sql.DB
	path string
}

// New wraps an already opened database handle. The schema is not touched.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Close() error {
	if r.db != nil {
		logger.Info("Closing database connection", "path", r.path)
		return r.db.Close()
	}
	return nil
}

func (r *Repo) Ping() error {
	if r.db != nil {
		return r.db.Ping()
	}
	return sql.ErrConnDone
}
