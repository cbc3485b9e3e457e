package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/htol/ebookstore/book"
	"github.com/htol/ebookstore/logger"
)

const (
	insertBook = `INSERT INTO book (id, Title, Author, qty) VALUES (?, ?, ?, ?)`
	selectBook = `SELECT id, Title, Author, qty FROM book WHERE id = ?`
	listBooks  = `SELECT id, Title, Author, qty FROM book ORDER BY id`
	deleteBook = `DELETE FROM book WHERE id = ?`
)

// Seed inserts books in a single transaction. If any id already exists the
// whole batch is rolled back and ErrDuplicateKey is returned.
func (r *Repo) Seed(ctx context.Context, books []book.Book) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return classify(err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			logger.Warn("Failed to rollback seed transaction", "error", err)
		}
	}()

	for _, b := range books {
		if _, err := tx.ExecContext(ctx, insertBook, b.ID, b.Title, b.Author, b.Qty); err != nil {
			return classify(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return classify(err)
	}
	logger.Debug("Seeded books", "count", len(books))
	return nil
}

// Add inserts a new book
func (r *Repo) Add(ctx context.Context, b book.Book) error {
	if _, err := r.db.ExecContext(ctx, insertBook, b.ID, b.Title, b.Author, b.Qty); err != nil {
		return classify(err)
	}
	return nil
}

// Update applies a partial update. An empty update executes nothing, and
// updating an unknown id affects no rows without failing.
func (r *Repo) Update(ctx context.Context, id int64, u book.Update) error {
	query, args, err := buildUpdate(id, u.Changes())
	if err != nil {
		return err
	}
	if query == "" {
		return nil
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return classify(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		logger.Debug("Update matched no rows", "id", id)
	}
	return nil
}

// Delete removes a book. Deleting an unknown id is a no-op.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteBook, id)
	if err != nil {
		return classify(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		logger.Debug("Delete matched no rows", "id", id)
	}
	return nil
}

// GetByID returns the book with the given id or ErrNotFound
func (r *Repo) GetByID(ctx context.Context, id int64) (*book.Book, error) {
	var b book.Book
	var qty sql.NullInt64

	err := r.db.QueryRowContext(ctx, selectBook, id).Scan(&b.ID, &b.Title, &b.Author, &qty)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get book by ID %d: %w", id, classify(err))
	}
	b.Qty = qty.Int64

	return &b, nil
}

// List returns all books ordered by id
func (r *Repo) List(ctx context.Context) ([]book.Book, error) {
	rows, err := r.db.QueryContext(ctx, listBooks)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	books := []book.Book{}
	for rows.Next() {
		var b book.Book
		var qty sql.NullInt64
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &qty); err != nil {
			return nil, classify(err)
		}
		b.Qty = qty.Int64
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return books, nil
}
