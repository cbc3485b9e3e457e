package repo

import (
	"context"
	"errors"

	"github.com/htol/ebookstore/book"
)

var (
	// ErrNotFound is returned when a record is not found in the repository
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when an insert hits an existing id
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrOperational wraps any other storage failure
	ErrOperational = errors.New("storage operation failed")
)

// Repository defines the interface for data access operations
type Repository interface {
	// Close closes the database connection
	Close() error

	// Health check
	Ping() error

	// EnsureSchema creates the book table if it does not exist
	EnsureSchema(ctx context.Context) error

	// Seed inserts all books in one transaction or none of them
	Seed(ctx context.Context, books []book.Book) error

	Add(ctx context.Context, b book.Book) error
	Update(ctx context.Context, id int64, u book.Update) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*book.Book, error)
	List(ctx context.Context) ([]book.Book, error)
}
