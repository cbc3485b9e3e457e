// Package service provides the book store operations on raw user input.
// Numeric fields are parsed before the repository is touched, so an invalid
// value never has a side effect.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/htol/ebookstore/book"
	"github.com/htol/ebookstore/logger"
	"github.com/htol/ebookstore/repo"
	"github.com/htol/ebookstore/validator"
)

// Service provides the book store operations
type Service struct {
	repo repo.Repository
}

// New creates a new Service with the given repository
func New(repo repo.Repository) *Service {
	return &Service{repo: repo}
}

// InitResult is the outcome of Initialize
type InitResult struct {
	Books []book.Book
	// Seeded is false when seeding was skipped because some seed id existed
	Seeded bool
}

// Initialize creates the table, seeds it when empty and returns all books.
// A duplicate seed id skips the whole seed batch; it is not an error.
func (s *Service) Initialize(ctx context.Context) (*InitResult, error) {
	if err := s.repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	res := &InitResult{Seeded: true}
	if err := s.repo.Seed(ctx, book.SeedBooks()); err != nil {
		if !errors.Is(err, repo.ErrDuplicateKey) {
			return nil, fmt.Errorf("seed books: %w", err)
		}
		logger.Warn("Duplicate data found, skipping seed", "error", err)
		res.Seeded = false
	}

	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	res.Books = books
	return res, nil
}

// AddBook inserts a new book
func (s *Service) AddBook(ctx context.Context, id, title, author, qty string) (*book.Book, error) {
	bookID, err := validator.ParseID(id)
	if err != nil {
		return nil, err
	}
	quantity, err := validator.ParseQty(qty)
	if err != nil {
		return nil, err
	}

	b := book.Book{ID: bookID, Title: title, Author: author, Qty: quantity}
	if err := s.repo.Add(ctx, b); err != nil {
		return nil, fmt.Errorf("add book %d: %w", bookID, err)
	}
	logger.Info("Book added", "id", bookID)
	return &b, nil
}

// UpdateBook changes only the supplied fields. Blank title, author or qty
// mean "unchanged"; with nothing supplied the call succeeds without effect.
// Updating an unknown id is not an error.
func (s *Service) UpdateBook(ctx context.Context, id, title, author, qty string) error {
	bookID, err := validator.ParseID(id)
	if err != nil {
		return err
	}
	quantity, err := validator.ParseOptionalQty(qty)
	if err != nil {
		return err
	}

	u := book.Update{Qty: quantity}
	if strings.TrimSpace(title) != "" {
		u.Title = &title
	}
	if strings.TrimSpace(author) != "" {
		u.Author = &author
	}
	if u.Empty() {
		logger.Debug("Nothing to update", "id", bookID)
		return nil
	}

	if err := s.repo.Update(ctx, bookID, u); err != nil {
		return fmt.Errorf("update book %d: %w", bookID, err)
	}
	logger.Info("Book updated", "id", bookID, "fields", len(u.Changes()))
	return nil
}

// DeleteBook removes a book. An unknown id is a no-op.
func (s *Service) DeleteBook(ctx context.Context, id string) error {
	bookID, err := validator.ParseID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, bookID); err != nil {
		return fmt.Errorf("delete book %d: %w", bookID, err)
	}
	logger.Info("Book deleted", "id", bookID)
	return nil
}

// SearchBook looks a book up by id. A miss returns repo.ErrNotFound.
func (s *Service) SearchBook(ctx context.Context, id string) (*book.Book, error) {
	bookID, err := validator.ParseID(id)
	if err != nil {
		return nil, err
	}
	b, err := s.repo.GetByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("search book %d: %w", bookID, err)
	}
	return b, nil
}

// ListBooks returns every stored book ordered by id
func (s *Service) ListBooks(ctx context.Context) ([]book.Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// Ping checks the health of the service and its dependencies
func (s *Service) Ping(ctx context.Context) error {
	if err := s.repo.Ping(); err != nil {
		return fmt.Errorf("repository ping: %w", err)
	}
	return nil
}
