package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/htol/ebookstore/logger"
	"github.com/htol/ebookstore/repo"
	"github.com/htol/ebookstore/service"
	"github.com/htol/ebookstore/validator"
)

const menuText = `
1. Enter book
2. Update book
3. Delete book
4. Search book
0. Exit
: `

const (
	msgDuplicate    = "Error: Duplicate data found. Skipping insertion."
	msgInvalidID    = "Invalid ID. Please enter a number."
	msgInvalidQty   = "Invalid quantity. Please enter a number."
	msgInvalidInput = "Invalid input. Please try again"
	msgGoodbye      = "Goodbye!!"
)

// Menu is the interactive text front end of the book store
type Menu struct {
	svc   *service.Service
	in    io.Reader
	out   io.Writer
	log   *slog.Logger
	lines <-chan string
}

func NewMenu(svc *service.Service, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		svc: svc,
		in:  in,
		out: out,
		log: logger.With("session", uuid.NewString()),
	}
}

// Run initializes the store, prints its contents and serves the menu until
// the user exits, the input ends or ctx is cancelled. Operation errors are
// reported to the user and never end the loop.
func (m *Menu) Run(ctx context.Context) error {
	m.log.Info("Menu started")

	res, err := m.svc.Initialize(ctx)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	m.lines = readLines(m.in)
	if !res.Seeded {
		m.println(msgDuplicate)
	}
	printBooks(m.out, res.Books)

	for {
		choice, ok := m.prompt(ctx, menuText)
		if !ok {
			break
		}

		var more bool
		switch strings.TrimSpace(choice) {
		case "1":
			more = m.addBook(ctx)
		case "2":
			more = m.updateBook(ctx)
		case "3":
			more = m.deleteBook(ctx)
		case "4":
			more = m.searchBook(ctx)
		case "0":
			m.println(msgGoodbye)
			m.log.Info("Menu exited")
			return nil
		default:
			m.println(msgInvalidInput)
			more = true
		}
		if !more {
			break
		}
	}

	m.println("")
	m.println(msgGoodbye)
	m.log.Info("Menu input closed")
	return nil
}

func (m *Menu) addBook(ctx context.Context) bool {
	id, ok := m.prompt(ctx, "Enter book ID: ")
	if !ok {
		return false
	}
	if _, err := validator.ParseID(id); err != nil {
		m.println(msgInvalidID)
		return true
	}
	title, ok := m.prompt(ctx, "Enter the title of the book: ")
	if !ok {
		return false
	}
	author, ok := m.prompt(ctx, "Enter the author of the book: ")
	if !ok {
		return false
	}
	qty, ok := m.prompt(ctx, "Enter the quantity of the book: ")
	if !ok {
		return false
	}

	_, err := m.svc.AddBook(ctx, id, title, author, qty)
	switch {
	case err == nil:
		m.println("Book added successfully!")
	case errors.Is(err, validator.ErrInvalidInput):
		m.println(msgInvalidQty)
	case errors.Is(err, repo.ErrDuplicateKey):
		m.println(msgDuplicate)
	default:
		m.log.Error("Add book failed", "error", err)
		m.println("Error adding book:", err)
	}
	return true
}

func (m *Menu) updateBook(ctx context.Context) bool {
	id, ok := m.prompt(ctx, "Enter the ID of the book to update: ")
	if !ok {
		return false
	}
	if _, err := validator.ParseID(id); err != nil {
		m.println(msgInvalidID)
		return true
	}
	title, ok := m.prompt(ctx, "Enter the new title of the book (leave blank if unchanged): ")
	if !ok {
		return false
	}
	author, ok := m.prompt(ctx, "Enter the new author of the book (leave blank if unchanged): ")
	if !ok {
		return false
	}
	qty, ok := m.prompt(ctx, "Enter the new quantity of the book (leave blank if unchanged): ")
	if !ok {
		return false
	}

	err := m.svc.UpdateBook(ctx, id, title, author, qty)
	switch {
	case err == nil:
		m.println("Book updated successfully!")
	case errors.Is(err, validator.ErrInvalidInput):
		m.println(msgInvalidQty)
	default:
		m.log.Error("Update book failed", "error", err)
		m.println("Error updating book:", err)
	}
	return true
}

func (m *Menu) deleteBook(ctx context.Context) bool {
	id, ok := m.prompt(ctx, "Enter the ID of the book to delete: ")
	if !ok {
		return false
	}

	err := m.svc.DeleteBook(ctx, id)
	switch {
	case err == nil:
		m.println("Book deleted successfully!")
	case errors.Is(err, validator.ErrInvalidInput):
		m.println(msgInvalidID)
	default:
		m.log.Error("Delete book failed", "error", err)
		m.println("Error deleting book:", err)
	}
	return true
}

func (m *Menu) searchBook(ctx context.Context) bool {
	id, ok := m.prompt(ctx, "Enter the ID of the book to search for: ")
	if !ok {
		return false
	}

	b, err := m.svc.SearchBook(ctx, id)
	switch {
	case err == nil:
		m.println("Book found:")
		m.println(b)
	case errors.Is(err, validator.ErrInvalidInput):
		m.println(msgInvalidID)
	case errors.Is(err, repo.ErrNotFound):
		m.println("Book not found.")
	default:
		m.log.Error("Search book failed", "error", err)
		m.println("Error searching for book:", err)
	}
	return true
}

// prompt writes text and waits for the next input line. It reports false
// when the input is exhausted or ctx is done.
func (m *Menu) prompt(ctx context.Context, text string) (string, bool) {
	fmt.Fprint(m.out, text)
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-m.lines:
		return line, ok
	}
}

func (m *Menu) println(a ...any) {
	fmt.Fprintln(m.out, a...)
}

// readLines feeds input lines to a channel that is closed at end of input.
// The reader goroutine may outlive Run while blocked on a terminal read.
func readLines(r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			lines <- strings.TrimRight(sc.Text(), "\r")
		}
		if err := sc.Err(); err != nil {
			logger.Warn("Reading menu input failed", "error", err)
		}
	}()
	return lines
}
