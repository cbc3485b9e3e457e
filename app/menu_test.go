package app

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/htol/ebookstore/config"
	"github.com/htol/ebookstore/logger"
	"github.com/htol/ebookstore/repo"
	"github.com/htol/ebookstore/service"
)

func init() {
	logger.Init("error")
}

func newTestService(t *testing.T) *service.Service {
	t.Helper()
	cfg := config.Defaults().Database
	cfg.Path = filepath.Join(t.TempDir(), "books.db")

	storage, err := repo.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := storage.Close(); err != nil {
			t.Logf("Error closing storage: %v", err)
		}
	})
	return service.New(storage)
}

func runMenu(t *testing.T, svc *service.Service, input string) string {
	t.Helper()
	var out bytes.Buffer
	if err := NewMenu(svc, strings.NewReader(input), &out).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return out.String()
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("expected output to contain %q, got:\n%s", w, out)
		}
	}
}

func TestMenuStartupListsSeed(t *testing.T) {
	svc := newTestService(t)

	out := runMenu(t, svc, "0\n")
	assertContains(t, out,
		"ID: 3001, Title: A Tale of Two Cities, Author: Charles Dickens, Quantity: 30",
		"ID: 3005, Title: Alice in Wonderland, Author: Lewis Caroll, Quantity: 12",
		"4. Search book",
		"Goodbye!!",
	)
	if strings.Contains(out, msgDuplicate) {
		t.Errorf("fresh store should not report duplicates:\n%s", out)
	}

	// second start reports the skipped seed
	out = runMenu(t, svc, "0\n")
	assertContains(t, out, msgDuplicate, "ID: 3004")
}

func TestMenuDuneScenario(t *testing.T) {
	svc := newTestService(t)

	input := strings.Join([]string{
		"1", "3006", "Dune", "Frank Herbert", "5",
		"4", "3006",
		"2", "3006", "", "", "10",
		"4", "3006",
		"3", "3006",
		"4", "3006",
		"0",
	}, "\n") + "\n"

	out := runMenu(t, svc, input)
	assertContains(t, out,
		"Book added successfully!",
		"Book found:\nID: 3006, Title: Dune, Author: Frank Herbert, Quantity: 5",
		"Book updated successfully!",
		"ID: 3006, Title: Dune, Author: Frank Herbert, Quantity: 10",
		"Book deleted successfully!",
		"Book not found.",
	)
}

func TestMenuErrorsKeepLooping(t *testing.T) {
	svc := newTestService(t)

	input := strings.Join([]string{
		// unknown option
		"7",
		// bad id aborts before the other prompts
		"1", "abc",
		"1", "3010", "T", "A", "many",
		// duplicate id
		"1", "3001", "Copy", "Someone", "1",
		"2", "x",
		"2", "3001", "", "", "lots",
		"3", "nope",
		"4", "",
		// nothing to change
		"2", "3001", "", "", "",
		"4", "3001",
		"0",
	}, "\n") + "\n"

	out := runMenu(t, svc, input)
	assertContains(t, out,
		msgInvalidInput,
		msgInvalidID,
		msgInvalidQty,
		msgDuplicate,
		"Book updated successfully!",
		"ID: 3001, Title: A Tale of Two Cities, Author: Charles Dickens, Quantity: 30",
		msgGoodbye,
	)
	if n := strings.Count(out, msgInvalidID); n != 4 {
		t.Errorf("expected 4 invalid id messages, got %d:\n%s", n, out)
	}
	// the invalid id on add must abort before the title prompt
	if n := strings.Count(out, "Enter the title of the book: "); n != 2 {
		t.Errorf("expected 2 title prompts, got %d", n)
	}

	books, err := svc.ListBooks(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(books) != 5 {
		t.Errorf("failed operations changed the store: %+v", books)
	}
}

func TestMenuEndOfInput(t *testing.T) {
	svc := newTestService(t)

	// input ends in the middle of an add
	out := runMenu(t, svc, "1\n3006\nDune\n")
	assertContains(t, out, "Enter the author of the book: ", msgGoodbye)

	if _, err := svc.SearchBook(context.Background(), "3006"); err == nil {
		t.Error("incomplete add should not insert a book")
	}
}

func TestMenuCancelled(t *testing.T) {
	svc := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	defer close(done)

	var out bytes.Buffer
	r := &stallingReader{onRead: cancel, done: done}
	if err := NewMenu(svc, r, &out).Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	assertContains(t, out.String(), "1. Enter book", msgGoodbye)
}

// stallingReader cancels the menu on its first read and then blocks, like
// an idle terminal interrupted by a signal.
type stallingReader struct {
	onRead func()
	done   chan struct{}
}

func (r *stallingReader) Read(p []byte) (int, error) {
	r.onRead()
	<-r.done
	return 0, io.EOF
}
