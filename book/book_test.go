package book

import "testing"

func TestUpdateChanges(t *testing.T) {
	title := "Dune"
	qty := int64(10)

	u := Update{Title: &title, Qty: &qty}
	changes := u.Changes()

	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d: %v", len(changes), changes)
	}
	if changes[ColumnTitle] != "Dune" {
		t.Errorf("expected title %q, got %v", "Dune", changes[ColumnTitle])
	}
	if changes[ColumnQty] != int64(10) {
		t.Errorf("expected qty 10, got %v", changes[ColumnQty])
	}
	if _, ok := changes[ColumnAuthor]; ok {
		t.Error("author should not be part of the changes")
	}
}

func TestUpdateEmpty(t *testing.T) {
	if !(Update{}).Empty() {
		t.Error("zero Update should be empty")
	}
	if len((Update{}).Changes()) != 0 {
		t.Error("zero Update should have no changes")
	}

	zero := int64(0)
	if (Update{Qty: &zero}).Empty() {
		t.Error("Update with zero qty supplied should not be empty")
	}
}

func TestSeedBooks(t *testing.T) {
	seed := SeedBooks()
	if len(seed) != 5 {
		t.Fatalf("expected 5 seed books, got %d", len(seed))
	}
	for i, b := range seed {
		if want := int64(3001 + i); b.ID != want {
			t.Errorf("seed %d: expected ID %d, got %d", i, want, b.ID)
		}
	}
	if seed[4].Author != "Lewis Caroll" {
		t.Errorf("unexpected author %q", seed[4].Author)
	}
}

func TestBookString(t *testing.T) {
	b := Book{ID: 3006, Title: "Dune", Author: "Frank Herbert", Qty: 5}
	want := "ID: 3006, Title: Dune, Author: Frank Herbert, Quantity: 5"
	if got := b.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
