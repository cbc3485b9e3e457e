package book

import "fmt"

// Book is a single inventory record. ID is supplied by the caller.
type Book struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Qty    int64  `json:"qty"`
}

func (b Book) String() string {
	return fmt.Sprintf("ID: %d, Title: %s, Author: %s, Quantity: %d", b.ID, b.Title, b.Author, b.Qty)
}

// Column names of the book table
const (
	ColumnID     = "id"
	ColumnTitle  = "Title"
	ColumnAuthor = "Author"
	ColumnQty    = "qty"
)

// Update describes a partial update. Nil fields are left unchanged.
type Update struct {
	Title  *string
	Author *string
	Qty    *int64
}

// Changes returns the supplied fields keyed by column name
func (u Update) Changes() map[string]any {
	changes := make(map[string]any, 3)
	if u.Title != nil {
		changes[ColumnTitle] = *u.Title
	}
	if u.Author != nil {
		changes[ColumnAuthor] = *u.Author
	}
	if u.Qty != nil {
		changes[ColumnQty] = *u.Qty
	}
	return changes
}

// Empty reports whether no field is supplied
func (u Update) Empty() bool {
	return u.Title == nil && u.Author == nil && u.Qty == nil
}

// SeedBooks returns the records inserted into a fresh store
func SeedBooks() []Book {
	return []Book{
		{ID: 3001, Title: "A Tale of Two Cities", Author: "Charles Dickens", Qty: 30},
		{ID: 3002, Title: "Harry Potter and the Philosopher's Stone", Author: "J.K. Rowling", Qty: 40},
		{ID: 3003, Title: "The Lion, the Witch and the Wardrobe", Author: "C. S. Lewis", Qty: 25},
		{ID: 3004, Title: "The Lord of the Rings", Author: "J.R.R. Tolkien", Qty: 37},
		{ID: 3005, Title: "Alice in Wonderland", Author: "Lewis Caroll", Qty: 12},
	}
}
