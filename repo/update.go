package repo

import (
	"fmt"
	"slices"
	"strings"

	"github.com/htol/ebookstore/book"
)

// updatableColumns is both the whitelist and the SET order
var updatableColumns = []string{book.ColumnTitle, book.ColumnAuthor, book.ColumnQty}

// buildUpdate renders a parameterized UPDATE for the given column changes.
// It returns an empty query when there is nothing to change.
func buildUpdate(id int64, changes map[string]any) (string, []any, error) {
	if len(changes) == 0 {
		return "", nil, nil
	}

	sets := make([]string, 0, len(changes))
	args := make([]any, 0, len(changes)+1)
	for _, col := range updatableColumns {
		v, ok := changes[col]
		if !ok {
			continue
		}
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if len(sets) != len(changes) {
		for col := range changes {
			if !slices.Contains(updatableColumns, col) {
				return "", nil, fmt.Errorf("%w: column %q cannot be updated", ErrOperational, col)
			}
		}
	}

	args = append(args, id)
	return "UPDATE book SET " + strings.Join(sets, ", ") + " WHERE id = ?", args, nil
}
