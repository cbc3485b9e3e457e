package repo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
	"modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

// classify maps driver errors onto the package sentinels, keeping the
// original error in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if isConstraintViolation(err) {
		return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
	}
	return fmt.Errorf("%w: %w", ErrOperational, err)
}

func isConstraintViolation(err error) bool {
	var mattnErr sqlite3.Error
	if errors.As(err, &mattnErr) {
		return mattnErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			mattnErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	var modernErr *sqlite.Error
	if errors.As(err, &modernErr) {
		switch modernErr.Code() {
		case sqlitelib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlitelib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		case sqlitelib.SQLITE_CONSTRAINT:
			// connection without extended result codes
			return strings.Contains(modernErr.Error(), "UNIQUE constraint failed")
		}
	}
	return false
}
