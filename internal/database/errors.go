package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateID indicates a primary key collision.
	ErrDuplicateID = errors.New("duplicate primary key")

	// ErrDuplicateKey indicates a unique index collision other than the primary key.
	ErrDuplicateKey = errors.New("duplicate unique key")

	// ErrForeignKey indicates a write referencing a missing row.
	ErrForeignKey = errors.New("foreign key violation")

	// ErrUnavailable indicates the database could not serve the request in time.
	ErrUnavailable = errors.New("database unavailable")
)

// TranslateError maps driver and context errors onto the sentinels above.
// The original error stays in the chain; unknown errors are returned as-is.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %w", ErrDuplicateID, err)
		case sqlite3.ErrConstraintUnique:
			return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: %w", ErrForeignKey, err)
		}

		switch sqliteErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
	}

	return err
}
