package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/jwalitptl/clinic-api/internal/repository"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// wrapErr attaches the matching repository sentinel to driver errors so
// services can classify them with errors.Is.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to %s: %w", op, repository.ErrNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return fmt.Errorf("failed to %s: %w: %w", op, repository.ErrDuplicate, err)
		case foreignKeyViolation:
			return fmt.Errorf("failed to %s: %w: %w", op, repository.ErrForeignKey, err)
		}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// affected turns a zero row count into ErrNotFound.
func affected(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("failed to %s: %w", op, repository.ErrNotFound)
	}
	return nil
}
