package postgres

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"meta_indexer/internal/domain"
)

const uniqueViolation = "23505"

// mapError translates driver errors to domain sentinels so callers never
// depend on lib/pq error codes.
func mapError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}
