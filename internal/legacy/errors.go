package legacy

import (
	"fmt"

	"github.com/heartmarshall/pkp-import/internal/domain"
)

// NotFoundError reports a legacy record that does not exist.
// It matches domain.ErrNotFound via errors.Is.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("legacy %s %d: %s", e.Entity, e.ID, domain.ErrNotFound)
}

func (e *NotFoundError) Unwrap() error { return domain.ErrNotFound }
