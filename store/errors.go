package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgconn"

	"github.com/jacentio/stratum/internal/pgcode"
)

// ErrNotFound is matched (via errors.Is) by every MissingRecordError.
var ErrNotFound = errors.New("stratum: record not found")

// MissingRecordError is returned when a single-document lookup resolves to
// nothing, whether because the collection does not exist or because no
// document matched. It carries the collection and the id or criteria that
// failed to resolve.
type MissingRecordError struct {
	Collection string

	// ID is the looked-up id for get-style lookups, 0 otherwise.
	ID int64

	// Criteria is the search pattern for findOne-style lookups, nil otherwise.
	Criteria Criteria
}

func (e *MissingRecordError) Error() string {
	if e.Criteria != nil {
		return fmt.Sprintf("stratum: no record in %q matching %v", e.Collection, e.Criteria)
	}
	return fmt.Sprintf("stratum: no record in %q with id %d", e.Collection, e.ID)
}

// Is reports a match for ErrNotFound so callers can test with errors.Is
// without naming the concrete type.
func (e *MissingRecordError) Is(target error) bool {
	return target == ErrNotFound
}

// collectionMissing reports whether err means the targeted collection's
// backing table does not exist. A successful-but-empty result is never an
// error and never reaches this check.
func collectionMissing(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgcode.IsUndefinedTable(pgErr.Code)
}

// benignCreate reports whether err, raised while provisioning, only means a
// concurrent session provisioned the collection first.
func benignCreate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgcode.IsBenignCreate(pgErr.Code)
}
