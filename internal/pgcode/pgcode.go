// Package pgcode identifies the PostgreSQL SQLSTATE codes the store reacts to.
package pgcode

// SQLSTATE codes, per the PostgreSQL error code appendix.
const (
	// UndefinedTable is raised when a statement targets a relation that
	// does not exist.
	UndefinedTable = "42P01"

	// DuplicateTable is raised when CREATE TABLE targets an existing relation.
	DuplicateTable = "42P07"

	// DuplicateObject is raised when CREATE INDEX (and friends) target an
	// existing schema object.
	DuplicateObject = "42710"

	// UniqueViolation is raised on unique constraint conflicts. Concurrent
	// CREATE TABLE IF NOT EXISTS can surface it via the system catalogs.
	UniqueViolation = "23505"
)

// IsUndefinedTable reports whether code means the target relation is missing.
func IsUndefinedTable(code string) bool {
	return code == UndefinedTable
}

// IsBenignCreate reports whether code, raised while creating a relation or
// index, only means another session created it first.
func IsBenignCreate(code string) bool {
	switch code {
	case DuplicateTable, DuplicateObject, UniqueViolation:
		return true
	}
	return false
}
