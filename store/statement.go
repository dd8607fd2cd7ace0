package store

import (
	"encoding/json"
	"fmt"
	"strings"
)

// documentColumns is the full document envelope every read and returning
// write selects, in scan order.
const documentColumns = "id, body, created, updated"

// quoteIdent embeds a collection name as a quoted, case-sensitive identifier.
// Names are used verbatim; callers are responsible for supplying safe ones.
func quoteIdent(name string) string {
	return `"` + name + `"`
}

// buildGet constructs the single-document lookup. With fields, the body is
// re-projected to exactly the named top-level keys under the body alias, so
// the result still scans as a full document envelope. Field names are bound
// as parameters.
func buildGet(collection string, id int64, fields []string) (string, []interface{}) {
	args := []interface{}{id}
	if len(fields) == 0 {
		return fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", documentColumns, quoteIdent(collection)), args
	}

	pairs := make([]string, 0, len(fields))
	for _, field := range fields {
		n := len(args) + 1
		pairs = append(pairs, fmt.Sprintf("$%d::text, body -> $%d::text", n, n))
		args = append(args, field)
	}

	stmt := fmt.Sprintf(
		"SELECT id, jsonb_build_object(%s) AS body, created, updated FROM %s WHERE id = $1",
		strings.Join(pairs, ", "), quoteIdent(collection),
	)
	return stmt, args
}

// buildList constructs the full enumeration, ordered by ascending id. The
// ordering is part of the contract, not incidental.
func buildList(collection string) string {
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY id ASC", documentColumns, quoteIdent(collection))
}

// buildSearch constructs the containment search: documents whose body is a
// superset of criteria, ordered by ascending id.
func buildSearch(collection string, criteria Criteria) (string, []interface{}, error) {
	pattern, err := json.Marshal(criteria)
	if err != nil {
		return "", nil, fmt.Errorf("marshal criteria: %w", err)
	}
	stmt := fmt.Sprintf(
		"SELECT %s FROM %s WHERE body @> $1::jsonb ORDER BY id ASC",
		documentColumns, quoteIdent(collection),
	)
	return stmt, []interface{}{string(pattern)}, nil
}

// buildInsert constructs the insert. The server assigns id and sets created
// and updated to the same statement timestamp.
func buildInsert(collection string, body []byte) (string, []interface{}) {
	stmt := fmt.Sprintf(
		"INSERT INTO %s (body) VALUES ($1::jsonb) RETURNING %s",
		quoteIdent(collection), documentColumns,
	)
	return stmt, []interface{}{string(body)}
}

// buildUpdate constructs the body replacement for one id. created is left
// untouched; updated moves to the statement timestamp. Matching no row yields
// an empty result, not an error.
func buildUpdate(collection string, id int64, body []byte) (string, []interface{}) {
	stmt := fmt.Sprintf(
		"UPDATE %s SET body = $2::jsonb, updated = now() WHERE id = $1 RETURNING %s",
		quoteIdent(collection), documentColumns,
	)
	return stmt, []interface{}{id, string(body)}
}

// buildCreateCollection constructs the two provisioning statements: the
// backing table and the containment index over body. Both tolerate prior
// existence so racing first-writers cannot fail each other.
func buildCreateCollection(collection string) (table, index string) {
	table = fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s ("+
			"id BIGSERIAL PRIMARY KEY, "+
			"body JSONB NOT NULL, "+
			"created TIMESTAMPTZ NOT NULL DEFAULT now(), "+
			"updated TIMESTAMPTZ NOT NULL DEFAULT now())",
		quoteIdent(collection),
	)
	index = fmt.Sprintf(
		"CREATE INDEX IF NOT EXISTS %s ON %s USING GIN (body jsonb_path_ops)",
		quoteIdent(collection+"_body_idx"), quoteIdent(collection),
	)
	return table, index
}
