package store

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Querier is the narrow execution capability the store consumes: run a
// parameterized statement, get rows or a typed error. It is satisfied by
// *pgxpool.Pool, which is safe for concurrent use by multiple operations.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// Connect establishes a connection pool for the given config. The pool is the
// long-lived handle callers pass to New; the store performs no pooling or
// reconnection logic of its own.
func Connect(ctx context.Context, config Config) (*pgxpool.Pool, error) {
	config.validate()
	return pgxpool.Connect(ctx, config.dsn())
}
