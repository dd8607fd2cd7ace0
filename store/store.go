package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
)

// Store provides document operations over lazily-created JSONB collections.
// It holds no cross-call state beyond the shared database handle, so a single
// Store is safe for concurrent use.
type Store struct {
	db     Querier
	config Config
	logger *slog.Logger
}

// New creates a new Store around a database handle.
func New(db Querier, config Config) *Store {
	return NewWithLogger(db, config, nil)
}

// NewWithLogger creates a new Store with a custom logger.
// A nil logger falls back to slog.Default().
func NewWithLogger(db Querier, config Config, logger *slog.Logger) *Store {
	config.validate()
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		db:     db,
		config: config,
		logger: logger,
	}
}

// DB returns the underlying database handle.
func (s *Store) DB() Querier {
	return s.db
}

// Ensure materializes the backing table and containment index for a
// collection. It is safe to call when the collection already exists and when
// concurrent callers race on first use: a duplicate raised by a racing
// creation is treated as success.
func (s *Store) Ensure(ctx context.Context, collection string) error {
	s.logger.Debug("provisioning collection", "collection", collection)

	table, index := buildCreateCollection(collection)
	if _, err := s.db.Exec(ctx, table); err != nil && !benignCreate(err) {
		return s.observe(err)
	}
	if _, err := s.db.Exec(ctx, index); err != nil && !benignCreate(err) {
		return s.observe(err)
	}
	return nil
}

// Raw executes an arbitrary parameterized statement and returns its rows as
// column-name-keyed maps. No recovery behavior applies: any failure
// propagates unmodified.
func (s *Store) Raw(ctx context.Context, sql string, args ...interface{}) ([]map[string]interface{}, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, s.observe(err)
	}
	defer rows.Close()

	var results []map[string]interface{}
	fields := rows.FieldDescriptions()
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, s.observe(err)
		}
		result := make(map[string]interface{}, len(fields))
		for i, fd := range fields {
			result[string(fd.Name)] = values[i]
		}
		results = append(results, result)
	}
	return results, s.observe(rows.Err())
}

// GetLink retrieves the identifying label of a document.
//
// Deprecated: use a projected [Collection.Get] instead.
func (s *Store) GetLink(ctx context.Context, collection string, id int64) (*Link, error) {
	raw, err := s.get(ctx, collection, id, []string{"name"})
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, &MissingRecordError{Collection: collection, ID: id}
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw.Body, &body); err != nil {
		return nil, err
	}
	return &Link{ID: raw.ID, Name: body.Name}, nil
}

// get looks up one document by id. A missing collection and a missing row
// are indistinguishable to a reader; both return nil without error.
func (s *Store) get(ctx context.Context, collection string, id int64, fields []string) (*rawDocument, error) {
	stmt, args := buildGet(collection, id, fields)
	raws, err := s.fetch(ctx, stmt, args)
	if err != nil {
		if collectionMissing(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(raws) == 0 {
		return nil, nil
	}
	return &raws[0], nil
}

// list enumerates a collection in ascending id order. A missing collection
// reads as empty.
func (s *Store) list(ctx context.Context, collection string) ([]rawDocument, error) {
	raws, err := s.fetch(ctx, buildList(collection), nil)
	if err != nil {
		if collectionMissing(err) {
			return nil, nil
		}
		return nil, err
	}
	return raws, nil
}

// search returns the documents whose body contains criteria, in ascending id
// order. A missing collection reads as empty.
func (s *Store) search(ctx context.Context, collection string, criteria Criteria) ([]rawDocument, error) {
	stmt, args, err := buildSearch(collection, criteria)
	if err != nil {
		return nil, err
	}
	raws, err := s.fetch(ctx, stmt, args)
	if err != nil {
		if collectionMissing(err) {
			return nil, nil
		}
		return nil, err
	}
	return raws, nil
}

// insert writes a new document. On a missing collection it provisions the
// backing table, then retries exactly once; a second missing-collection
// failure is fatal and propagates.
func (s *Store) insert(ctx context.Context, collection string, body []byte) (*rawDocument, error) {
	stmt, args := buildInsert(collection, body)

	raws, err := s.fetch(ctx, stmt, args)
	if collectionMissing(err) {
		if err := s.Ensure(ctx, collection); err != nil {
			return nil, err
		}
		raws, err = s.fetch(ctx, stmt, args)
	}
	if err != nil {
		return nil, err
	}
	if len(raws) == 0 {
		return nil, fmt.Errorf("stratum: insert into %q returned no row", collection)
	}
	return &raws[0], nil
}

// update replaces one document's body. It never provisions; matching no row
// and targeting a collection that was never created both read as the same
// empty outcome, not as a MissingRecordError.
func (s *Store) update(ctx context.Context, collection string, id int64, body []byte) (*rawDocument, error) {
	stmt, args := buildUpdate(collection, id, body)
	raws, err := s.fetch(ctx, stmt, args)
	if err != nil {
		if collectionMissing(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(raws) == 0 {
		return nil, nil
	}
	return &raws[0], nil
}

// fetch runs one statement and scans every row as a document envelope.
// pgx surfaces most execution failures from rows.Err() rather than from
// Query itself, so both paths are checked.
func (s *Store) fetch(ctx context.Context, stmt string, args []interface{}) ([]rawDocument, error) {
	rows, err := s.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, s.observe(err)
	}
	defer rows.Close()

	var raws []rawDocument
	for rows.Next() {
		var doc rawDocument
		var body []byte
		if err := rows.Scan(&doc.ID, &body, &doc.Created, &doc.Updated); err != nil {
			return nil, s.observe(err)
		}
		doc.Body = json.RawMessage(body)
		raws = append(raws, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, s.observe(err)
	}
	return raws, nil
}

// observe notifies the lost-connection handler for transport-level failures,
// then returns err unmodified.
func (s *Store) observe(err error) error {
	if err == nil {
		return nil
	}
	if s.config.OnLostConnection != nil && isTransportError(err) {
		s.config.OnLostConnection(err)
	}
	return err
}

func isTransportError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF)
}
