package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Collection is a typed handle to one named collection. T is the body shape;
// it needs nothing beyond JSON (de)serializability.
//
// A Collection carries no state of its own and is safe for concurrent use.
type Collection[T any] struct {
	store *Store
	name  string
}

// NewCollection binds a typed collection handle to a store. The collection
// does not need to exist; it is materialized by the first insert.
func NewCollection[T any](s *Store, name string) *Collection[T] {
	return &Collection[T]{store: s, name: name}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// Get looks up one document by id. With fields, the body is projected to
// exactly the named top-level keys. A miss fails with MissingRecordError,
// whether the collection is absent or merely holds no such id.
func (c *Collection[T]) Get(ctx context.Context, id int64, fields ...string) (*Document[T], error) {
	doc, err := c.TryGet(ctx, id, fields...)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &MissingRecordError{Collection: c.name, ID: id}
	}
	return doc, nil
}

// TryGet is Get for callers that expect misses: it returns nil instead of
// failing when no document matches.
func (c *Collection[T]) TryGet(ctx context.Context, id int64, fields ...string) (*Document[T], error) {
	raw, err := c.store.get(ctx, c.name, id, fields)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	return decodeDocument[T](raw)
}

// All enumerates every document in ascending id order. A collection that was
// never written to enumerates as empty, never as an error.
func (c *Collection[T]) All(ctx context.Context) ([]Document[T], error) {
	raws, err := c.store.list(ctx, c.name)
	if err != nil {
		return nil, err
	}
	return decodeDocuments[T](raws)
}

// Find returns the documents whose body contains criteria, in ascending id
// order. Missing-collection tolerance matches All.
func (c *Collection[T]) Find(ctx context.Context, criteria Criteria) ([]Document[T], error) {
	raws, err := c.store.search(ctx, c.name, criteria)
	if err != nil {
		return nil, err
	}
	return decodeDocuments[T](raws)
}

// FindOne returns the lowest-id document whose body contains criteria, or
// fails with MissingRecordError when nothing matches.
func (c *Collection[T]) FindOne(ctx context.Context, criteria Criteria) (*Document[T], error) {
	doc, err := c.TryFindOne(ctx, criteria)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &MissingRecordError{Collection: c.name, Criteria: criteria}
	}
	return doc, nil
}

// TryFindOne is FindOne for callers that expect misses: it returns nil
// instead of failing when nothing matches.
func (c *Collection[T]) TryFindOne(ctx context.Context, criteria Criteria) (*Document[T], error) {
	raws, err := c.store.search(ctx, c.name, criteria)
	if err != nil {
		return nil, err
	}
	if len(raws) == 0 {
		return nil, nil
	}
	return decodeDocument[T](&raws[0])
}

// Insert writes a new document and returns it with its assigned id and
// timestamps. The first insert into a collection materializes its backing
// table and retries once; any other failure propagates unmodified.
func (c *Collection[T]) Insert(ctx context.Context, body T) (*Document[T], error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal body: %w", err)
	}
	raw, err := c.store.insert(ctx, c.name, encoded)
	if err != nil {
		return nil, err
	}
	return decodeDocument[T](raw)
}

// Update replaces the body of the document with the given id, refreshing its
// updated timestamp, and returns the updated document. When no such id exists
// (or the collection was never created) it returns nil without error; unlike
// Get, the miss is not escalated to MissingRecordError. Update never
// provisions a collection.
func (c *Collection[T]) Update(ctx context.Context, id int64, body T) (*Document[T], error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal body: %w", err)
	}
	raw, err := c.store.update(ctx, c.name, id, encoded)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	return decodeDocument[T](raw)
}
