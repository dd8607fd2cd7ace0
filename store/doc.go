// Package store provides a schema-less document store on top of PostgreSQL
// JSONB columns.
//
// Stratum treats arbitrarily named collections as lazily-created document
// tables. Each document carries a server-assigned integer id, creation and
// update timestamps, and an opaque JSON body. A collection's backing table is
// materialized on the first insert that targets it; reads against a collection
// that was never written to behave as reads against an empty collection.
//
// # Typed access
//
// Operations are exposed through [Collection], a typed handle bound to a
// [Store] and a collection name:
//
//	db, err := store.Connect(ctx, store.Config{
//	    Host:     "localhost",
//	    User:     "app",
//	    Password: "secret",
//	    Database: "app",
//	})
//	s := store.New(db, store.Config{})
//	tasks := store.NewCollection[Task](s, "tasks")
//
//	doc, err := tasks.Insert(ctx, Task{Title: "write docs"})
//	doc, err = tasks.Get(ctx, doc.ID)
//
// The body type needs nothing beyond JSON (de)serializability.
//
// # Missing collections and missing documents
//
// Reads never fail just because a collection does not exist yet: [Collection.All]
// and [Collection.Find] return an empty slice, [Collection.TryGet] and
// [Collection.TryFindOne] return nil, and [Collection.Get] and
// [Collection.FindOne] fail with a [MissingRecordError] — the same failure
// they produce when the collection exists but holds no matching document.
// [Collection.Insert] creates the backing table on demand and retries once.
//
// # Collection names
//
// Collection names are case-sensitive and are embedded into statements as
// quoted identifiers verbatim. The store binds all values and projected field
// names as parameters, but does not sanitize collection names; callers must
// supply safe identifiers.
//
// # Errors
//
//   - [MissingRecordError] - single-document lookup found nothing; matches
//     [ErrNotFound] with errors.Is
//   - any other execution failure is propagated unmodified
package store
