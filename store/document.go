package store

import (
	"encoding/json"
	"time"
)

// Document is a stored record: a server-assigned identity, timestamps, and a
// JSON body of the caller's shape.
type Document[T any] struct {
	// ID is unique within the collection, assigned by the store, and never
	// reused.
	ID int64

	// Created is set once at insert time.
	Created time.Time

	// Updated equals Created after insert and is refreshed on every update.
	Updated time.Time

	// Body is the document payload.
	Body T
}

// Criteria is a partial structural pattern over a body's top-level shape.
// A document matches when every key in the criteria is present in its body
// with an equal value; keys absent from the criteria are unconstrained.
type Criteria map[string]interface{}

// Link is a minimal identifying projection of a document: its id plus the
// body's top-level "name" value.
//
// Deprecated: Link predates field projection. Use a projected
// [Collection.Get] instead.
type Link struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// rawDocument is the wire-level document shape shared by all operations.
// Typed results are produced by decoding its body.
type rawDocument = Document[json.RawMessage]

func decodeDocument[T any](raw *rawDocument) (*Document[T], error) {
	doc := &Document[T]{
		ID:      raw.ID,
		Created: raw.Created,
		Updated: raw.Updated,
	}
	if err := json.Unmarshal(raw.Body, &doc.Body); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeDocuments[T any](raws []rawDocument) ([]Document[T], error) {
	docs := make([]Document[T], 0, len(raws))
	for i := range raws {
		doc, err := decodeDocument[T](&raws[i])
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, nil
}
