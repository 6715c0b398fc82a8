/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package couchdb

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	couchstore "github.com/suparena/couchstore"
	"github.com/suparena/couchstore/errors"
	"github.com/suparena/couchstore/registry"
	"github.com/suparena/couchstore/types"
)

// CouchDataStore implements datastore.DataStore[T] on top of a couchstore
// database. Entities must implement types.CouchDocument (embed
// types.DocumentMeta); this is checked at runtime on writes.
type CouchDataStore[T any] struct {
	db *couchstore.Database
}

// New constructs a CouchDataStore for type T, connecting to (or creating)
// the named database.
func New[T any](ctx context.Context, client *couchstore.Client, dbname string) (*CouchDataStore[T], error) {
	db, err := client.Database(ctx, dbname)
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", dbname, err)
	}
	return &CouchDataStore[T]{db: db}, nil
}

// Database exposes the underlying database handle for operations outside
// the DataStore interface (views, indexes, changes).
func (d *CouchDataStore[T]) Database() *couchstore.Database { return d.db }

// GetOne retrieves an entity by document ID.
func (d *CouchDataStore[T]) GetOne(ctx context.Context, id string) (*T, error) {
	return couchstore.GetDocument[T](ctx, d.db, id)
}

// Put stores an entity, assigning a fresh document ID when it has none.
// Existing documents are updated at their current revision.
func (d *CouchDataStore[T]) Put(ctx context.Context, entity *T) error {
	doc, ok := any(entity).(types.CouchDocument)
	if !ok {
		return fmt.Errorf("entity type %T does not embed types.DocumentMeta: %w", entity, errors.ErrInvalidInput)
	}
	if doc.DocumentID() == "" {
		doc.SetDocumentID(uuid.NewString())
	}
	if _, err := d.db.Upsert(ctx, doc); err != nil {
		return fmt.Errorf("put %q: %w", doc.DocumentID(), err)
	}
	return nil
}

// Delete removes the document with the given ID at its current revision.
func (d *CouchDataStore[T]) Delete(ctx context.Context, id string) error {
	var probe struct {
		Rev string `json:"_rev"`
	}
	if err := d.db.Get(ctx, id, &probe); err != nil {
		return err
	}
	doc := types.Document{"_id": id, "_rev": probe.Rev}
	if !d.db.Remove(ctx, doc) {
		return fmt.Errorf("delete %q: server did not confirm", id)
	}
	return nil
}

// Find runs a Mango query decoded into the store's entity type. When no
// use_index is set and an index hint is registered for T, the hint is
// applied.
func (d *CouchDataStore[T]) Find(ctx context.Context, query *types.FindQuery) ([]*T, error) {
	q := d.withIndexHint(query)
	collection, err := couchstore.Find[*T](ctx, d.db, q)
	if err != nil {
		return nil, err
	}
	return collection.Rows, nil
}

// FindAny runs a Mango query resolving each row through the type registry,
// falling back to a generic map for unregistered types. Use this when one
// database holds documents of several types.
func (d *CouchDataStore[T]) FindAny(ctx context.Context, query *types.FindQuery) ([]interface{}, error) {
	q := d.withIndexHint(query)
	collection, err := couchstore.Find[json.RawMessage](ctx, d.db, q)
	if err != nil {
		return nil, err
	}
	results := make([]interface{}, 0, len(collection.Rows))
	for _, row := range collection.Rows {
		obj, err := registry.DecodeDocument(row)
		if err != nil {
			return nil, &errors.DecodeError{Err: err}
		}
		results = append(results, obj)
	}
	return results, nil
}

func (d *CouchDataStore[T]) withIndexHint(query *types.FindQuery) *types.FindQuery {
	if query.UseIndex != nil {
		return query
	}
	hint, ok := registry.GetIndex[T]()
	if !ok {
		return query
	}
	q := *query
	q.UseIndex = &types.IndexSpec{DesignDocument: hint.DesignDocument, Name: hint.Name}
	return &q
}
