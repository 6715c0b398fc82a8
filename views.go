/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package couchstore

import (
	"context"
	"encoding/json"
	"io"

	"github.com/suparena/couchstore/errors"
	"github.com/suparena/couchstore/types"
)

// CreateView stores (or overwrites) a design document with the given views.
func (d *Database) CreateView(ctx context.Context, designID string, views types.CouchViews) (*types.DesignCreated, error) {
	body, err := json.Marshal(views)
	if err != nil {
		return nil, &errors.DecodeError{Err: err}
	}
	resp, err := d.client.put(ctx, d.designPath(designID), nil, body)
	if err != nil {
		return nil, err
	}
	var created types.DesignCreated
	if err := decodeResponse(resp, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// QueryView executes a map/reduce view. K and V are the emitted key and
// value types; T is the document type for include_docs queries.
func QueryView[K, V, T any](ctx context.Context, db *Database, designID, viewID string, params *types.QueryParams) (*types.ViewCollection[K, V, T], error) {
	values, err := params.Values()
	if err != nil {
		return nil, err
	}
	flat := make(map[string]string, len(values))
	for k := range values {
		flat[k] = values.Get(k)
	}
	resp, err := db.client.get(ctx, db.viewPath(designID, viewID), flat)
	if err != nil {
		return nil, err
	}
	var collection types.ViewCollection[K, V, T]
	if err := decodeResponse(resp, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

// QueryViewRaw executes a view without assuming key or value shapes.
func (d *Database) QueryViewRaw(ctx context.Context, designID, viewID string, params *types.QueryParams) (*types.ViewCollection[json.RawMessage, json.RawMessage, types.Document], error) {
	return QueryView[json.RawMessage, json.RawMessage, types.Document](ctx, d, designID, viewID, params)
}

// CreateUpdate stores (or overwrites) a design document with the given
// update handlers.
func (d *Database) CreateUpdate(ctx context.Context, designID string, update types.CouchUpdate) (*types.DesignCreated, error) {
	body, err := json.Marshal(update)
	if err != nil {
		return nil, &errors.DecodeError{Err: err}
	}
	resp, err := d.client.put(ctx, d.designPath(designID), nil, body)
	if err != nil {
		return nil, err
	}
	var created types.DesignCreated
	if err := decodeResponse(resp, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ExecuteUpdate runs a server-side update handler against a document and
// returns the handler's response body.
func (d *Database) ExecuteUpdate(ctx context.Context, designID, updateID, docID string, body []byte) (string, error) {
	resp, err := d.client.put(ctx, d.updatePath(designID, updateID, docID), nil, body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &errors.TransportError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.New(string(out), resp.StatusCode)
	}
	return string(out), nil
}
