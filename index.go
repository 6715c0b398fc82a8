/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package couchstore

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/suparena/couchstore/errors"
	"github.com/suparena/couchstore/types"
)

// InsertIndex creates a named Mango index over the given fields.
func (d *Database) InsertIndex(ctx context.Context, name string, fields types.IndexFields) (*types.DesignCreated, error) {
	body, err := json.Marshal(map[string]interface{}{
		"name":  name,
		"index": fields,
	})
	if err != nil {
		return nil, &errors.DecodeError{Err: err}
	}
	resp, err := d.client.post(ctx, d.name+"/_index", nil, body)
	if err != nil {
		return nil, err
	}
	var created types.DesignCreated
	if err := decodeResponse(resp, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ReadIndexes lists the database's Mango indexes.
func (d *Database) ReadIndexes(ctx context.Context) (*types.DatabaseIndexList, error) {
	resp, err := d.client.get(ctx, d.name+"/_index", nil)
	if err != nil {
		return nil, err
	}
	var list types.DatabaseIndexList
	if err := decodeResponse(resp, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// EnsureIndex creates the index when it does not exist yet. Returns true
// when a new index was created.
func (d *Database) EnsureIndex(ctx context.Context, name string, fields types.IndexFields) (bool, error) {
	list, err := d.ReadIndexes(ctx)
	if err != nil {
		return false, err
	}
	for _, index := range list.Indexes {
		if index.Name == name {
			return false, nil
		}
	}
	if _, err := d.InsertIndex(ctx, name, fields); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteIndex removes a Mango index by design document and name.
func (d *Database) DeleteIndex(ctx context.Context, ddoc, name string) (bool, error) {
	path := d.name + "/_index/" + url.PathEscape(ddoc) + "/json/" + url.PathEscape(name)
	resp, err := d.client.delete(ctx, path, nil)
	if err != nil {
		return false, err
	}
	var body struct {
		OK bool `json:"ok"`
	}
	if err := decodeResponse(resp, &body); err != nil {
		return false, err
	}
	return body.OK, nil
}
