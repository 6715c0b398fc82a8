/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package couchstore

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/suparena/couchstore/errors"
	"github.com/suparena/couchstore/types"
)

// Find runs a Mango query (POST /{db}/_find) and decodes the matching
// documents into T. Design documents are filtered out of the result; the
// returned collection carries the bookmark continuing the query, normalized
// to empty when the server reports none.
func Find[T any](ctx context.Context, db *Database, query *types.FindQuery) (*types.DocumentCollection[T], error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, &errors.DecodeError{Err: err}
	}
	resp, err := db.client.post(ctx, db.name+"/_find", nil, body)
	if err != nil {
		return nil, err
	}
	var result types.FindResult
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	if result.Error != "" {
		return nil, errors.New(result.Reason, http.StatusInternalServerError)
	}
	rows := make([]T, 0, len(result.Docs))
	for _, raw := range result.Docs {
		var probe struct {
			ID string `json:"_id"`
		}
		_ = json.Unmarshal(raw, &probe)
		if isDesignID(probe.ID) {
			continue
		}
		var row T
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, &errors.DecodeError{Err: err}
		}
		rows = append(rows, row)
	}
	bookmark := result.Bookmark
	// older servers report a literal "nil" bookmark
	if bookmark == "nil" {
		bookmark = ""
	}
	return types.NewDocumentCollection(rows, bookmark), nil
}

// FindRaw runs a Mango query returning schemaless documents.
func (d *Database) FindRaw(ctx context.Context, query *types.FindQuery) (*types.DocumentCollection[types.Document], error) {
	return Find[types.Document](ctx, d, query)
}
