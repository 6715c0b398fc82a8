/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package couchstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/suparena/couchstore/errors"
	"github.com/suparena/couchstore/types"
)

// Database is a handle to one CouchDB database (sometimes called a
// collection in other NoSQL flavors). Handles are cheap; they share the
// client's transport and hold no other state.
type Database struct {
	client *Client
	name   string
}

func newDatabase(name string, client *Client) *Database {
	return &Database{client: client, name: name}
}

// Name returns the database name, including any client prefix.
func (d *Database) Name() string { return d.name }

func (d *Database) docPath(id string) string {
	return d.name + "/" + url.PathEscape(id)
}

func (d *Database) designPath(id string) string {
	return d.name + "/_design/" + url.PathEscape(id)
}

func (d *Database) viewPath(designID, viewID string) string {
	return d.name + "/_design/" + url.PathEscape(designID) + "/_view/" + url.PathEscape(viewID)
}

func (d *Database) updatePath(designID, updateID, docID string) string {
	return d.name + "/_design/" + url.PathEscape(designID) + "/_update/" + url.PathEscape(updateID) + "/" + url.PathEscape(docID)
}

// Exists checks whether a document ID exists.
func (d *Database) Exists(ctx context.Context, id string) bool {
	return statusOK(d.client.head(ctx, d.docPath(id)))
}

// Get retrieves a document by ID and decodes it into out.
func (d *Database) Get(ctx context.Context, id string, out interface{}) error {
	resp, err := d.client.get(ctx, d.docPath(id), nil)
	if err != nil {
		return err
	}
	return decodeResponse(resp, out)
}

// GetDocument retrieves a typed document by ID.
func GetDocument[T any](ctx context.Context, db *Database, id string) (*T, error) {
	var doc T
	if err := db.Get(ctx, id, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Save stores a document under its current ID. When the document carries a
// revision the save is an update; without one it behaves like Create for a
// chosen ID. The new revision is written back onto the document.
func (d *Database) Save(ctx context.Context, doc types.CouchDocument) (*types.DocumentCreatedDetails, error) {
	id := doc.DocumentID()
	if id == "" {
		return nil, fmt.Errorf("document has no _id: %w", errors.ErrInvalidInput)
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, &errors.DecodeError{Err: err}
	}
	resp, err := d.client.put(ctx, d.docPath(id), nil, body)
	if err != nil {
		return nil, err
	}
	return d.created(doc, resp)
}

// Create stores a new document, letting the server assign its ID.
func (d *Database) Create(ctx context.Context, doc types.CouchDocument) (*types.DocumentCreatedDetails, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, &errors.DecodeError{Err: err}
	}
	resp, err := d.client.post(ctx, d.name, nil, body)
	if err != nil {
		return nil, err
	}
	return d.created(doc, resp)
}

func (d *Database) created(doc types.CouchDocument, resp *http.Response) (*types.DocumentCreatedDetails, error) {
	var raw types.DocumentCreatedResponse
	if err := decodeResponse(resp, &raw); err != nil {
		return nil, err
	}
	details, err := raw.Details()
	if err != nil {
		return nil, err
	}
	doc.SetDocumentID(details.ID)
	doc.SetDocumentRev(details.Rev)
	return details, nil
}

// Upsert saves a document regardless of whether it already exists: the
// current revision is fetched and merged in first, a missing document is
// created instead.
func (d *Database) Upsert(ctx context.Context, doc types.CouchDocument) (*types.DocumentCreatedDetails, error) {
	id := doc.DocumentID()
	if id == "" {
		return d.Create(ctx, doc)
	}
	var probe struct {
		Rev string `json:"_rev"`
	}
	err := d.Get(ctx, id, &probe)
	switch {
	case err == nil:
		doc.SetDocumentRev(probe.Rev)
		return d.Save(ctx, doc)
	case errors.IsNotFound(err):
		return d.Save(ctx, doc)
	default:
		return nil, err
	}
}

// Remove deletes a document at its current revision. Returns false when the
// server does not confirm the delete.
func (d *Database) Remove(ctx context.Context, doc types.CouchDocument) bool {
	params := map[string]string{"rev": doc.DocumentRev()}
	resp, err := d.client.delete(ctx, d.docPath(doc.DocumentID()), params)
	if err != nil {
		return false
	}
	drainBody(resp)
	return resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusAccepted
}

// BulkDocs stores a batch of documents in one request. Per-document
// outcomes are returned in input order; successful IDs and revisions are
// written back onto the inputs.
func (d *Database) BulkDocs(ctx context.Context, docs []types.CouchDocument) ([]types.DocumentCreatedResponse, error) {
	body, err := json.Marshal(map[string]interface{}{"docs": docs})
	if err != nil {
		return nil, &errors.DecodeError{Err: err}
	}
	resp, err := d.client.post(ctx, d.name+"/_bulk_docs", nil, body)
	if err != nil {
		return nil, err
	}
	var results []types.DocumentCreatedResponse
	if err := decodeResponse(resp, &results); err != nil {
		return nil, err
	}
	for i, result := range results {
		if i >= len(docs) || result.Error != "" || result.Rev == "" {
			continue
		}
		docs[i].SetDocumentID(result.ID)
		docs[i].SetDocumentRev(result.Rev)
	}
	return results, nil
}

// allDocsRow is one row of an _all_docs response.
type allDocsRow struct {
	ID    string          `json:"id"`
	Key   string          `json:"key"`
	Doc   json.RawMessage `json:"doc"`
	Error string          `json:"error,omitempty"`
}

type allDocsResponse struct {
	Offset    int          `json:"offset"`
	TotalRows int          `json:"total_rows"`
	Rows      []allDocsRow `json:"rows"`
}

// GetAll retrieves every document in the database.
func GetAll[T any](ctx context.Context, db *Database) (*types.DocumentCollection[T], error) {
	return GetAllParams[T](ctx, db, nil)
}

// GetAllParams retrieves documents through _all_docs with view-style
// parameters. include_docs is always requested.
func GetAllParams[T any](ctx context.Context, db *Database, params *types.QueryParams) (*types.DocumentCollection[T], error) {
	values, err := params.Values()
	if err != nil {
		return nil, err
	}
	values.Set("include_docs", "true")
	flat := make(map[string]string, len(values))
	for k := range values {
		flat[k] = values.Get(k)
	}
	resp, err := db.client.get(ctx, db.name+"/_all_docs", flat)
	if err != nil {
		return nil, err
	}
	return decodeAllDocs[T](resp)
}

// GetBulk retrieves a set of documents by ID in one request.
func GetBulk[T any](ctx context.Context, db *Database, ids []types.DocumentID) (*types.DocumentCollection[T], error) {
	body, err := json.Marshal(map[string]interface{}{"keys": ids})
	if err != nil {
		return nil, &errors.DecodeError{Err: err}
	}
	params := map[string]string{"include_docs": "true"}
	resp, err := db.client.post(ctx, db.name+"/_all_docs", params, body)
	if err != nil {
		return nil, err
	}
	return decodeAllDocs[T](resp)
}

func decodeAllDocs[T any](resp *http.Response) (*types.DocumentCollection[T], error) {
	var raw allDocsResponse
	if err := decodeResponse(resp, &raw); err != nil {
		return nil, err
	}
	rows := make([]T, 0, len(raw.Rows))
	for _, row := range raw.Rows {
		// skip deleted/missing rows and design documents
		if row.Error != "" || row.Doc == nil || isDesignID(row.ID) {
			continue
		}
		var doc T
		if err := json.Unmarshal(row.Doc, &doc); err != nil {
			return nil, &errors.DecodeError{Err: err}
		}
		rows = append(rows, doc)
	}
	collection := types.NewDocumentCollection(rows, "")
	collection.Offset = raw.Offset
	return collection, nil
}

func isDesignID(id string) bool {
	return len(id) > 0 && id[0] == '_'
}

// Compact launches the database compaction process.
func (d *Database) Compact(ctx context.Context) bool {
	return statusAccepted(d.client.post(ctx, d.name+"/_compact", nil, nil))
}

// CompactViews starts compaction of all stale view indexes.
func (d *Database) CompactViews(ctx context.Context) bool {
	return statusAccepted(d.client.post(ctx, d.name+"/_view_cleanup", nil, nil))
}

// CompactIndex starts compaction of the view index of one design document.
func (d *Database) CompactIndex(ctx context.Context, designID string) bool {
	return statusAccepted(d.client.post(ctx, d.name+"/_compact/"+url.PathEscape(designID), nil, nil))
}
