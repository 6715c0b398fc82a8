/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package types

import (
	"github.com/suparena/couchstore/errors"
)

// DocumentID is the identifier of a document within a database.
type DocumentID = string

// CouchDocument is implemented by any value that carries CouchDB's document
// metadata. Embedding DocumentMeta in a struct satisfies the interface.
type CouchDocument interface {
	DocumentID() string
	DocumentRev() string
	SetDocumentID(id string)
	SetDocumentRev(rev string)
}

// DocumentMeta holds the `_id` and `_rev` fields every CouchDB document
// carries. Embed it in entity structs to make them storable:
//
//	type User struct {
//	    types.DocumentMeta
//	    Name string `json:"name"`
//	}
type DocumentMeta struct {
	ID  string `json:"_id,omitempty"`
	Rev string `json:"_rev,omitempty"`
}

func (m *DocumentMeta) DocumentID() string       { return m.ID }
func (m *DocumentMeta) DocumentRev() string      { return m.Rev }
func (m *DocumentMeta) SetDocumentID(id string)  { m.ID = id }
func (m *DocumentMeta) SetDocumentRev(rev string) { m.Rev = rev }

// Document is a schemaless document. It implements CouchDocument so raw
// JSON objects can flow through the same operations as typed entities.
type Document map[string]interface{}

func (d Document) DocumentID() string {
	id, _ := d["_id"].(string)
	return id
}

func (d Document) DocumentRev() string {
	rev, _ := d["_rev"].(string)
	return rev
}

func (d Document) SetDocumentID(id string)   { d["_id"] = id }
func (d Document) SetDocumentRev(rev string) { d["_rev"] = rev }

// DocumentCreatedResponse is the raw per-document response CouchDB returns
// from document writes and _bulk_docs.
type DocumentCreatedResponse struct {
	ID     string `json:"id,omitempty"`
	Rev    string `json:"rev,omitempty"`
	OK     bool   `json:"ok,omitempty"`
	Error  string `json:"error,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// DocumentCreatedDetails is the result of a successful document write.
type DocumentCreatedDetails struct {
	ID  string `json:"id"`
	Rev string `json:"rev"`
}

// Details converts the raw response into details, mapping body-level errors
// to their conventional status codes.
func (r *DocumentCreatedResponse) Details() (*DocumentCreatedDetails, error) {
	if r.Error != "" {
		status := 500
		switch r.Error {
		case "forbidden":
			status = 403
		case "unauthorized":
			status = 401
		case "conflict":
			status = 409
		}
		return nil, errors.NewWithID(r.ID, r.Reason, status)
	}
	if r.ID == "" || r.Rev == "" {
		return nil, errors.New("unexpected response format", 500)
	}
	return &DocumentCreatedDetails{ID: r.ID, Rev: r.Rev}, nil
}

// DocumentCollection is a bounded batch of documents, as returned by _find,
// _all_docs and the batched readers. Bookmark, when present, is the opaque
// continuation token for the next page.
type DocumentCollection[T any] struct {
	Offset    int
	Rows      []T
	TotalRows int
	Bookmark  string
}

// NewDocumentCollection builds a collection from already-decoded rows.
func NewDocumentCollection[T any](rows []T, bookmark string) *DocumentCollection[T] {
	return &DocumentCollection[T]{
		Rows:      rows,
		TotalRows: len(rows),
		Bookmark:  bookmark,
	}
}
