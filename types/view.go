/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package types

// ViewCollection is the response of a view query. K and V are the emitted
// key and value types, T the document type when include_docs was requested.
type ViewCollection[K, V, T any] struct {
	Offset    *int             `json:"offset,omitempty"`
	TotalRows *int             `json:"total_rows,omitempty"`
	Rows      []ViewItem[K, V, T] `json:"rows"`
}

// ViewItem is a single emitted view row.
type ViewItem[K, V, T any] struct {
	Key   K      `json:"key"`
	Value V      `json:"value"`
	ID    string `json:"id,omitempty"`
	// Doc is populated when the query ran with include_docs.
	Doc *T `json:"doc,omitempty"`
}

// CouchViews describes one or more views of a design document.
type CouchViews struct {
	Views    map[string]CouchFunc `json:"views"`
	Language string               `json:"language"`
}

// NewCouchViews builds a design document body with a single view.
func NewCouchViews(name string, fn CouchFunc) CouchViews {
	v := CouchViews{Views: map[string]CouchFunc{}, Language: "javascript"}
	v.Add(name, fn)
	return v
}

// Add registers an additional view.
func (v *CouchViews) Add(name string, fn CouchFunc) {
	if v.Views == nil {
		v.Views = map[string]CouchFunc{}
	}
	v.Views[name] = fn
}

// CouchFunc is a view's map function with an optional reduce function. See
// https://docs.couchdb.org/en/stable/ddocs/views/nosql.html#defining-a-view.
type CouchFunc struct {
	Map    string `json:"map"`
	Reduce string `json:"reduce,omitempty"`
}

// CouchUpdate describes update handlers of a design document.
type CouchUpdate struct {
	Updates map[string]string `json:"updates"`
}

// NewCouchUpdate builds an update handler document with a single function.
func NewCouchUpdate(name, fn string) CouchUpdate {
	return CouchUpdate{Updates: map[string]string{name: fn}}
}

// DesignCreated is the response to design document and index creation.
type DesignCreated struct {
	Result string `json:"result,omitempty"`
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	OK     bool   `json:"ok,omitempty"`
	Rev    string `json:"rev,omitempty"`
}
