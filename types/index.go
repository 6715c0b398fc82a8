/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package types

// IndexFields lists the fields a Mango index covers, in order.
type IndexFields struct {
	Fields []SortSpec `json:"fields"`
}

// NewIndexFields builds an index definition over the given fields.
func NewIndexFields(fields ...SortSpec) IndexFields {
	return IndexFields{Fields: fields}
}

// Index is one Mango index as reported by GET /{db}/_index.
type Index struct {
	DDoc string      `json:"ddoc,omitempty"`
	Name string      `json:"name"`
	Type string      `json:"type,omitempty"`
	Def  IndexFields `json:"def"`
}

// DatabaseIndexList is the response of GET /{db}/_index.
type DatabaseIndexList struct {
	TotalRows int     `json:"total_rows"`
	Indexes   []Index `json:"indexes"`
}
