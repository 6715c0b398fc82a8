/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package types

import (
	"encoding/json"
	"fmt"
)

// SortDirection is the direction of a sort field.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortSpec is a single sort field specification, e.g. {"year": "desc"}.
type SortSpec map[string]SortDirection

// SortBy builds a SortSpec for one field.
func SortBy(field string, direction SortDirection) SortSpec {
	return SortSpec{field: direction}
}

// IndexSpec identifies a Mango index, either by design document alone or by
// design document and index name. It marshals to the two forms use_index
// accepts: "ddoc" or ["ddoc", "name"].
type IndexSpec struct {
	DesignDocument string
	Name           string
}

func (s IndexSpec) MarshalJSON() ([]byte, error) {
	if s.Name == "" {
		return json.Marshal(s.DesignDocument)
	}
	return json.Marshal([2]string{s.DesignDocument, s.Name})
}

func (s *IndexSpec) UnmarshalJSON(data []byte) error {
	var ddoc string
	if err := json.Unmarshal(data, &ddoc); err == nil {
		s.DesignDocument = ddoc
		s.Name = ""
		return nil
	}
	var pair [2]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("invalid use_index spec: %w", err)
	}
	s.DesignDocument = pair[0]
	s.Name = pair[1]
	return nil
}

// FindQuery is the body of a _find request. Parameters are documented at
// https://docs.couchdb.org/en/stable/api/database/find.html. Bookmark is the
// opaque continuation token of the previous page; it is omitted on the first
// request.
type FindQuery struct {
	Selector       json.RawMessage `json:"selector"`
	Limit          uint64          `json:"limit,omitempty"`
	Skip           uint64          `json:"skip,omitempty"`
	Sort           []SortSpec      `json:"sort,omitempty"`
	Fields         []string        `json:"fields,omitempty"`
	UseIndex       *IndexSpec      `json:"use_index,omitempty"`
	Bookmark       string          `json:"bookmark,omitempty"`
	Update         *bool           `json:"update,omitempty"`
	Stable         *bool           `json:"stable,omitempty"`
	ExecutionStats bool            `json:"execution_stats,omitempty"`
}

// NewFindQuery builds a query from a marshalable selector.
func NewFindQuery(selector interface{}) (*FindQuery, error) {
	raw, err := json.Marshal(selector)
	if err != nil {
		return nil, fmt.Errorf("marshal selector: %w", err)
	}
	return &FindQuery{Selector: raw}, nil
}

// FindAll returns a query matching every document in the database.
func FindAll() *FindQuery {
	return &FindQuery{Selector: json.RawMessage(`{"_id":{"$gt":null}}`)}
}

// FindResult is the raw response of a _find request. Docs are kept as raw
// JSON so callers can decode rows into their own types.
type FindResult struct {
	Docs     []json.RawMessage `json:"docs"`
	Bookmark string            `json:"bookmark,omitempty"`
	Warning  string            `json:"warning,omitempty"`
	Error    string            `json:"error,omitempty"`
	Reason   string            `json:"reason,omitempty"`
}
