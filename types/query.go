/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package types

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// QueryParams are the options accepted by view-style endpoints (_all_docs
// and design document views). See
// https://docs.couchdb.org/en/stable/api/ddoc/views.html. Key-typed fields
// are raw JSON because CouchDB keys may be any JSON value.
type QueryParams struct {
	Conflicts      *bool             `json:"conflicts,omitempty"`
	Descending     *bool             `json:"descending,omitempty"`
	EndKey         json.RawMessage   `json:"end_key,omitempty"`
	EndKeyDocID    string            `json:"end_key_doc_id,omitempty"`
	Group          *bool             `json:"group,omitempty"`
	GroupLevel     *uint32           `json:"group_level,omitempty"`
	IncludeDocs    *bool             `json:"include_docs,omitempty"`
	InclusiveEnd   *bool             `json:"inclusive_end,omitempty"`
	Key            json.RawMessage   `json:"key,omitempty"`
	Keys           []json.RawMessage `json:"keys,omitempty"`
	Limit          *uint64           `json:"limit,omitempty"`
	Reduce         *bool             `json:"reduce,omitempty"`
	Skip           *uint64           `json:"skip,omitempty"`
	Stable         *bool             `json:"stable,omitempty"`
	Stale          string            `json:"stale,omitempty"`
	StartKey       json.RawMessage   `json:"start_key,omitempty"`
	StartKeyDocID  string            `json:"start_key_doc_id,omitempty"`
	UpdateSeq      *bool             `json:"update_seq,omitempty"`
}

// Bool is a convenience for the optional boolean fields.
func Bool(v bool) *bool { return &v }

// Values encodes the parameters as a URL query string. Key-typed values are
// JSON-encoded, as the view API requires.
func (p *QueryParams) Values() (url.Values, error) {
	values := url.Values{}
	if p == nil {
		return values, nil
	}
	setBool := func(name string, v *bool) {
		if v != nil {
			values.Set(name, strconv.FormatBool(*v))
		}
	}
	setBool("conflicts", p.Conflicts)
	setBool("descending", p.Descending)
	setBool("group", p.Group)
	setBool("include_docs", p.IncludeDocs)
	setBool("inclusive_end", p.InclusiveEnd)
	setBool("reduce", p.Reduce)
	setBool("stable", p.Stable)
	setBool("update_seq", p.UpdateSeq)
	if p.GroupLevel != nil {
		values.Set("group_level", strconv.FormatUint(uint64(*p.GroupLevel), 10))
	}
	if p.Limit != nil {
		values.Set("limit", strconv.FormatUint(*p.Limit, 10))
	}
	if p.Skip != nil {
		values.Set("skip", strconv.FormatUint(*p.Skip, 10))
	}
	if p.Stale != "" {
		values.Set("stale", p.Stale)
	}
	if p.EndKeyDocID != "" {
		values.Set("end_key_doc_id", p.EndKeyDocID)
	}
	if p.StartKeyDocID != "" {
		values.Set("start_key_doc_id", p.StartKeyDocID)
	}
	if p.Key != nil {
		values.Set("key", string(p.Key))
	}
	if p.StartKey != nil {
		values.Set("start_key", string(p.StartKey))
	}
	if p.EndKey != nil {
		values.Set("end_key", string(p.EndKey))
	}
	if len(p.Keys) > 0 {
		keys, err := json.Marshal(p.Keys)
		if err != nil {
			return nil, fmt.Errorf("marshal keys: %w", err)
		}
		values.Set("keys", string(keys))
	}
	return values, nil
}
