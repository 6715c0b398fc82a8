/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package types

import (
	"encoding/json"
	"fmt"
)

// Change is a single revision entry within a change event.
type Change struct {
	Rev string `json:"rev"`
}

// ChangeEvent is one row of the _changes feed. Seq is an opaque sequence
// token (a string on CouchDB 2+, a number on 1.x) and must only be compared
// for equality, never ordered.
type ChangeEvent struct {
	Seq     json.RawMessage `json:"seq"`
	ID      string          `json:"id"`
	Changes []Change        `json:"changes"`
	Deleted bool            `json:"deleted,omitempty"`
	Doc     json.RawMessage `json:"doc,omitempty"`
}

// FinishedEvent is the terminating row of a non-continuous feed segment.
// Pending is not reported by CouchDB 1.x.
type FinishedEvent struct {
	LastSeq json.RawMessage `json:"last_seq"`
	Pending *int64          `json:"pending,omitempty"`
}

// Event is the union of the two line shapes the feed emits. Exactly one of
// the fields is set.
type Event struct {
	Change   *ChangeEvent
	Finished *FinishedEvent
}

// DecodeEvent decodes one feed line. The two shapes share no tag, so the
// union is resolved by field presence: a finished line carries last_seq,
// a change line carries seq and id.
func DecodeEvent(line []byte) (Event, error) {
	var probe struct {
		Seq     json.RawMessage `json:"seq"`
		ID      *string         `json:"id"`
		LastSeq json.RawMessage `json:"last_seq"`
	}
	if err := json.Unmarshal(line, &probe); err != nil {
		return Event{}, err
	}
	if probe.LastSeq != nil {
		var finished FinishedEvent
		if err := json.Unmarshal(line, &finished); err != nil {
			return Event{}, err
		}
		return Event{Finished: &finished}, nil
	}
	if probe.Seq != nil && probe.ID != nil {
		var change ChangeEvent
		if err := json.Unmarshal(line, &change); err != nil {
			return Event{}, err
		}
		return Event{Change: &change}, nil
	}
	return Event{}, fmt.Errorf("unrecognized changes feed line: %s", line)
}
