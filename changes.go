/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package couchstore

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/suparena/couchstore/errors"
	"github.com/suparena/couchstore/types"
)

// MaxTimeout is the largest idle timeout, in milliseconds, CouchDB accepts
// for longpoll/continuous feeds. See
// https://docs.couchdb.org/en/stable/api/database/changes.html.
const MaxTimeout = 60000

type streamState int

const (
	// stateIdle: no request outstanding; the next step issues one.
	stateIdle streamState = iota
	// stateRequesting: response received, status not yet inspected.
	stateRequesting
	// stateReading: consuming feed lines from an open body.
	stateReading
)

// ChangesStream presents the _changes feed of a database as a pull sequence
// of change events, re-issuing the underlying request whenever the server
// closes the feed. In infinite mode the stream also absorbs the feed's idle
// timeouts and polls forever; otherwise it ends after the currently known
// changes have been drained.
//
// A stream is not safe for concurrent use: it advances one step per Next
// call, on the calling goroutine.
type ChangesStream struct {
	ctx      context.Context
	db       *Database
	params   map[string]string
	lastSeq  json.RawMessage
	infinite bool

	state  streamState
	resp   *http.Response
	body   io.ReadCloser
	reader *bufio.Reader

	event   *types.ChangeEvent
	pending *int64
	err     error
	done    bool
}

// Changes opens a changes stream starting strictly after since (nil starts
// at the beginning). Defaults: continuous feed, zero idle timeout,
// include_docs.
func (d *Database) Changes(ctx context.Context, since json.RawMessage) *ChangesStream {
	params := map[string]string{
		"feed":         "continuous",
		"timeout":      "0",
		"include_docs": "true",
	}
	return d.ChangesWithParams(ctx, since, params)
}

// ChangesWithParams opens a changes stream with a caller-supplied base
// parameter set. The stream owns the map afterwards; `since` is injected on
// every poll from the stream's cursor.
func (d *Database) ChangesWithParams(ctx context.Context, since json.RawMessage, params map[string]string) *ChangesStream {
	return &ChangesStream{
		ctx:     ctx,
		db:      d,
		params:  params,
		lastSeq: since,
		state:   stateIdle,
	}
}

// SetInfinite toggles between draining the currently known changes and
// polling forever. It also moves the requested server idle timeout to the
// protocol maximum (infinite) or zero (finite).
func (s *ChangesStream) SetInfinite(infinite bool) {
	s.infinite = infinite
	if infinite {
		s.params["timeout"] = strconv.Itoa(MaxTimeout)
	} else {
		s.params["timeout"] = "0"
	}
}

// Infinite reports whether the stream polls forever.
func (s *ChangesStream) Infinite() bool { return s.infinite }

// LastSeq returns the cursor of the most recently delivered event, or the
// seed cursor before any delivery. Sequence tokens are opaque.
func (s *ChangesStream) LastSeq() json.RawMessage { return s.lastSeq }

// SetLastSeq moves the cursor; the next poll resumes strictly after it.
func (s *ChangesStream) SetLastSeq(seq json.RawMessage) { s.lastSeq = seq }

// Pending returns the server's count of undelivered changes, when the last
// finished event reported one.
func (s *ChangesStream) Pending() *int64 { return s.pending }

// Event returns the current change event. Only valid after Next returned true.
func (s *ChangesStream) Event() *types.ChangeEvent { return s.event }

// Err returns the terminal error, if any, once Next returned false.
func (s *ChangesStream) Err() error { return s.err }

// Next advances to the next change event, polling the server as needed.
// It returns true when an event was delivered, false when the stream ended:
// cleanly on a finished event in finite mode, or with Err set on the first
// fatal failure. Once false, the stream issues no further requests.
func (s *ChangesStream) Next() bool {
	if s.done {
		return false
	}
	for {
		switch s.state {
		case stateIdle:
			params := make(map[string]string, len(s.params)+1)
			for k, v := range s.params {
				params[k] = v
			}
			if s.lastSeq != nil {
				params["since"] = seqString(s.lastSeq)
			}
			resp, err := s.db.client.get(s.ctx, s.db.name+"/_changes", params)
			if err != nil {
				return s.fail(err)
			}
			s.resp = resp
			s.state = stateRequesting

		case stateRequesting:
			if s.resp.StatusCode < 200 || s.resp.StatusCode >= 300 {
				status := s.resp.StatusCode
				drainBody(s.resp)
				return s.fail(errors.New(http.StatusText(status), status))
			}
			s.body = s.resp.Body
			s.reader = bufio.NewReader(s.body)
			s.state = stateReading

		case stateReading:
			line, err := s.reader.ReadBytes('\n')
			line = bytes.TrimSpace(line)
			if len(line) == 0 {
				if err == nil {
					// heartbeat
					continue
				}
				s.closeBody()
				if err == io.EOF || (s.infinite && errors.IsIdleTimeout(err)) {
					// server closed the feed (idle timeout, or all known
					// changes delivered): resubscribe after the cursor
					s.state = stateIdle
					continue
				}
				return s.fail(&errors.TransportError{Err: err})
			}
			event, decodeErr := types.DecodeEvent(line)
			if decodeErr != nil {
				s.closeBody()
				return s.fail(&errors.DecodeError{Err: decodeErr})
			}
			switch {
			case event.Change != nil:
				s.lastSeq = event.Change.Seq
				s.event = event.Change
				return true
			case event.Finished != nil:
				s.lastSeq = event.Finished.LastSeq
				s.pending = event.Finished.Pending
				s.closeBody()
				if !s.infinite {
					s.done = true
					return false
				}
				s.state = stateIdle
			}
		}
	}
}

// Close releases the stream. Further Next calls return false without
// touching the network.
func (s *ChangesStream) Close() error {
	s.done = true
	return s.closeBody()
}

func (s *ChangesStream) fail(err error) bool {
	s.err = err
	s.done = true
	return false
}

func (s *ChangesStream) closeBody() error {
	if s.body == nil {
		return nil
	}
	err := s.body.Close()
	s.body = nil
	s.reader = nil
	s.resp = nil
	return err
}

// seqString renders an opaque sequence token as a query parameter: JSON
// strings lose their quotes, any other JSON value passes through verbatim.
func seqString(seq json.RawMessage) string {
	var s string
	if err := json.Unmarshal(seq, &s); err == nil {
		return s
	}
	return string(seq)
}
