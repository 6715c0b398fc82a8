/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package couchstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/couchstore/errors"
)

// changesDatabase wires a handler into a database handle with a short client
// timeout, so feed idle-timeout behavior can be exercised quickly.
func changesDatabase(t *testing.T, timeout time.Duration, handler http.Handler) *Database {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClientWithTimeout(server.URL, "", "", timeout)
	require.NoError(t, err)
	return newDatabase("movies", client)
}

func flush(w http.ResponseWriter) {
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func TestChangesDrainsInOrder(t *testing.T) {
	db := changesDatabase(t, 0, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movies/_changes", r.URL.Path)
		assert.Equal(t, "continuous", r.URL.Query().Get("feed"))
		assert.Equal(t, "0", r.URL.Query().Get("timeout"))
		assert.Empty(t, r.URL.Query().Get("since"))

		// heartbeats interleaved with changes, then the closing line
		w.Write([]byte("\n"))
		w.Write([]byte(`{"seq":"1-a","id":"m-1","changes":[{"rev":"1-x"}]}` + "\n"))
		w.Write([]byte("\n\n"))
		w.Write([]byte(`{"seq":"2-b","id":"m-2","changes":[{"rev":"1-y"}]}` + "\n"))
		w.Write([]byte(`{"seq":"3-c","id":"m-3","changes":[{"rev":"1-z"}],"deleted":true}` + "\n"))
		w.Write([]byte(`{"last_seq":"3-c","pending":0}` + "\n"))
	}))

	stream := db.Changes(context.Background(), nil)
	defer stream.Close()

	var ids []string
	for stream.Next() {
		ids = append(ids, stream.Event().ID)
	}
	require.NoError(t, stream.Err())
	assert.Equal(t, []string{"m-1", "m-2", "m-3"}, ids)
	assert.Equal(t, json.RawMessage(`"3-c"`), stream.LastSeq())
	require.NotNil(t, stream.Pending())
	assert.Zero(t, *stream.Pending())

	// the stream stays ended
	assert.False(t, stream.Next())
}

func TestChangesResumesAfterSeed(t *testing.T) {
	db := changesDatabase(t, 0, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the seed token is sent unquoted
		assert.Equal(t, "5-seed", r.URL.Query().Get("since"))
		w.Write([]byte(`{"seq":"6-a","id":"m-6","changes":[{"rev":"1-x"}]}` + "\n"))
		w.Write([]byte(`{"last_seq":"6-a"}` + "\n"))
	}))

	stream := db.Changes(context.Background(), json.RawMessage(`"5-seed"`))
	defer stream.Close()

	require.True(t, stream.Next())
	assert.Equal(t, "m-6", stream.Event().ID)
	assert.False(t, stream.Next())
	require.NoError(t, stream.Err())
	assert.Nil(t, stream.Pending())
}

func TestChangesInfiniteResubscribesAfterFinished(t *testing.T) {
	var calls int
	db := changesDatabase(t, 0, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch calls {
		case 1:
			assert.Empty(t, r.URL.Query().Get("since"))
			w.Write([]byte(`{"seq":"1-a","id":"m-1","changes":[{"rev":"1-x"}]}` + "\n"))
			w.Write([]byte(`{"last_seq":"1-a","pending":0}` + "\n"))
		default:
			// resubscribed strictly after the delivered cursor
			assert.Equal(t, "1-a", r.URL.Query().Get("since"))
			w.Write([]byte(`{"seq":"2-b","id":"m-2","changes":[{"rev":"1-y"}]}` + "\n"))
			w.Write([]byte(`{"last_seq":"2-b","pending":0}` + "\n"))
		}
	}))

	stream := db.Changes(context.Background(), nil)
	stream.SetInfinite(true)
	defer stream.Close()

	require.True(t, stream.Next())
	assert.Equal(t, "m-1", stream.Event().ID)
	require.True(t, stream.Next())
	assert.Equal(t, "m-2", stream.Event().ID)
	assert.GreaterOrEqual(t, calls, 2)
}

func TestChangesInfiniteAbsorbsIdleTimeout(t *testing.T) {
	var calls int
	db := changesDatabase(t, 200*time.Millisecond, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch calls {
		case 1:
			w.Write([]byte(`{"seq":"1-a","id":"m-1","changes":[{"rev":"1-x"}]}` + "\n"))
			flush(w)
			// hold the feed open past the client timeout
			time.Sleep(600 * time.Millisecond)
		default:
			assert.Equal(t, "1-a", r.URL.Query().Get("since"))
			w.Write([]byte(`{"seq":"2-b","id":"m-2","changes":[{"rev":"1-y"}]}` + "\n"))
			flush(w)
			time.Sleep(600 * time.Millisecond)
		}
	}))

	stream := db.Changes(context.Background(), nil)
	stream.SetInfinite(true)
	defer stream.Close()

	require.True(t, stream.Next())
	assert.Equal(t, "m-1", stream.Event().ID)

	// the next step runs into the idle timeout and must poll again
	require.True(t, stream.Next())
	assert.Equal(t, "m-2", stream.Event().ID)
	assert.GreaterOrEqual(t, calls, 2)
}

func TestChangesFiniteTimeoutIsFatal(t *testing.T) {
	db := changesDatabase(t, 150*time.Millisecond, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("\n"))
		flush(w)
		time.Sleep(600 * time.Millisecond)
	}))

	stream := db.Changes(context.Background(), nil)
	defer stream.Close()

	assert.False(t, stream.Next())
	require.Error(t, stream.Err())
	assert.True(t, errors.IsIdleTimeout(stream.Err()))
}

func TestChangesInfiniteTimeoutParameter(t *testing.T) {
	var got string
	db := changesDatabase(t, 0, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("timeout")
		w.Write([]byte(`{"seq":"1-a","id":"m-1","changes":[{"rev":"1-x"}]}` + "\n"))
	}))

	stream := db.Changes(context.Background(), nil)
	stream.SetInfinite(true)
	defer stream.Close()

	require.True(t, stream.Next())
	assert.Equal(t, fmt.Sprint(MaxTimeout), got)
}

func TestChangesNonSuccessStatusIsFatal(t *testing.T) {
	db := changesDatabase(t, 0, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"bad_request","reason":"invalid since"}`))
	}))

	stream := db.Changes(context.Background(), nil)
	stream.SetInfinite(true)
	defer stream.Close()

	assert.False(t, stream.Next())
	var ce *errors.CouchError
	require.ErrorAs(t, stream.Err(), &ce)
	assert.Equal(t, http.StatusBadRequest, ce.Status)
}

func TestChangesMalformedLineIsFatal(t *testing.T) {
	db := changesDatabase(t, 0, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"seq":"1-a","id":"m-1","changes":[{"rev":"1-x"}]}` + "\n"))
		w.Write([]byte("{{{ not json\n"))
	}))

	stream := db.Changes(context.Background(), nil)
	defer stream.Close()

	require.True(t, stream.Next())
	assert.False(t, stream.Next())

	var de *errors.DecodeError
	assert.ErrorAs(t, stream.Err(), &de)
	// the cursor stays at the last good event
	assert.Equal(t, json.RawMessage(`"1-a"`), stream.LastSeq())
}

func TestChangesNumericSeqPassthrough(t *testing.T) {
	var calls int
	db := changesDatabase(t, 0, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch calls {
		case 1:
			w.Write([]byte(`{"seq":7,"id":"m-7","changes":[{"rev":"1-x"}]}` + "\n"))
			w.Write([]byte(`{"last_seq":7}` + "\n"))
		default:
			// numeric tokens pass through verbatim
			assert.Equal(t, "7", r.URL.Query().Get("since"))
			w.Write([]byte(`{"seq":8,"id":"m-8","changes":[{"rev":"1-y"}]}` + "\n"))
			w.Write([]byte(`{"last_seq":8}` + "\n"))
		}
	}))

	stream := db.Changes(context.Background(), nil)
	stream.SetInfinite(true)
	defer stream.Close()

	require.True(t, stream.Next())
	require.True(t, stream.Next())
	assert.Equal(t, "m-8", stream.Event().ID)
}

func TestChangesCloseStopsStream(t *testing.T) {
	db := changesDatabase(t, 0, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"seq":"1-a","id":"m-1","changes":[{"rev":"1-x"}]}` + "\n"))
		w.Write([]byte(`{"last_seq":"1-a"}` + "\n"))
	}))

	stream := db.Changes(context.Background(), nil)
	stream.SetInfinite(true)

	require.True(t, stream.Next())
	require.NoError(t, stream.Close())
	assert.False(t, stream.Next())
	assert.NoError(t, stream.Err())
}

func TestSeqString(t *testing.T) {
	assert.Equal(t, "5-abc", seqString(json.RawMessage(`"5-abc"`)))
	assert.Equal(t, "42", seqString(json.RawMessage(`42`)))
	assert.Equal(t, `[1,"x"]`, seqString(json.RawMessage(`[1,"x"]`)))
}
