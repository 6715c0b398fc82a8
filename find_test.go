/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package couchstore

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/couchstore/types"
)

func TestFind(t *testing.T) {
	db := testDatabase(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/movies/_find", r.URL.Path)

		var query types.FindQuery
		require.NoError(t, json.NewDecoder(r.Body).Decode(&query))
		assert.JSONEq(t, `{"year":{"$gt":2000}}`, string(query.Selector))

		w.Write([]byte(`{"docs":[
			{"_id":"m-1","title":"Heat","year":2001},
			{"_id":"m-2","title":"Ronin","year":2003}
		],"bookmark":"g1AAAA"}`))
	}))

	query, err := types.NewFindQuery(map[string]interface{}{"year": map[string]interface{}{"$gt": 2000}})
	require.NoError(t, err)

	collection, err := Find[movie](context.Background(), db, query)
	require.NoError(t, err)
	require.Len(t, collection.Rows, 2)
	assert.Equal(t, "Heat", collection.Rows[0].Title)
	assert.Equal(t, "g1AAAA", collection.Bookmark)
	assert.Equal(t, 2, collection.TotalRows)
}

func TestFindFiltersDesignDocuments(t *testing.T) {
	db := testDatabase(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"docs":[
			{"_id":"_design/movies"},
			{"_id":"m-1","title":"Heat"}
		],"bookmark":"bm"}`))
	}))

	collection, err := Find[movie](context.Background(), db, types.FindAll())
	require.NoError(t, err)
	require.Len(t, collection.Rows, 1)
	assert.Equal(t, "m-1", collection.Rows[0].DocumentID())
}

func TestFindNormalizesNilBookmark(t *testing.T) {
	db := testDatabase(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"docs":[],"bookmark":"nil"}`))
	}))

	collection, err := Find[movie](context.Background(), db, types.FindAll())
	require.NoError(t, err)
	assert.Equal(t, "", collection.Bookmark)
}

func TestFindBodyError(t *testing.T) {
	db := testDatabase(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"invalid_selector","reason":"Invalid keyword: $gte!","docs":[]}`))
	}))

	_, err := Find[movie](context.Background(), db, types.FindAll())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid keyword")
}

func TestFindRaw(t *testing.T) {
	db := testDatabase(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"docs":[{"_id":"m-1","title":"Heat"}],"bookmark":""}`))
	}))

	collection, err := db.FindRaw(context.Background(), types.FindAll())
	require.NoError(t, err)
	require.Len(t, collection.Rows, 1)
	assert.Equal(t, "m-1", collection.Rows[0].DocumentID())
	assert.Equal(t, "Heat", collection.Rows[0]["title"])
}
