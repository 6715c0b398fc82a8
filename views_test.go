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

func TestCreateView(t *testing.T) {
	db := testDatabase(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/movies/_design/by-year", r.URL.Path)

		var body types.CouchViews
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "javascript", body.Language)
		assert.Contains(t, body.Views, "by_year")

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok":true,"id":"_design/by-year","rev":"1-abc"}`))
	}))

	views := types.NewCouchViews("by_year", types.CouchFunc{
		Map: "function(doc) { emit(doc.year, doc.title); }",
	})
	created, err := db.CreateView(context.Background(), "by-year", views)
	require.NoError(t, err)
	assert.True(t, created.OK)
	assert.Equal(t, "_design/by-year", created.ID)
}

func TestQueryView(t *testing.T) {
	db := testDatabase(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movies/_design/by-year/_view/by_year", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("descending"))
		assert.Equal(t, "2", r.URL.Query().Get("limit"))

		w.Write([]byte(`{"total_rows":3,"offset":0,"rows":[
			{"id":"m-2","key":2003,"value":"Ronin"},
			{"id":"m-1","key":2001,"value":"Heat"}
		]}`))
	}))

	limit := uint64(2)
	params := &types.QueryParams{Descending: types.Bool(true), Limit: &limit}
	collection, err := QueryView[int, string, types.Document](context.Background(), db, "by-year", "by_year", params)
	require.NoError(t, err)
	require.Len(t, collection.Rows, 2)
	assert.Equal(t, 2003, collection.Rows[0].Key)
	assert.Equal(t, "Ronin", collection.Rows[0].Value)
	assert.Nil(t, collection.Rows[0].Doc)
}

func TestQueryViewIncludeDocs(t *testing.T) {
	db := testDatabase(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("include_docs"))
		w.Write([]byte(`{"total_rows":1,"offset":0,"rows":[
			{"id":"m-1","key":2001,"value":null,"doc":{"_id":"m-1","title":"Heat","year":2001}}
		]}`))
	}))

	params := &types.QueryParams{IncludeDocs: types.Bool(true)}
	collection, err := QueryView[int, json.RawMessage, movie](context.Background(), db, "by-year", "by_year", params)
	require.NoError(t, err)
	require.Len(t, collection.Rows, 1)
	require.NotNil(t, collection.Rows[0].Doc)
	assert.Equal(t, "Heat", collection.Rows[0].Doc.Title)
}

func TestExecuteUpdate(t *testing.T) {
	db := testDatabase(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/movies/_design/handlers/_update/touch/m-1", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("updated m-1"))
	}))

	out, err := db.ExecuteUpdate(context.Background(), "handlers", "touch", "m-1", nil)
	require.NoError(t, err)
	assert.Equal(t, "updated m-1", out)
}

func TestExecuteUpdateError(t *testing.T) {
	db := testDatabase(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not_found","reason":"missing handler"}`))
	}))

	_, err := db.ExecuteUpdate(context.Background(), "handlers", "touch", "m-1", nil)
	assert.Error(t, err)
}
