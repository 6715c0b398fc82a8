/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ratingRecord struct {
	ID     string `json:"_id"`
	Type   string `json:"type"`
	Rating int    `json:"rating"`
}

func TestRegisterAndDecode(t *testing.T) {
	RegisterType("RatingRecord", func(raw json.RawMessage) (interface{}, error) {
		var record ratingRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, err
		}
		return &record, nil
	})

	fn, err := GetDecodeFunc("RatingRecord")
	require.NoError(t, err)
	require.NotNil(t, fn)

	obj, err := DecodeDocument(json.RawMessage(`{"_id":"r-1","type":"RatingRecord","rating":1850}`))
	require.NoError(t, err)

	record, ok := obj.(*ratingRecord)
	require.True(t, ok, "expected a typed decode, got %T", obj)
	assert.Equal(t, 1850, record.Rating)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	RegisterType("DupRecord", func(raw json.RawMessage) (interface{}, error) { return nil, nil })
	assert.Panics(t, func() {
		RegisterType("DupRecord", func(raw json.RawMessage) (interface{}, error) { return nil, nil })
	})
}

func TestGetDecodeFuncUnknown(t *testing.T) {
	_, err := GetDecodeFunc("NeverRegistered")
	assert.Error(t, err)
}

func TestDecodeDocumentFallsBackToMap(t *testing.T) {
	obj, err := DecodeDocument(json.RawMessage(`{"_id":"x-1","type":"UnknownType","field":"v"}`))
	require.NoError(t, err)

	generic, ok := obj.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "v", generic["field"])

	// no discriminator at all
	obj, err = DecodeDocument(json.RawMessage(`{"_id":"x-2"}`))
	require.NoError(t, err)
	_, ok = obj.(map[string]interface{})
	assert.True(t, ok)
}

func TestDecodeDocumentMalformed(t *testing.T) {
	_, err := DecodeDocument(json.RawMessage(`{"type":`))
	assert.Error(t, err)
}

func TestIndexRegistry(t *testing.T) {
	type player struct{ Name string }

	_, ok := GetIndex[player]()
	assert.False(t, ok)

	RegisterIndex[player](IndexHint{DesignDocument: "player-ddoc", Name: "player-index"})

	hint, ok := GetIndex[player]()
	require.True(t, ok)
	assert.Equal(t, "player-ddoc", hint.DesignDocument)
	assert.Equal(t, "player-index", hint.Name)
}
