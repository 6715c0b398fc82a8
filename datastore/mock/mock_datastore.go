/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides mock implementations of the DataStore interface for testing
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/suparena/couchstore/datastore"
	"github.com/suparena/couchstore/errors"
	"github.com/suparena/couchstore/types"
)

// DataStore is a mock implementation of datastore.DataStore[T] for testing
type DataStore[T any] struct {
	mu          sync.RWMutex
	data        map[string]*T
	order       []string
	findFunc    func(ctx context.Context, query *types.FindQuery) ([]*T, error)
	streamFunc  func(ctx context.Context, query *types.FindQuery, opts ...datastore.StreamOption) <-chan datastore.StreamResult[T]
	getKeyFunc  func(entity *T) string
	putError    error
	deleteError error
}

// New creates a new mock DataStore
func New[T any]() *DataStore[T] {
	return &DataStore[T]{
		data: make(map[string]*T),
	}
}

// WithGetKeyFunc sets a custom function to extract document IDs from entities
func (m *DataStore[T]) WithGetKeyFunc(f func(*T) string) *DataStore[T] {
	m.getKeyFunc = f
	return m
}

// WithFindFunc sets a custom find function for testing
func (m *DataStore[T]) WithFindFunc(f func(ctx context.Context, query *types.FindQuery) ([]*T, error)) *DataStore[T] {
	m.findFunc = f
	return m
}

// WithStreamFunc sets a custom stream function for testing
func (m *DataStore[T]) WithStreamFunc(f func(ctx context.Context, query *types.FindQuery, opts ...datastore.StreamOption) <-chan datastore.StreamResult[T]) *DataStore[T] {
	m.streamFunc = f
	return m
}

// WithPutError makes Put operations return an error
func (m *DataStore[T]) WithPutError(err error) *DataStore[T] {
	m.putError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *DataStore[T]) WithDeleteError(err error) *DataStore[T] {
	m.deleteError = err
	return m
}

// GetOne retrieves an entity by document ID
func (m *DataStore[T]) GetOne(ctx context.Context, id string) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if entity, exists := m.data[id]; exists {
		return entity, nil
	}
	return nil, errors.NewWithID(id, "missing", 404)
}

// Put stores an entity
func (m *DataStore[T]) Put(ctx context.Context, entity *T) error {
	if m.putError != nil {
		return m.putError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.extractKey(entity)
	if id == "" {
		return errors.ErrInvalidInput
	}
	if _, exists := m.data[id]; !exists {
		m.order = append(m.order, id)
	}
	m.data[id] = entity
	return nil
}

// Delete removes an entity by document ID
func (m *DataStore[T]) Delete(ctx context.Context, id string) error {
	if m.deleteError != nil {
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[id]; !exists {
		return errors.NewWithID(id, "missing", 404)
	}
	delete(m.data, id)
	for i, k := range m.order {
		if k == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Find executes a Mango query
func (m *DataStore[T]) Find(ctx context.Context, query *types.FindQuery) ([]*T, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, query)
	}

	// Default implementation returns all data in insertion order
	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make([]*T, 0, len(m.order))
	for _, id := range m.order {
		results = append(results, m.data[id])
	}
	return results, nil
}

// FindAny executes a Mango query returning untyped results
func (m *DataStore[T]) FindAny(ctx context.Context, query *types.FindQuery) ([]interface{}, error) {
	rows, err := m.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	results := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		results = append(results, row)
	}
	return results, nil
}

// Stream returns a channel of results
func (m *DataStore[T]) Stream(ctx context.Context, query *types.FindQuery, opts ...datastore.StreamOption) <-chan datastore.StreamResult[T] {
	if m.streamFunc != nil {
		return m.streamFunc(ctx, query, opts...)
	}

	options := datastore.DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}

	// Default implementation streams all data in insertion order
	resultChan := make(chan datastore.StreamResult[T], options.BufferSize)

	go func() {
		defer close(resultChan)

		m.mu.RLock()
		defer m.mu.RUnlock()

		index := int64(0)
		for _, id := range m.order {
			select {
			case <-ctx.Done():
				return
			case resultChan <- datastore.StreamResult[T]{
				Item: m.data[id],
				Meta: datastore.StreamMeta{
					Index:     index,
					Page:      1,
					Timestamp: time.Now(),
				},
			}:
				index++
			}
		}
	}()

	return resultChan
}

// Helper methods for testing

// SetData directly sets the internal data map (for testing)
func (m *DataStore[T]) SetData(data map[string]*T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	m.order = m.order[:0]
	for k := range data {
		m.order = append(m.order, k)
	}
}

// Count returns the number of stored entities
func (m *DataStore[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Clear removes all data
func (m *DataStore[T]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]*T)
	m.order = nil
}

// extractKey attempts to extract a document ID from an entity
func (m *DataStore[T]) extractKey(entity *T) string {
	if m.getKeyFunc != nil {
		return m.getKeyFunc(entity)
	}
	if doc, ok := any(entity).(types.CouchDocument); ok {
		return string(doc.DocumentID())
	}
	return ""
}
