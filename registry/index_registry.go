/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"
	"sync"
)

// IndexHint names the Mango index queries for a Go type should use.
type IndexHint struct {
	// DesignDocument is the design document holding the index.
	DesignDocument string
	// Name is the index name within the design document; empty selects the
	// whole design document.
	Name string
}

var (
	indexRegistry = make(map[reflect.Type]IndexHint)
	mu            sync.RWMutex
)

// RegisterIndex associates a Go type T with the Mango index its queries
// should run against.
func RegisterIndex[T any](hint IndexHint) {
	var zero T
	t := reflect.TypeOf(zero)

	mu.Lock()
	defer mu.Unlock()
	indexRegistry[t] = hint
}

// GetIndex retrieves the index hint for type T, if any.
func GetIndex[T any]() (IndexHint, bool) {
	var zero T
	t := reflect.TypeOf(zero)

	mu.RLock()
	defer mu.RUnlock()
	hint, ok := indexRegistry[t]
	return hint, ok
}
