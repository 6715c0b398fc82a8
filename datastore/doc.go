/*
Package datastore defines the core interfaces for couchstore's entity
persistence layer.

The main interface is DataStore[T], which provides generic operations for
any entity type T:

	type DataStore[T any] interface {
	    GetOne(ctx context.Context, id string) (*T, error)
	    Put(ctx context.Context, entity *T) error
	    Delete(ctx context.Context, id string) error
	    Find(ctx context.Context, query *types.FindQuery) ([]*T, error)
	    FindAny(ctx context.Context, query *types.FindQuery) ([]interface{}, error)
	    Stream(ctx context.Context, query *types.FindQuery, opts ...StreamOption) <-chan StreamResult[T]
	}

Implementations:
  - couchdb: implementation over the couchstore client
  - mock: in-memory mock implementation for testing

The package uses Go generics to ensure type safety at compile time while
keeping room for different storage backends.
*/
package datastore
