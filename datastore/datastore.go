/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/couchstore/types"
)

type DataStore[T any] interface {
	GetOne(ctx context.Context, id string) (*T, error)

	Put(ctx context.Context, entity *T) error

	Delete(ctx context.Context, id string) error

	Find(ctx context.Context, query *types.FindQuery) ([]*T, error)

	FindAny(ctx context.Context, query *types.FindQuery) ([]interface{}, error)

	Stream(ctx context.Context, query *types.FindQuery, opts ...StreamOption) <-chan StreamResult[T]
}
