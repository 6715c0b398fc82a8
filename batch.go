/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package couchstore

import (
	"context"

	"github.com/suparena/couchstore/types"
)

// DefaultBatchSize is the page size used when a batched read requests 0.
const DefaultBatchSize = 1000

// GetAllBatched reads every document in the database in bounded pages,
// sending each page into tx. It is identical to FindBatched with a
// match-all query.
func GetAllBatched[T any](ctx context.Context, db *Database, tx chan<- *types.DocumentCollection[T], batchSize, maxResults uint64) (uint64, error) {
	return FindBatched(ctx, db, *types.FindAll(), tx, batchSize, maxResults)
}

// FindBatched runs a Mango query in bounded pages, following the server's
// bookmark from page to page and sending each decoded page into tx. Use
// this for result sets too large to hold in memory: the channel's capacity
// bounds how far the producer runs ahead of the consumer, and at most one
// request is in flight at a time.
//
// A batchSize of 0 requests DefaultBatchSize rows per page. A maxResults of
// 0 reads everything; a non-zero budget is rounded up to the next page
// boundary, a page is never truncated.
//
// The sequence ends cleanly on an empty page, on a bookmark that made no
// progress, or once the budget is met. Cancelling ctx while a send is
// blocked stops the run without error; pages already sent remain valid.
// A failed fetch aborts the run and is returned without sending a partial
// page. FindBatched never closes tx.
//
// Returns the number of rows delivered.
func FindBatched[T any](ctx context.Context, db *Database, query types.FindQuery, tx chan<- *types.DocumentCollection[T], batchSize, maxResults uint64) (uint64, error) {
	limit := batchSize
	if limit == 0 {
		limit = DefaultBatchSize
	}
	query.Limit = limit

	var (
		bookmark  string
		delivered uint64
	)
	for {
		segment := query
		segment.Bookmark = bookmark
		page, err := Find[T](ctx, db, &segment)
		if err != nil {
			return delivered, err
		}
		if page.TotalRows == 0 {
			return delivered, nil
		}
		if page.Bookmark == "" || page.Bookmark == bookmark {
			// the server cannot make further progress
			return delivered, nil
		}
		bookmark = page.Bookmark

		select {
		case tx <- page:
		case <-ctx.Done():
			// the consumer is gone; stop quietly
			return delivered, nil
		}
		delivered += uint64(page.TotalRows)
		db.client.log.Debug("batch page delivered", "db", db.name, "rows", page.TotalRows, "total", delivered)

		if maxResults > 0 && delivered >= maxResults {
			return delivered, nil
		}
	}
}
