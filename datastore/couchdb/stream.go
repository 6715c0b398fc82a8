/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package couchdb

import (
	"context"
	"fmt"
	"time"

	couchstore "github.com/suparena/couchstore"
	"github.com/suparena/couchstore/datastore"
	"github.com/suparena/couchstore/types"
)

// Stream performs a streaming query with configurable options, delivering
// matching documents one at a time through a buffered channel. Pages are
// fetched with the bookmark-driven batched reader, so the full result set
// is never held in memory and the channel's buffer bounds how far the
// fetcher runs ahead of the consumer.
func (d *CouchDataStore[T]) Stream(ctx context.Context, query *types.FindQuery, opts ...datastore.StreamOption) <-chan datastore.StreamResult[T] {
	options := datastore.DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}

	resultCh := make(chan datastore.StreamResult[T], options.BufferSize)
	go d.streamWorker(ctx, d.withIndexHint(query), options, resultCh)
	return resultCh
}

// streamWorker handles the actual streaming logic
func (d *CouchDataStore[T]) streamWorker(
	ctx context.Context,
	query *types.FindQuery,
	options datastore.StreamOptions,
	resultCh chan<- datastore.StreamResult[T],
) {
	defer close(resultCh)

	// one page in flight between the fetcher and the fan-out
	pages := make(chan *types.DocumentCollection[*T], 1)
	errc := make(chan error, 1)
	go func() {
		_, err := couchstore.FindBatched(ctx, d.db, *query, pages, options.PageSize, options.MaxResults)
		close(pages)
		errc <- err
	}()

	var itemIndex int64
	var pageNumber int
	startTime := time.Now()

	reportProgress := func(bookmark string) {
		if options.ProgressHandler == nil {
			return
		}
		progress := datastore.StreamProgress{
			ItemsProcessed: itemIndex,
			PagesProcessed: pageNumber,
			Bookmark:       bookmark,
			StartTime:      startTime,
		}
		if elapsed := time.Since(startTime).Seconds(); elapsed > 0 {
			progress.CurrentRate = float64(itemIndex) / elapsed
		}
		options.ProgressHandler(progress)
	}

	for page := range pages {
		pageNumber++
		for _, item := range page.Rows {
			result := datastore.StreamResult[T]{
				Item: item,
				Meta: datastore.StreamMeta{
					Index:     itemIndex,
					Page:      pageNumber,
					Timestamp: time.Now(),
				},
			}
			select {
			case <-ctx.Done():
				return
			case resultCh <- result:
			}
			itemIndex++
		}
		reportProgress(page.Bookmark)
	}

	if err := <-errc; err != nil {
		result := datastore.StreamResult[T]{
			Error: fmt.Errorf("streaming query failed: %w", err),
			Meta: datastore.StreamMeta{
				Index:     itemIndex,
				Page:      pageNumber,
				Timestamp: time.Now(),
			},
		}
		select {
		case <-ctx.Done():
		case resultCh <- result:
		}
	}
}
