package datastore

import (
	"time"
)

// StreamResult represents a single document in a stream with metadata
type StreamResult[T any] struct {
	Item  *T         // The decoded document
	Error error      // Stream-level error, if any; terminates the stream
	Meta  StreamMeta // Metadata about this item
}

// StreamMeta contains metadata about a streamed document
type StreamMeta struct {
	Index     int64     // Document index in stream (0-based)
	Page      int       // Page number (1-based)
	Timestamp time.Time // When the document was received
}

// StreamOptions configures streaming behavior
type StreamOptions struct {
	BufferSize      int                  // Channel buffer size (default: 100)
	PageSize        uint64               // Rows per request (0: server default of 1000)
	MaxResults      uint64               // Row budget, rounded up to a page (0: unbounded)
	ProgressHandler func(StreamProgress) // Optional progress callback, invoked per page
}

// StreamProgress tracks streaming progress
type StreamProgress struct {
	ItemsProcessed int64     // Total documents delivered
	PagesProcessed int       // Total pages delivered
	Bookmark       string    // Continuation token of the last page
	StartTime      time.Time // When streaming started
	CurrentRate    float64   // Documents per second
}

// StreamOption is a functional option for configuring streaming
type StreamOption func(*StreamOptions)

// DefaultStreamOptions returns default streaming options
func DefaultStreamOptions() StreamOptions {
	return StreamOptions{
		BufferSize: 100,
	}
}

// WithBufferSize sets the channel buffer size
func WithBufferSize(size int) StreamOption {
	return func(opts *StreamOptions) {
		opts.BufferSize = size
	}
}

// WithPageSize sets the rows requested per page
func WithPageSize(size uint64) StreamOption {
	return func(opts *StreamOptions) {
		opts.PageSize = size
	}
}

// WithMaxResults bounds the total rows read; the bound is rounded up to a
// full page
func WithMaxResults(max uint64) StreamOption {
	return func(opts *StreamOptions) {
		opts.MaxResults = max
	}
}

// WithProgressHandler sets a progress callback
func WithProgressHandler(handler func(StreamProgress)) StreamOption {
	return func(opts *StreamOptions) {
		opts.ProgressHandler = handler
	}
}
