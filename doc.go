/*
Package couchstore is a CouchDB client for Go applications, offering typed
document operations, Mango queries with bookmark-driven batching, a resumable
continuous changes feed, and a generic storage abstraction on top.

The client is organized in three layers:
  - Client/Database: the raw REST surface (documents, _find, _all_docs,
    views, indexes, _changes)
  - datastore: a generic DataStore[T] interface with a CouchDB
    implementation and an in-memory mock for testing
  - TypedStorage/MultiTypeStorage: thread-safe registries of open stores

Key Features:
  - Type-safe operations using Go generics
  - Bookmark-driven batched reads that stream pages through a channel
    with backpressure
  - A pull-based continuous changes feed that survives idle timeouts
  - Semantic error types for better error handling
  - Streaming with progress tracking
  - Comprehensive mock implementations for testing

Basic Usage:

	client, _ := couchstore.NewClient("http://localhost:5984", "admin", "password")
	db, _ := client.Database(ctx, "users")

	user := User{Name: "John"}
	user.SetDocumentID("123")
	_, _ = db.Save(ctx, &user)

	// Typed reads
	got, _ := couchstore.GetDocument[User](ctx, db, "123")

	// Follow the changes feed
	stream := db.Changes(ctx, nil)
	stream.SetInfinite(true)
	for stream.Next() {
	    change := stream.Event()
	    // ...
	}

For more information, see the documentation at https://github.com/suparena/couchstore
*/
package couchstore
