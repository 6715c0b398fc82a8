/*
Package errors provides semantic error types for the couchstore library.

The taxonomy mirrors the failure modes of the CouchDB REST API:

  - CouchError: the server answered with a non-success status or an error
    body. Carries the HTTP status and, for bulk writes, the document ID.
  - TransportError: the request never completed at the network level.
  - DecodeError: a response or feed line had an unexpected JSON shape.

Errors can be checked with the standard errors.Is()/errors.As() or the
provided helpers:

	doc, err := store.GetOne(ctx, "123")
	if err != nil {
	    if errors.IsNotFound(err) {
	        // Handle missing document
	    }
	    return err
	}

Network timeouts get their own predicate because the continuous changes
feed needs to tell them apart from other I/O failures:

	if errors.IsIdleTimeout(err) {
	    // recoverable inside an infinite changes feed, fatal elsewhere
	}

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
