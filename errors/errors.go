/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a database or document is not found
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write loses a revision race
	ErrConflict = errors.New("document update conflict")

	// ErrUnauthorized is returned when credentials are missing or wrong
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the server rejects an authenticated request
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput is returned when input validation fails before a request is made
	ErrInvalidInput = errors.New("invalid input")
)

// CouchError is an error reported by the server: a non-success HTTP status
// or an error object embedded in a response body.
type CouchError struct {
	// ID is the document involved, when the server reports one (bulk writes).
	ID string
	// Status is the HTTP status code.
	Status int
	// Message is the server's error or reason string.
	Message string
}

// New creates a CouchError from a message and HTTP status.
func New(message string, status int) *CouchError {
	return &CouchError{Status: status, Message: message}
}

// NewWithID creates a CouchError tied to a specific document.
func NewWithID(id, message string, status int) *CouchError {
	return &CouchError{ID: id, Status: status, Message: message}
}

func (e *CouchError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s -> %d: %s", e.ID, e.Status, e.Message)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// StatusCode returns the HTTP status the server answered with.
func (e *CouchError) StatusCode() int { return e.Status }

func (e *CouchError) Is(target error) bool {
	switch e.Status {
	case 401:
		return target == ErrUnauthorized
	case 403:
		return target == ErrForbidden
	case 404:
		return target == ErrNotFound
	case 409:
		return target == ErrConflict
	}
	return false
}

// TransportError wraps a network-level failure: the request could not be
// executed or its body could not be read. Always fatal.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("transport error: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError wraps a malformed or unexpected JSON payload. Always fatal.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode error: %v", e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if an error is a revision conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsUnauthorized checks if an error is an authentication failure
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsIdleTimeout reports whether an error chain contains a network timeout.
// The continuous changes feed treats these as recoverable in infinite mode;
// everywhere else they are fatal.
func IsIdleTimeout(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// IsRetryable reports whether a server error is transient. The client never
// retries on its own; callers can use this to drive their own policy.
func IsRetryable(err error) bool {
	var ce *CouchError
	if !errors.As(err, &ce) {
		return false
	}
	switch ce.Status {
	case 429, 500, 502, 503, 504:
		return true
	}
	return false
}
