/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package couchstore

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/suparena/couchstore/errors"
	"github.com/suparena/couchstore/slogger"
	"github.com/suparena/couchstore/types"
)

// DefaultTimeout is applied from when a request starts connecting until its
// response body has been read. Continuous changes feeds outlive it on
// purpose; the stream absorbs the resulting timeout in infinite mode.
const DefaultTimeout = 10 * time.Second

const (
	testHost     = "http://localhost:5984"
	testUsername = "admin"
	testPassword = "password"
)

// Client handles URI construction and the HTTP calls to the CouchDB REST
// API. It is also responsible for creation, access and destruction of
// databases. A Client is safe for concurrent use; database handles share it.
type Client struct {
	http     *http.Client
	uri      *url.URL
	username string
	password string
	dbPrefix string
	log      slogger.Logger
}

// NewClient creates a client with basic authentication and DefaultTimeout.
// The URI has to be in this format: http://hostname:5984.
func NewClient(uri, username, password string) (*Client, error) {
	return NewClientWithTimeout(uri, username, password, DefaultTimeout)
}

// NewClientNoAuth creates a client without authentication.
func NewClientNoAuth(uri string) (*Client, error) {
	return NewClientWithTimeout(uri, "", "", DefaultTimeout)
}

// NewLocalTestClient creates a client for a local test server
// (http://localhost:5984, admin/password). Use this only for testing.
func NewLocalTestClient() (*Client, error) {
	return NewClient(testHost, testUsername, testPassword)
}

// NewClientWithTimeout creates a client with an explicit request timeout.
// A zero timeout disables the limit entirely.
func NewClientWithTimeout(uri, username, password string, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parse server uri: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("server uri %q is not absolute: %w", uri, errors.ErrInvalidInput)
	}
	return &Client{
		http:     &http.Client{Timeout: timeout},
		uri:      parsed,
		username: username,
		password: password,
		log:      slogger.NewDevNullLogger(),
	}, nil
}

// SetLogger installs a logger. The default discards everything.
func (c *Client) SetLogger(log slogger.Logger) {
	if log == nil {
		log = slogger.NewDevNullLogger()
	}
	c.log = log
}

// SetPrefix sets a prefix prepended to every database name this client
// touches. Useful for sharing one server between environments.
func (c *Client) SetPrefix(prefix string) {
	c.dbPrefix = prefix
}

func (c *Client) buildDBName(dbname string) string {
	return c.dbPrefix + dbname
}

// ListDatabases lists the databases on the server.
func (c *Client) ListDatabases(ctx context.Context) ([]string, error) {
	resp, err := c.get(ctx, "_all_dbs", nil)
	if err != nil {
		return nil, err
	}
	var dbs []string
	if err := decodeResponse(resp, &dbs); err != nil {
		return nil, err
	}
	return dbs, nil
}

// Status returns the server's welcome banner (GET /).
func (c *Client) Status(ctx context.Context) (*types.ServerStatus, error) {
	resp, err := c.get(ctx, "", nil)
	if err != nil {
		return nil, err
	}
	var status types.ServerStatus
	if err := decodeResponse(resp, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Exists checks whether a database exists.
func (c *Client) Exists(ctx context.Context, dbname string) bool {
	resp, err := c.head(ctx, c.buildDBName(dbname))
	if err != nil {
		return false
	}
	defer drainBody(resp)
	return resp.StatusCode == http.StatusOK
}

// Database connects to an existing database, creating it when it does not
// exist yet.
func (c *Client) Database(ctx context.Context, dbname string) (*Database, error) {
	name := c.buildDBName(dbname)
	resp, err := c.head(ctx, name)
	if err != nil {
		return nil, err
	}
	drainBody(resp)
	if resp.StatusCode == http.StatusOK {
		return newDatabase(name, c), nil
	}
	return c.MakeDatabase(ctx, dbname)
}

// MakeDatabase creates a new database with the given name.
func (c *Client) MakeDatabase(ctx context.Context, dbname string) (*Database, error) {
	name := c.buildDBName(dbname)
	resp, err := c.put(ctx, name, nil, nil)
	if err != nil {
		return nil, err
	}
	var body struct {
		OK     bool   `json:"ok"`
		Error  string `json:"error"`
		Reason string `json:"reason"`
	}
	if err := decodeResponse(resp, &body); err != nil {
		return nil, err
	}
	c.log.Debug("database created", "name", name)
	return newDatabase(name, c), nil
}

// DestroyDatabase deletes a database and all its documents.
func (c *Client) DestroyDatabase(ctx context.Context, dbname string) (bool, error) {
	resp, err := c.delete(ctx, c.buildDBName(dbname), nil)
	if err != nil {
		return false, err
	}
	var body struct {
		OK bool `json:"ok"`
	}
	if err := decodeResponse(resp, &body); err != nil {
		return false, err
	}
	return body.OK, nil
}
