/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package couchstore

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/suparena/couchstore/errors"
)

// urlFor joins the server URI with a path that is already escaped where
// needed, plus optional query parameters. The path is concatenated as a
// string so pre-escaped segments (url.PathEscape'd document IDs) survive.
func (c *Client) urlFor(path string, params map[string]string) string {
	s := strings.TrimRight(c.uri.String(), "/") + "/" + path
	if len(params) > 0 {
		values := url.Values{}
		for k, v := range params {
			values.Set(k, v)
		}
		s += "?" + values.Encode()
	}
	return s
}

func (c *Client) newRequest(ctx context.Context, method, path string, params map[string]string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.urlFor(path, params), body)
	if err != nil {
		return nil, &errors.TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	return req, nil
}

// do executes a request. A network-level failure comes back as a
// TransportError; status handling is left to the caller.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errors.TransportError{Err: err}
	}
	c.log.Debug("request", "method", req.Method, "url", req.URL.Path, "status", resp.StatusCode)
	return resp, nil
}

func (c *Client) get(ctx context.Context, path string, params map[string]string) (*http.Response, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, params, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) head(ctx context.Context, path string) (*http.Response, error) {
	req, err := c.newRequest(ctx, http.MethodHead, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, path string, params map[string]string, body []byte) (*http.Response, error) {
	req, err := c.newRequest(ctx, http.MethodPost, path, params, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) put(ctx context.Context, path string, params map[string]string, body []byte) (*http.Response, error) {
	req, err := c.newRequest(ctx, http.MethodPut, path, params, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) delete(ctx context.Context, path string, params map[string]string) (*http.Response, error) {
	req, err := c.newRequest(ctx, http.MethodDelete, path, params, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// decodeResponse consumes a response. Non-2xx statuses become a CouchError
// carrying the body's error/reason when present; 2xx bodies are decoded
// into out (which may be nil).
func decodeResponse(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var body struct {
			Error  string `json:"error"`
			Reason string `json:"reason"`
		}
		message := http.StatusText(resp.StatusCode)
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Reason != "" {
			message = body.Reason
		}
		return errors.New(message, resp.StatusCode)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &errors.DecodeError{Err: err}
	}
	return nil
}

// statusAccepted consumes a response and reports whether the server
// accepted the request (202).
func statusAccepted(resp *http.Response, err error) bool {
	if err != nil {
		return false
	}
	drainBody(resp)
	return resp.StatusCode == http.StatusAccepted
}

// statusOK consumes a response and reports a 200 or 304 answer.
func statusOK(resp *http.Response, err error) bool {
	if err != nil {
		return false
	}
	drainBody(resp)
	return resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNotModified
}

func drainBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
