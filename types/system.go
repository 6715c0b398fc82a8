/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package types

// ServerVendor identifies the server implementation.
type ServerVendor struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// ServerStatus is the response of GET /.
type ServerStatus struct {
	CouchDB string       `json:"couchdb"`
	UUID    string       `json:"uuid,omitempty"`
	Version string       `json:"version"`
	Vendor  ServerVendor `json:"vendor"`
}
