/*
Package types defines the wire-level data structures of the CouchDB REST API.

Key Types:

DocumentMeta / CouchDocument:
Embed DocumentMeta to make a struct storable:

	type User struct {
	    types.DocumentMeta
	    Name  string `json:"name"`
	    Email string `json:"email"`
	}

FindQuery:
The body of a Mango _find request:

	query, _ := types.NewFindQuery(map[string]any{"type": "user"})
	query.Sort = []types.SortSpec{types.SortBy("name", types.SortAsc)}
	query.Limit = 100

ChangeEvent / FinishedEvent / Event:
The two line shapes of the _changes continuous feed, discriminated by field
presence through DecodeEvent. Sequence tokens and bookmarks are opaque;
only equality comparisons are meaningful.

DocumentCollection:
One bounded batch of decoded documents plus the bookmark continuing it.

These types carry no behavior beyond (de)serialization helpers; the client
logic lives in the root couchstore package.
*/
package types
