/*
Package registry manages type registration and index hints for couchstore.

The registry system enables:
  - Polymorphic document storage in a single database
  - Dynamic type resolution based on a document's "type" field
  - Per-type Mango index selection without repeating use_index everywhere

Type Registry:
Maps document type names to decode functions:

	registry.RegisterType("user", func(raw json.RawMessage) (interface{}, error) {
	    var u User
	    err := json.Unmarshal(raw, &u)
	    return &u, err
	})

Index Registry:
Associates Go types with the Mango index their queries should use:

	registry.RegisterIndex[User](registry.IndexHint{
	    DesignDocument: "_design/users",
	    Name:           "by-email",
	})

The registry is thread-safe and should be populated during initialization,
typically in init() functions.
*/
package registry
