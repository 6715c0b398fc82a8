/*
Package couchdb implements the datastore.DataStore interface on top of the
couchstore CouchDB client.

A store wraps one database and one entity type:

	store, err := couchdb.New[User](ctx, client, "users")
	if err != nil {
	    return err
	}

	user := &User{Name: "John"}
	err = store.Put(ctx, user) // assigns a UUID when the entity has no _id

Queries go through Mango. When an index hint is registered for the entity
type (registry.RegisterIndex), Find, FindAny and Stream apply it
automatically unless the query names its own use_index.

Stream reads arbitrarily large result sets page by page, delivering items
through a bounded channel:

	for result := range store.Stream(ctx, types.FindAll(), datastore.WithPageSize(500)) {
	    if result.Error != nil {
	        return result.Error
	    }
	    process(result.Item)
	}
*/
package couchdb
