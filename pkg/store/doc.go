// Package store keeps diagram snapshots under stable ids.
//
// A [Store] maps a diagram id to its latest [snapshot.Snapshot]. Backends:
//
//   - [FileStore]: JSON files under a local directory, for the CLI
//   - [RedisStore]: shared snapshots with an expiry, for the proxy server
//   - [MongoStore]: one document per diagram
//   - [NullStore]: discards everything
//
// Ids are UUIDs issued by [NewID]. A missing id is reported as an error
// with code errors.ErrCodeNotFound.
//
// [Persister] binds a store and an id to a diagram so every edit is saved.
// Saving is best effort: failures are logged and never reach the editor.
//
//	st, _ := store.NewFileStore(dir, 0)
//	id := store.NewID()
//	d := diagram.New(diagram.WithPersister(store.NewPersister(st, id)))
//	d.AddItem("website") // saved under id
package store
