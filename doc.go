/*
Package indexstore rebuilds live index objects from their persisted structural records.

An index struct is stored as a record carrying its id, a type tag and a JSON payload.
Loading reads records from the record store of a storage context, dispatches each one
through the type registry, and returns live indices bound to that same context.

Basic Usage:

	sc, err := storage.FromConfig(ctx, cfg)
	if err != nil {
	    return err
	}
	defer sc.Close()

	// Exactly one index must be persisted when no id is given
	idx, err := indexstore.LoadIndexFromStorage(ctx, sc, "")

	// Every index, composed under a root
	g, err := indexstore.LoadGraphFromStorage(ctx, "root-id", sc)

A nil storage context is replaced by storage.FromDefaults, which reads the
INDEXSTORE_* environment.

Loaders with a custom registry or a lenient graph root are built with NewLoader:

	loader := indexstore.NewLoader(indexstore.WithUnvalidatedRoot())
*/
package indexstore
