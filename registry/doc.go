/*
Package registry maps index struct type tags to the constructors that revive them.

The tag set is closed: only the types enumerated by indexstruct.Types may be
registered, and each at most once.

	idx, err := registry.Default().Revive(rec, sc)
	if errors.IsUnknownType(err) {
	    // rec.Type has no constructor
	}

Custom registries start empty and are populated during initialization:

	r := registry.New()
	r.Register(indexstruct.TypeList, registry.Of(index.NewList))

Registries are safe for concurrent use. Default is built once on first use.
*/
package registry
