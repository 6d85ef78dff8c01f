/*
Package indexstruct defines the persisted structural records that describe an index.

A Record is what a record store keeps for one index: its id, a type discriminator and
a JSON-encoded payload describing the index's internal structure. The payload is
opaque to stores; only the index constructors decode it.

Type Discriminators:

	tree, list, keyword_table, vector_store, kg, empty

Building Records:

	rec, err := indexstruct.NewRecord("docs", &indexstruct.List{Nodes: []string{"n1", "n2"}})

	var list indexstruct.List
	err = rec.Decode(&list)

The set of types is closed; Type.Valid reports membership and Types lists them all.
*/
package indexstruct
