/*
Package index provides the live index objects revived from persisted index structs.

Every variant embeds Base, which binds it to a storage.Context and exposes the
identity shared by all indices:

	type Index interface {
	    IndexID() string
	    Type() indexstruct.Type
	    Summary() string
	    StorageContext() *storage.Context
	    NodeIDs() []string
	    Nodes(ctx context.Context) ([]*docstore.Node, error)
	}

Variants:
  - Tree: hierarchical summaries (indexstruct.TypeTree)
  - List: ordered node list (indexstruct.TypeList)
  - KeywordTable: keyword to node mapping (indexstruct.TypeKeywordTable)
  - VectorStore: vector id to node mapping (indexstruct.TypeVectorStore)
  - KnowledgeGraph: triplet store (indexstruct.TypeKG)
  - Empty: no structure (indexstruct.TypeEmpty)

Constructors share one signature so the registry can dispatch on a record's type:

	idx, err := index.NewList(rec, sc, index.WithMetadata("owner", "search"))

The storage context is shared by every index created from it and is never closed
by an index.
*/
package index
