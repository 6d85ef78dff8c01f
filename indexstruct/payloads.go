/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package indexstruct

import "sort"

// Payload is the typed structure stored in Record.Data.
type Payload interface {
	// Type returns the discriminator the payload is persisted under.
	Type() Type
	// NodeIDs returns the document node ids referenced by the structure.
	NodeIDs() []string
}

// Tree is a hierarchical summary index.
type Tree struct {
	// AllNodes maps a node position to its node id.
	AllNodes map[int]string `json:"all_nodes"`
	// RootNodes maps a root position to its node id.
	RootNodes map[int]string `json:"root_nodes"`
	// NodeIDToChildren maps a node id to the ids of its children.
	NodeIDToChildren map[string][]string `json:"node_id_to_children,omitempty"`
}

func (*Tree) Type() Type { return TypeTree }

func (t *Tree) NodeIDs() []string {
	ids := make([]string, 0, len(t.AllNodes))
	for _, id := range t.AllNodes {
		ids = append(ids, id)
	}
	return uniqueSorted(ids)
}

// List is a flat, ordered list of nodes.
type List struct {
	Nodes []string `json:"nodes"`
}

func (*List) Type() Type { return TypeList }

// NodeIDs keeps list order.
func (l *List) NodeIDs() []string {
	out := make([]string, len(l.Nodes))
	copy(out, l.Nodes)
	return out
}

// KeywordTable maps keywords to the nodes containing them.
type KeywordTable struct {
	Table map[string][]string `json:"table"`
}

func (*KeywordTable) Type() Type { return TypeKeywordTable }

func (k *KeywordTable) NodeIDs() []string {
	var ids []string
	for _, nodes := range k.Table {
		ids = append(ids, nodes...)
	}
	return uniqueSorted(ids)
}

// Keywords returns the table's keywords in sorted order.
func (k *KeywordTable) Keywords() []string {
	out := make([]string, 0, len(k.Table))
	for kw := range k.Table {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

// VectorStore maps vector store ids to node ids.
type VectorStore struct {
	NodesDict map[string]string `json:"nodes_dict"`
}

func (*VectorStore) Type() Type { return TypeVectorStore }

func (v *VectorStore) NodeIDs() []string {
	ids := make([]string, 0, len(v.NodesDict))
	for _, id := range v.NodesDict {
		ids = append(ids, id)
	}
	return uniqueSorted(ids)
}

// KG is a knowledge graph of subject/relation/object triplets.
type KG struct {
	// Table maps a keyword to node ids.
	Table map[string][]string `json:"table"`
	// RelMap maps a subject to its (relation, object) pairs.
	RelMap map[string][][2]string `json:"rel_map,omitempty"`
}

func (*KG) Type() Type { return TypeKG }

func (k *KG) NodeIDs() []string {
	var ids []string
	for _, nodes := range k.Table {
		ids = append(ids, nodes...)
	}
	return uniqueSorted(ids)
}

// Empty holds no structure.
type Empty struct{}

func (*Empty) Type() Type { return TypeEmpty }

func (*Empty) NodeIDs() []string { return nil }

func uniqueSorted(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	sort.Strings(ids)
	out := ids[:1]
	for _, id := range ids[1:] {
		if id != out[len(out)-1] {
			out = append(out, id)
		}
	}
	return out
}
