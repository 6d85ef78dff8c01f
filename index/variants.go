/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package index

import (
	"sort"

	"github.com/suparena/indexstore/indexstruct"
	"github.com/suparena/indexstore/storage"
)

// Tree is a hierarchical summary index.
type Tree struct {
	Base
	Struct indexstruct.Tree
}

// NewTree revives a tree record.
func NewTree(rec *indexstruct.Record, sc *storage.Context, opts ...Option) (*Tree, error) {
	idx := &Tree{}
	base, err := revive(rec, sc, &idx.Struct, opts)
	if err != nil {
		return nil, err
	}
	idx.Base = base
	return idx, nil
}

// RootNodeIDs returns the root node ids ordered by position.
func (t *Tree) RootNodeIDs() []string {
	positions := make([]int, 0, len(t.Struct.RootNodes))
	for pos := range t.Struct.RootNodes {
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	out := make([]string, 0, len(positions))
	for _, pos := range positions {
		out = append(out, t.Struct.RootNodes[pos])
	}
	return out
}

// Children returns the child node ids of nodeID.
func (t *Tree) Children(nodeID string) []string {
	return append([]string(nil), t.Struct.NodeIDToChildren[nodeID]...)
}

// List is a flat, ordered list index.
type List struct {
	Base
	Struct indexstruct.List
}

// NewList revives a list record.
func NewList(rec *indexstruct.Record, sc *storage.Context, opts ...Option) (*List, error) {
	idx := &List{}
	base, err := revive(rec, sc, &idx.Struct, opts)
	if err != nil {
		return nil, err
	}
	idx.Base = base
	return idx, nil
}

// KeywordTable maps keywords to nodes.
type KeywordTable struct {
	Base
	Struct indexstruct.KeywordTable
}

// NewKeywordTable revives a keyword table record.
func NewKeywordTable(rec *indexstruct.Record, sc *storage.Context, opts ...Option) (*KeywordTable, error) {
	idx := &KeywordTable{}
	base, err := revive(rec, sc, &idx.Struct, opts)
	if err != nil {
		return nil, err
	}
	idx.Base = base
	return idx, nil
}

// Keywords returns the table's keywords in sorted order.
func (k *KeywordTable) Keywords() []string {
	return k.Struct.Keywords()
}

// NodeIDsForKeyword returns the nodes indexed under keyword.
func (k *KeywordTable) NodeIDsForKeyword(keyword string) []string {
	return append([]string(nil), k.Struct.Table[keyword]...)
}

// VectorStore maps vector store entries to nodes.
type VectorStore struct {
	Base
	Struct indexstruct.VectorStore
}

// NewVectorStore revives a vector store record.
func NewVectorStore(rec *indexstruct.Record, sc *storage.Context, opts ...Option) (*VectorStore, error) {
	idx := &VectorStore{}
	base, err := revive(rec, sc, &idx.Struct, opts)
	if err != nil {
		return nil, err
	}
	idx.Base = base
	return idx, nil
}

// NodeIDForVector returns the node stored under a vector store id.
func (v *VectorStore) NodeIDForVector(vectorID string) (string, bool) {
	id, ok := v.Struct.NodesDict[vectorID]
	return id, ok
}

// KnowledgeGraph is a triplet index.
type KnowledgeGraph struct {
	Base
	Struct indexstruct.KG
}

// NewKnowledgeGraph revives a kg record.
func NewKnowledgeGraph(rec *indexstruct.Record, sc *storage.Context, opts ...Option) (*KnowledgeGraph, error) {
	idx := &KnowledgeGraph{}
	base, err := revive(rec, sc, &idx.Struct, opts)
	if err != nil {
		return nil, err
	}
	idx.Base = base
	return idx, nil
}

// Relations returns the (relation, object) pairs of subject.
func (g *KnowledgeGraph) Relations(subject string) [][2]string {
	return append([][2]string(nil), g.Struct.RelMap[subject]...)
}

// Empty is an index with no structure.
type Empty struct {
	Base
	Struct indexstruct.Empty
}

// NewEmpty revives an empty record.
func NewEmpty(rec *indexstruct.Record, sc *storage.Context, opts ...Option) (*Empty, error) {
	idx := &Empty{}
	base, err := revive(rec, sc, &idx.Struct, opts)
	if err != nil {
		return nil, err
	}
	idx.Base = base
	return idx, nil
}
