/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package graph composes loaded indices into a graph with a designated root.
package graph

import (
	"sort"

	"github.com/suparena/indexstore/errors"
	"github.com/suparena/indexstore/index"
)

// Graph is a set of indices keyed by index id plus the id of its root index.
// It is immutable once built.
type Graph struct {
	all    map[string]index.Index
	rootID string
}

// New builds a graph over indices. The root must be one of them.
func New(indices []index.Index, rootID string) (*Graph, error) {
	g, err := build(indices, rootID)
	if err != nil {
		return nil, err
	}
	if _, ok := g.all[rootID]; !ok {
		return nil, errors.NewRootNotFoundError(rootID)
	}
	return g, nil
}

// NewUnvalidated builds a graph without checking that rootID names a member index.
func NewUnvalidated(indices []index.Index, rootID string) (*Graph, error) {
	return build(indices, rootID)
}

func build(indices []index.Index, rootID string) (*Graph, error) {
	if rootID == "" {
		return nil, errors.NewValidationError("root_id", "must not be empty")
	}
	all := make(map[string]index.Index, len(indices))
	for _, idx := range indices {
		if idx == nil {
			return nil, errors.NewValidationError("indices", "contains a nil index")
		}
		all[idx.IndexID()] = idx
	}
	return &Graph{all: all, rootID: rootID}, nil
}

// RootID returns the designated root id.
func (g *Graph) RootID() string { return g.rootID }

// Root returns the root index. It reports false only for unvalidated graphs whose root is absent.
func (g *Graph) Root() (index.Index, bool) {
	return g.Get(g.rootID)
}

// Get returns the index with the given id.
func (g *Graph) Get(indexID string) (index.Index, bool) {
	idx, ok := g.all[indexID]
	return idx, ok
}

// Len returns the number of member indices.
func (g *Graph) Len() int { return len(g.all) }

// IndexIDs returns the member ids in sorted order.
func (g *Graph) IndexIDs() []string {
	ids := make([]string, 0, len(g.all))
	for id := range g.all {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// All returns a copy of the id to index mapping.
func (g *Graph) All() map[string]index.Index {
	out := make(map[string]index.Index, len(g.all))
	for id, idx := range g.all {
		out[id] = idx
	}
	return out
}
