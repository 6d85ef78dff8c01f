/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package docstore holds the document nodes that index structures refer to by id.
package docstore

import (
	"context"
	"sync"

	"github.com/suparena/indexstore/errors"
)

// NodeType is the entity type name used in not-found errors.
const NodeType = "Node"

// Node is a chunk of source text referenced by index structures.
type Node struct {
	ID       string            `json:"id" yaml:"id"`
	Text     string            `json:"text" yaml:"text"`
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Store resolves nodes by id.
type Store interface {
	Get(ctx context.Context, nodeID string) (*Node, error)
	Put(ctx context.Context, nodes ...*Node) error
}

// Memory is an in-memory Store.
type Memory struct {
	mu    sync.RWMutex
	nodes map[string]Node
}

// NewMemory creates an empty in-memory document store.
func NewMemory() *Memory {
	return &Memory{nodes: make(map[string]Node)}
}

// Get returns a copy of the node, or an error matching errors.ErrNotFound.
func (m *Memory) Get(ctx context.Context, nodeID string) (*Node, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n, ok := m.nodes[nodeID]
	if !ok {
		return nil, errors.NewNotFoundError(NodeType, nodeID)
	}
	return &n, nil
}

// Put inserts or replaces nodes.
func (m *Memory) Put(ctx context.Context, nodes ...*Node) error {
	for _, n := range nodes {
		if n == nil || n.ID == "" {
			return errors.NewValidationError("id", "node id must not be empty")
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range nodes {
		m.nodes[n.ID] = *n
	}
	return nil
}
