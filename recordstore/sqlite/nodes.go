/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/suparena/indexstore/docstore"
	"github.com/suparena/indexstore/errors"
)

// NodeStore is a docstore.Store over the nodes table of a Store's database.
type NodeStore struct {
	db *sql.DB
}

var _ docstore.Store = (*NodeStore)(nil)

// Nodes returns the document store sharing this database. Closing the Store closes it too.
func (s *Store) Nodes() *NodeStore {
	return &NodeStore{db: s.db}
}

// Get retrieves a node by id.
func (n *NodeStore) Get(ctx context.Context, nodeID string) (*docstore.Node, error) {
	var (
		node     = docstore.Node{ID: nodeID}
		metadata []byte
	)
	err := n.db.QueryRowContext(ctx,
		`SELECT text, metadata FROM nodes WHERE node_id = ?`, nodeID,
	).Scan(&node.Text, &metadata)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError(docstore.NodeType, nodeID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get node %q: %w", nodeID, err)
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &node.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode metadata of node %q: %w", nodeID, err)
		}
	}
	return &node, nil
}

// Put inserts or replaces nodes in a single transaction.
func (n *NodeStore) Put(ctx context.Context, nodes ...*docstore.Node) error {
	for _, node := range nodes {
		if node == nil || node.ID == "" {
			return errors.NewValidationError("id", "node id must not be empty")
		}
	}

	tx, err := n.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, node := range nodes {
		var metadata []byte
		if len(node.Metadata) > 0 {
			if metadata, err = json.Marshal(node.Metadata); err != nil {
				return fmt.Errorf("failed to encode metadata of node %q: %w", node.ID, err)
			}
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO nodes (node_id, text, metadata) VALUES (?, ?, ?)
			ON CONFLICT(node_id) DO UPDATE SET text = excluded.text, metadata = excluded.metadata
		`, node.ID, node.Text, metadata); err != nil {
			return fmt.Errorf("failed to put node %q: %w", node.ID, err)
		}
	}
	return tx.Commit()
}
