/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/indexstore/docstore"
	storeerrors "github.com/suparena/indexstore/errors"
)

// NodeStore is a docstore.Store over node items in a Store's table.
type NodeStore struct {
	store *Store
}

var _ docstore.Store = (*NodeStore)(nil)

// nodeItem is the attribute layout of a document node.
type nodeItem struct {
	NodeID     string            `dynamodbav:"NodeID"`
	EntityType string            `dynamodbav:"EntityType"`
	Text       string            `dynamodbav:"Text,omitempty"`
	Metadata   map[string]string `dynamodbav:"Metadata,omitempty"`
}

// Nodes returns the document store sharing this table and client.
func (d *Store) Nodes() *NodeStore {
	return &NodeStore{store: d}
}

// Get retrieves a node by id.
func (n *NodeStore) Get(ctx context.Context, nodeID string) (*docstore.Node, error) {
	keyMap, err := buildKeyFromExpanded(expandStringKey(nodeIndexMap, nodeID))
	if err != nil {
		return nil, fmt.Errorf("failed to build key: %w", err)
	}

	out, err := n.store.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &n.store.tableName,
		Key:       keyMap,
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, storeerrors.NewNotFoundError(docstore.NodeType, nodeID)
	}

	var it nodeItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, fmt.Errorf("failed to unmarshal node: %w", err)
	}
	return &docstore.Node{ID: it.NodeID, Text: it.Text, Metadata: it.Metadata}, nil
}

// Put stores each node as its own item.
func (n *NodeStore) Put(ctx context.Context, nodes ...*docstore.Node) error {
	for _, node := range nodes {
		if node == nil || node.ID == "" {
			return storeerrors.NewValidationError("id", "node id must not be empty")
		}
	}

	for _, node := range nodes {
		it := nodeItem{
			NodeID:     node.ID,
			EntityType: docstore.NodeType,
			Text:       node.Text,
			Metadata:   node.Metadata,
		}
		av, err := attributevalue.MarshalMap(it)
		if err != nil {
			return fmt.Errorf("failed to marshal node: %w", err)
		}
		for k, v := range expandStringKey(nodeIndexMap, node.ID) {
			av[k] = &types.AttributeValueMemberS{Value: v}
		}

		if _, err := n.store.client.PutItem(ctx, &sdk.PutItemInput{
			TableName: &n.store.tableName,
			Item:      av,
		}); err != nil {
			return fmt.Errorf("PutItem failed: %w", err)
		}
	}
	return nil
}
