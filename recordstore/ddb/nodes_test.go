/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"testing"

	"github.com/suparena/indexstore/docstore"
	storeerrors "github.com/suparena/indexstore/errors"
	"github.com/suparena/indexstore/indexstruct"
)

func TestNodesPutAndGet(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamo()
	nodes := newTestStore(fake).Nodes()

	err := nodes.Put(ctx,
		&docstore.Node{ID: "n1", Text: "one", Metadata: map[string]string{"file": "a.md"}},
		&docstore.Node{ID: "n$2", Text: "two"},
	)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := nodes.Get(ctx, "n1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ID != "n1" || got.Text != "one" || got.Metadata["file"] != "a.md" {
		t.Errorf("Unexpected node: %+v", got)
	}

	got, err = nodes.Get(ctx, "n$2")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Text != "two" {
		t.Errorf("Unexpected node: %+v", got)
	}

	if _, err := nodes.Get(ctx, "missing"); !storeerrors.IsNotFound(err) {
		t.Fatalf("Expected not found error, got %v", err)
	}
}

func TestNodesInvalid(t *testing.T) {
	fake := newFakeDynamo()
	nodes := newTestStore(fake).Nodes()

	if err := nodes.Put(context.Background(), &docstore.Node{ID: "ok"}, nil); !storeerrors.IsValidationError(err) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if len(fake.items) != 0 {
		t.Errorf("Expected no writes, got %d items", len(fake.items))
	}
}

func TestNodesNotListedAsRecords(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(newFakeDynamo())

	if err := store.Put(ctx, mustRecord(t, "a", &indexstruct.List{Nodes: []string{"n1"}})); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Nodes().Put(ctx, &docstore.Node{ID: "n1", Text: "one"}); err != nil {
		t.Fatalf("Put node failed: %v", err)
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != 1 || all[0].IndexID != "a" {
		t.Fatalf("Expected only record a, got %d records", len(all))
	}
}
