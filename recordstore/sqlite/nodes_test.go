/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/indexstore/docstore"
	"github.com/suparena/indexstore/errors"
)

func TestNodesPutAndGet(t *testing.T) {
	ctx := context.Background()
	nodes := openTestStore(t).Nodes()

	require.NoError(t, nodes.Put(ctx,
		&docstore.Node{ID: "n1", Text: "one", Metadata: map[string]string{"file": "a.md"}},
		&docstore.Node{ID: "n2", Text: "two"},
	))

	got, err := nodes.Get(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "one", got.Text)
	assert.Equal(t, map[string]string{"file": "a.md"}, got.Metadata)

	got, err = nodes.Get(ctx, "n2")
	require.NoError(t, err)
	assert.Equal(t, "two", got.Text)
	assert.Nil(t, got.Metadata)

	require.NoError(t, nodes.Put(ctx, &docstore.Node{ID: "n2", Text: "updated"}))
	got, err = nodes.Get(ctx, "n2")
	require.NoError(t, err)
	assert.Equal(t, "updated", got.Text)
}

func TestNodesMissingAndInvalid(t *testing.T) {
	ctx := context.Background()
	nodes := openTestStore(t).Nodes()

	_, err := nodes.Get(ctx, "missing")
	assert.True(t, errors.IsNotFound(err))

	err = nodes.Put(ctx, &docstore.Node{ID: "ok"}, &docstore.Node{})
	assert.True(t, errors.IsValidationError(err))

	// Validation happens before any write
	_, err = nodes.Get(ctx, "ok")
	assert.True(t, errors.IsNotFound(err))
}

func TestNodesSurviveReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "indices.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Nodes().Put(ctx, &docstore.Node{ID: "n1", Text: "persisted"}))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Nodes().Get(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Text)
}
