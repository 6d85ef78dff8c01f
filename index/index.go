/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package index

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/suparena/indexstore/docstore"
	"github.com/suparena/indexstore/errors"
	"github.com/suparena/indexstore/indexstruct"
	"github.com/suparena/indexstore/storage"
)

// Index is a live index object bound to a storage context.
type Index interface {
	// IndexID matches the IndexID of the record the index was revived from.
	IndexID() string
	Type() indexstruct.Type
	Summary() string
	StorageContext() *storage.Context
	// NodeIDs returns the document node ids the index structure refers to.
	NodeIDs() []string
	// Nodes resolves NodeIDs through the storage context's document store.
	Nodes(ctx context.Context) ([]*docstore.Node, error)
}

// Options are extra construction options forwarded by the loader to every constructor.
type Options struct {
	Logger   *slog.Logger
	Metadata map[string]string
}

// Option configures index construction.
type Option func(*Options)

// WithLogger overrides the storage context's logger for the index.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithMetadata attaches a key/value pair to the index.
func WithMetadata(key, value string) Option {
	return func(o *Options) {
		if o.Metadata == nil {
			o.Metadata = make(map[string]string)
		}
		o.Metadata[key] = value
	}
}

// Base carries the state every variant shares.
type Base struct {
	id       string
	typ      indexstruct.Type
	summary  string
	storage  *storage.Context
	nodeIDs  []string
	logger   *slog.Logger
	metadata map[string]string
}

func (b *Base) IndexID() string                  { return b.id }
func (b *Base) Type() indexstruct.Type           { return b.typ }
func (b *Base) Summary() string                  { return b.summary }
func (b *Base) StorageContext() *storage.Context { return b.storage }

func (b *Base) NodeIDs() []string {
	out := make([]string, len(b.nodeIDs))
	copy(out, b.nodeIDs)
	return out
}

// Metadata returns the value set with WithMetadata.
func (b *Base) Metadata(key string) (string, bool) {
	v, ok := b.metadata[key]
	return v, ok
}

// Logger returns the index logger, tagged with the index id.
func (b *Base) Logger() *slog.Logger { return b.logger }

func (b *Base) Nodes(ctx context.Context) ([]*docstore.Node, error) {
	if b.storage.DocStore == nil {
		return nil, errors.NewValidationError("doc_store", "storage context has no document store")
	}
	nodes := make([]*docstore.Node, 0, len(b.nodeIDs))
	for _, id := range b.nodeIDs {
		n, err := b.storage.DocStore.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	b.logger.DebugContext(ctx, "resolved nodes", "count", len(nodes))
	return nodes, nil
}

// revive decodes rec into payload and builds the shared Base.
func revive(rec *indexstruct.Record, sc *storage.Context, payload indexstruct.Payload, opts []Option) (Base, error) {
	if err := rec.Validate(); err != nil {
		return Base{}, err
	}
	if sc == nil {
		return Base{}, errors.NewValidationError("storage_context", "must not be nil")
	}
	if rec.Type != payload.Type() {
		return Base{}, fmt.Errorf("cannot revive %s record %q as %s", rec.Type, rec.IndexID, payload.Type())
	}
	if err := rec.Decode(payload); err != nil {
		return Base{}, err
	}

	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.Logger
	if logger == nil {
		logger = sc.Logger()
	}

	return Base{
		id:       rec.IndexID,
		typ:      rec.Type,
		summary:  rec.Summary,
		storage:  sc,
		nodeIDs:  payload.NodeIDs(),
		logger:   logger.With("index_id", rec.IndexID, "index_type", string(rec.Type)),
		metadata: o.Metadata,
	}, nil
}
