/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package indexstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/suparena/indexstore/errors"
	"github.com/suparena/indexstore/graph"
	"github.com/suparena/indexstore/index"
	"github.com/suparena/indexstore/indexstruct"
	"github.com/suparena/indexstore/registry"
	"github.com/suparena/indexstore/storage"
)

// Loader revives persisted index structs into live indices.
type Loader struct {
	registry        *registry.Registry
	logger          *slog.Logger
	unvalidatedRoot bool
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithRegistry sets the registry used to dispatch records to constructors.
func WithRegistry(r *registry.Registry) LoaderOption {
	return func(l *Loader) {
		l.registry = r
	}
}

// WithLogger sets the loader logger. By default the storage context's logger is used.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithUnvalidatedRoot makes LoadGraph accept any root id, including ones with no
// persisted index.
func WithUnvalidatedRoot() LoaderOption {
	return func(l *Loader) {
		l.unvalidatedRoot = true
	}
}

// NewLoader creates a Loader over the default registry.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	if l.registry == nil {
		l.registry = registry.Default()
	}
	return l
}

// LoadIndices revives the records named by ids, in the given order.
// A nil ids slice revives every record in storage order.
// A nil sc is replaced by storage.FromDefaults.
func (l *Loader) LoadIndices(ctx context.Context, sc *storage.Context, ids []string, opts ...index.Option) ([]index.Index, error) {
	sc, err := l.resolveContext(ctx, sc)
	if err != nil {
		return nil, err
	}
	logger := l.loggerFor(sc)

	var records []*indexstruct.Record
	if ids == nil {
		logger.InfoContext(ctx, "loading all indices")
		records, err = sc.IndexStore.All(ctx)
		if err != nil {
			return nil, err
		}
	} else {
		logger.InfoContext(ctx, "loading indices", "ids", ids)
		records = make([]*indexstruct.Record, 0, len(ids))
		for _, id := range ids {
			rec, err := sc.IndexStore.Get(ctx, id)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
	}

	indices := make([]index.Index, 0, len(records))
	for _, rec := range records {
		idx, err := l.registry.Revive(rec, sc, opts...)
		if err != nil {
			return nil, err
		}
		indices = append(indices, idx)
	}

	logger.DebugContext(ctx, "revived indices", "count", len(indices))
	return indices, nil
}

// LoadIndex revives exactly one index. An empty indexID requires storage to hold a
// single index; ErrEmptyResult and AmbiguousResultError report the other cases.
func (l *Loader) LoadIndex(ctx context.Context, sc *storage.Context, indexID string, opts ...index.Option) (index.Index, error) {
	var ids []string
	if indexID != "" {
		ids = []string{indexID}
	}

	indices, err := l.LoadIndices(ctx, sc, ids, opts...)
	if err != nil {
		return nil, err
	}

	switch {
	case len(indices) == 0:
		return nil, errors.ErrEmptyResult
	case len(indices) > 1 && indexID == "":
		return nil, errors.NewAmbiguousResultError(len(indices))
	}
	return indices[0], nil
}

// LoadGraph revives every persisted index and composes them under rootID.
func (l *Loader) LoadGraph(ctx context.Context, rootID string, sc *storage.Context, opts ...index.Option) (*graph.Graph, error) {
	indices, err := l.LoadIndices(ctx, sc, nil, opts...)
	if err != nil {
		return nil, err
	}
	if l.unvalidatedRoot {
		return graph.NewUnvalidated(indices, rootID)
	}
	return graph.New(indices, rootID)
}

func (l *Loader) resolveContext(ctx context.Context, sc *storage.Context) (*storage.Context, error) {
	if sc == nil {
		var err error
		sc, err = storage.FromDefaults(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to build default storage context: %w", err)
		}
	}
	if sc.IndexStore == nil {
		return nil, errors.NewValidationError("index_store", "storage context has no index store")
	}
	return sc, nil
}

func (l *Loader) loggerFor(sc *storage.Context) *slog.Logger {
	if l.logger != nil {
		return l.logger
	}
	return sc.Logger()
}

var defaultLoader = NewLoader()

// LoadIndicesFromStorage calls LoadIndices on a loader over the default registry.
func LoadIndicesFromStorage(ctx context.Context, sc *storage.Context, ids []string, opts ...index.Option) ([]index.Index, error) {
	return defaultLoader.LoadIndices(ctx, sc, ids, opts...)
}

// LoadIndexFromStorage calls LoadIndex on a loader over the default registry.
func LoadIndexFromStorage(ctx context.Context, sc *storage.Context, indexID string, opts ...index.Option) (index.Index, error) {
	return defaultLoader.LoadIndex(ctx, sc, indexID, opts...)
}

// LoadGraphFromStorage calls LoadGraph on a loader over the default registry.
// The root must name a persisted index.
func LoadGraphFromStorage(ctx context.Context, rootID string, sc *storage.Context, opts ...index.Option) (*graph.Graph, error) {
	return defaultLoader.LoadGraph(ctx, rootID, sc, opts...)
}
