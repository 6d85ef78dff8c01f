/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/indexstore/errors"
	"github.com/suparena/indexstore/index"
	"github.com/suparena/indexstore/indexstruct"
	"github.com/suparena/indexstore/storage"
)

// Constructor revives a record into a live index bound to sc.
type Constructor func(rec *indexstruct.Record, sc *storage.Context, opts ...index.Option) (index.Index, error)

// Of adapts a variant constructor returning a concrete index type to a Constructor.
func Of[T index.Index](fn func(*indexstruct.Record, *storage.Context, ...index.Option) (T, error)) Constructor {
	return func(rec *indexstruct.Record, sc *storage.Context, opts ...index.Option) (index.Index, error) {
		idx, err := fn(rec, sc, opts...)
		if err != nil {
			return nil, err
		}
		return idx, nil
	}
}

// Registry maps index struct type tags to constructors.
type Registry struct {
	mu           sync.RWMutex
	constructors map[indexstruct.Type]Constructor
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{constructors: make(map[indexstruct.Type]Constructor)}
}

// Register associates a constructor with a type tag.
// It panics when the tag is not a known type or is already registered, to prevent accidental overrides.
func (r *Registry) Register(typ indexstruct.Type, fn Constructor) {
	if !typ.Valid() {
		panic(fmt.Sprintf("type registry: %q is not an index struct type", typ))
	}
	if fn == nil {
		panic(fmt.Sprintf("type registry: nil constructor for %q", typ))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.constructors[typ]; exists {
		panic(fmt.Sprintf("type registry: type %q already registered", typ))
	}
	r.constructors[typ] = fn
}

// Lookup returns the constructor registered for typ.
func (r *Registry) Lookup(typ indexstruct.Type) (Constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.constructors[typ]
	return fn, ok
}

// Types returns the registered tags in sorted order.
func (r *Registry) Types() []indexstruct.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]indexstruct.Type, 0, len(r.constructors))
	for typ := range r.constructors {
		out = append(out, typ)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Revive dispatches rec to the constructor registered for its type.
// A tag with no constructor yields an UnknownTypeError.
func (r *Registry) Revive(rec *indexstruct.Record, sc *storage.Context, opts ...index.Option) (index.Index, error) {
	if rec == nil {
		return nil, errors.NewValidationError("record", "must not be nil")
	}
	fn, ok := r.Lookup(rec.Type)
	if !ok {
		return nil, errors.NewUnknownTypeError(string(rec.Type), rec.IndexID)
	}
	return fn(rec, sc, opts...)
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry holding every built-in variant.
// It is populated once and is read-only afterwards.
func Default() *Registry {
	defaultOnce.Do(func() {
		r := New()
		r.Register(indexstruct.TypeTree, Of(index.NewTree))
		r.Register(indexstruct.TypeList, Of(index.NewList))
		r.Register(indexstruct.TypeKeywordTable, Of(index.NewKeywordTable))
		r.Register(indexstruct.TypeVectorStore, Of(index.NewVectorStore))
		r.Register(indexstruct.TypeKG, Of(index.NewKnowledgeGraph))
		r.Register(indexstruct.TypeEmpty, Of(index.NewEmpty))
		defaultRegistry = r
	})
	return defaultRegistry
}
