/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package storage bundles the backends live indices are bound to.
package storage

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/suparena/indexstore/config"
	"github.com/suparena/indexstore/docstore"
	"github.com/suparena/indexstore/errors"
	"github.com/suparena/indexstore/internal/logging"
	"github.com/suparena/indexstore/recordstore"
	"github.com/suparena/indexstore/recordstore/ddb"
	"github.com/suparena/indexstore/recordstore/memory"
	"github.com/suparena/indexstore/recordstore/sqlite"
)

// Context is the bundle of backend connections shared by every index revived from it.
type Context struct {
	// IndexStore holds the structural index records.
	IndexStore recordstore.Store
	// DocStore holds the nodes index structures refer to.
	DocStore docstore.Store

	logger  *slog.Logger
	closers []io.Closer
}

// Option configures a Context.
type Option func(*Context)

// WithDocStore sets the document store.
func WithDocStore(ds docstore.Store) Option {
	return func(c *Context) {
		c.DocStore = ds
	}
}

// WithLogger sets the logger shared by the context and its indices.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) {
		c.logger = logger
	}
}

// New builds a Context over indexStore. A nil indexStore means an empty in-memory store;
// the document store defaults to an in-memory one.
func New(indexStore recordstore.Store, opts ...Option) *Context {
	c := &Context{IndexStore: indexStore}
	for _, opt := range opts {
		opt(c)
	}
	if c.IndexStore == nil {
		c.IndexStore = memory.New()
	}
	if c.DocStore == nil {
		c.DocStore = docstore.NewMemory()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if closer, ok := c.IndexStore.(io.Closer); ok {
		c.closers = append(c.closers, closer)
	}
	return c
}

// Logger returns the context logger.
func (c *Context) Logger() *slog.Logger {
	if c.logger == nil {
		return slog.Default()
	}
	return c.logger
}

// Close releases backends that hold resources, such as SQLite connections.
func (c *Context) Close() error {
	var errs []error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return stderrors.Join(errs...)
}

// FromConfig builds a Context for the configured backend. Nodes are kept in the
// same backend as records.
func FromConfig(ctx context.Context, cfg config.Config) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	var (
		store recordstore.Store
		docs  docstore.Store
	)
	switch cfg.Backend {
	case config.BackendMemory:
		store = memory.New()
		docs = docstore.NewMemory()
	case config.BackendSQLite:
		s, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite record store: %w", err)
		}
		store, docs = s, s.Nodes()
	case config.BackendDynamoDB:
		s, err := ddb.NewDynamodbStore(ctx,
			cfg.DynamoDB.AccessKeyID,
			cfg.DynamoDB.SecretAccessKey,
			cfg.DynamoDB.Region,
			cfg.DynamoDB.Endpoint,
			cfg.DynamoDB.TableName,
			ddb.WithMaxRetries(cfg.DynamoDB.MaxRetries),
			ddb.WithPageSize(cfg.DynamoDB.PageSize),
			ddb.WithLogger(logger),
		)
		if err != nil {
			return nil, err
		}
		store, docs = s, s.Nodes()
	default:
		return nil, errors.NewValidationError("backend", fmt.Sprintf("unsupported backend %q", cfg.Backend))
	}

	logger.Debug("storage context created", "backend", cfg.Backend)
	return New(store, WithDocStore(docs), WithLogger(logger)), nil
}

// FromDefaults builds a Context from config.Load with no config file: the
// environment and an optional .env file select the backend, memory otherwise.
func FromDefaults(ctx context.Context) (*Context, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}
	return FromConfig(ctx, cfg)
}
