/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package recordstore

import (
	"context"

	"github.com/suparena/indexstore/indexstruct"
)

// Reader is the read side of a record store and all that index loading consumes.
type Reader interface {
	// Get returns the record with the given id, or an error matching errors.ErrNotFound.
	Get(ctx context.Context, indexID string) (*indexstruct.Record, error)

	// All returns every record in store-defined order.
	All(ctx context.Context) ([]*indexstruct.Record, error)
}

// Store is a Reader that can also persist records.
type Store interface {
	Reader

	// Put inserts or replaces the record keyed by its IndexID.
	Put(ctx context.Context, record *indexstruct.Record) error

	Delete(ctx context.Context, indexID string) error
}

// RecordType is the entity type name stores use in not-found errors.
const RecordType = "IndexStruct"
