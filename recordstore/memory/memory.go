/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package memory provides an in-memory record store that preserves insertion order
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/suparena/indexstore/errors"
	"github.com/suparena/indexstore/indexstruct"
	"github.com/suparena/indexstore/recordstore"
)

// Store is an in-memory implementation of recordstore.Store
type Store struct {
	mu          sync.RWMutex
	data        map[string]*indexstruct.Record
	order       []string
	getError    error
	allError    error
	putError    error
	deleteError error
}

var _ recordstore.Store = (*Store)(nil)

// New creates a new empty Store
func New() *Store {
	return &Store{
		data: make(map[string]*indexstruct.Record),
	}
}

// WithRecords seeds the store in the given order
func (m *Store) WithRecords(records ...*indexstruct.Record) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range records {
		m.put(rec.Clone())
	}
	return m
}

// WithGetError makes Get operations return an error
func (m *Store) WithGetError(err error) *Store {
	m.getError = err
	return m
}

// WithAllError makes All operations return an error
func (m *Store) WithAllError(err error) *Store {
	m.allError = err
	return m
}

// WithPutError makes Put operations return an error
func (m *Store) WithPutError(err error) *Store {
	m.putError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *Store) WithDeleteError(err error) *Store {
	m.deleteError = err
	return m
}

// Get retrieves a record by index id
func (m *Store) Get(ctx context.Context, indexID string) (*indexstruct.Record, error) {
	if m.getError != nil {
		return nil, m.getError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if rec, exists := m.data[indexID]; exists {
		return rec.Clone(), nil
	}
	return nil, errors.NewNotFoundError(recordstore.RecordType, indexID)
}

// All returns every record in insertion order
func (m *Store) All(ctx context.Context) ([]*indexstruct.Record, error) {
	if m.allError != nil {
		return nil, m.allError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make([]*indexstruct.Record, 0, len(m.order))
	for _, id := range m.order {
		results = append(results, m.data[id].Clone())
	}
	return results, nil
}

// Put stores a record. A record without an id is assigned a random one.
// Replacing an existing record keeps its original position.
func (m *Store) Put(ctx context.Context, record *indexstruct.Record) error {
	if m.putError != nil {
		return m.putError
	}
	if record == nil {
		return errors.NewValidationError("", "record is nil")
	}
	if record.IndexID == "" {
		record.IndexID = uuid.NewString()
	}
	if err := record.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(record.Clone())
	return nil
}

// Delete removes a record by index id
func (m *Store) Delete(ctx context.Context, indexID string) error {
	if m.deleteError != nil {
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[indexID]; !exists {
		return errors.NewNotFoundError(recordstore.RecordType, indexID)
	}

	delete(m.data, indexID)
	for i, id := range m.order {
		if id == indexID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Helper methods for testing

// Count returns the number of stored records
func (m *Store) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Clear removes all records
func (m *Store) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]*indexstruct.Record)
	m.order = nil
}

// put must be called with the write lock held.
func (m *Store) put(rec *indexstruct.Record) {
	if _, exists := m.data[rec.IndexID]; !exists {
		m.order = append(m.order, rec.IndexID)
	}
	m.data[rec.IndexID] = rec
}
