/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package indexstruct

import (
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"
	json "github.com/goccy/go-json"

	"github.com/suparena/indexstore/errors"
)

// Type is the discriminator identifying which index variant a record encodes.
type Type string

const (
	TypeTree         Type = "tree"
	TypeList         Type = "list"
	TypeKeywordTable Type = "keyword_table"
	TypeVectorStore  Type = "vector_store"
	TypeKG           Type = "kg"
	TypeEmpty        Type = "empty"
)

var allTypes = []Type{TypeTree, TypeList, TypeKeywordTable, TypeVectorStore, TypeKG, TypeEmpty}

// Types returns every known discriminator.
func Types() []Type {
	out := make([]Type, len(allTypes))
	copy(out, allTypes)
	return out
}

// Valid reports whether t is one of the known discriminators.
func (t Type) Valid() bool {
	for _, known := range allTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (t Type) String() string { return string(t) }

// Record is the persisted description of one index.
type Record struct {
	// IndexID is unique within a record store.
	IndexID string `json:"index_id"`
	// Type selects the constructor used to revive the record.
	Type Type `json:"type"`
	// Summary is an optional human readable description of the index.
	Summary string `json:"summary,omitempty"`
	// CreatedAt is set by NewRecord.
	CreatedAt strfmt.DateTime `json:"created_at"`
	// Data is the JSON-encoded variant payload.
	Data json.RawMessage `json:"data,omitempty"`
}

// NewRecord encodes payload into a record with the payload's type.
func NewRecord(indexID string, payload Payload) (*Record, error) {
	if payload == nil {
		return nil, errors.NewValidationError("payload", "must not be nil")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", payload.Type(), err)
	}
	return &Record{
		IndexID:   indexID,
		Type:      payload.Type(),
		CreatedAt: strfmt.DateTime(time.Now().UTC()),
		Data:      data,
	}, nil
}

// Decode unmarshals the record payload into v.
// An empty payload leaves v untouched.
func (r *Record) Decode(v any) error {
	if len(r.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("failed to decode %s payload of index %q: %w", r.Type, r.IndexID, err)
	}
	return nil
}

// Validate checks the fields every store relies on.
// An unknown type is not a validation failure; stores persist it and revival rejects it.
func (r *Record) Validate() error {
	if r == nil {
		return errors.NewValidationError("", "record is nil")
	}
	if r.IndexID == "" {
		return errors.NewValidationError("index_id", "must not be empty")
	}
	if r.Type == "" {
		return errors.NewValidationError("type", "must not be empty")
	}
	return nil
}

// Clone returns a deep copy so stores never share payload bytes with callers.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := *r
	if r.Data != nil {
		c.Data = append(json.RawMessage(nil), r.Data...)
	}
	return &c
}
