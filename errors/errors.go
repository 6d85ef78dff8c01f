/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when an index struct is not found in a record store
	ErrNotFound = errors.New("index struct not found")

	// ErrUnknownType is returned when a record's type has no registered constructor
	ErrUnknownType = errors.New("unknown index struct type")

	// ErrEmptyResult is returned when a single-index load resolves nothing
	ErrEmptyResult = errors.New("no index in storage context, check that the storage location is correct")

	// ErrAmbiguousResult is returned when a single-index load resolves more than one index
	ErrAmbiguousResult = errors.New("ambiguous index load")

	// ErrRootNotFound is returned when a graph root is not one of its indices
	ErrRootNotFound = errors.New("graph root not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// NotFoundError represents an error when an index struct is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// UnknownTypeError is returned when the registry has no constructor for a record's type.
type UnknownTypeError struct {
	Type    string
	IndexID string
}

func (e *UnknownTypeError) Error() string {
	if e.IndexID != "" {
		return fmt.Sprintf("unknown index struct type %q for index %q", e.Type, e.IndexID)
	}
	return fmt.Sprintf("unknown index struct type %q", e.Type)
}

func (e *UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownType
}

// AmbiguousResultError reports how many indices a single-index load found.
type AmbiguousResultError struct {
	Count int
}

func (e *AmbiguousResultError) Error() string {
	return fmt.Sprintf("expected to load a single index, but got %d instead; specify an index id", e.Count)
}

func (e *AmbiguousResultError) Is(target error) bool {
	return target == ErrAmbiguousResult
}

// RootNotFoundError represents a graph whose root id is not among its indices
type RootNotFoundError struct {
	RootID string
}

func (e *RootNotFoundError) Error() string {
	return fmt.Sprintf("graph root %q is not a loaded index", e.RootID)
}

func (e *RootNotFoundError) Is(target error) bool {
	return target == ErrRootNotFound
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewUnknownTypeError creates a new UnknownTypeError
func NewUnknownTypeError(typ, indexID string) error {
	return &UnknownTypeError{Type: typ, IndexID: indexID}
}

// NewAmbiguousResultError creates a new AmbiguousResultError
func NewAmbiguousResultError(count int) error {
	return &AmbiguousResultError{Count: count}
}

// NewRootNotFoundError creates a new RootNotFoundError
func NewRootNotFoundError(rootID string) error {
	return &RootNotFoundError{RootID: rootID}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnknownType checks if an error is an unknown type error
func IsUnknownType(err error) bool {
	return errors.Is(err, ErrUnknownType)
}

// IsEmptyResult checks if an error is an empty result error
func IsEmptyResult(err error) bool {
	return errors.Is(err, ErrEmptyResult)
}

// IsAmbiguousResult checks if an error is an ambiguous result error
func IsAmbiguousResult(err error) bool {
	return errors.Is(err, ErrAmbiguousResult)
}

// IsRootNotFound checks if an error is a root not found error
func IsRootNotFound(err error) bool {
	return errors.Is(err, ErrRootNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
