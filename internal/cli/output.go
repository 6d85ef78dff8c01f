/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	storeerrors "github.com/suparena/indexstore/errors"
	"github.com/suparena/indexstore/index"
	"github.com/suparena/indexstore/indexstruct"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Storage holds no usable answer (empty, ambiguous, missing root)
	ExitCommandError = 2 // Command error (bad config, unreachable backend, etc.)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// loadError classifies a loader error into an exit code.
func loadError(message string, err error) *ExitError {
	switch {
	case storeerrors.IsEmptyResult(err),
		storeerrors.IsAmbiguousResult(err),
		storeerrors.IsRootNotFound(err),
		storeerrors.IsNotFound(err):
		return WrapExitError(ExitFailure, message, err)
	default:
		return WrapExitError(ExitCommandError, message, err)
	}
}

// IndexSummary is the printed form of a live index.
type IndexSummary struct {
	IndexID string           `json:"index_id"`
	Type    indexstruct.Type `json:"type"`
	Summary string           `json:"summary,omitempty"`
	NodeIDs []string         `json:"node_ids"`
}

func summarize(idx index.Index) IndexSummary {
	nodeIDs := idx.NodeIDs()
	if nodeIDs == nil {
		nodeIDs = []string{}
	}
	return IndexSummary{
		IndexID: idx.IndexID(),
		Type:    idx.Type(),
		Summary: idx.Summary(),
		NodeIDs: nodeIDs,
	}
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
