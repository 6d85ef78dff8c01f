/*
Package errors provides semantic error types for the indexstore library.

The package defines the failure modes of loading indices with specific types that can
be checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound        = errors.New("index struct not found")
	    ErrUnknownType     = errors.New("unknown index struct type")
	    ErrEmptyResult     = errors.New("no index in storage context, ...")
	    ErrAmbiguousResult = errors.New("ambiguous index load")
	    ErrRootNotFound    = errors.New("graph root not found")
	    ErrInvalidInput    = errors.New("invalid input")
	)

Usage:

	idx, err := indexstore.LoadIndexFromStorage(ctx, sc, "")
	if err != nil {
	    var ambiguous *errors.AmbiguousResultError
	    if stderrors.As(err, &ambiguous) {
	        // ambiguous.Count indices are persisted; pass an id
	    }
	    if errors.IsEmptyResult(err) {
	        // nothing persisted at this location
	    }
	    return nil, err
	}

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
