/*
Package recordstore defines the interfaces for persisting structural index records.

Index loading only needs the read side:

	type Reader interface {
	    Get(ctx context.Context, indexID string) (*indexstruct.Record, error)
	    All(ctx context.Context) ([]*indexstruct.Record, error)
	}

Implementations:
  - memory: In-memory store preserving insertion order, with error injection for tests
  - ddb: DynamoDB single-table implementation
  - sqlite: SQLite implementation for local persistence

Get must return an error satisfying errors.Is(err, errors.ErrNotFound) when the id is
absent so callers can tell a missing index from a backend failure.
*/
package recordstore
