package recs

import (
	"context"

	dsql "github.com/go-recs/recs/dialect/sql"
)

// Exec executes a statement that returns no rows (INSERT, UPDATE,
// DELETE with custom text). The database error, if any, is surfaced
// unmodified; there are no retries.
func Exec(ctx context.Context, q Querier, query string, args ...any) (dsql.Result, error) {
	return q.exec(ctx, query, args)
}
