package recs

import (
	"context"

	"github.com/google/uuid"

	dsql "github.com/go-recs/recs/dialect/sql"
)

// RecordPtr constrains PT to a pointer to T implementing Record. It
// lets Get and Query allocate records without reflection.
type RecordPtr[T any] interface {
	*T
	Record
}

// Get fetches the record of type T with the given identifier. It
// returns a NotFoundError (matchable with IsNotFound) when no row
// exists. When the client carries a cache, the cache is consulted
// first and populated on a hit from the database.
func Get[T any, PT RecordPtr[T]](ctx context.Context, q Querier, id uuid.UUID) (out *T, err error) {
	rec := PT(new(T))
	s := rec.Schema()
	if err := s.Err(); err != nil {
		return nil, err
	}
	c := q.client()
	key := recordKey(s, id)
	if c.cacheLoad(ctx, key, rec) {
		return (*T)(rec), nil
	}
	text, err := dsql.SelectSQL(s)
	if err != nil {
		return nil, err
	}
	rows, err := q.query(ctx, text, []any{id.String()})
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if !rows.Next() {
		if rerr := rows.Err(); rerr != nil {
			return nil, rerr
		}
		return nil, NewNotFoundErrorWithID(s.Name(), id)
	}
	if err := scanRecord(rows, rec); err != nil {
		return nil, err
	}
	c.cacheStore(ctx, key, rec)
	return (*T)(rec), nil
}
