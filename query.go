package recs

import (
	"context"
	"fmt"
)

// Query executes arbitrary SQL text with positional arguments and
// parses every returned row as T. Columns are matched to fields by
// name, case-insensitively; extra columns are ignored and missing ones
// leave fields at their defaults.
//
//	people, err := recs.Query[Person](ctx, client,
//	    "SELECT * FROM persons WHERE name = $1", "Minnie Mouse")
func Query[T any, PT RecordPtr[T]](ctx context.Context, q Querier, query string, args ...any) (out []*T, err error) {
	rows, err := q.query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	for rows.Next() {
		rec := PT(new(T))
		if err := scanRecord(rows, rec); err != nil {
			return nil, err
		}
		out = append(out, (*T)(rec))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Scalars executes SQL text returning a single column and decodes it
// directly into T, bypassing field matching.
//
//	names, err := recs.Scalars[string](ctx, client,
//	    "SELECT name FROM persons ORDER BY name")
func Scalars[T any](ctx context.Context, q Querier, query string, args ...any) (out []T, err error) {
	rows, err := q.query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	if len(cols) != 1 {
		return nil, fmt.Errorf("recs: scalar query returned %d columns", len(cols))
	}
	for rows.Next() {
		var v T
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
