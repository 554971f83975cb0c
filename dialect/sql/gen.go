package sql

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-recs/recs/schema"
	"github.com/go-recs/recs/schema/field"
)

// ErrNoIdentifier is returned when an operation that addresses rows by
// identifier is generated for a schema without an "id" field.
var ErrNoIdentifier = errors.New("dialect/sql: schema has no identifier field")

// ConflictPolicy selects the INSERT behavior on a uniqueness violation.
type ConflictPolicy uint8

const (
	// ConflictError appends no conflict clause; the database reports
	// the violation as an execution error.
	ConflictError ConflictPolicy = iota
	// ConflictNothing appends ON CONFLICT DO NOTHING.
	ConflictNothing
	// ConflictUpdate appends ON CONFLICT DO UPDATE, verbatim and with
	// no conflict target or update list. Callers needing finer control
	// write the statement themselves.
	ConflictUpdate
)

// String returns the conflict clause suffix for the policy.
func (p ConflictPolicy) String() string {
	switch p {
	case ConflictNothing:
		return " ON CONFLICT DO NOTHING"
	case ConflictUpdate:
		return " ON CONFLICT DO UPDATE"
	default:
		return ""
	}
}

// Generated statements are pure functions of (schema, operation, policy),
// so each is rendered once and memoized for the life of the process.
type stmtKey struct {
	s      *schema.Schema
	op     uint8
	policy ConflictPolicy
}

const (
	opInsert uint8 = iota
	opUpdate
	opDelete
	opSelect
)

var stmtCache sync.Map // stmtKey -> string

func cached(key stmtKey, render func() (string, error)) (string, error) {
	if v, ok := stmtCache.Load(key); ok {
		return v.(string), nil
	}
	text, err := render()
	if err != nil {
		return "", err
	}
	stmtCache.Store(key, text)
	return text, nil
}

// cast returns the placeholder cast suffix for a column type. Identifier
// columns are cast to uuid, timestamp columns to the timezone-less
// timestamp type; everything else binds untyped.
func cast(t field.Type) string {
	switch t {
	case field.TypeUUID:
		return "::uuid"
	case field.TypeTime:
		return "::timestamp"
	default:
		return ""
	}
}

// InsertSQL renders the INSERT statement for the schema. Columns follow
// descriptor order, placeholders are numbered contiguously from $1, and
// the conflict clause of the policy is appended verbatim.
func InsertSQL(s *schema.Schema, policy ConflictPolicy) (string, error) {
	if err := s.Err(); err != nil {
		return "", err
	}
	return cached(stmtKey{s, opInsert, policy}, func() (string, error) {
		cols := s.Columns()
		if len(cols) == 0 {
			return "", fmt.Errorf("dialect/sql: schema %s has no columns", s.Name())
		}
		var names, params []string
		for i, fd := range cols {
			names = append(names, fd.Name)
			params = append(params, fmt.Sprintf("$%d%s", i+1, cast(fd.Type)))
		}
		text := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)%s",
			s.TableName(),
			strings.Join(names, ", "),
			strings.Join(params, ", "),
			policy,
		)
		return text, nil
	})
}

// UpdateSQL renders the UPDATE statement for the schema. Every column,
// the identifier included, appears in the SET list; the WHERE clause
// binds the identifier as the final placeholder.
func UpdateSQL(s *schema.Schema) (string, error) {
	if err := s.Err(); err != nil {
		return "", err
	}
	return cached(stmtKey{s: s, op: opUpdate}, func() (string, error) {
		if s.ID() == nil {
			return "", ErrNoIdentifier
		}
		cols := s.Columns()
		var sets []string
		for i, fd := range cols {
			sets = append(sets, fmt.Sprintf("%s = $%d%s", fd.Name, i+1, cast(fd.Type)))
		}
		text := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d::uuid",
			s.TableName(),
			strings.Join(sets, ", "),
			len(cols)+1,
		)
		return text, nil
	})
}

// DeleteSQL renders the DELETE-by-identifier statement for the schema.
func DeleteSQL(s *schema.Schema) (string, error) {
	if err := s.Err(); err != nil {
		return "", err
	}
	return cached(stmtKey{s: s, op: opDelete}, func() (string, error) {
		if s.ID() == nil {
			return "", ErrNoIdentifier
		}
		return fmt.Sprintf("DELETE FROM %s WHERE id = $1::uuid", s.TableName()), nil
	})
}

// SelectSQL renders the SELECT-by-identifier statement for the schema.
func SelectSQL(s *schema.Schema) (string, error) {
	if err := s.Err(); err != nil {
		return "", err
	}
	return cached(stmtKey{s: s, op: opSelect}, func() (string, error) {
		if s.ID() == nil {
			return "", ErrNoIdentifier
		}
		return fmt.Sprintf("SELECT * FROM %s WHERE id = $1::uuid", s.TableName()), nil
	})
}
