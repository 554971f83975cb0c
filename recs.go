// Package recs maps flat record types to PostgreSQL tables.
//
// A record type declares its persistable shape once, as a schema of
// field descriptors, and implements the small Record interface — by hand
// or with the recsgen generator. The client then provides insert,
// update, save, delete, fetch and raw-query operations over a pooled
// connection:
//
//	var personSchema = schema.New("Person",
//	    field.UUID("id"),
//	    field.String("name"),
//	    field.Time("birthday"),
//	)
//
//	client, err := recs.Open("postgres://localhost/app")
//	...
//	p := &Person{Name: "Minnie Mouse", Birthday: bday}
//	err = client.Insert(ctx, p)
//	got, err := recs.Get[Person](ctx, client, p.ID)
//
// Every operation is also available on an explicitly leased connection
// (see Client.Conn and Client.WithConn).
package recs

import (
	"github.com/go-recs/recs/dialect/sql"
	"github.com/go-recs/recs/schema"
)

// A Record is a value of a persistable type. Implementations are plain
// structs with one method set per type; the recsgen tool generates them
// from a definition file.
type Record interface {
	// Schema returns the shared, immutable schema of the record type.
	Schema() *Schema

	// Values returns the current field values in schema declaration
	// order, one entry per descriptor, transient fields included.
	Values() []any

	// Assign sets the named field to the given decoded value. The value
	// carries the Go type of the field's semantic type: uuid.UUID,
	// time.Time, time.Duration, string, int64, float64 or bool.
	// Assigning an unknown field name or a mismatched value type is an
	// error, not a panic.
	Assign(name string, value any) error
}

type (
	// Schema is an alias to schema.Schema.
	Schema = schema.Schema
	// ConflictPolicy is an alias to sql.ConflictPolicy.
	ConflictPolicy = sql.ConflictPolicy
)

// Conflict policies for Insert, re-exported from dialect/sql.
const (
	ConflictError   = sql.ConflictError
	ConflictNothing = sql.ConflictNothing
	ConflictUpdate  = sql.ConflictUpdate
)
