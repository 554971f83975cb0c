// Package schema derives per-type metadata for persistable records.
//
// A Schema is built once from an ordered list of field builders (see the
// [field] subpackage) and shared between every operation on the type. It
// fixes the column order the SQL generator and the value marshaller both
// rely on, resolves the identifier field, and derives the table name.
//
// # Table Naming
//
// The default convention appends "s" to the lowercased type name:
// "Person" maps to "persons", "Status" to "statuss". The convention is
// deliberately naive — it is part of the wire format of existing tables.
// Two override hooks exist:
//
//	schema.New("Person", ...).Table("people")  // explicit name
//	schema.New("Person", ...).Tableize()       // inflected: "people"
package schema
