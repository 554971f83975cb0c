package field

import (
	"fmt"
	"regexp"
)

// A Type identifies one of the persistable field types. The set is
// closed: a record field outside it cannot be described at all, which
// moves the unsupported-type failure to definition time.
type Type uint8

// List of field types.
const (
	TypeInvalid Type = iota
	TypeUUID
	TypeTime
	TypeString
	TypeDuration
	TypeInt
	TypeFloat
	TypeBool
)

var typeNames = [...]string{
	TypeInvalid:  "invalid",
	TypeUUID:     "uuid",
	TypeTime:     "time",
	TypeString:   "string",
	TypeDuration: "duration",
	TypeInt:      "int",
	TypeFloat:    "float",
	TypeBool:     "bool",
}

// String returns the string representation of a type.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("invalid(%d)", t)
}

// Valid reports if the given type is a valid field type.
func (t Type) Valid() bool {
	return t > TypeInvalid && t <= TypeBool
}

// Numeric reports if the given type is a numeric type.
func (t Type) Numeric() bool {
	return t == TypeInt || t == TypeFloat || t == TypeDuration
}

// validNameRe matches column names acceptable to the SQL generator.
var validNameRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// A Descriptor for a single record field. Descriptors are derived once
// from their builder and never mutated afterwards.
type Descriptor struct {
	Name      string // column and field name
	Type      Type   // semantic field type
	Transient bool   // excluded from persistence
	Comment   string // optional documentation comment
	Err       error  // definition error, surfaced by schema.New
}

// A Builder for a field descriptor. Builders are create-only: each
// constructor fixes the semantic type, and the chainable methods only
// refine the descriptor.
type Builder struct {
	desc *Descriptor
}

func newBuilder(name string, t Type) *Builder {
	d := &Descriptor{Name: name, Type: t}
	if !validNameRe.MatchString(name) {
		d.Err = fmt.Errorf("field: invalid name %q", name)
	}
	return &Builder{desc: d}
}

// UUID returns a new Builder for an identifier field. A record's
// identifier, when present, is a UUID field named "id".
func UUID(name string) *Builder {
	return newBuilder(name, TypeUUID)
}

// Time returns a new Builder for a timestamp field. Timestamps are
// stored without a time zone and read back in UTC.
func Time(name string) *Builder {
	return newBuilder(name, TypeTime)
}

// String returns a new Builder for a text field.
func String(name string) *Builder {
	return newBuilder(name, TypeString)
}

// Duration returns a new Builder for a duration field, stored as a
// whole number of seconds.
func Duration(name string) *Builder {
	return newBuilder(name, TypeDuration)
}

// Int returns a new Builder for an integer field.
func Int(name string) *Builder {
	return newBuilder(name, TypeInt)
}

// Int64 returns a new Builder for an integer field. It is identical to
// Int; both map to the same column type.
func Int64(name string) *Builder {
	return newBuilder(name, TypeInt)
}

// Float returns a new Builder for a floating-point field.
func Float(name string) *Builder {
	return newBuilder(name, TypeFloat)
}

// Bool returns a new Builder for a boolean field.
func Bool(name string) *Builder {
	return newBuilder(name, TypeBool)
}

// Transient marks the field as excluded from persistence. Transient
// fields keep their position in the descriptor list but contribute no
// column and no parameter.
func (b *Builder) Transient() *Builder {
	b.desc.Transient = true
	return b
}

// Comment sets the documentation comment of the field.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// Descriptor returns the descriptor of the field.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}
