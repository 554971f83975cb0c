package schema

import (
	"fmt"
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/go-recs/recs/schema/field"
)

// IDField is the name of the identifier field every persistable type is
// expected to carry (when it has one at all).
const IDField = "id"

// A Schema holds the derived metadata of one record type: its ordered
// field descriptors, identifier, and table name. Build one per type,
// once, and share it between all operations:
//
//	var personSchema = schema.New("Person",
//	    field.UUID("id"),
//	    field.String("name"),
//	    field.Time("birthday"),
//	)
//
// Schemas are immutable after the construction chain completes.
type Schema struct {
	name   string
	table  string
	fields []*field.Descriptor // declaration order, transient included
	cols   []*field.Descriptor // declaration order, transient excluded
	id     *field.Descriptor
	err    error
}

// New derives a Schema from the given type name and field builders. The
// default table name is the lowercased type name with an "s" appended;
// no irregular-plural handling is applied, so "Person" maps to
// "persons". Use Table or Tableize to override.
func New(name string, fields ...*field.Builder) *Schema {
	s := &Schema{
		name:  name,
		table: strings.ToLower(name) + "s",
	}
	if name == "" {
		s.err = fmt.Errorf("schema: empty type name")
	}
	seen := make(map[string]struct{}, len(fields))
	for _, fb := range fields {
		fd := fb.Descriptor()
		if s.err == nil && fd.Err != nil {
			s.err = fmt.Errorf("schema: %s: %w", name, fd.Err)
		}
		if _, dup := seen[fd.Name]; dup && s.err == nil {
			s.err = fmt.Errorf("schema: %s: duplicate field %q", name, fd.Name)
		}
		seen[fd.Name] = struct{}{}
		s.fields = append(s.fields, fd)
		if fd.Transient {
			continue
		}
		s.cols = append(s.cols, fd)
		if fd.Name == IDField && fd.Type == field.TypeUUID {
			s.id = fd
		}
	}
	return s
}

// Table overrides the table name.
func (s *Schema) Table(name string) *Schema {
	s.table = name
	return s
}

// Tableize derives the table name with rails-style inflection instead
// of the naive default ("Person" maps to "people"). Tables created with
// the default convention are not compatible with this namer.
func (s *Schema) Tableize() *Schema {
	s.table = inflect.Tableize(s.name)
	return s
}

// Name returns the record type name.
func (s *Schema) Name() string { return s.name }

// TableName returns the table the record type maps to.
func (s *Schema) TableName() string { return s.table }

// Fields returns all field descriptors in declaration order, transient
// fields included. The returned slice must not be modified.
func (s *Schema) Fields() []*field.Descriptor { return s.fields }

// Columns returns the non-transient field descriptors in declaration
// order. This order defines both the generated column list and the
// positional parameter numbering.
func (s *Schema) Columns() []*field.Descriptor { return s.cols }

// ID returns the identifier descriptor, or nil if the record type has
// no UUID field named "id".
func (s *Schema) ID() *field.Descriptor { return s.id }

// Err returns the first definition error found while deriving the
// schema, if any.
func (s *Schema) Err() error { return s.err }

// Column returns the descriptor whose name matches the given column
// under case-insensitive comparison, or nil.
func (s *Schema) Column(name string) *field.Descriptor {
	for _, fd := range s.cols {
		if strings.EqualFold(fd.Name, name) {
			return fd
		}
	}
	return nil
}
