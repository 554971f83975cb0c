package recs

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/go-recs/recs/schema/field"
)

// Values marshals a record into the ordered parameter slice matching
// the generated placeholder order: one value per non-transient field,
// in declaration order. With withID set, the identifier's text form is
// appended as the final parameter (the UPDATE trailing id); a record
// type without an identifier field is a ConfigurationError then.
func Values(rec Record, withID bool) ([]any, error) {
	s := rec.Schema()
	if err := s.Err(); err != nil {
		return nil, err
	}
	fields, vals := s.Fields(), rec.Values()
	if len(fields) != len(vals) {
		return nil, NewConfigurationError("%s: Values returned %d values for %d fields",
			s.Name(), len(vals), len(fields))
	}
	out := make([]any, 0, len(s.Columns())+1)
	for i, fd := range fields {
		if fd.Transient {
			continue
		}
		out = append(out, encodeValue(fd, vals[i]))
	}
	if withID {
		id, err := recordID(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, id.String())
	}
	return out, nil
}

// encodeValue converts one field value to its query-parameter form.
func encodeValue(fd *field.Descriptor, v any) any {
	switch fd.Type {
	case field.TypeUUID:
		if u, ok := v.(uuid.UUID); ok {
			return u.String()
		}
	case field.TypeTime:
		if t, ok := v.(time.Time); ok {
			// A zero timestamp still binds a parameter, as SQL NULL, so
			// the placeholder count always matches the generated text.
			if t.IsZero() {
				return nil
			}
			return t.UTC().Format(time.RFC3339Nano)
		}
	case field.TypeDuration:
		if d, ok := v.(time.Duration); ok {
			return int64(d / time.Second)
		}
	case field.TypeString:
		if s, ok := v.(string); ok {
			return s
		}
	case field.TypeInt, field.TypeFloat, field.TypeBool:
		switch v.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
			return v
		}
	}
	return fmt.Sprint(v)
}

// recordID reads the identifier value of a record. Returns a
// ConfigurationError if the record type has no identifier field, or if
// the value at the identifier position is not a uuid.UUID.
func recordID(rec Record) (uuid.UUID, error) {
	s := rec.Schema()
	if s.ID() == nil {
		return uuid.Nil, NewConfigurationError("%s has no identifier field", s.Name())
	}
	vals := rec.Values()
	for i, fd := range s.Fields() {
		if fd != s.ID() {
			continue
		}
		if i >= len(vals) {
			break
		}
		u, ok := vals[i].(uuid.UUID)
		if !ok {
			return uuid.Nil, NewConfigurationError("%s: identifier value is %T, not uuid.UUID",
				s.Name(), vals[i])
		}
		return u, nil
	}
	return uuid.Nil, NewConfigurationError("%s: identifier value missing from Values", s.Name())
}

// setRecordID assigns a new identifier to the record.
func setRecordID(rec Record, id uuid.UUID) error {
	s := rec.Schema()
	if s.ID() == nil {
		return NewConfigurationError("%s has no identifier field", s.Name())
	}
	return rec.Assign(s.ID().Name, id)
}
