package recs

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	dsql "github.com/go-recs/recs/dialect/sql"
	"github.com/go-recs/recs/schema/field"
)

// scanRecord parses the current row into the record. Columns are
// matched to fields by name, case-insensitively; unmatched columns are
// discarded, unmatched fields keep their defaults, and NULL values
// leave the field at its default without any further decoding.
func scanRecord(rows *dsql.Rows, rec Record) error {
	s := rec.Schema()
	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	matched := make([]*field.Descriptor, len(cols))
	dests := make([]any, len(cols))
	for i, col := range cols {
		fd := s.Column(col)
		matched[i] = fd
		if fd == nil {
			dests[i] = new(any)
			continue
		}
		switch fd.Type {
		case field.TypeUUID, field.TypeString:
			dests[i] = new(dsql.NullString)
		case field.TypeTime:
			dests[i] = new(dsql.NullTime)
		case field.TypeDuration, field.TypeInt:
			dests[i] = new(dsql.NullInt64)
		case field.TypeFloat:
			dests[i] = new(dsql.NullFloat64)
		case field.TypeBool:
			dests[i] = new(dsql.NullBool)
		default:
			dests[i] = new(any)
		}
	}
	if err := rows.Scan(dests...); err != nil {
		return err
	}
	for i, fd := range matched {
		if fd == nil {
			continue
		}
		v, ok, err := decodeValue(fd, dests[i])
		if err != nil {
			return fmt.Errorf("recs: %s.%s: %w", s.Name(), fd.Name, err)
		}
		if !ok { // NULL column
			continue
		}
		if err := rec.Assign(fd.Name, v); err != nil {
			return err
		}
	}
	return nil
}

// decodeValue converts a scanned nullable holder into the field's Go
// value. The second return value is false for NULL.
func decodeValue(fd *field.Descriptor, dest any) (any, bool, error) {
	switch fd.Type {
	case field.TypeUUID:
		ns := dest.(*dsql.NullString)
		if !ns.Valid {
			return nil, false, nil
		}
		u, err := uuid.Parse(ns.String)
		if err != nil {
			return nil, false, err
		}
		return u, true, nil
	case field.TypeTime:
		nt := dest.(*dsql.NullTime)
		if !nt.Valid {
			return nil, false, nil
		}
		// The column is a timezone-less timestamp; reinterpret the wall
		// clock in UTC regardless of the zone the driver attached.
		t := nt.Time
		t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
		return t, true, nil
	case field.TypeString:
		ns := dest.(*dsql.NullString)
		if !ns.Valid {
			return nil, false, nil
		}
		return ns.String, true, nil
	case field.TypeDuration:
		ni := dest.(*dsql.NullInt64)
		if !ni.Valid {
			return nil, false, nil
		}
		return time.Duration(ni.Int64) * time.Second, true, nil
	case field.TypeInt:
		ni := dest.(*dsql.NullInt64)
		if !ni.Valid {
			return nil, false, nil
		}
		return ni.Int64, true, nil
	case field.TypeFloat:
		nf := dest.(*dsql.NullFloat64)
		if !nf.Valid {
			return nil, false, nil
		}
		return nf.Float64, true, nil
	case field.TypeBool:
		nb := dest.(*dsql.NullBool)
		if !nb.Valid {
			return nil, false, nil
		}
		return nb.Bool, true, nil
	}
	return nil, false, fmt.Errorf("undecodable field type %s", fd.Type)
}
