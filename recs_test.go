package recs_test

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/go-recs/recs"
	"github.com/go-recs/recs/schema"
	"github.com/go-recs/recs/schema/field"
)

// Person is the hand-written record used across the package tests.
// Generated records are interchangeable with it.
type Person struct {
	ID       uuid.UUID
	Name     string
	Birthday time.Time
}

var personSchema = schema.New("Person",
	field.UUID("id"),
	field.String("name"),
	field.Time("birthday"),
)

func (*Person) Schema() *schema.Schema { return personSchema }

func (p *Person) Values() []any {
	return []any{p.ID, p.Name, p.Birthday}
}

func (p *Person) Assign(name string, value any) error {
	switch name {
	case "id":
		p.ID = value.(uuid.UUID)
	case "name":
		p.Name = value.(string)
	case "birthday":
		p.Birthday = value.(time.Time)
	default:
		return fmt.Errorf("Person has no field %q", name)
	}
	return nil
}

// Widget exercises every persistable type plus a transient field.
type Widget struct {
	ID       uuid.UUID
	Label    string
	Lifetime time.Duration
	Count    int64
	Weight   float64
	Active   bool
	Made     time.Time
	Note     string `msgpack:"-"`
}

var widgetSchema = schema.New("Widget",
	field.UUID("id"),
	field.String("label"),
	field.Duration("lifetime"),
	field.Int64("count"),
	field.Float("weight"),
	field.Bool("active"),
	field.Time("made"),
	field.String("note").Transient(),
)

func (*Widget) Schema() *schema.Schema { return widgetSchema }

func (w *Widget) Values() []any {
	return []any{w.ID, w.Label, w.Lifetime, w.Count, w.Weight, w.Active, w.Made, w.Note}
}

func (w *Widget) Assign(name string, value any) error {
	switch name {
	case "id":
		w.ID = value.(uuid.UUID)
	case "label":
		w.Label = value.(string)
	case "lifetime":
		w.Lifetime = value.(time.Duration)
	case "count":
		w.Count = value.(int64)
	case "weight":
		w.Weight = value.(float64)
	case "active":
		w.Active = value.(bool)
	case "made":
		w.Made = value.(time.Time)
	case "note":
		w.Note = value.(string)
	default:
		return fmt.Errorf("Widget has no field %q", name)
	}
	return nil
}

// Tag has no identifier field.
type Tag struct {
	Word string
}

var tagSchema = schema.New("Tag", field.String("word"))

func (*Tag) Schema() *schema.Schema { return tagSchema }

func (t *Tag) Values() []any { return []any{t.Word} }

func (t *Tag) Assign(name string, value any) error {
	if name != "word" {
		return fmt.Errorf("Tag has no field %q", name)
	}
	t.Word = value.(string)
	return nil
}

var (
	_ recs.Record = (*Person)(nil)
	_ recs.Record = (*Widget)(nil)
	_ recs.Record = (*Tag)(nil)
)
