package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-recs/recs/schema"
	"github.com/go-recs/recs/schema/field"
)

func TestNew(t *testing.T) {
	t.Parallel()

	s := schema.New("Person",
		field.UUID("id"),
		field.String("name"),
		field.Time("birthday"),
		field.String("nickname").Transient(),
	)
	require.NoError(t, s.Err())
	assert.Equal(t, "Person", s.Name())
	assert.Equal(t, "persons", s.TableName())
	assert.Len(t, s.Fields(), 4)
	assert.Len(t, s.Columns(), 3, "transient fields are not columns")
	require.NotNil(t, s.ID())
	assert.Equal(t, "id", s.ID().Name)
}

func TestTableOverrides(t *testing.T) {
	t.Parallel()

	s := schema.New("Person", field.UUID("id")).Table("staff")
	assert.Equal(t, "staff", s.TableName())

	// Rails-style inflection handles the irregular plural.
	s = schema.New("Person", field.UUID("id")).Tableize()
	assert.Equal(t, "people", s.TableName())

	s = schema.New("Category", field.UUID("id")).Tableize()
	assert.Equal(t, "categories", s.TableName())
}

func TestNoIdentifier(t *testing.T) {
	t.Parallel()

	// A non-UUID "id" field is not an identifier.
	s := schema.New("Counter", field.Int64("id"), field.String("name"))
	require.NoError(t, s.Err())
	assert.Nil(t, s.ID())

	// Neither is a transient UUID one.
	s = schema.New("Ghost", field.UUID("id").Transient())
	require.NoError(t, s.Err())
	assert.Nil(t, s.ID())
}

func TestErr(t *testing.T) {
	t.Parallel()

	assert.Error(t, schema.New("", field.UUID("id")).Err())
	assert.Error(t, schema.New("Person", field.String("bad name")).Err())
	assert.Error(t, schema.New("Person", field.UUID("id"), field.String("id")).Err(),
		"duplicate field names are rejected")
}

func TestColumn(t *testing.T) {
	t.Parallel()

	s := schema.New("Person",
		field.UUID("id"),
		field.String("name"),
		field.String("nickname").Transient(),
	)
	require.NotNil(t, s.Column("name"))
	assert.Equal(t, "name", s.Column("NAME").Name, "matching is case-insensitive")
	assert.Equal(t, "id", s.Column("Id").Name)
	assert.Nil(t, s.Column("unknown"))
	assert.Nil(t, s.Column("nickname"), "transient fields never match columns")
}
