package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-recs/recs/schema/field"
)

func TestBuilders(t *testing.T) {
	t.Parallel()

	fd := field.UUID("id").Descriptor()
	assert.Equal(t, "id", fd.Name)
	assert.Equal(t, field.TypeUUID, fd.Type)
	assert.False(t, fd.Transient)
	require.NoError(t, fd.Err)

	fd = field.Time("birthday").Descriptor()
	assert.Equal(t, field.TypeTime, fd.Type)

	fd = field.String("name").Comment("display name").Descriptor()
	assert.Equal(t, field.TypeString, fd.Type)
	assert.Equal(t, "display name", fd.Comment)

	fd = field.Duration("tenure").Descriptor()
	assert.Equal(t, field.TypeDuration, fd.Type)

	assert.Equal(t, field.TypeInt, field.Int("visits").Descriptor().Type)
	assert.Equal(t, field.TypeInt, field.Int64("visits").Descriptor().Type)
	assert.Equal(t, field.TypeFloat, field.Float("score").Descriptor().Type)
	assert.Equal(t, field.TypeBool, field.Bool("active").Descriptor().Type)
}

func TestTransient(t *testing.T) {
	t.Parallel()

	fd := field.String("password").Transient().Descriptor()
	assert.True(t, fd.Transient)
	require.NoError(t, fd.Err)
}

func TestInvalidName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "1st", "with space", "semi;colon", `quo"te`} {
		fd := field.String(name).Descriptor()
		assert.Error(t, fd.Err, "name %q should be rejected", name)
	}
	assert.NoError(t, field.String("snake_case_2").Descriptor().Err)
}

func TestTypeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "uuid", field.TypeUUID.String())
	assert.Equal(t, "duration", field.TypeDuration.String())
	assert.Equal(t, "invalid", field.TypeInvalid.String())
	assert.True(t, field.TypeInt.Numeric())
	assert.True(t, field.TypeDuration.Numeric())
	assert.False(t, field.TypeString.Numeric())
	assert.True(t, field.TypeBool.Valid())
	assert.False(t, field.TypeInvalid.Valid())
}
