package recs_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-recs/recs"
)

func TestScanAllTypes(t *testing.T) {
	t.Parallel()

	c, mock := newMockClient(t)
	id := uuid.New()
	made := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	const text = "SELECT * FROM widgets"
	mock.ExpectQuery(text).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "label", "lifetime", "count", "weight", "active", "made"}).
			AddRow(id.String(), "sprocket", int64(90), int64(5), 2.5, true, made))

	out, err := recs.Query[Widget](context.Background(), c, text)
	require.NoError(t, err)
	require.Len(t, out, 1)
	w := out[0]
	assert.Equal(t, id, w.ID)
	assert.Equal(t, "sprocket", w.Label)
	assert.Equal(t, 90*time.Second, w.Lifetime)
	assert.Equal(t, int64(5), w.Count)
	assert.Equal(t, 2.5, w.Weight)
	assert.True(t, w.Active)
	assert.True(t, w.Made.Equal(made))
	assert.Empty(t, w.Note, "transient fields never come from rows")
}

func TestScanCaseInsensitiveColumns(t *testing.T) {
	t.Parallel()

	c, mock := newMockClient(t)
	id := uuid.New()
	const text = "SELECT * FROM persons"
	mock.ExpectQuery(text).
		WillReturnRows(sqlmock.NewRows([]string{"ID", "NAME", "Birthday"}).
			AddRow(id.String(), "Minnie Mouse", birthday))

	out, err := recs.Query[Person](context.Background(), c, text)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, id, out[0].ID)
	assert.Equal(t, "Minnie Mouse", out[0].Name)
	assert.True(t, out[0].Birthday.Equal(birthday))
}

func TestScanNullColumns(t *testing.T) {
	t.Parallel()

	c, mock := newMockClient(t)
	id := uuid.New()
	const text = "SELECT * FROM persons"
	mock.ExpectQuery(text).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "birthday"}).
			AddRow(id.String(), nil, nil))

	out, err := recs.Query[Person](context.Background(), c, text)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, id, out[0].ID)
	assert.Empty(t, out[0].Name, "NULL leaves the field at its default")
	assert.True(t, out[0].Birthday.IsZero())
}

func TestScanExtraAndMissingColumns(t *testing.T) {
	t.Parallel()

	c, mock := newMockClient(t)
	const text = "SELECT name, shoe_size FROM persons"
	mock.ExpectQuery(text).
		WillReturnRows(sqlmock.NewRows([]string{"name", "shoe_size"}).
			AddRow("Minnie Mouse", int64(37)))

	out, err := recs.Query[Person](context.Background(), c, text)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Minnie Mouse", out[0].Name)
	assert.Equal(t, uuid.Nil, out[0].ID, "missing columns leave fields at defaults")
	assert.True(t, out[0].Birthday.IsZero())
}

func TestScanTimestampZoneReinterpreted(t *testing.T) {
	t.Parallel()

	c, mock := newMockClient(t)
	// The driver may attach a local zone to a timezone-less timestamp;
	// the wall clock is what counts.
	local := time.Date(2024, 3, 1, 12, 30, 0, 0, time.FixedZone("X", -5*60*60))
	const text = "SELECT * FROM persons"
	mock.ExpectQuery(text).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "birthday"}).
			AddRow(uuid.NewString(), "Minnie Mouse", local))

	out, err := recs.Query[Person](context.Background(), c, text)
	require.NoError(t, err)
	require.Len(t, out, 1)
	want := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, want, out[0].Birthday)
}

func TestScanBadUUID(t *testing.T) {
	t.Parallel()

	c, mock := newMockClient(t)
	const text = "SELECT * FROM persons"
	mock.ExpectQuery(text).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "birthday"}).
			AddRow("not-a-uuid", "Minnie Mouse", birthday))

	_, err := recs.Query[Person](context.Background(), c, text)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Person.id")
}
