package sql_test

import (
	"context"
	stdsql "database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-recs/recs/dialect"
	"github.com/go-recs/recs/dialect/sql"
)

func newMockDriver(t *testing.T) (*sql.Driver, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sql.OpenDB(dialect.Postgres, db), mock
}

func TestDriver(t *testing.T) {
	t.Parallel()

	drv, _ := newMockDriver(t)
	assert.Equal(t, dialect.Postgres, drv.Dialect())
	assert.NotNil(t, drv.DB())
}

func TestConnExec(t *testing.T) {
	t.Parallel()

	drv, mock := newMockDriver(t)
	ctx := context.Background()

	mock.ExpectExec("UPDATE persons SET name = $1").
		WithArgs("Minnie Mouse").
		WillReturnResult(sqlmock.NewResult(0, 2))
	var res stdsql.Result
	err := drv.Exec(ctx, "UPDATE persons SET name = $1", []any{"Minnie Mouse"}, &res)
	require.NoError(t, err)
	n, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// A nil receiver discards the result.
	mock.ExpectExec("DELETE FROM persons").WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, drv.Exec(ctx, "DELETE FROM persons", []any{}, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnExecInvalidTypes(t *testing.T) {
	t.Parallel()

	drv, _ := newMockDriver(t)
	ctx := context.Background()

	err := drv.Exec(ctx, "DELETE FROM persons", "not-a-slice", nil)
	assert.Error(t, err)

	var n int
	err = drv.Exec(ctx, "DELETE FROM persons", []any{}, &n)
	assert.Error(t, err)
}

func TestConnQuery(t *testing.T) {
	t.Parallel()

	drv, mock := newMockDriver(t)
	mock.ExpectQuery("SELECT name FROM persons").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Minnie Mouse"))

	var rows sql.Rows
	err := drv.Query(context.Background(), "SELECT name FROM persons", []any{}, &rows)
	require.NoError(t, err)
	defer rows.Close()

	require.True(t, rows.Next())
	var name string
	require.NoError(t, rows.Scan(&name))
	assert.Equal(t, "Minnie Mouse", name)
	assert.False(t, rows.Next())
	assert.NoError(t, rows.Err())
}

func TestConnQueryInvalidTypes(t *testing.T) {
	t.Parallel()

	drv, _ := newMockDriver(t)
	err := drv.Query(context.Background(), "SELECT 1", []any{}, "not-rows")
	assert.Error(t, err)

	var rows sql.Rows
	err = drv.Query(context.Background(), "SELECT 1", 7, &rows)
	assert.Error(t, err)
}

func TestTx(t *testing.T) {
	t.Parallel()

	drv, mock := newMockDriver(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM persons WHERE id = $1::uuid").
		WithArgs("x").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := drv.Tx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Exec(ctx, "DELETE FROM persons WHERE id = $1::uuid", []any{"x"}, nil))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRollback(t *testing.T) {
	t.Parallel()

	drv, mock := newMockDriver(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := drv.Tx(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	unique := &pq.Error{Code: "23505"}
	assert.True(t, sql.IsUniqueViolation(unique))
	assert.True(t, sql.IsUniqueViolation(fmt.Errorf("insert: %w", unique)))
	assert.False(t, sql.IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, sql.IsUniqueViolation(errors.New("other")))
	assert.False(t, sql.IsUniqueViolation(nil))
}

func TestIsConstraintViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, sql.IsConstraintViolation(&pq.Error{Code: "23505"}))
	assert.True(t, sql.IsConstraintViolation(&pq.Error{Code: "23503"}))
	assert.False(t, sql.IsConstraintViolation(&pq.Error{Code: "42601"}))
	assert.False(t, sql.IsConstraintViolation(errors.New("other")))
}
