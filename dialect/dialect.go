package dialect

import (
	"context"
	"log/slog"
)

// Postgres is the name of the one dialect the SQL generator targets.
// The generated text uses positional $n placeholders and uuid/timestamp
// casts, which are not portable to other engines.
const Postgres = "postgres"

// ExecQuerier wraps the Exec and Query methods.
type ExecQuerier interface {
	// Exec executes a statement that returns no rows. The args slice is
	// passed as []any, and v, when non-nil, must be a *sql.Result.
	Exec(ctx context.Context, query string, args, v any) error
	// Query executes a statement that returns rows. v must be a
	// *sql.Rows (the dialect/sql wrapper, not database/sql directly).
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the minimal interface a database backend exposes to the
// client: statement execution, transactions, and lifecycle.
type Driver interface {
	ExecQuerier
	// Tx starts and returns a new transaction.
	Tx(ctx context.Context) (Tx, error)
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect name of the driver.
	Dialect() string
}

// Tx wraps transaction commit and rollback on top of statement execution.
type Tx interface {
	ExecQuerier
	Commit() error
	Rollback() error
}

// DebugDriver is a driver that logs all driver operations through a
// leveled logger.
type DebugDriver struct {
	Driver              // underlying driver
	log    *slog.Logger // log function
}

// Debug gets a driver and a logger, and returns a new debugged driver
// that prints all outgoing statements at debug level. A nil logger
// falls back to slog.Default.
func Debug(d Driver, logger *slog.Logger) Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &DebugDriver{d, logger}
}

// Exec logs its params and calls the underlying driver Exec method.
func (d *DebugDriver) Exec(ctx context.Context, query string, args, v any) error {
	d.log.DebugContext(ctx, "driver.Exec", "query", query, "args", args)
	return d.Driver.Exec(ctx, query, args, v)
}

// Query logs its params and calls the underlying driver Query method.
func (d *DebugDriver) Query(ctx context.Context, query string, args, v any) error {
	d.log.DebugContext(ctx, "driver.Query", "query", query, "args", args)
	return d.Driver.Query(ctx, query, args, v)
}

// Tx adds a log-id for the transaction and calls the underlying driver Tx command.
func (d *DebugDriver) Tx(ctx context.Context) (Tx, error) {
	tx, err := d.Driver.Tx(ctx)
	if err != nil {
		return nil, err
	}
	d.log.DebugContext(ctx, "driver.Tx started")
	return &DebugTx{tx, d.log, ctx}, nil
}

// Unwrap returns the underlying driver.
func (d *DebugDriver) Unwrap() Driver { return d.Driver }

// DebugTx is a transaction implementation that logs all transaction operations.
type DebugTx struct {
	Tx               // underlying transaction
	log *slog.Logger // log function
	ctx context.Context
}

// Exec logs its params and calls the underlying transaction Exec method.
func (d *DebugTx) Exec(ctx context.Context, query string, args, v any) error {
	d.log.DebugContext(ctx, "tx.Exec", "query", query, "args", args)
	return d.Tx.Exec(ctx, query, args, v)
}

// Query logs its params and calls the underlying transaction Query method.
func (d *DebugTx) Query(ctx context.Context, query string, args, v any) error {
	d.log.DebugContext(ctx, "tx.Query", "query", query, "args", args)
	return d.Tx.Query(ctx, query, args, v)
}

// Commit logs this step and calls the underlying transaction Commit method.
func (d *DebugTx) Commit() error {
	d.log.DebugContext(d.ctx, "tx.Commit")
	return d.Tx.Commit()
}

// Rollback logs this step and calls the underlying transaction Rollback method.
func (d *DebugTx) Rollback() error {
	d.log.DebugContext(d.ctx, "tx.Rollback")
	return d.Tx.Rollback()
}
