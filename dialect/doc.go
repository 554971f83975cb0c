// Package dialect defines the driver abstraction the client executes
// statements through.
//
// # Driver Interface
//
// The package defines the Driver interface for database operations:
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// The only concrete implementation lives in dialect/sql and wraps
// database/sql with the lib/pq driver; the generated SQL targets
// PostgreSQL syntax exclusively.
//
// # Usage
//
// Opening a database connection:
//
//	import (
//	    "github.com/go-recs/recs/dialect"
//	    "github.com/go-recs/recs/dialect/sql"
//	)
//
//	drv, err := sql.Open(dialect.Postgres, "postgres://...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//
// Wrap a driver with Debug to log every outgoing statement, or with
// sql.WithStats to collect execution counters and slow-query logs.
package dialect
