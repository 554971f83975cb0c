// Package sql provides the PostgreSQL driver wrapper and SQL text
// generation for record schemas.
//
// # Driver
//
// Driver wraps database/sql and implements dialect.Driver. Importing
// this package registers lib/pq:
//
//	drv, err := sql.Open(dialect.Postgres, "postgres://...")
//
// # Statement Generation
//
// Statements are rendered from a schema once and memoized. Placeholders
// are positional ($1..$n), ordered exactly like the schema's columns,
// identifier columns carry a ::uuid cast and timestamp columns a
// ::timestamp cast:
//
//	text, err := sql.InsertSQL(personSchema, sql.ConflictError)
//	// INSERT INTO persons (id, name, birthday)
//	//   VALUES ($1::uuid, $2, $3::timestamp)
//
//	text, err = sql.UpdateSQL(personSchema)
//	// UPDATE persons SET id = $1::uuid, name = $2,
//	//   birthday = $3::timestamp WHERE id = $4::uuid
//
// INSERT conflict behavior is selected by ConflictPolicy: ConflictError
// (no clause), ConflictNothing (ON CONFLICT DO NOTHING), ConflictUpdate
// (ON CONFLICT DO UPDATE, appended verbatim).
//
// # Statistics
//
// WithStats wraps any dialect.Driver with execution counters and
// slow-statement logging through log/slog.
package sql
