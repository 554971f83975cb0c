package recs

import (
	"context"
	stdsql "database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/go-recs/recs/dialect"
	dsql "github.com/go-recs/recs/dialect/sql"
)

// Client is the entry point for all operations. It owns a driver (and
// through it the connection pool), a leveled logger, and the optional
// record cache. A Client is safe for concurrent use; each operation
// leases its own connection unit from the pool.
type Client struct {
	drv      dialect.Driver
	log      *slog.Logger
	cache    Cache
	cacheTTL time.Duration
	sem      *semaphore.Weighted
	debug    bool
}

// Option configures a Client.
type Option func(*Client)

// Driver configures the client driver.
func Driver(d dialect.Driver) Option {
	return func(c *Client) { c.drv = d }
}

// Log sets the leveled logging sink. Defaults to slog.Default.
func Log(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// Debug wraps the driver so every outgoing statement is logged at
// debug level.
func Debug() Option {
	return func(c *Client) { c.debug = true }
}

// WithCache enables record caching for Get operations. Entries live for
// ttl (zero means no expiry) and are invalidated by Insert, Update,
// Save and Delete on the same record.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// MaxLeases bounds the number of concurrently held connection leases.
// Zero (the default) leaves the bound to the underlying pool.
func MaxLeases(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.sem = semaphore.NewWeighted(n)
		}
	}
}

// NewClient creates a new client configured with the given options. A
// driver is required; use Open when starting from a connection string.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{log: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	if c.drv == nil {
		return nil, NewConfigurationError("no driver configured")
	}
	if c.debug {
		c.drv = dialect.Debug(c.drv, c.log)
	}
	return c, nil
}

// Open creates a client connected to the given PostgreSQL connection
// string. The underlying pool opens lazily, on first use.
func Open(dsn string, opts ...Option) (*Client, error) {
	if dsn == "" {
		return nil, newNoConnStringError("no connection string")
	}
	drv, err := dsql.Open(dialect.Postgres, dsn)
	if err != nil {
		return nil, err
	}
	return NewClient(append([]Option{Driver(drv)}, opts...)...)
}

// Close closes the driver and its pool.
func (c *Client) Close() error {
	return c.drv.Close()
}

// A Querier executes statements: either a *Client (a fresh lease per
// operation) or a *Conn (an explicitly held lease). The interface is
// sealed; generic operations like Get and Query accept either.
type Querier interface {
	exec(ctx context.Context, query string, args []any) (dsql.Result, error)
	query(ctx context.Context, query string, args []any) (*dsql.Rows, error)
	client() *Client
}

func (c *Client) exec(ctx context.Context, query string, args []any) (dsql.Result, error) {
	var res stdsql.Result
	if err := c.drv.Exec(ctx, query, args, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) query(ctx context.Context, query string, args []any) (*dsql.Rows, error) {
	var rows dsql.Rows
	if err := c.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, err
	}
	return &rows, nil
}

func (c *Client) client() *Client { return c }

// Conn is an explicitly leased connection. It offers the same operation
// set as Client, pinned to a single database session. A Conn must be
// returned with Close; operations on a nil or closed Conn fail with
// ConnectionStateError.
type Conn struct {
	c       *Client
	conn    *stdsql.Conn
	closed  bool
	release func()
}

// unwrapDB walks wrapped drivers (Debug, Stats) down to one exposing
// the *sql.DB pool.
func unwrapDB(d dialect.Driver) (*stdsql.DB, bool) {
	for {
		if p, ok := d.(interface{ DB() *stdsql.DB }); ok {
			return p.DB(), true
		}
		u, ok := d.(interface{ Unwrap() dialect.Driver })
		if !ok {
			return nil, false
		}
		d = u.Unwrap()
	}
}

// Conn leases a connection from the pool. The caller owns the lease and
// must Close it.
func (c *Client) Conn(ctx context.Context) (*Conn, error) {
	db, ok := unwrapDB(c.drv)
	if !ok {
		return nil, NewConfigurationError("driver does not lease connections")
	}
	if c.sem != nil {
		if err := c.sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		if c.sem != nil {
			c.sem.Release(1)
		}
		return nil, err
	}
	cn := &Conn{c: c, conn: conn}
	if c.sem != nil {
		cn.release = func() { c.sem.Release(1) }
	}
	return cn, nil
}

// WithConn leases a connection, invokes fn with it, and releases the
// lease on every exit path.
func (c *Client) WithConn(ctx context.Context, fn func(context.Context, *Conn) error) (err error) {
	cn, cerr := c.Conn(ctx)
	if cerr != nil {
		return cerr
	}
	defer func() {
		if cerr := cn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(ctx, cn)
}

// Close returns the lease to the pool. Closing an already-closed Conn
// is a no-op.
func (cn *Conn) Close() error {
	if cn == nil || cn.conn == nil || cn.closed {
		return nil
	}
	cn.closed = true
	err := cn.conn.Close()
	if cn.release != nil {
		cn.release()
	}
	return err
}

// ready validates the lease before use.
func (cn *Conn) ready() error {
	switch {
	case cn == nil || cn.conn == nil:
		return &ConnectionStateError{State: "nil"}
	case cn.closed:
		return &ConnectionStateError{State: "closed"}
	}
	return nil
}

func (cn *Conn) exec(ctx context.Context, query string, args []any) (dsql.Result, error) {
	if err := cn.ready(); err != nil {
		return nil, err
	}
	var res stdsql.Result
	if err := (dsql.Conn{ExecQuerier: cn.conn}).Exec(ctx, query, args, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (cn *Conn) query(ctx context.Context, query string, args []any) (*dsql.Rows, error) {
	if err := cn.ready(); err != nil {
		return nil, err
	}
	var rows dsql.Rows
	if err := (dsql.Conn{ExecQuerier: cn.conn}).Query(ctx, query, args, &rows); err != nil {
		return nil, err
	}
	return &rows, nil
}

func (cn *Conn) client() *Client {
	if cn == nil {
		return nil
	}
	return cn.c
}

// InsertOption configures a single Insert call.
type InsertOption func(*insertOptions)

type insertOptions struct {
	policy ConflictPolicy
}

// OnConflict selects the INSERT behavior on a uniqueness violation.
// The default, ConflictError, surfaces the database error unmodified.
func OnConflict(p ConflictPolicy) InsertOption {
	return func(o *insertOptions) { o.policy = p }
}

func insertRecord(ctx context.Context, q Querier, rec Record, opts ...InsertOption) error {
	var io insertOptions
	for _, opt := range opts {
		opt(&io)
	}
	s := rec.Schema()
	if err := s.Err(); err != nil {
		return err
	}
	// Insert always assigns a fresh identifier, overwriting any value
	// already present on the record.
	if s.ID() != nil {
		if err := setRecordID(rec, uuid.New()); err != nil {
			return err
		}
	}
	text, err := dsql.InsertSQL(s, io.policy)
	if err != nil {
		return err
	}
	args, err := Values(rec, false)
	if err != nil {
		return err
	}
	if _, err := q.exec(ctx, text, args); err != nil {
		return NewMutationError(s.Name(), "insert", err)
	}
	evictRecord(ctx, q.client(), rec)
	return nil
}

func updateRecord(ctx context.Context, q Querier, rec Record) error {
	s := rec.Schema()
	if err := s.Err(); err != nil {
		return err
	}
	text, err := dsql.UpdateSQL(s)
	if err != nil {
		return err
	}
	args, err := Values(rec, true)
	if err != nil {
		return err
	}
	if _, err := q.exec(ctx, text, args); err != nil {
		return NewMutationError(s.Name(), "update", err)
	}
	evictRecord(ctx, q.client(), rec)
	return nil
}

func saveRecord(ctx context.Context, q Querier, rec Record) error {
	id, err := recordID(rec)
	if err != nil {
		return err
	}
	if id == uuid.Nil {
		return insertRecord(ctx, q, rec)
	}
	return updateRecord(ctx, q, rec)
}

func deleteRecord(ctx context.Context, q Querier, rec Record) error {
	id, err := recordID(rec)
	if err != nil {
		return err
	}
	return deleteByID(ctx, q, rec.Schema(), id)
}

func deleteByID(ctx context.Context, q Querier, s *Schema, id uuid.UUID) error {
	text, err := dsql.DeleteSQL(s)
	if err != nil {
		return err
	}
	if _, err := q.exec(ctx, text, []any{id.String()}); err != nil {
		return NewMutationError(s.Name(), "delete", err)
	}
	evictKey(ctx, q.client(), recordKey(s, id))
	return nil
}

// Insert stores the record as a new row, assigning it a freshly
// generated identifier first (any identifier already on the record is
// overwritten). Use OnConflict to choose the uniqueness-violation
// behavior.
func (c *Client) Insert(ctx context.Context, rec Record, opts ...InsertOption) error {
	return insertRecord(ctx, c, rec, opts...)
}

// Update rewrites the row addressed by the record's identifier.
func (c *Client) Update(ctx context.Context, rec Record) error {
	return updateRecord(ctx, c, rec)
}

// Save inserts the record when its identifier is the zero UUID and
// updates it otherwise.
//
// Sharp edge: the insert path assigns a fresh random identifier every
// time. A record whose identifier is cleared between Save calls is
// stored again under a new identity rather than updated in place.
func (c *Client) Save(ctx context.Context, rec Record) error {
	return saveRecord(ctx, c, rec)
}

// Delete removes the row addressed by the record's identifier.
func (c *Client) Delete(ctx context.Context, rec Record) error {
	return deleteRecord(ctx, c, rec)
}

// DeleteID removes the row of the given schema with the given identifier.
func (c *Client) DeleteID(ctx context.Context, s *Schema, id uuid.UUID) error {
	return deleteByID(ctx, c, s, id)
}

// Insert stores the record over this connection. See Client.Insert.
func (cn *Conn) Insert(ctx context.Context, rec Record, opts ...InsertOption) error {
	return insertRecord(ctx, cn, rec, opts...)
}

// Update rewrites the record's row over this connection. See Client.Update.
func (cn *Conn) Update(ctx context.Context, rec Record) error {
	return updateRecord(ctx, cn, rec)
}

// Save inserts or updates over this connection. See Client.Save.
func (cn *Conn) Save(ctx context.Context, rec Record) error {
	return saveRecord(ctx, cn, rec)
}

// Delete removes the record's row over this connection. See Client.Delete.
func (cn *Conn) Delete(ctx context.Context, rec Record) error {
	return deleteRecord(ctx, cn, rec)
}

// DeleteID removes a row by identifier over this connection.
func (cn *Conn) DeleteID(ctx context.Context, s *Schema, id uuid.UUID) error {
	return deleteByID(ctx, cn, s, id)
}
