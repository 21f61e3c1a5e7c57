package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/scrapetab/internal/model"
)

// defaultTimeout is used when Options.Timeout is not positive.
const defaultTimeout = 30 * time.Second

// Session is a scoped connection to the relational source.
// It holds exactly one connection for its whole lifetime, so statements
// run strictly one after another. Close must be called when the batch ends.
type Session struct {
	db      *sql.DB
	conn    *sql.Conn
	driver  string
	timeout time.Duration
	logger  *slog.Logger

	version  string
	database string

	closeOnce sync.Once
	closeErr  error
	mu        sync.Mutex
	closed    bool
}

// Open connects to the database described by opts and pins one connection.
// The server version and the current database are read and logged.
// Any failure to reach the server wraps model.ErrTransport.
func Open(ctx context.Context, opts Options) (*Session, error) {
	driverName, dsn, err := opts.DataSource()
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	// Opening a missing sqlite file would silently create an empty database.
	if opts.Driver == DriverSQLite && opts.DSN == "" {
		if _, err := os.Stat(dsn); err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w: %w", model.ErrTransport, err)
		}
	}

	logger.Debug("connecting to database", "driver", opts.Driver, "dsn", dsn)

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w: %w", model.ErrTransport, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := db.Conn(connectCtx)
	if err == nil {
		err = conn.PingContext(connectCtx)
	}
	if err != nil {
		if conn != nil {
			_ = conn.Close()
		}
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w: %w", opts.Driver, model.ErrTransport, err)
	}

	s := &Session{
		db:      db,
		conn:    conn,
		driver:  opts.Driver,
		timeout: timeout,
		logger:  logger,
	}

	var version, database sql.NullString
	if err := conn.QueryRowContext(connectCtx, s.identityQuery()).Scan(&version, &database); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to read server identity: %w: %w", model.ErrTransport, err)
	}
	s.version, s.database = version.String, database.String
	logger.Info("connected to database", "driver", opts.Driver, "version", s.version, "database", s.database)

	return s, nil
}

// identityQuery returns the statement reading server version and current database.
func (s *Session) identityQuery() string {
	switch s.driver {
	case DriverPostgres:
		return "SELECT version(), current_database()"
	case DriverSQLite:
		return "SELECT sqlite_version(), 'main'"
	default:
		return "SELECT VERSION(), DATABASE()"
	}
}

// ServerVersion returns the version string reported by the server.
func (s *Session) ServerVersion() string {
	return s.version
}

// DatabaseName returns the current database reported by the server.
func (s *Session) DatabaseName() string {
	return s.database
}

// Driver returns the driver name of the session.
func (s *Session) Driver() string {
	return s.driver
}

// Query runs one catalog statement and returns every row.
// SQL NULL is returned as nil and byte slices as strings.
// Any failure is returned as a *QueryError.
func (s *Session) Query(ctx context.Context, q Query) (*model.RowSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, &QueryError{Query: q.Name, Err: ErrSessionClosed}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	rows, err := s.conn.QueryContext(ctx, s.bind(q.SQL), q.Args...)
	if err != nil {
		return nil, &QueryError{Query: q.Name, Err: err}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, &QueryError{Query: q.Name, Err: err}
	}

	rs := &model.RowSet{Columns: columns, Rows: make([][]any, 0)}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &QueryError{Query: q.Name, Err: err}
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		rs.Rows = append(rs.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Query: q.Name, Err: err}
	}

	s.logger.Debug("query finished", "query", q.Name, "rows", rs.Len(), "duration", time.Since(start))
	return rs, nil
}

// Close releases the connection and the pool. It is safe to call more than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.closed = true
		if err := s.conn.Close(); err != nil {
			s.closeErr = err
		}
		if err := s.db.Close(); err != nil && s.closeErr == nil {
			s.closeErr = err
		}
		s.logger.Debug("database session closed", "driver", s.driver)
	})
	return s.closeErr
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// bind rewrites ? placeholders into the bind style of the session's driver,
// for example $1, $2 for postgres.
func (s *Session) bind(query string) string {
	return sqlx.Rebind(sqlx.BindType(s.driver), query)
}
