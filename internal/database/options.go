package database

import (
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Driver names accepted by Options.Driver.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Options configures a Session.
type Options struct {
	// Driver is DriverMySQL, DriverPostgres or DriverSQLite.
	Driver string

	// Host and Port locate the server. Unused for sqlite.
	Host string
	Port int

	// Database is the schema name, or the database file for sqlite.
	Database string

	// User and Password are the credentials. Unused for sqlite.
	User     string
	Password string

	// DSN overrides every connection field above when set.
	DSN string

	// Timeout bounds the connection attempt and every statement.
	Timeout time.Duration

	// Logger receives connection diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns options for the public Rfam MySQL server.
func DefaultOptions() Options {
	return Options{
		Driver:   DriverMySQL,
		Host:     "mysql-rfam-public.ebi.ac.uk",
		Port:     4497,
		Database: "Rfam",
		User:     "rfamro",
		Timeout:  30 * time.Second,
	}
}

// DataSource returns the database/sql driver name and data source name.
func (o Options) DataSource() (string, string, error) {
	switch o.Driver {
	case DriverMySQL:
		if o.DSN != "" {
			return "mysql", o.DSN, nil
		}
		cfg := mysql.NewConfig()
		cfg.User = o.User
		cfg.Passwd = o.Password
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
		cfg.DBName = o.Database
		cfg.Timeout = o.Timeout
		return "mysql", cfg.FormatDSN(), nil

	case DriverPostgres:
		if o.DSN != "" {
			return "pgx", o.DSN, nil
		}
		u := url.URL{
			Scheme: "postgres",
			Host:   net.JoinHostPort(o.Host, strconv.Itoa(o.Port)),
			Path:   "/" + o.Database,
		}
		if o.Password != "" {
			u.User = url.UserPassword(o.User, o.Password)
		} else if o.User != "" {
			u.User = url.User(o.User)
		}
		if o.Timeout > 0 {
			q := url.Values{}
			q.Set("connect_timeout", strconv.Itoa(int(math.Ceil(o.Timeout.Seconds()))))
			u.RawQuery = q.Encode()
		}
		return "pgx", u.String(), nil

	case DriverSQLite:
		if o.DSN != "" {
			return "sqlite", o.DSN, nil
		}
		return "sqlite", o.Database, nil

	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, o.Driver)
	}
}
