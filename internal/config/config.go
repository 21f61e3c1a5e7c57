package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// Web defaults follow the listings site's search page; database defaults point
// at the public, read-only Rfam MySQL mirror.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "scrapetab"

	// DefaultBaseURL is the listings site root.
	DefaultBaseURL = "https://www.olx.in"

	// DefaultSearchTerm is the query used when none is given.
	DefaultSearchTerm = "car cover"

	// DefaultMaxResults caps the number of candidates normalized per run.
	DefaultMaxResults = 20

	// DefaultDelay is the pause between consecutive candidates.
	DefaultDelay = 500 * time.Millisecond

	// DefaultTimeout bounds a single page fetch.
	DefaultTimeout = 10 * time.Second

	// DefaultCurrency is the marker the heuristic locator looks for.
	DefaultCurrency = "₹"

	// DefaultUserAgent is a desktop Chrome identification string.
	// The listings site serves a reduced page to unknown clients.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// DefaultMaxBodySize limits the response body read from the listings site.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultOutputFile is where listing results are saved.
	DefaultOutputFile = "olx_results.txt"

	// DefaultOutputFormat is the format of the saved results file.
	DefaultOutputFormat = FormatText

	// DefaultDriver is the relational driver.
	DefaultDriver = "mysql"

	// DefaultDBHost is the public Rfam MySQL host.
	DefaultDBHost = "mysql-rfam-public.ebi.ac.uk"

	// DefaultDBPort is the public Rfam MySQL port.
	DefaultDBPort = 4497

	// DefaultDBName is the Rfam schema name.
	DefaultDBName = "Rfam"

	// DefaultDBUser is the read-only Rfam account. It has no password.
	DefaultDBUser = "rfamro"

	// DefaultQueryTimeout bounds each relational statement.
	DefaultQueryTimeout = 30 * time.Second

	// DefaultPageSize is the number of families per page.
	DefaultPageSize = 15

	// DefaultPage is the family page requested.
	DefaultPage = 9

	// DefaultMinLength is the sequence length a family must exceed to be listed.
	DefaultMinLength = 1000000

	// DefaultPushJob is the Pushgateway job name.
	DefaultPushJob = AppName
)

// Supported result file formats.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Supported relational drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration options for scrapetab.
// It is populated from defaults, then the configuration file, then CLI flags,
// and passed to the commands explicitly rather than through global state.
type Config struct {
	// BaseURL is the listings site root. The search path is appended to it.
	BaseURL string

	// SearchTerm is the listings query, e.g. "car cover".
	SearchTerm string

	// MaxResults keeps only the first N candidates in source order.
	MaxResults int

	// Delay is the pause between consecutive candidates.
	// Zero disables pacing.
	Delay time.Duration

	// Timeout bounds the single page fetch.
	Timeout time.Duration

	// Currency is the marker used by the heuristic locator.
	Currency string

	// UserAgent is the User-Agent header sent with the page request.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// FromFile reads the page from a saved HTML file instead of the network.
	FromFile string

	// OutputFile is the path of the saved results file.
	OutputFile string

	// OutputFormat is one of FormatText, FormatMarkdown or FormatJSON.
	OutputFormat string

	// SaveResults enables writing OutputFile.
	SaveResults bool

	// Driver is one of DriverMySQL, DriverPostgres or DriverSQLite.
	Driver string

	// DBHost and DBPort locate the database server.
	DBHost string
	DBPort int

	// DBName is the schema, or the file path for sqlite.
	DBName string

	// DBUser and DBPassword are the credentials. DBPassword is never logged.
	DBUser     string
	DBPassword string

	// DSN overrides the connection string built from the fields above.
	DSN string

	// QueryTimeout bounds each relational statement.
	QueryTimeout time.Duration

	// Queries names the catalog entries to run. Empty means all of them.
	Queries []string

	// PageSize and Page select the family page.
	PageSize int
	Page     int

	// MinLength is the sequence length threshold for the family queries.
	MinLength int64

	// Verbose enables debug level logging.
	Verbose bool

	// LogFile mirrors log output into a rotating file when set.
	LogFile string

	// PushgatewayURL receives run metrics when set.
	PushgatewayURL string

	// PushJob is the Pushgateway job name.
	PushJob string

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		BaseURL:      DefaultBaseURL,
		SearchTerm:   DefaultSearchTerm,
		MaxResults:   DefaultMaxResults,
		Delay:        DefaultDelay,
		Timeout:      DefaultTimeout,
		Currency:     DefaultCurrency,
		UserAgent:    DefaultUserAgent,
		MaxBodySize:  DefaultMaxBodySize,
		OutputFile:   DefaultOutputFile,
		OutputFormat: DefaultOutputFormat,
		SaveResults:  true,
		Driver:       DefaultDriver,
		DBHost:       DefaultDBHost,
		DBPort:       DefaultDBPort,
		DBName:       DefaultDBName,
		DBUser:       DefaultDBUser,
		QueryTimeout: DefaultQueryTimeout,
		PageSize:     DefaultPageSize,
		Page:         DefaultPage,
		MinLength:    DefaultMinLength,
		PushJob:      DefaultPushJob,
	}
}

// XDGConfigDir returns the XDG config directory for scrapetab.
// On Linux: ~/.config/scrapetab
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGStateDir returns the XDG state directory for scrapetab.
// It is the default home of the rotating log file.
// On Linux: ~/.local/state/scrapetab
func XDGStateDir() string {
	return filepath.Join(xdg.StateHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the package sentinel errors.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxResults <= 0 {
		return ErrInvalidMaxResults
	}
	if c.Delay < 0 {
		return ErrInvalidDelay
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.Currency == "" {
		return ErrEmptyCurrency
	}
	switch c.OutputFormat {
	case FormatText, FormatMarkdown, FormatJSON:
	default:
		return ErrInvalidFormat
	}
	switch c.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return ErrInvalidDriver
	}
	if c.QueryTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.PageSize <= 0 {
		return ErrInvalidPageSize
	}
	if c.Page <= 0 {
		return ErrInvalidPage
	}
	return nil
}
