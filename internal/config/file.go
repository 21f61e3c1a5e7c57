package config

import "time"

// ListingsSection holds the web pipeline settings of the configuration file.
type ListingsSection struct {
	BaseURL    string        `yaml:"baseURL,omitempty"`
	SearchTerm string        `yaml:"searchTerm,omitempty"`
	MaxResults int           `yaml:"maxResults,omitempty"`
	Delay      time.Duration `yaml:"delay,omitempty"`
	Timeout    time.Duration `yaml:"timeout,omitempty"`
	Currency   string        `yaml:"currency,omitempty"`
	UserAgent  string        `yaml:"userAgent,omitempty"`
	Output     string        `yaml:"output,omitempty"`
	Format     string        `yaml:"format,omitempty"`

	// Save is a pointer so that an explicit "save: false" can be told apart
	// from an absent key.
	Save *bool `yaml:"save,omitempty"`
}

// DatabaseSection holds the relational pipeline settings of the configuration file.
type DatabaseSection struct {
	Driver    string        `yaml:"driver,omitempty"`
	Host      string        `yaml:"host,omitempty"`
	Port      int           `yaml:"port,omitempty"`
	Name      string        `yaml:"name,omitempty"`
	User      string        `yaml:"user,omitempty"`
	Password  string        `yaml:"password,omitempty"`
	DSN       string        `yaml:"dsn,omitempty"`
	Timeout   time.Duration `yaml:"timeout,omitempty"`
	Queries   []string      `yaml:"queries,omitempty"`
	PageSize  int           `yaml:"pageSize,omitempty"`
	Page      int           `yaml:"page,omitempty"`
	MinLength int64         `yaml:"minLength,omitempty"`
}

// File represents the structure of the .scrapetab configuration file.
type File struct {
	Listings ListingsSection `yaml:"listings,omitempty"`
	Database DatabaseSection `yaml:"database,omitempty"`

	// LogFile mirrors log output into a rotating file.
	LogFile string `yaml:"logFile,omitempty"`

	// Pushgateway is the Prometheus Pushgateway URL for run metrics.
	Pushgateway string `yaml:"pushgateway,omitempty"`
}

// Apply overrides cfg with every non-zero value of the file.
// Values absent from the file keep their current setting.
func (f *File) Apply(cfg *Config) {
	l := f.Listings
	setString(&cfg.BaseURL, l.BaseURL)
	setString(&cfg.SearchTerm, l.SearchTerm)
	setInt(&cfg.MaxResults, l.MaxResults)
	setDuration(&cfg.Delay, l.Delay)
	setDuration(&cfg.Timeout, l.Timeout)
	setString(&cfg.Currency, l.Currency)
	setString(&cfg.UserAgent, l.UserAgent)
	setString(&cfg.OutputFile, l.Output)
	setString(&cfg.OutputFormat, l.Format)
	if l.Save != nil {
		cfg.SaveResults = *l.Save
	}

	d := f.Database
	setString(&cfg.Driver, d.Driver)
	setString(&cfg.DBHost, d.Host)
	setInt(&cfg.DBPort, d.Port)
	setString(&cfg.DBName, d.Name)
	setString(&cfg.DBUser, d.User)
	setString(&cfg.DBPassword, d.Password)
	setString(&cfg.DSN, d.DSN)
	setDuration(&cfg.QueryTimeout, d.Timeout)
	if len(d.Queries) > 0 {
		cfg.Queries = d.Queries
	}
	setInt(&cfg.PageSize, d.PageSize)
	setInt(&cfg.Page, d.Page)
	if d.MinLength != 0 {
		cfg.MinLength = d.MinLength
	}

	setString(&cfg.LogFile, f.LogFile)
	setString(&cfg.PushgatewayURL, f.Pushgateway)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v != 0 {
		*dst = v
	}
}
