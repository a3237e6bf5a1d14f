package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ConfigError reports missing required configuration options. It is fatal
// for the run and is raised before any network call.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Missing, ", "))
}

// Config holds every option the sync pipeline recognizes. It is constructed
// once at process entry and passed by reference into every component; no
// component reads the environment directly.
type Config struct {
	// Workforce API access
	Install    string // install/tenant identifier
	Geo        string // geo/region code
	Token      string // access credential
	AuthScheme string // Authorization scheme tag, default "Bearer"
	BaseURL    string // optional endpoint override, normally derived from Install+Geo

	// Sink
	SinkKind  string // "csv" or "sqlite"
	SinkID    string // directory (csv) or database path (sqlite)
	SinkTab   string // tab name: file basename (csv) or table name (sqlite)
	KeyColumn int    // primary-key column index, default 0

	// Notification
	AdminEmail string
	SMTPHost   string
	SMTPPort   int
	SMTPFrom   string

	// Scheduling and fetch behavior
	Cron     string // daemon cadence, cron expression
	PageSize int    // page size for paged queries
	Timezone string

	// Logging
	LogLevel string
	LogFile  string
}

const (
	defaultAuthScheme = "Bearer"
	defaultSinkKind   = "csv"
	defaultSinkTab    = "Timesheets"
	defaultCron       = "0 6 * * *"
	defaultPageSize   = 500
	defaultSMTPPort   = 25
)

// Load builds a Config from the optional .env file at envFile overlaid by
// the process environment, then validates it. Environment always wins over
// the file.
func Load(envFile string) (*Config, error) {
	return load(envFile, false)
}

// Reload rebuilds the Config after the env file changed. Unlike Load it
// lets the file override values it put into the environment earlier.
func Reload(envFile string) (*Config, error) {
	return load(envFile, true)
}

func load(envFile string, override bool) (*Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			apply := godotenv.Load
			if override {
				apply = godotenv.Overload
			}
			if err := apply(envFile); err != nil {
				return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
			}
		}
	}

	cfg := &Config{
		Install:    getenv("TSYNC_INSTALL", ""),
		Geo:        getenv("TSYNC_GEO", ""),
		Token:      getenv("TSYNC_TOKEN", ""),
		AuthScheme: getenv("TSYNC_AUTH_SCHEME", defaultAuthScheme),
		BaseURL:    getenv("TSYNC_BASE_URL", ""),
		SinkKind:   getenv("TSYNC_SINK_KIND", defaultSinkKind),
		SinkID:     getenv("TSYNC_SINK_ID", ""),
		SinkTab:    getenv("TSYNC_SINK_TAB", defaultSinkTab),
		KeyColumn:  getenvInt("TSYNC_KEY_COLUMN", 0),
		AdminEmail: getenv("TSYNC_ADMIN_EMAIL", ""),
		SMTPHost:   getenv("TSYNC_SMTP_HOST", ""),
		SMTPPort:   getenvInt("TSYNC_SMTP_PORT", defaultSMTPPort),
		SMTPFrom:   getenv("TSYNC_SMTP_FROM", ""),
		Cron:       getenv("TSYNC_CRON", defaultCron),
		PageSize:   getenvInt("TSYNC_PAGE_SIZE", defaultPageSize),
		Timezone:   getenv("TSYNC_TIMEZONE", "Local"),
		LogLevel:   getenv("TSYNC_LOG_LEVEL", "info"),
		LogFile:    getenv("TSYNC_LOG_FILE", ""),
	}

	// The partially loaded config is returned alongside a validation error
	// so the caller can still reach the admin notification options.
	return cfg, cfg.Validate()
}

// Validate reports every missing required option at once.
func (c *Config) Validate() error {
	var missing []string
	if c.Install == "" && c.BaseURL == "" {
		missing = append(missing, "TSYNC_INSTALL")
	}
	if c.Geo == "" && c.BaseURL == "" {
		missing = append(missing, "TSYNC_GEO")
	}
	if c.Token == "" {
		missing = append(missing, "TSYNC_TOKEN")
	}
	if c.SinkID == "" {
		missing = append(missing, "TSYNC_SINK_ID")
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}

	if c.SinkKind != "csv" && c.SinkKind != "sqlite" {
		return fmt.Errorf("unsupported sink kind %q (expected csv or sqlite)", c.SinkKind)
	}
	if c.PageSize <= 0 {
		c.PageSize = defaultPageSize
	}
	if c.KeyColumn < 0 {
		c.KeyColumn = 0
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
