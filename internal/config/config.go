package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingCredential is returned by Validate when no store credential is configured.
var ErrMissingCredential = errors.New("store api key is required (set SUPABASE_KEY)")

const (
	BackendREST     = "rest"
	BackendPostgres = "postgres"

	ParserLexical = "lexical"
	ParserGofeed  = "gofeed"
)

// DefaultQueries are the search terms monitored when the config file lists none.
var DefaultQueries = []string{
	`"data center" water consumption OR shortage OR restriction`,
	`"water rights" acquisition OR sale OR trading`,
	`aquifer depletion OR contamination 2026`,
	`"water stress" city OR region OR crisis`,
	`"cooling water" regulation OR ban OR moratorium`,
	`drought emergency declaration 2026`,
	`"network state" land OR infrastructure OR physical`,
	`water futures price OR trading CME`,
	`"data center" moratorium OR ban OR protest`,
	`desalination plant OR project 2026`,
}

type Config struct {
	Feed     FeedConfig     `yaml:"feed"`
	Store    StoreConfig    `yaml:"store"`
	Ingest   IngestConfig   `yaml:"ingest"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Schedule ScheduleConfig `yaml:"schedule"`
	LogLevel string         `yaml:"log_level"`
}

type FeedConfig struct {
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxRedirects int           `yaml:"max_redirects"`
	UserAgent    string        `yaml:"user_agent"`
	Parser       string        `yaml:"parser"`
	Language     string        `yaml:"language"`
	Country      string        `yaml:"country"`
	Window       string        `yaml:"window"`
}

type StoreConfig struct {
	Backend    string         `yaml:"backend"`
	URL        string         `yaml:"url"`
	Table      string         `yaml:"table"`
	APIKey     string         `yaml:"api_key"`
	OnConflict string         `yaml:"on_conflict"`
	Timeout    time.Duration  `yaml:"timeout"`
	Database   DatabaseConfig `yaml:"database"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// IngestConfig is passed to the ingest service at construction.
type IngestConfig struct {
	Queries         []string      `yaml:"queries"`
	BatchSize       int           `yaml:"batch_size"`
	PruneDays       int           `yaml:"prune_days"`
	InterQueryDelay time.Duration `yaml:"inter_query_delay"`
}

type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

// Enabled reports whether inserted signals should be published.
func (r RabbitMQConfig) Enabled() bool {
	return r.URL != ""
}

type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgateway_url"`
	Job            string `yaml:"job"`
}

type ScheduleConfig struct {
	// Interval of zero runs the pipeline once and exits.
	Interval   time.Duration `yaml:"interval"`
	RunTimeout time.Duration `yaml:"run_timeout"`
}

// Load reads the YAML config at path. A missing file is not an error: the
// defaults plus environment variables are enough for a cron invocation.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML config data after expanding environment variables.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

// Validate checks the settings that must be present before any network activity.
func (c *Config) Validate() error {
	if c.Store.Backend == BackendREST && c.Store.APIKey == "" {
		return ErrMissingCredential
	}
	if c.Store.Backend == BackendPostgres && c.Store.Database.Host == "" {
		return fmt.Errorf("%w: database host is required for the postgres backend", ErrMissingCredential)
	}
	switch c.Store.Backend {
	case BackendREST, BackendPostgres:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	switch c.Feed.Parser {
	case ParserLexical, ParserGofeed:
	default:
		return fmt.Errorf("unknown feed parser %q", c.Feed.Parser)
	}
	if c.Ingest.BatchSize < 1 {
		return fmt.Errorf("batch size must be positive, got %d", c.Ingest.BatchSize)
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Feed.BaseURL == "" {
		c.Feed.BaseURL = "https://news.google.com/rss/search"
	}
	if c.Feed.Timeout == 0 {
		c.Feed.Timeout = 15 * time.Second
	}
	if c.Feed.MaxRedirects == 0 {
		c.Feed.MaxRedirects = 5
	}
	if c.Feed.UserAgent == "" {
		c.Feed.UserAgent = "SignalMonitor/1.0"
	}
	if c.Feed.Parser == "" {
		c.Feed.Parser = ParserLexical
	}
	if c.Feed.Language == "" {
		c.Feed.Language = "en"
	}
	if c.Feed.Country == "" {
		c.Feed.Country = "US"
	}
	if c.Feed.Window == "" {
		c.Feed.Window = "7d"
	}
	if c.Store.Backend == "" {
		c.Store.Backend = BackendREST
	}
	if c.Store.URL == "" {
		c.Store.URL = "https://yljybhpxmfaremvmdkgm.supabase.co"
	}
	if c.Store.Table == "" {
		c.Store.Table = "signals_raw"
	}
	if c.Store.APIKey == "" {
		c.Store.APIKey = os.Getenv("SUPABASE_KEY")
	}
	if c.Store.Timeout == 0 {
		c.Store.Timeout = 15 * time.Second
	}
	if c.Store.Database.Port == 0 {
		c.Store.Database.Port = 5432
	}
	if c.Store.Database.SSLMode == "" {
		c.Store.Database.SSLMode = "require"
	}
	if len(c.Ingest.Queries) == 0 {
		c.Ingest.Queries = append([]string(nil), DefaultQueries...)
	}
	if c.Ingest.BatchSize == 0 {
		c.Ingest.BatchSize = 50
	}
	if c.Ingest.PruneDays == 0 {
		c.Ingest.PruneDays = 90
	}
	if c.Ingest.InterQueryDelay == 0 {
		c.Ingest.InterQueryDelay = 1 * time.Second
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "signal_monitor"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "signal.created"
	}
	if c.RabbitMQ.QueueName == "" {
		c.RabbitMQ.QueueName = "signals_raw"
	}
	if c.Metrics.Job == "" {
		c.Metrics.Job = "signal_monitor"
	}
	if c.Schedule.RunTimeout == 0 {
		c.Schedule.RunTimeout = 10 * time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
