package core

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the application needs to talk to the backend
// and run a dashboard session. Precedence, lowest to highest:
//  1. Defaults
//  2. YAML config file (~/.config/comanda/config.yaml or --config)
//  3. Environment variables (COMANDA_*)
//  4. Functional options
type Config struct {
	API       APIConfig       `yaml:"api"`
	Session   SessionConfig   `yaml:"session"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// APIConfig configures the gateway client.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// SessionConfig configures where the authenticated session lives.
// File is the default; RedisURL switches to the shared Redis store.
type SessionConfig struct {
	File     string        `yaml:"file"`
	RedisURL string        `yaml:"redis_url"`
	TTL      time.Duration `yaml:"ttl"`
}

// LoggingConfig configures the production logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// TelemetryConfig configures optional OpenTelemetry tracing.
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"` // OTLP gRPC endpoint
	Development bool   `yaml:"development"`
}

// Option is a functional option applied on top of file and env config.
type Option func(*Config) error

// DefaultConfig returns the baseline configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:3000/api",
			Timeout: 15 * time.Second,
		},
		Session: SessionConfig{
			File: defaultSessionFile(),
			TTL:  12 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "text",
		},
	}
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(home, ".config", "comanda", "session.json")
}

// DefaultConfigFile returns the user-level config path, or "" when the home
// directory cannot be resolved.
func DefaultConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "comanda", "config.yaml")
}

// LoadFromFile merges YAML configuration from path into c.
// A missing file is not an error.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// LoadFromEnv overrides configuration from COMANDA_* environment variables.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("COMANDA_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("COMANDA_API_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.API.Timeout = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("COMANDA_SESSION_FILE"); v != "" {
		c.Session.File = v
	}
	if v := os.Getenv("COMANDA_REDIS_URL"); v != "" {
		c.Session.RedisURL = v
	}
	if v := os.Getenv("COMANDA_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("COMANDA_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("COMANDA_OTEL_ENDPOINT"); v != "" {
		c.Telemetry.Enabled = true
		c.Telemetry.Endpoint = v
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api.base_url %q is not a valid URL", ErrInvalidConfiguration, c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: api.timeout must be positive", ErrInvalidConfiguration)
	}
	if c.Session.File == "" && c.Session.RedisURL == "" {
		return fmt.Errorf("%w: session needs a file path or a redis URL", ErrInvalidConfiguration)
	}
	return nil
}

// NewConfig builds a Config from defaults, the config file, the environment
// and the provided options, then validates it.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := DefaultConfig()

	if path := DefaultConfigFile(); path != "" {
		if err := cfg.LoadFromFile(path); err != nil {
			return nil, err
		}
	}

	cfg.LoadFromEnv()

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithConfigFile merges an explicit YAML config file. Applied in option
// order, so it overrides the default file and the environment.
func WithConfigFile(path string) Option {
	return func(c *Config) error {
		return c.LoadFromFile(path)
	}
}

// WithAPIURL overrides the backend base URL.
func WithAPIURL(baseURL string) Option {
	return func(c *Config) error {
		if baseURL != "" {
			c.API.BaseURL = baseURL
		}
		return nil
	}
}

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) error {
		if d <= 0 {
			return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfiguration)
		}
		c.API.Timeout = d
		return nil
	}
}

// WithSessionFile overrides the session file path.
func WithSessionFile(path string) Option {
	return func(c *Config) error {
		if path != "" {
			c.Session.File = path
		}
		return nil
	}
}

// WithRedisSession switches session persistence to Redis.
func WithRedisSession(redisURL string) Option {
	return func(c *Config) error {
		c.Session.RedisURL = redisURL
		return nil
	}
}

// WithLogLevel overrides the log level.
func WithLogLevel(level string) Option {
	return func(c *Config) error {
		if level != "" {
			c.Logging.Level = level
		}
		return nil
	}
}

// WithTelemetry enables tracing against the given OTLP endpoint.
func WithTelemetry(endpoint string) Option {
	return func(c *Config) error {
		c.Telemetry.Enabled = true
		c.Telemetry.Endpoint = endpoint
		return nil
	}
}
