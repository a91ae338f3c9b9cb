// Package config handles configuration loading for programs built on the
// Marketo client.
//
// Configuration is loaded from a YAML file with support for environment
// variable expansion (${VAR} or $VAR syntax). This allows the API secret
// key to be injected at runtime instead of being stored in the file.
//
// # Configuration Sections
//
//   - marketo: API endpoint, credentials, namespace and time zone
//   - transport: HTTPS timeouts, client-side rate limit, user agent
//   - logging: slog level and output format
//   - debug: trace SOAP requests and responses
//
// # Example Configuration
//
//	marketo:
//	  endpoint: https://123-ABC-456.mktoapi.com/soap/mktows/2_0
//	  userId: ${MARKETO_USER_ID}
//	  secretKey: ${MARKETO_SECRET_KEY}
//	  timeZone: America/Los_Angeles
//
//	transport:
//	  timeout: 20s
//	  rateLimit: 5
//	  rateBurst: 5
//
//	logging:
//	  level: info
//	  format: json
//
// See [Load] for loading configuration from a file.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"github.com/sirosfoundation/go-mktows/pkg/mktows"
	"github.com/sirosfoundation/go-mktows/pkg/soap"
	"github.com/sirosfoundation/go-mktows/pkg/transport"
)

// Config is the root configuration structure
type Config struct {
	Marketo   MarketoConfig   `yaml:"marketo"`
	Transport TransportConfig `yaml:"transport"`
	Logging   LoggingConfig   `yaml:"logging"`
	Debug     bool            `yaml:"debug"`
}

// MarketoConfig holds API endpoint and credential settings
type MarketoConfig struct {
	Endpoint  string `yaml:"endpoint"`
	UserID    string `yaml:"userId"`
	SecretKey string `yaml:"secretKey"` // use ${MARKETO_SECRET_KEY}
	Namespace string `yaml:"namespace"`
	// IANA zone name for request timestamps, e.g. "America/Los_Angeles"
	TimeZone string `yaml:"timeZone"`
}

// TransportConfig holds HTTPS client settings
type TransportConfig struct {
	Timeout         time.Duration `yaml:"timeout"`
	IdleConnTimeout time.Duration `yaml:"idleConnTimeout"`
	// Requests per second; a negative value disables the limiter
	RateLimit float64 `yaml:"rateLimit"`
	RateBurst int     `yaml:"rateBurst"`
	UserAgent string  `yaml:"userAgent"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse reads configuration from YAML bytes
func Parse(data []byte) (*Config, error) {
	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Marketo.Namespace == "" {
		c.Marketo.Namespace = soap.DefaultNamespace
	}
	if c.Marketo.TimeZone == "" {
		c.Marketo.TimeZone = "UTC"
	}
	if c.Transport.Timeout == 0 {
		c.Transport.Timeout = soap.DefaultTimeout
	}
	if c.Transport.IdleConnTimeout == 0 {
		c.Transport.IdleConnTimeout = 90 * time.Second
	}
	if c.Transport.RateLimit == 0 {
		c.Transport.RateLimit = 5
	}
	if c.Transport.RateBurst == 0 {
		c.Transport.RateBurst = 5
	}
	if c.Transport.UserAgent == "" {
		c.Transport.UserAgent = transport.DefaultUserAgent
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

func (c *Config) validate() error {
	if c.Marketo.Endpoint == "" {
		return fmt.Errorf("marketo.endpoint is required")
	}
	if c.Marketo.UserID == "" {
		return fmt.Errorf("marketo.userId is required")
	}
	if c.Marketo.SecretKey == "" {
		return fmt.Errorf("marketo.secretKey is required")
	}
	if _, err := time.LoadLocation(c.Marketo.TimeZone); err != nil {
		return fmt.Errorf("marketo.timeZone: %w", err)
	}
	if c.Transport.Timeout < 0 {
		return fmt.Errorf("transport.timeout must not be negative")
	}

	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "text", "json":
		// Valid formats
	default:
		return fmt.Errorf("logging.format must be 'text' or 'json', got '%s'", c.Logging.Format)
	}

	return nil
}

// Location returns the configured time zone
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Marketo.TimeZone)
	if err != nil {
		// validate already rejected unknown zones
		return time.UTC
	}
	return loc
}

// NewLogger builds a slog logger writing to w
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.Logging.Level)
	if c.Debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// HTTPSConfig converts the transport section
func (c *Config) HTTPSConfig() *transport.HTTPSConfig {
	cfg := transport.DefaultHTTPSConfig()
	cfg.Timeout = c.Transport.Timeout
	cfg.IdleConnTimeout = c.Transport.IdleConnTimeout
	cfg.RateLimit = c.Transport.RateLimit
	cfg.RateBurst = c.Transport.RateBurst
	cfg.UserAgent = c.Transport.UserAgent
	return cfg
}

// ClientConfig builds the Marketo client configuration around tr
func (c *Config) ClientConfig(tr soap.Transport, logger *slog.Logger) *mktows.ClientConfig {
	return &mktows.ClientConfig{
		Transport: tr,
		Endpoint:  c.Marketo.Endpoint,
		UserID:    c.Marketo.UserID,
		SecretKey: c.Marketo.SecretKey,
		Namespace: c.Marketo.Namespace,
		Location:  c.Location(),
		Timeout:   c.Transport.Timeout,
		Debug:     c.Debug,
		Logger:    logger,
	}
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("logging.level must be debug, info, warn or error, got '%s'", s)
	}
}
