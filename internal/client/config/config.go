package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"
)

// TokenEnv names the environment variable holding the bearer credential.
const TokenEnv = "ADMINPANEL_TOKEN"

var ErrInvalidConfig = errors.New("invalid config")

// Config holds runtime settings for the admin client.
//
// Units: TickInterval and RequestTimeout are time.Duration values.
type Config struct {
	ServerURL      string
	Token          string
	PageSize       int
	TickInterval   time.Duration
	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000/api"
	c.PageSize = 10
	c.TickInterval = time.Second
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: server url %q", ErrInvalidConfig, c.ServerURL)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("%w: page size must be positive", ErrInvalidConfig)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: tick interval must be positive", ErrInvalidConfig)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig constructs a Config from defaults, the optional config file,
// the environment and command-line flags, in that order.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:], os.Getenv)
}

func load(args []string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if tok := getenv(TokenEnv); tok != "" {
		cfg.Token = tok
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
