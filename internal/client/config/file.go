package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/flagx"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/timex"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape, decoded from JSON or YAML. Zero values
// leave the corresponding Config field untouched.
type fileConfig struct {
	ServerURL      string         `json:"server_url" yaml:"server_url"`
	Token          string         `json:"token" yaml:"token"`
	PageSize       int            `json:"page_size" yaml:"page_size"`
	TickInterval   timex.Duration `json:"tick_interval" yaml:"tick_interval"`
	RequestTimeout timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LogLevel       string         `json:"log_level" yaml:"log_level"`
	LogFormat      string         `json:"log_format" yaml:"log_format"`
}

// parseFile overlays cfg with the file named by -c/-config, if any.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc fileConfig) apply(cfg *Config) {
	if fc.ServerURL != "" {
		cfg.ServerURL = fc.ServerURL
	}
	if fc.Token != "" {
		cfg.Token = fc.Token
	}
	if fc.PageSize != 0 {
		cfg.PageSize = fc.PageSize
	}
	if fc.TickInterval.Duration != 0 {
		cfg.TickInterval = fc.TickInterval.Duration
	}
	if fc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		cfg.LogFormat = fc.LogFormat
	}
}
