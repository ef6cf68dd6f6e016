// Package config loads the UI server and CLI configuration.
//
// Values are layered, lowest precedence first:
//  1. defaults (Default())
//  2. a YAML file named by --config or ATS_CONFIG
//  3. environment variables with the ATS_ prefix (ATS_BACKEND_URL, ATS_PORT, ...)
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "ATS_"

// EnvConfigFile names the environment variable holding the YAML config path.
const EnvConfigFile = "ATS_CONFIG"

// Config is the resolved configuration.
type Config struct {
	// BackendURL is the base URL of the analysis backend.
	BackendURL string `koanf:"backend_url"`

	// Port is the UI server listen port.
	Port int `koanf:"port"`

	// RequestTimeout bounds every backend call.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// OutputDir is where CLI downloads are written.
	OutputDir string `koanf:"output_dir"`

	// ValidateResponses checks backend payloads against the JSON schemas.
	ValidateResponses bool `koanf:"validate_responses"`

	ReportTTL      time.Duration `koanf:"report_ttl"`
	ReportCapacity int           `koanf:"report_capacity"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `koanf:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BackendURL:     "http://localhost:8080",
		Port:           3000,
		RequestTimeout: 120 * time.Second,
		OutputDir:      ".",
		ReportTTL:      time.Hour,
		ReportCapacity: 500,
		LogLevel:       "info",
	}
}

// Load builds a Config from defaults, the optional YAML file at path (or
// ATS_CONFIG when path is empty) and ATS_ environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// ATS_BACKEND_URL -> backend_url. Underscores are kept to match the
	// flat koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := *Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config error: 'backend_url' must be an absolute URL, got %q", c.BackendURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("config error: 'backend_url' must use http or https")
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config error: 'request_timeout' must be positive")
	}
	if c.ReportTTL <= 0 {
		return fmt.Errorf("config error: 'report_ttl' must be positive")
	}
	if c.ReportCapacity <= 0 {
		return fmt.Errorf("config error: 'report_capacity' must be positive")
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config error: unknown 'log_level' %q", c.LogLevel)
	}

	if c.OutputDir != "" {
		info, err := os.Stat(c.OutputDir)
		if os.IsNotExist(err) {
			return fmt.Errorf("config error: output directory not found: %s", c.OutputDir)
		}
		if err == nil && !info.IsDir() {
			return fmt.Errorf("config error: output path is not a directory: %s", c.OutputDir)
		}
	}

	return nil
}

// Addr returns the listen address for Port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
