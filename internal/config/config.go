// ABOUTME: Configuration loader for the skillgenome CLI
// ABOUTME: Merges defaults, config.yaml, .env and environment variables

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names
const (
	EnvAPIURL         = "SKILLGENOME_API_URL"
	EnvConfigDir      = "SKILLGENOME_CONFIG_DIR"
	EnvRequestTimeout = "SKILLGENOME_REQUEST_TIMEOUT"
	EnvAllProxy       = "SKILLGENOME_ALL_PROXY"
	EnvLogLevel       = "SKILLGENOME_LOG_LEVEL"
	EnvLogFormat      = "SKILLGENOME_LOG_FORMAT"
)

// Defaults
const (
	DefaultAPIURL         = "http://localhost:5000"
	DefaultRequestTimeout = 30 * time.Second
	FileName              = "config.yaml"
)

// Config is the resolved runtime configuration
type Config struct {
	APIURL         string
	ConfigDir      string
	RequestTimeout time.Duration
	AllProxy       string // ssh+socks5://user@host:port?private-key=/path
	LogLevel       string // debug, info, warn, error
	LogFormat      string // text, json
}

// fileConfig mirrors config.yaml
type fileConfig struct {
	APIURL         string `yaml:"api_url"`
	RequestTimeout string `yaml:"request_timeout"`
	AllProxy       string `yaml:"all_proxy"`
	Log            struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "skillgenome")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "skillgenome")
}

// LoadDotEnv loads .env from the working directory without overriding the
// real environment. A missing file is not an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// Load resolves configuration in priority order: defaults -> file -> env.
// An empty configDir falls back to DefaultConfigDir.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{
		APIURL:         DefaultAPIURL,
		ConfigDir:      configDir,
		RequestTimeout: DefaultRequestTimeout,
		LogLevel:       "info",
		LogFormat:      "text",
	}

	if err := cfg.applyFile(filepath.Join(configDir, FileName)); err != nil {
		return nil, err
	}

	cfg.APIURL = getEnv(EnvAPIURL, cfg.APIURL)
	cfg.AllProxy = getEnv(EnvAllProxy, cfg.AllProxy)
	cfg.LogLevel = getEnv(EnvLogLevel, cfg.LogLevel)
	cfg.LogFormat = getEnv(EnvLogFormat, cfg.LogFormat)
	if v := os.Getenv(EnvRequestTimeout); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		cfg.RequestTimeout = d
	}

	cfg.APIURL = strings.TrimRight(ensureScheme(cfg.APIURL), "/")
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if fc.APIURL != "" {
		c.APIURL = fc.APIURL
	}
	if fc.AllProxy != "" {
		c.AllProxy = fc.AllProxy
	}
	if fc.Log.Level != "" {
		c.LogLevel = fc.Log.Level
	}
	if fc.Log.Format != "" {
		c.LogFormat = fc.Log.Format
	}
	if fc.RequestTimeout != "" {
		d, err := parseTimeout(fc.RequestTimeout)
		if err != nil {
			return fmt.Errorf("%s: request_timeout: %w", path, err)
		}
		c.RequestTimeout = d
	}
	return nil
}

func (c *Config) validate() error {
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log format must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// parseTimeout accepts Go durations ("45s") or bare seconds ("45")
func parseTimeout(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", v)
	}
	return d, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// ensureScheme adds http:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "http://" + url
	}
	return url
}
