package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the pixgallery configuration.
type Config struct {
	HTTP          HTTPConfig         `yaml:"http"`
	Database      DatabaseConfig     `yaml:"database"`
	Pixabay       PixabayConfig      `yaml:"pixabay"`
	Cache         CacheConfig        `yaml:"cache"`
	Quota         QuotaConfig        `yaml:"quota"`
	Session       SessionConfig      `yaml:"session"`
	Notifications NotificationConfig `yaml:"notifications"`
	Auth          AuthConfig         `yaml:"auth"`
	CORS          CORSConfig         `yaml:"cors"`
	Logging       LoggingConfig      `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API keys for the JSON API. Empty disables auth.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// CORSConfig holds allowed origins for the JSON API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds the cache/session store connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // valkey, redis (default: valkey)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// PixabayConfig holds image-search API settings.
type PixabayConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	TimeoutSec int    `yaml:"timeout_sec"` // 0 = transport default (no timeout)
}

// CacheConfig holds result page cache settings.
type CacheConfig struct {
	Enabled *bool `yaml:"enabled"` // default: true
	TTLSec  int   `yaml:"ttl_sec"`
}

// QuotaConfig caps upstream image-search requests per UTC day.
type QuotaConfig struct {
	DailyRequests int64  `yaml:"daily_requests"` // 0 = unlimited
	Action        string `yaml:"action"`         // warn, reject (default: reject)
}

// SessionConfig holds gallery session settings.
type SessionConfig struct {
	TTLSec       int    `yaml:"ttl_sec"`
	CookieName   string `yaml:"cookie_name"`
	SecureCookie bool   `yaml:"secure_cookie"`
}

// NotificationConfig holds notification display options.
type NotificationConfig struct {
	TimeoutMS int    `yaml:"timeout_ms"`
	Position  string `yaml:"position"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration, expands ${VAR} references, applies
// defaults and validates the result.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// DefaultBaseURL is the image-search API endpoint.
const DefaultBaseURL = "https://pixabay.com/api/"

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "valkey"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Pixabay.BaseURL == "" {
		c.Pixabay.BaseURL = DefaultBaseURL
	}
	if c.Cache.Enabled == nil {
		enabled := true
		c.Cache.Enabled = &enabled
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 86400
	}
	if c.Quota.Action == "" {
		c.Quota.Action = "reject"
	}
	if c.Session.TTLSec <= 0 {
		c.Session.TTLSec = 86400
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "pixgallery_session"
	}
	if c.Notifications.TimeoutMS <= 0 {
		c.Notifications.TimeoutMS = 3000
	}
	if c.Notifications.Position == "" {
		c.Notifications.Position = "right-top"
	}
}

// CacheEnabled reports whether result pages are cached.
func (c *Config) CacheEnabled() bool {
	return c.Cache.Enabled == nil || *c.Cache.Enabled
}

var validPositions = map[string]struct{}{
	"right-top":     {},
	"right-bottom":  {},
	"left-top":      {},
	"left-bottom":   {},
	"center-top":    {},
	"center-bottom": {},
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	switch c.Database.Driver {
	case "valkey", "redis":
	default:
		return fmt.Errorf("database.driver must be \"valkey\" or \"redis\", got %q", c.Database.Driver)
	}
	if err := c.ValidateSearch(); err != nil {
		return err
	}
	if _, ok := validPositions[c.Notifications.Position]; !ok {
		return fmt.Errorf("notifications.position %q is not supported", c.Notifications.Position)
	}
	return nil
}

// ValidateSearch checks only the settings needed to query the image-search
// API. The CLI uses it without a store.
func (c *Config) ValidateSearch() error {
	if c.Pixabay.APIKey == "" {
		return fmt.Errorf("pixabay.api_key is required")
	}
	u, err := url.Parse(c.Pixabay.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("pixabay.base_url must be an absolute URL, got %q", c.Pixabay.BaseURL)
	}
	if c.Pixabay.TimeoutSec < 0 {
		return fmt.Errorf("pixabay.timeout_sec must be >= 0, got %d", c.Pixabay.TimeoutSec)
	}
	if c.Quota.DailyRequests < 0 {
		return fmt.Errorf("quota.daily_requests must be >= 0, got %d", c.Quota.DailyRequests)
	}
	switch c.Quota.Action {
	case "warn", "reject":
	default:
		return fmt.Errorf("quota.action must be \"warn\" or \"reject\", got %q", c.Quota.Action)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// Relative to the source file, for tests and `go run` from subdirectories.
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
