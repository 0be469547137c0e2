package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when no --config flag is given. A missing file at this
// path is not an error.
const DefaultPath = "config/toolrent.yaml"

// Config represents the application configuration
type Config struct {
	API         APIConfig         `yaml:"api"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Console     ConsoleConfig     `yaml:"console"`
	Log         LogConfig         `yaml:"log"`
	Scheduler   SchedulerConfig   `yaml:"scheduler"`
}

// APIConfig contains the remote REST service settings
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
}

// CredentialsConfig contains the durable credential storage settings
type CredentialsConfig struct {
	Path string `yaml:"path"`
}

// ConsoleConfig contains the local web console settings
type ConsoleConfig struct {
	Host          string        `yaml:"host"`
	Port          int           `yaml:"port"`
	ImageCacheDir string        `yaml:"image_cache_dir"` // empty disables the image cache
	StaleTime     time.Duration `yaml:"stale_time"`      // age after which a cached read is refetched; 0 refetches on every page load
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// ScheduleOff disables a job explicitly
const ScheduleOff = "off"

// SchedulerConfig contains cron schedule settings (six fields, seconds first).
// An empty or "off" schedule disables the job.
type SchedulerConfig struct {
	CleanupExpiredBookings string `yaml:"cleanup_expired_bookings"`
	RefreshQueries         string `yaml:"refresh_queries"`
}

// Load reads configuration from a YAML file. Environment variables (optionally
// from a .env file) override file values.
func Load(configPath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && configPath == DefaultPath:
		// defaults only
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("TOOLRENT_API_URL"); val != "" {
		c.API.BaseURL = val
	}
	if val := os.Getenv("TOOLRENT_CREDENTIALS_PATH"); val != "" {
		c.Credentials.Path = val
	}

	// Console
	if val := os.Getenv("CONSOLE_HOST"); val != "" {
		c.Console.Host = val
	}
	if val := os.Getenv("CONSOLE_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Console.Port)
	}
	if val := os.Getenv("CONSOLE_IMAGE_CACHE_DIR"); val != "" {
		c.Console.ImageCacheDir = val
	}
	if val := os.Getenv("CONSOLE_STALE_TIME"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			c.Console.StaleTime = d
		}
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Scheduler
	if val, ok := os.LookupEnv("SCHEDULE_CLEANUP_EXPIRED"); ok {
		c.Scheduler.CleanupExpiredBookings = val
	}
	if val, ok := os.LookupEnv("SCHEDULE_REFRESH_QUERIES"); ok {
		c.Scheduler.RefreshQueries = val
	}
}

// Validate fills defaults and checks if the configuration is valid
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://localhost:3001/api"
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api base url: %q", c.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported api scheme: %s", u.Scheme)
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")

	if c.Credentials.Path == "" {
		c.Credentials.Path = defaultCredentialsPath()
	}

	if c.Console.Host == "" {
		c.Console.Host = "127.0.0.1"
	}
	if c.Console.Port == 0 {
		c.Console.Port = 8088
	}
	if c.Console.Port < 0 || c.Console.Port > 65535 {
		return fmt.Errorf("invalid console port: %d", c.Console.Port)
	}
	if c.Console.StaleTime < 0 {
		return fmt.Errorf("invalid console stale time: %s", c.Console.StaleTime)
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.Scheduler.RefreshQueries == "" {
		c.Scheduler.RefreshQueries = "0 */5 * * * *" // every 5 minutes
	}

	return nil
}

// GetConsoleAddress returns the web console listen address
func (c *Config) GetConsoleAddress() string {
	return fmt.Sprintf("%s:%d", c.Console.Host, c.Console.Port)
}

func defaultCredentialsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "toolrent", "credentials.yaml")
}
