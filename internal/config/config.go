package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Collection CollectionConfig `yaml:"collection"`
	Snapshot   SnapshotConfig   `yaml:"snapshot"`
	Search     SearchConfig     `yaml:"search"`
	Logging    LoggingConfig    `yaml:"logging"`
	Timezone   string           `yaml:"timezone"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port               string   `yaml:"port"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	FrontendDistPath   string   `yaml:"frontend_dist_path"`
}

// DatabaseConfig selects the gorm driver and its DSN.
// For sqlite the DSN is a file path (or ":memory:").
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// RateLimitConfig contains per-client rate limiting settings
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
	MaxClients        int     `yaml:"max_clients"`
}

// CollectionConfig controls the scheduled data collection runner
type CollectionConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Schedule string `yaml:"schedule"`
}

// SnapshotConfig controls the daily dashboard snapshot worker
type SnapshotConfig struct {
	Enabled              bool `yaml:"enabled"`
	Hour                 int  `yaml:"hour"`
	CheckIntervalMinutes int  `yaml:"check_interval_minutes"`
}

// SearchConfig bounds product search result sizes
type SearchConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `yaml:"level"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               "8080",
			CORSAllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
		},
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			DSN:    "./shoprank.db",
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 20,
			Burst:             40,
			MaxClients:        4096,
		},
		Collection: CollectionConfig{
			Enabled:  false,
			Schedule: "0 */6 * * *",
		},
		Snapshot: SnapshotConfig{
			Enabled:              true,
			Hour:                 23,
			CheckIntervalMinutes: 15,
		},
		Search: SearchConfig{
			DefaultLimit: 20,
			MaxLimit:     100,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Timezone: "Local",
	}
}

// Load builds the configuration: defaults, then the optional YAML file at path,
// then environment variables (a .env file in the working directory is loaded first).
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		c.Server.CORSAllowedOrigins = strings.Split(origins, ",")
	}
	c.Server.FrontendDistPath = getEnv("FRONTEND_DIST_PATH", c.Server.FrontendDistPath)

	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.DSN = getEnv("DATABASE_URL", c.Database.DSN)
	// DB_PATH mirrors the sqlite-only variable older deployments use
	if c.Database.Driver == DriverSQLite {
		c.Database.DSN = getEnv("DB_PATH", c.Database.DSN)
	}

	c.Timezone = getEnv("TZ_NAME", c.Timezone)
	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)

	c.RateLimit.Enabled = getEnvBool("RATE_LIMIT_ENABLED", c.RateLimit.Enabled)
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if rps, err := strconv.ParseFloat(v, 64); err == nil {
			c.RateLimit.RequestsPerSecond = rps
		}
	}
	c.RateLimit.Burst = getEnvInt("RATE_LIMIT_BURST", c.RateLimit.Burst)

	c.Collection.Enabled = getEnvBool("COLLECTION_ENABLED", c.Collection.Enabled)
	c.Collection.Schedule = getEnv("COLLECTION_SCHEDULE", c.Collection.Schedule)

	c.Snapshot.Enabled = getEnvBool("SNAPSHOT_ENABLED", c.Snapshot.Enabled)
	c.Snapshot.Hour = getEnvInt("SNAPSHOT_HOUR", c.Snapshot.Hour)

	c.Search.MaxLimit = getEnvInt("SEARCH_MAX_LIMIT", c.Search.MaxLimit)
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres, DriverMySQL:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}
	if c.Snapshot.Hour < 0 || c.Snapshot.Hour > 23 {
		return fmt.Errorf("snapshot hour must be between 0 and 23, got %d", c.Snapshot.Hour)
	}
	if c.Search.DefaultLimit <= 0 {
		c.Search.DefaultLimit = 20
	}
	if c.Search.MaxLimit < c.Search.DefaultLimit {
		c.Search.MaxLimit = c.Search.DefaultLimit
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured timezone. "today" for rank dates is
// evaluated in this location.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// SnapshotCheckInterval returns the snapshot polling interval as a duration
func (c *SnapshotConfig) SnapshotCheckInterval() time.Duration {
	if c.CheckIntervalMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(c.CheckIntervalMinutes) * time.Minute
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
