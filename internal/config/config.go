// Package config loads runtime configuration from the environment.
// A .env file in the working directory is read first when present; values
// already set in the environment take precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Logging   LoggingConfig
	Analytics AnalyticsConfig
}

type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
}

type StorageConfig struct {
	PostgresDSN     string
	ClickHouseDSN   string // optional; report snapshots stay in memory without it
	UseMemory       bool
	MaxConns        int32
	MaxConnIdleTime time.Duration
	AutoMigrate     bool
}

type LoggingConfig struct {
	Level         string // debug, info, warn, error
	Format        string // json, pretty
	FileEnabled   bool
	FilePath      string
	RotationSize  int // MB
	RetentionDays int
}

type AnalyticsConfig struct {
	RollingWindow int
	HeatmapDays   int
	TopMistakes   int
}

// Load loads configuration from .env and the process environment.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env file path. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:            getEnv("SERVER_ADDR", ":8080"),
			ReadTimeout:     getDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			CORSOrigins:     getList("CORS_ORIGINS", []string{"*"}),
		},
		Storage: StorageConfig{
			PostgresDSN:     getEnv("POSTGRES_DSN", ""),
			ClickHouseDSN:   getEnv("CLICKHOUSE_DSN", ""),
			UseMemory:       getBool("USE_MEMORY", false),
			MaxConns:        int32(getInt("POSTGRES_MAX_CONNS", 10)),
			MaxConnIdleTime: getDuration("POSTGRES_MAX_CONN_IDLE_TIME", 30*time.Minute),
			AutoMigrate:     getBool("AUTO_MIGRATE", true),
		},
		Logging: LoggingConfig{
			Level:         getEnv("LOG_LEVEL", "info"),
			Format:        getEnv("LOG_FORMAT", "json"),
			FileEnabled:   getBool("LOG_FILE_ENABLED", false),
			FilePath:      getEnv("LOG_FILE_PATH", "logs"),
			RotationSize:  getInt("LOG_ROTATION_SIZE_MB", 100),
			RetentionDays: getInt("LOG_RETENTION_DAYS", 14),
		},
		Analytics: AnalyticsConfig{
			RollingWindow: getInt("ROLLING_WINDOW", 10),
			HeatmapDays:   getInt("HEATMAP_DAYS", 90),
			TopMistakes:   getInt("TOP_MISTAKES", 5),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	if c.Analytics.RollingWindow <= 0 {
		return fmt.Errorf("ROLLING_WINDOW must be positive, got %d", c.Analytics.RollingWindow)
	}
	if c.Analytics.HeatmapDays <= 0 {
		return fmt.Errorf("HEATMAP_DAYS must be positive, got %d", c.Analytics.HeatmapDays)
	}
	if c.Analytics.TopMistakes <= 0 {
		return fmt.Errorf("TOP_MISTAKES must be positive, got %d", c.Analytics.TopMistakes)
	}
	return nil
}

// getEnv gets environment variable with fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
