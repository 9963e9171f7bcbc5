// Package logger configures the global zerolog logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration
type Config struct {
	Level         string // debug, info, warn, error
	Format        string // json, pretty
	FileEnabled   bool
	FilePath      string // logs directory path
	RotationSize  int    // MB
	RetentionDays int
	Service       string
	Out           io.Writer // console destination, stderr when nil
}

// Init initializes the global logger and returns it.
func Init(cfg Config) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level: %w", err)
		}
		level = parsed
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	var writers []io.Writer
	if cfg.Format == "pretty" {
		writers = append(writers, zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"})
	} else {
		writers = append(writers, out)
	}

	if cfg.FileEnabled {
		if err := os.MkdirAll(cfg.FilePath, 0o755); err != nil {
			return zerolog.Nop(), fmt.Errorf("failed to create log directory: %w", err)
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(cfg.FilePath, serviceOr(cfg.Service)+".log"),
			MaxSize:    cfg.RotationSize,
			MaxAge:     cfg.RetentionDays,
			MaxBackups: 10,
			Compress:   true,
		})
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().
		Timestamp().
		Str("service", serviceOr(cfg.Service)).
		Logger()

	log.Logger = logger

	logger.Debug().
		Str("level", level.String()).
		Str("format", cfg.Format).
		Bool("file_enabled", cfg.FileEnabled).
		Msg("logger initialized")

	return logger, nil
}

// Component returns the global logger scoped to a component.
func Component(name string) zerolog.Logger {
	return log.Logger.With().Str("component", name).Logger()
}

func serviceOr(s string) string {
	if s == "" {
		return "trade-journal"
	}
	return s
}
