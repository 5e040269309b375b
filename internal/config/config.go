package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/MimeLyc/sanzang/pkg/log"
)

// Config holds the defaults for a sanzang invocation. Command-line flags
// override these values.
//
// Environment Variables (an optional .env file in the working directory is
// loaded first; real environment variables take precedence):
// - SANZANG_ENCODING: text encoding for tables and texts (default: derived from the host locale)
// - SANZANG_JOBS: batch workers, -1 for one per processor (default: -1)
// - SANZANG_CHUNK_LINES: input lines per listing chunk (default: 96)
// - SANZANG_LOG_LEVEL: debug, info, warn or error (default: warn)
// - SANZANG_LOG_FILE: append log output to this file instead of stderr (optional)
type Config struct {
	Text  TextConfig
	Batch BatchConfig
	Log   LogConfig
}

type TextConfig struct {
	// Encoding is empty when the host default should be used.
	Encoding   string
	ChunkLines int
}

type BatchConfig struct {
	Jobs int
}

type LogConfig struct {
	Level string
	File  string
}

// Defaults used when the environment sets nothing. A DefaultJobs of -1 runs
// one batch worker per processor.
const (
	DefaultChunkLines = 96
	DefaultJobs       = -1
	DefaultLogLevel   = "warn"
)

// Default returns the configuration used when no environment is consulted.
func Default() *Config {
	return &Config{
		Text:  TextConfig{ChunkLines: DefaultChunkLines},
		Batch: BatchConfig{Jobs: DefaultJobs},
		Log:   LogConfig{Level: DefaultLogLevel},
	}
}

// Option is a function type for configuring Config
type Option func(*Config)

func WithEncoding(name string) Option {
	return func(c *Config) {
		c.Text.Encoding = name
	}
}

func WithJobs(n int) Option {
	return func(c *Config) {
		c.Batch.Jobs = n
	}
}

func WithLogLevel(level string) Option {
	return func(c *Config) {
		c.Log.Level = level
	}
}

// NewFromEnv creates a new Config instance with values from environment variables and options
func NewFromEnv(opts ...Option) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("Failed to load .env: %v", err)
	}

	config := &Config{
		Text: TextConfig{
			Encoding:   getEnvString("SANZANG_ENCODING", ""),
			ChunkLines: getEnvInt("SANZANG_CHUNK_LINES", DefaultChunkLines),
		},
		Batch: BatchConfig{
			Jobs: getEnvInt("SANZANG_JOBS", DefaultJobs),
		},
		Log: LogConfig{
			Level: getEnvString("SANZANG_LOG_LEVEL", DefaultLogLevel),
			File:  getEnvString("SANZANG_LOG_FILE", ""),
		},
	}

	for _, opt := range opts {
		opt(config)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	log.Debug("Config: %+v", *config)
	return config, nil
}

func (c *Config) validate() error {
	if c.Text.ChunkLines < 1 {
		return fmt.Errorf("SANZANG_CHUNK_LINES must be positive, got %d", c.Text.ChunkLines)
	}
	if c.Batch.Jobs < -1 {
		return fmt.Errorf("SANZANG_JOBS must be -1 or more, got %d", c.Batch.Jobs)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("SANZANG_LOG_LEVEL %q is not a log level", c.Log.Level)
	}
	return nil
}

// LogLevel is the configured level as a logger level.
func (c *Config) LogLevel() log.LogLevel {
	return log.ParseLevel(c.Log.Level)
}

// getEnvString gets a string value from environment variables with default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment variables with default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intValue
		}
		log.Warn("Ignoring %s=%q: not an integer", key, value)
	}
	return defaultValue
}
