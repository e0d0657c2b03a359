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
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/DoyleJ11/guesswho-backend/internal/engine"
)

const (
	CatalogEmbedded = "embedded"
	CatalogPostgres = "postgres"
)

type Config struct {
	HTTPAddr       string
	LogLevel       zapcore.Level
	CatalogSource  string
	DatabaseURL    string
	CatalogImport  bool
	SelectionSize  int
	CatalogTimeout time.Duration
	WSReadTimeout  time.Duration
	WSWriteTimeout time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (Config, error) {
	c := Config{
		HTTPAddr:      envOr("HTTP_ADDR", ":8080"),
		CatalogSource: strings.ToLower(envOr("CATALOG_SOURCE", CatalogEmbedded)),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
	}

	var err error
	if c.LogLevel, err = zapcore.ParseLevel(envOr("LOG_LEVEL", "info")); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if c.CatalogImport, err = boolEnv("CATALOG_IMPORT", false); err != nil {
		return Config{}, err
	}
	if c.SelectionSize, err = intEnv("SELECTION_SIZE", engine.DefaultSelectionSize); err != nil {
		return Config{}, err
	}
	if c.SelectionSize <= 0 {
		return Config{}, fmt.Errorf("invalid SELECTION_SIZE %d: must be positive", c.SelectionSize)
	}
	if c.CatalogTimeout, err = durationEnv("CATALOG_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if c.WSReadTimeout, err = durationEnv("WS_READ_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if c.WSWriteTimeout, err = durationEnv("WS_WRITE_TIMEOUT", 3*time.Second); err != nil {
		return Config{}, err
	}

	switch c.CatalogSource {
	case CatalogEmbedded:
	case CatalogPostgres:
		if c.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL is required when CATALOG_SOURCE=postgres")
		}
	default:
		return Config{}, fmt.Errorf("invalid CATALOG_SOURCE %q", c.CatalogSource)
	}

	return c, nil
}

// NewLogger builds the production JSON logger at the configured level.
func (c Config) NewLogger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(c.LogLevel)
	return zc.Build()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
