package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

var defaultCatalogPaths = []string{
	"Evol Jewels Hackathon Database.xlsx",
	"Evol Jewels Hackathon Database .xlsx",
}

type Config struct {
	Port             int
	CatalogSource    string
	CatalogPaths     []string
	PlaceholderImage string
	DatabaseURL      string
	DBPoolSize       int
	RedisURL         string
	CacheTTL         time.Duration
	LogLevel         string
	LogFormat        string
	AllowedOrigins   []string
	RequestTimeout   time.Duration
	RandomSeed       int64
}

// Load configuration from env
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnvInt("PORT", 8000),
		CatalogSource:    strings.ToLower(getEnv("CATALOG_SOURCE", SourceFile)),
		CatalogPaths:     getEnvList("CATALOG_PATHS", defaultCatalogPaths),
		PlaceholderImage: getEnv("CATALOG_PLACEHOLDER_IMAGE", "https://via.placeholder.com/400x400?text=Jewelry+Image"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		DBPoolSize:       getEnvInt("DB_POOL_SIZE", 10),
		RedisURL:         getEnv("REDIS_URL", ""),
		CacheTTL:         getEnvDuration("CACHE_TTL", 10*time.Minute),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
		AllowedOrigins:   getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RequestTimeout:   getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		RandomSeed:       int64(getEnvInt("RANDOM_SEED", 0)),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}
	switch c.CatalogSource {
	case SourceFile:
		if len(c.CatalogPaths) == 0 {
			errs = append(errs, errors.New("CATALOG_PATHS must name at least one file"))
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("CATALOG_SOURCE=postgres requires DATABASE_URL"))
		}
	default:
		errs = append(errs, fmt.Errorf("CATALOG_SOURCE must be %q or %q, got %q", SourceFile, SourcePostgres, c.CatalogSource))
	}
	if c.DBPoolSize <= 0 {
		errs = append(errs, fmt.Errorf("DB_POOL_SIZE must be positive, got %d", c.DBPoolSize))
	}
	if c.CacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("CACHE_TTL must be positive, got %s", c.CacheTTL))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout))
	}
	return errors.Join(errs...)
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return fallback
}

// getEnvList splits a comma separated value, dropping blank entries.
func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
