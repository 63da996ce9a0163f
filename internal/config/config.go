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

// Store backends selectable with STORE_BACKEND.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config is the runtime configuration of the API process.
type Config struct {
	HTTPAddr        string
	RedisAddr       string
	KafkaBroker     string
	KafkaEnabled    bool
	CatalogDir      string
	RejectionsDir   string
	DefaultCurrency string
	StoreBackend    string
	SessionTTL      time.Duration
	AI              AIConfig
	LogLevel        string
	LogFormat       string
}

// AIConfig selects and configures the caption provider. An empty APIKey
// selects the mock provider.
type AIConfig struct {
	APIKey   string
	Endpoint string
	Model    string
	Timeout  time.Duration
}

// Load reads an optional .env file at path and then the environment.
// Variables already set in the environment win over the file.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		RedisAddr:       getenv("REDIS_ADDR", "redis:6379"),
		KafkaBroker:     getenv("KAFKA_BROKER", "kafka:9092"),
		CatalogDir:      getenv("CATALOG_DIR", "./data/catalogs"),
		RejectionsDir:   getenv("REJECTIONS_DIR", "./data/rejections"),
		DefaultCurrency: strings.ToUpper(getenv("DEFAULT_CURRENCY", "USD")),
		StoreBackend:    strings.ToLower(getenv("STORE_BACKEND", BackendMemory)),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		LogFormat:       getenv("LOG_FORMAT", "console"),
		AI: AIConfig{
			APIKey:   os.Getenv("AI_API_KEY"),
			Endpoint: getenv("AI_ENDPOINT", "https://generativelanguage.googleapis.com/v1beta"),
			Model:    getenv("AI_MODEL", "gemini-1.5-flash"),
		},
	}

	var err error
	if cfg.KafkaEnabled, err = strconv.ParseBool(getenv("KAFKA_ENABLED", "false")); err != nil {
		return nil, fmt.Errorf("KAFKA_ENABLED: %w", err)
	}
	if cfg.SessionTTL, err = time.ParseDuration(getenv("SESSION_TTL", "720h")); err != nil {
		return nil, fmt.Errorf("SESSION_TTL: %w", err)
	}
	if cfg.AI.Timeout, err = time.ParseDuration(getenv("AI_TIMEOUT", "20s")); err != nil {
		return nil, fmt.Errorf("AI_TIMEOUT: %w", err)
	}

	switch cfg.StoreBackend {
	case BackendMemory, BackendRedis:
	default:
		return nil, fmt.Errorf("STORE_BACKEND: unknown backend %q", cfg.StoreBackend)
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
