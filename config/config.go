package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"

	"lotto/database"

	"github.com/joho/godotenv"
)

// Store backends selectable with STORE_BACKEND
const (
	StoreBackendFile     = "file"
	StoreBackendPostgres = "postgres"
	StoreBackendRedis    = "redis"
)

// Config holds all application configuration
type Config struct {
	// Logging configuration
	LogLevel  string // logrus level name
	LogFormat string // "text" or "json"

	// Storage configuration
	StoreBackend string // file, postgres or redis
	HistoryFile  string // path of the JSON history for the file backend

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Redis configuration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string // key holding the history blob

	// HTTP API configuration
	HTTPAddr string

	// Ticket configuration
	SingleGameCost int64

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// Load reads the configuration without touching the global instance
func Load() (*Config, error) {
	return load()
}

// LoadDotEnv loads variables from .env style files. Missing files are ignored and
// variables already present in the environment win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		LogLevel:  getEnvWithDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvWithDefault("LOG_FORMAT", "text"),

		StoreBackend: strings.ToLower(getEnvWithDefault("STORE_BACKEND", StoreBackendFile)),
		HistoryFile:  getEnvWithDefault("HISTORY_FILE", "lotto-history.json"),

		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		RedisAddr:     getEnvWithDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisKey:      getEnvWithDefault("REDIS_KEY", "lottoGameHistory"),

		HTTPAddr: getEnvWithDefault("HTTP_ADDR", ":8080"),

		SingleGameCost: 1000,

		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if db := os.Getenv("REDIS_DB"); db != "" {
		parsed, err := strconv.Atoi(db)
		if err != nil {
			return nil, fmt.Errorf("REDIS_DB must be a number: %w", err)
		}
		config.RedisDB = parsed
	}
	if cost := os.Getenv("SINGLE_GAME_COST"); cost != "" {
		parsed, err := strconv.ParseInt(cost, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("SINGLE_GAME_COST must be a positive number, got %q", cost)
		}
		config.SingleGameCost = parsed
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks that the selected backend has what it needs
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreBackendFile:
		if strings.TrimSpace(c.HistoryFile) == "" {
			return fmt.Errorf("HISTORY_FILE is required for the file backend")
		}
	case StoreBackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
		// If DatabaseName is provided, ensure it's not empty
		if c.DatabaseName != "" && strings.TrimSpace(c.DatabaseName) == "" {
			return fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	case StoreBackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		LogLevel:       "debug",
		LogFormat:      "text",
		StoreBackend:   StoreBackendFile,
		HistoryFile:    "lotto-history-test.json",
		RedisAddr:      "localhost:6379",
		RedisKey:       "lottoGameHistory",
		HTTPAddr:       ":0",
		SingleGameCost: 1000,
		Environment:    "test",
	}
}
