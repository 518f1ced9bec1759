package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all daemon configuration.
type Config struct {
	// Server configuration
	Port string

	// Upstream API
	AccessToken    string
	BaseURL        string        // empty means the library default
	RequestTimeout time.Duration // per-request timeout

	// Cache configuration
	CacheBackend string // "memory" or "redis"
	CacheMaxSize int
	CacheTTL     time.Duration

	// Redis configuration (used when CacheBackend is "redis")
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Logging
	LogLevel  string
	LogPretty bool
}

// Load reads configuration from environment variables with sensible
// defaults. A .env file is honored for local development; in production the
// environment is set directly.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		Port: getEnv("PORT", "3000"),

		AccessToken:    getEnv("IPMETA_TOKEN", ""),
		BaseURL:        getEnv("IPMETA_BASE_URL", ""),
		RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 2*time.Second),

		CacheBackend: getEnv("CACHE_BACKEND", "memory"),
		CacheMaxSize: getEnvAsInt("CACHE_MAXSIZE", 4096),
		CacheTTL:     getEnvAsDuration("CACHE_TTL", 24*time.Hour),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvAsBool("LOG_PRETTY", true),
	}
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt reads an environment variable as an integer. Returns the
// default if not set or invalid.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration reads an environment variable as a Go duration string
// (e.g. "2s", "24h"). Returns the default if not set or invalid.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool reads an environment variable as a boolean. Returns the
// default if not set or invalid.
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
