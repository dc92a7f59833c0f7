package config

import (
	"errors"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Port            string // HTTP listen port
	Storage         string // "postgres" or "memory"
	DatabaseURL     string
	RedisURL        string // empty disables the transaction list cache
	JWTSecret       string // Secret key for JWT token signing
	JWTTTL          int    // JWT token expiration time in hours
	CacheTTLSeconds int    // Lifetime of cached transaction lists
	LogLevel        string // debug, info, warn or error
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		Port:            getEnv("PORT", "5000"),
		Storage:         strings.ToLower(getEnv("STORAGE", StoragePostgres)),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		RedisURL:        getEnv("REDIS_URL", ""),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTTTL:          getEnvInt("JWT_TTL_HOURS", 24),
		CacheTTLSeconds: getEnvInt("CACHE_TTL_SECONDS", 300),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

// Validate reports every missing or unusable setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL_HOURS must be positive"))
	}
	if c.CacheTTLSeconds <= 0 {
		// 0 would store cached lists without expiry
		errs = append(errs, errors.New("CACHE_TTL_SECONDS must be positive"))
	}
	switch c.Storage {
	case StoragePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for postgres storage"))
		}
	case StorageMemory:
	default:
		errs = append(errs, errors.New("STORAGE must be postgres or memory"))
	}
	return errors.Join(errs...)
}

// SlogLevel parses LogLevel, falling back to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
