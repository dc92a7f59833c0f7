package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORAGE", "DATABASE_URL", "REDIS_URL", "JWT_SECRET", "JWT_TTL_HOURS", "CACHE_TTL_SECONDS", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, 24, cfg.JWTTTL)
	assert.Equal(t, 300, cfg.CacheTTLSeconds)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("STORAGE", "Memory")
	t.Setenv("DATABASE_URL", "postgres://localhost/finance")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL_HOURS", "2")
	t.Setenv("CACHE_TTL_SECONDS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, "postgres://localhost/finance", cfg.DatabaseURL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 2, cfg.JWTTTL)
	assert.Equal(t, 300, cfg.CacheTTLSeconds, "unparsable ints fall back to the default")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr []string
	}{
		{
			name: "postgres ok",
			cfg:  Config{Storage: StoragePostgres, DatabaseURL: "postgres://x", JWTSecret: "k", JWTTTL: 1, CacheTTLSeconds: 1},
		},
		{
			name: "memory needs no database url",
			cfg:  Config{Storage: StorageMemory, JWTSecret: "k", JWTTTL: 1, CacheTTLSeconds: 1},
		},
		{
			name:    "zero cache ttl",
			cfg:     Config{Storage: StorageMemory, JWTSecret: "k", JWTTTL: 1, CacheTTLSeconds: 0},
			wantErr: []string{"CACHE_TTL_SECONDS must be positive"},
		},
		{
			name:    "negative cache ttl",
			cfg:     Config{Storage: StorageMemory, JWTSecret: "k", JWTTTL: 1, CacheTTLSeconds: -5},
			wantErr: []string{"CACHE_TTL_SECONDS must be positive"},
		},
		{
			name:    "missing secret and database url",
			cfg:     Config{Storage: StoragePostgres, JWTTTL: 1, CacheTTLSeconds: 1},
			wantErr: []string{"JWT_SECRET is required", "DATABASE_URL is required"},
		},
		{
			name:    "bad storage and ttl",
			cfg:     Config{Storage: "sqlite", JWTSecret: "k", CacheTTLSeconds: 1},
			wantErr: []string{"STORAGE must be postgres or memory", "JWT_TTL_HOURS must be positive"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if len(tt.wantErr) == 0 {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	} {
		cfg := Config{LogLevel: in}
		assert.Equal(t, want, cfg.SlogLevel(), in)
	}
}
