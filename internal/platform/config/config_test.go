// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/folio")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 10*time.Minute, cfg.TreeCacheTTL)
	assert.Equal(t, "./data/migrations", cfg.MigrationPath)
	assert.Equal(t, int32(25), cfg.DBMaxConns)
	assert.Equal(t, 30*time.Second, cfg.DBStatementTimeout)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/folio")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("TREE_CACHE_TTL", "90s")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DB_MAX_CONNS", "8")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 90*time.Second, cfg.TreeCacheTTL)
	assert.Equal(t, int32(8), cfg.DBMaxConns)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		unset bool
	}{
		{"database url unset", "DATABASE_URL", true},
		{"database url empty", "DATABASE_URL", false},
		{"redis url unset", "REDIS_URL", true},
		{"redis url empty", "REDIS_URL", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "postgres://localhost/folio")
			t.Setenv("REDIS_URL", "redis://localhost:6379/0")
			t.Setenv(tt.key, "")
			if tt.unset {
				require.NoError(t, os.Unsetenv(tt.key))
			}

			_, err := config.Load()
			assert.ErrorContains(t, err, tt.key)
		})
	}
}

func TestLoad_RangeChecks(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"unknown environment", "ENVIRONMENT", "qa", "ENVIRONMENT must be"},
		{"zero pool", "DB_MAX_CONNS", "0", "DB_MAX_CONNS must be at least 1"},
		{"min above max", "DB_MIN_CONNS", "50", "DB_MIN_CONNS must not exceed"},
		{"negative ttl", "TREE_CACHE_TTL", "-1s", "TREE_CACHE_TTL must not be negative"},
		{"zero rate", "RATE_LIMIT_RPS", "0", "RATE_LIMIT_RPS and RATE_LIMIT_BURST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "postgres://localhost/folio")
			t.Setenv("REDIS_URL", "redis://localhost:6379/0")
			t.Setenv(tt.key, tt.value)

			_, err := config.Load()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
