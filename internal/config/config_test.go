package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "secretcode")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "movie-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:3000", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 2*time.Second, cfg.Auth.IdentityLookupTimeout())
	assert.True(t, cfg.Auth.RequireBearerScheme)
	assert.Empty(t, cfg.Auth.MovieWriteRoles)
	assert.Empty(t, cfg.Events.KafkaBrokers)
	assert.Equal(t, 5*time.Minute, cfg.Redis.MovieTTL())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("APP_PORT", "8081")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "15")
	t.Setenv("AUTH_IDENTITY_LOOKUP_TIMEOUT_MS", "250")
	t.Setenv("AUTH_REQUIRE_BEARER_SCHEME", "false")
	t.Setenv("AUTH_MOVIE_WRITE_ROLES", "admin, editor ,")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("POSTGRES_MAX_CONNS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8081", cfg.App.Addr())
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 250*time.Millisecond, cfg.Auth.IdentityLookupTimeout())
	assert.False(t, cfg.Auth.RequireBearerScheme)
	assert.Equal(t, []string{"admin", "editor"}, cfg.Auth.MovieWriteRoles)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.KafkaBrokers)
	assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "secretcode")
	t.Setenv("REDIS_DB", "one")

	_, err := Load()
	assert.Error(t, err)
}
