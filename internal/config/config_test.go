package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, k, v string) {
	t.Helper()
	old, ok := os.LookupEnv(k)
	os.Setenv(k, v)
	t.Cleanup(func() {
		if ok {
			os.Setenv(k, old)
		} else {
			os.Unsetenv(k)
		}
	})
}

func baseRequiredEnv(t *testing.T) {
	t.Helper()
	setEnv(t, "JWT_SECRET", "secret")
	setEnv(t, "MONGO_URI", "mongodb://localhost:27017")
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	baseRequiredEnv(t)
	os.Unsetenv("JWT_SECRET")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_MissingMongoURI(t *testing.T) {
	baseRequiredEnv(t)
	os.Unsetenv("MONGO_URI")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URI")
}

func TestLoad_Defaults(t *testing.T) {
	baseRequiredEnv(t)
	os.Unsetenv("ACCESS_TOKEN_TTL")
	os.Unsetenv("REFRESH_TOKEN_TTL")
	os.Unsetenv("REDIS_ADDR")
	os.Unsetenv("RABBIT_URL")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, "smarteval", cfg.MongoDB)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.RabbitURL)
}

func TestLoad_Overrides(t *testing.T) {
	baseRequiredEnv(t)
	setEnv(t, "ACCESS_TOKEN_TTL", "5m")
	setEnv(t, "REFRESH_TOKEN_TTL", "48h")
	setEnv(t, "LOGIN_RATE_LIMIT", "3")
	setEnv(t, "RATE_LIMIT_WINDOW", "30s")
	setEnv(t, "MONGO_DB", "smarteval_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 48*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, 3, cfg.LoginLimit)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	assert.Equal(t, "smarteval_test", cfg.MongoDB)
}

func TestLoad_InvalidDuration(t *testing.T) {
	baseRequiredEnv(t)
	setEnv(t, "ACCESS_TOKEN_TTL", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidInt(t *testing.T) {
	baseRequiredEnv(t)
	setEnv(t, "LOGIN_RATE_LIMIT", "many")

	_, err := Load()
	require.Error(t, err)
}
