package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "SERVER_ADDRESS", "LOG_LEVEL", "SESSION_TTL",
		"REDIS_ADDRESS", "REDIS_USERNAME", "REDIS_PASSWORD",
		"MQTT_BROKER_URL", "MQTT_CLIENT_ID", "MQTT_TOPIC_PREFIX", "CORS_ALLOW_ORIGINS",
	} {
		t.Setenv(k, "")
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.Production())
	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.APIBase)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Empty(t, cfg.RedisAddress)
	assert.Empty(t, cfg.MQTTBrokerURL)
	assert.Equal(t, "study-planner", cfg.MQTTClientID)
	assert.Equal(t, "planner", cfg.MQTTTopicPrefix)
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Production())
	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddress)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowOrigins)
}

func TestLoadRejectsBadTTL(t *testing.T) {
	clearEnv(t)

	t.Setenv("SESSION_TTL", "soon")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("SESSION_TTL", "-1h")
	_, err = Load()
	assert.Error(t, err)
}
