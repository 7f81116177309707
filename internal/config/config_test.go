package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "ADMIN_SECRET", cfg.Auth.AdminToken)
	assert.Equal(t, 10*time.Second, cfg.Stats.BroadcastInterval)
	assert.Equal(t, 64, cfg.Gateway.SendBuffer)
	assert.Equal(t, 30*time.Second, cfg.Gateway.PingInterval)
	assert.Equal(t, 60*time.Second, cfg.Gateway.PongWait)
	assert.Equal(t, int64(8192), cfg.Gateway.MaxMessageSize)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("ADMIN_TOKEN", "super-secret")
	t.Setenv("STATS_BROADCAST_INTERVAL", "3s")
	t.Setenv("GATEWAY_SEND_BUFFER", "128")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, "super-secret", cfg.Auth.AdminToken)
	assert.Equal(t, 3*time.Second, cfg.Stats.BroadcastInterval)
	assert.Equal(t, 128, cfg.Gateway.SendBuffer)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("STATS_BROADCAST_INTERVAL", "not-a-duration")
	t.Setenv("GATEWAY_SEND_BUFFER", "not-a-number")

	cfg := Load()

	assert.Equal(t, 10*time.Second, cfg.Stats.BroadcastInterval)
	assert.Equal(t, 64, cfg.Gateway.SendBuffer)
}
