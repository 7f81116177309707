package config

import (
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション設定を表す
type Config struct {
	Server  ServerConfig
	Auth    AuthConfig
	Stats   StatsConfig
	Gateway GatewayConfig
}

// ServerConfig はサーバー設定
type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// AuthConfig は認証設定
type AuthConfig struct {
	// AdminToken はAUTH_REQUESTで管理者権限を与える共有トークン
	AdminToken string
}

// StatsConfig は統計配信の設定
type StatsConfig struct {
	BroadcastInterval time.Duration
}

// GatewayConfig はゲートウェイ接続の設定
type GatewayConfig struct {
	SendBuffer     int
	PingInterval   time.Duration
	PongWait       time.Duration
	WriteWait      time.Duration
	MaxMessageSize int64
}

// Load は環境変数から設定を読み込む
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Env:          getEnv("APP_ENV", "development"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Auth: AuthConfig{
			AdminToken: getEnv("ADMIN_TOKEN", "ADMIN_SECRET"),
		},
		Stats: StatsConfig{
			BroadcastInterval: getDurationEnv("STATS_BROADCAST_INTERVAL", 10*time.Second),
		},
		Gateway: GatewayConfig{
			SendBuffer:     getIntEnv("GATEWAY_SEND_BUFFER", 64),
			PingInterval:   getDurationEnv("GATEWAY_PING_INTERVAL", 30*time.Second),
			PongWait:       getDurationEnv("GATEWAY_PONG_WAIT", 60*time.Second),
			WriteWait:      getDurationEnv("GATEWAY_WRITE_WAIT", 10*time.Second),
			MaxMessageSize: int64(getIntEnv("GATEWAY_MAX_MESSAGE_SIZE", 8192)),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
