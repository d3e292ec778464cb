package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// APIBase is the timetable service root. It is fixed at build time:
//
//	go build -ldflags "-X github.com/Nixie-Tech-LLC/study-planner/internal/config.APIBase=http://scheduler:8000"
var APIBase = "http://127.0.0.1:8000"

// Config holds environment-based settings
type Config struct {
	Environment   string
	ServerAddress string
	LogLevel      string
	APIBase       string
	SessionTTL    time.Duration

	RedisAddress  string
	RedisUsername string
	RedisPassword string

	MQTTBrokerURL   string
	MQTTClientID    string
	MQTTTopicPrefix string

	AllowOrigins []string
}

func (c *Config) Production() bool { return c.Environment == "production" }

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first if present; real env vars win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}

	ttl, err := time.ParseDuration(getenv("SESSION_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", ttl)
	}

	return &Config{
		Environment:   getenv("APP_ENV", "development"),
		ServerAddress: getenv("SERVER_ADDRESS", ":8080"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		APIBase:       APIBase,
		SessionTTL:    ttl,

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		MQTTBrokerURL:   os.Getenv("MQTT_BROKER_URL"),
		MQTTClientID:    getenv("MQTT_CLIENT_ID", "study-planner"),
		MQTTTopicPrefix: getenv("MQTT_TOPIC_PREFIX", "planner"),

		AllowOrigins: splitList(getenv("CORS_ALLOW_ORIGINS", "*")),
	}, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
