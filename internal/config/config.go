package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures runtime configuration values for the signup service.
type Config struct {
	HTTPAddress       string
	KafkaBrokers      []string
	RosterTopic       string
	WebhookURL        string
	WebhookToken      string
	WebhookTimeout    time.Duration
	AnnounceQueueSize int
}

// Load reads environment variables and applies defaults. Kafka and webhook
// announcements stay disabled until their endpoints are configured.
func Load() Config {
	return Config{
		HTTPAddress:       getEnv("HTTP_ADDRESS", ":8080"),
		KafkaBrokers:      splitAndTrim(getEnv("KAFKA_BROKERS", "")),
		RosterTopic:       getEnv("ROSTER_TOPIC", "roster_events"),
		WebhookURL:        getEnv("ROSTER_WEBHOOK_URL", ""),
		WebhookToken:      getEnv("ROSTER_WEBHOOK_TOKEN", ""),
		WebhookTimeout:    getDurationEnv("ROSTER_WEBHOOK_TIMEOUT", 5*time.Second),
		AnnounceQueueSize: getIntEnv("ANNOUNCE_QUEUE_SIZE", 64),
	}
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
