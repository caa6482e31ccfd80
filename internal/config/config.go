// Package config loads the server configuration and the bot's integration
// options from environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/adrienjoly/telegram-scribe-bot/internal/options"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	EnableHSTS      bool
	RedisURL        string
	RateLimit       string
	RequestTimeout  time.Duration
	MaxRequestSize  int64
	ServerDebugMode bool
	OTELEnabled     bool
	OTELEndpoint    string
}

// Load loads the server configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		EnableHSTS:      getEnvBool("ENABLE_HSTS", false),
		RedisURL:        getEnv("REDIS_URL", ""),
		RateLimit:       getEnv("RATE_LIMIT", ""),
		RequestTimeout:  time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
		MaxRequestSize:  int64(getEnvInt("MAX_REQUEST_SIZE_BYTES", 0)),
		ServerDebugMode: getEnvBool("SERVER_DEBUG_MODE", false),
		OTELEnabled:     getEnvBool("OTEL_ENABLED", false),
		OTELEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
	return cfg, nil
}

// LoadOptions builds the integration options from environment variables.
// Empty variables leave their key unset, so each command can report exactly
// which option its integration is missing.
func LoadOptions() options.Values {
	values := options.Values{}
	set := func(namespace, key, envVar string) {
		if v := os.Getenv(envVar); v != "" {
			ns := values[namespace]
			if ns == nil {
				ns = map[string]string{}
				values[namespace] = ns
			}
			ns[key] = v
		}
	}

	set("telegram", "onlyfromuserid", "TELEGRAM_ONLY_FROM_USER_ID")
	set("bot", "version", "BOT_VERSION")
	set("trello", "apikey", "TRELLO_API_KEY")
	set("trello", "usertoken", "TRELLO_USER_TOKEN")
	set("trello", "boardid", "TRELLO_BOARD_ID")
	set("ticktick", "email", "TICKTICK_EMAIL")
	set("ticktick", "password", "TICKTICK_PASSWORD")
	set("spotify", "clientid", "SPOTIFY_CLIENT_ID")
	set("spotify", "secret", "SPOTIFY_SECRET")
	set("github", "token", "GITHUB_TOKEN")
	set("openwhyd", "username", "OPENWHYD_USERNAME")
	set("openwhyd", "password", "OPENWHYD_PASSWORD")
	set("openwhyd", "api_client_id", "OPENWHYD_API_CLIENT_ID")
	set("openwhyd", "api_client_secret", "OPENWHYD_API_CLIENT_SECRET")
	set("openwhyd", "youtube_api_key", "OPENWHYD_YOUTUBE_API_KEY")

	return values
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
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
