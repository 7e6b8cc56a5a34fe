package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr        string
	StoreAPIURL     string
	StoreAPITimeout time.Duration
	ShutdownTimeout time.Duration
	SessionTTL      time.Duration
	ResetDelay      time.Duration
	StatsInterval   time.Duration
	CatalogPageSize int
	AllowedOrigins  []string
}

// FromEnv builds Config with defaults, overridden by environment variables.
// A .env file in the working directory is honored when present.
func FromEnv() Config {
	godotenv.Load()

	return Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		StoreAPIURL:     envOrDefault("STORE_API_URL", "http://localhost:5000"),
		StoreAPITimeout: envSeconds("STORE_API_TIMEOUT_SECONDS", 15*time.Second),
		ShutdownTimeout: envSeconds("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		SessionTTL:      envSeconds("SESSION_TTL_SECONDS", 8*time.Hour),
		ResetDelay:      envSeconds("SALE_RESET_SECONDS", 3*time.Second),
		StatsInterval:   envSeconds("STATS_REFRESH_SECONDS", 5*time.Minute),
		CatalogPageSize: envInt("CATALOG_PAGE_SIZE", 500),
		AllowedOrigins:  envList("ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
