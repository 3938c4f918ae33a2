package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries the process-level settings for the digest CLI. Values come
// from the environment; flags may override individual fields.
type Config struct {
	Provider string // openai | anthropic | gemini | ollama | dummy
	Model    string

	Store           string // memory | sqlite | postgres | mongo
	SQLitePath      string
	PostgresDSN     string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	CacheBackend string // none | lru | redis
	CacheSize    int
	CacheTTL     time.Duration
	RedisAddr    string
	RedisPass    string
	RedisDB      int

	SafetyTokens  int
	MinChunkLines int
	OverlapLines  int
	PreviewLimit  int
	MaxTokens     int
	Temperature   float64
}

// FromEnv reads configuration from the environment, applying defaults for
// anything unset.
func FromEnv() Config {
	return Config{
		Provider: envStr("RECAPD_PROVIDER", "openai"),
		Model:    envStr("RECAPD_MODEL", "gpt-4o-mini"),

		Store:           envStr("RECAPD_STORE", "sqlite"),
		SQLitePath:      envStr("RECAPD_SQLITE_PATH", "recapd.db"),
		PostgresDSN:     envStr("RECAPD_POSTGRES_DSN", ""),
		MongoURI:        envStr("RECAPD_MONGO_URI", ""),
		MongoDatabase:   envStr("RECAPD_MONGO_DB", "recapd"),
		MongoCollection: envStr("RECAPD_MONGO_COLLECTION", "chat_messages"),

		CacheBackend: envStr("RECAPD_CACHE", "none"),
		CacheSize:    envInt("RECAPD_CACHE_SIZE", 256),
		CacheTTL:     envDuration("RECAPD_CACHE_TTL", 10*time.Minute),
		RedisAddr:    envStr("RECAPD_REDIS_ADDR", "localhost:6379"),
		RedisPass:    envStr("RECAPD_REDIS_PASSWORD", ""),
		RedisDB:      envInt("RECAPD_REDIS_DB", 0),

		SafetyTokens:  envInt("RECAPD_SAFETY_TOKENS", 500),
		MinChunkLines: envInt("RECAPD_MIN_CHUNK_LINES", 5),
		OverlapLines:  envInt("RECAPD_OVERLAP_LINES", 2),
		PreviewLimit:  envInt("RECAPD_PREVIEW_LIMIT", 50),
		MaxTokens:     envInt("RECAPD_MAX_TOKENS", 0),
		Temperature:   envFloat("RECAPD_TEMPERATURE", 0),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
