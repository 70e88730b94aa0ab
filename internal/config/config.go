// Package config reads runtime settings from the environment, with an
// optional .env overlay for local development.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env                 string
	TelegramToken       string
	DBPath              string
	CatalogPath         string
	HTTPAddr            string
	RedisAddr           string
	LeaderboardCacheTTL time.Duration
}

// Load builds the Config from environment variables. TELEGRAM_BOT_TOKEN is
// the only required value; everything else has a development default.
// REDIS_ADDR left empty disables leaderboard caching.
func Load() *Config {
	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	return &Config{
		Env:                 getEnvOrDefault("ENV", "development"),
		TelegramToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		DBPath:              getEnvOrDefault("QUIZ_DB_PATH", "quiz.db"),
		CatalogPath:         getEnvOrDefault("QUIZ_CATALOG_PATH", "questions.json"),
		HTTPAddr:            getEnvOrDefault("HTTP_ADDR", ":8080"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		LeaderboardCacheTTL: getEnvAsDurationOrDefault("LEADERBOARD_CACHE_TTL", 30*time.Second),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}
