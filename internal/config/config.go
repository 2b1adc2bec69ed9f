package config

import (
	"log"
	"os"
)

type Config struct {
	AppPort string

	PostgresDSN string
	RedisAddr   string

	// Cron spec shared by all provider fetch jobs.
	CronSpec string

	NewsAPIURL string
	NewsAPIKey string

	GuardianAPIURL string
	GuardianAPIKey string

	NYTAPIURL string
	NYTAPIKey string
}

func Load() *Config {
	cfg := &Config{
		AppPort:     getEnv("APP_PORT", "9000"),
		PostgresDSN: getEnv("POSTGRES_DSN", "host=localhost user=newshub password=newshub dbname=newshub port=5432 sslmode=disable TimeZone=UTC"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		CronSpec:    getEnv("CRON_SPEC", "* * * * *"),

		NewsAPIURL: getEnv("NEWS_API_URL", "https://newsapi.org/v2/top-headlines"),
		NewsAPIKey: getEnv("NEWS_API_KEY", ""),

		GuardianAPIURL: getEnv("GUARDIAN_API_URL", "https://content.guardianapis.com/search"),
		GuardianAPIKey: getEnv("GUARDIAN_API_KEY", ""),

		NYTAPIURL: getEnv("NYT_API_URL", "https://api.nytimes.com/svc/topstories/v2/home.json"),
		NYTAPIKey: getEnv("NYT_API_KEY", ""),
	}

	log.Printf("config loaded: port=%s cron=%s", cfg.AppPort, cfg.CronSpec)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
