package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver        string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	RedisHost       string
	RedisPort       string
	SessionSecret   string
	GinMode         string
	ServerAddr      string
	Timezone        string
	ReportSchedules bool
}

func Load() *Config {
	// A .env file is optional; real environments set variables directly.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return &Config{
		DBDriver:        getEnv("DB_DRIVER", "mysql"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "3306"),
		DBUser:          getEnv("DB_USER", "teamtrack"),
		DBPassword:      getEnv("DB_PASSWORD", "teamtrack"),
		DBName:          getEnv("DB_NAME", "teamtrack"),
		RedisHost:       getEnv("REDIS_HOST", "localhost"),
		RedisPort:       getEnv("REDIS_PORT", "6379"),
		SessionSecret:   getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		ServerAddr:      getEnv("SERVER_ADDR", ":8080"),
		Timezone:        getEnv("TIMEZONE", "Local"),
		ReportSchedules: getEnv("REPORT_SCHEDULES", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
