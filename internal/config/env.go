package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr   string
	GinMode   string
	DBDSN     string
	RedisAddr string
	RedisPass string

	JWTSecret string
	// AdminUser / AdminPassHash guard the task mutation endpoints.
	AdminUser     string
	AdminPassHash string

	ReminderSpec string // cron spec for the reservation reminder sweep
}

// LoadEnv reads .env when present and falls back to process env.
func LoadEnv() Env {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return Env{
		AppAddr:       getenvOrDefault("APP_ADDR", ":8080"),
		GinMode:       strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBDSN:         getenvOrDefault("DB_DSN", "root:@tcp(127.0.0.1:3306)/railpass?parseTime=true&charset=utf8mb4&timeout=5s"),
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPass:     strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),
		JWTSecret:     getenvOrDefault("JWT_SECRET", "dev-secret-change-me"),
		AdminUser:     getenvOrDefault("ADMIN_USER", "admin"),
		AdminPassHash: strings.TrimSpace(os.Getenv("ADMIN_PASS_HASH")),
		ReminderSpec:  getenvOrDefault("REMINDER_CRON", "0 7 * * *"),
	}
}

func getenvOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
