package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string

	STORAGE_DIR     string
	PUBLIC_BASE_URL string
	CORS_ORIGIN     string

	ADMIN_EMAIL    string
	ADMIN_PASSWORD string

	DO_SEED bool
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")

	// The backend cannot run without these two; fail fast instead of
	// falling back to a placeholder that would fail every call later.
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")

	STORAGE_DIR = getEnv("STORAGE_DIR", "./storage")
	PUBLIC_BASE_URL = getEnv("PUBLIC_BASE_URL", "http://localhost:"+PORT)
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:3000")

	ADMIN_EMAIL = getEnv("ADMIN_EMAIL", "")
	ADMIN_PASSWORD = getEnv("ADMIN_PASSWORD", "")

	DO_SEED = getEnv("DO_SEED", "false") == "true"
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
