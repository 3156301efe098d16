package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadENV loads the environment variables from .env when GO_ENV is unset or development
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

type EnvironmentVariable struct {
	GO_ENV string
	PORT   int
	// Database Configuration
	DATABASE_URL string
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string
	// JWT Configuration
	JWT_SECRET string
	JWT_ISSUER string
	JWT_EXPIRY time.Duration
	// Redis Configuration
	REDIS_URL string
	// CORS and rate limiting
	ALLOWED_ORIGINS     string
	RATE_LIMIT_REQUESTS int
	RATE_LIMIT_WINDOW   time.Duration
	// Media storage (S3 compatible)
	SPACES_ACCESS_KEY string
	SPACES_SECRET_KEY string
	SPACES_BUCKET     string
	SPACES_REGION     string
	SPACES_ENDPOINT   string
	SPACES_CDN_URL    string
	// Seed admin account
	ADMIN_USERNAME string
	ADMIN_EMAIL    string
	ADMIN_PASSWORD string
}

// IsProduction reports whether GO_ENV is production
func (e *EnvironmentVariable) IsProduction() bool {
	return e.GO_ENV == "production"
}

func Get() (*EnvironmentVariable, error) {

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	envVariables := &EnvironmentVariable{
		GO_ENV:       os.Getenv("GO_ENV"),
		PORT:         port,
		DATABASE_URL: os.Getenv("DATABASE_URL"),
		DB_USER_NAME: os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:  os.Getenv("DB_PASSWORD"),
		DB_NAME:      os.Getenv("DB_NAME"),
		DB_HOST:      getOrDefault("DB_HOST", "localhost"),
		DB_PORT:      getOrDefault("DB_PORT", "5432"),
		DB_SSL_MODE:  getOrDefault("DB_SSL_MODE", "disable"),
		// JWT
		JWT_SECRET: os.Getenv("JWT_SECRET"),
		JWT_ISSUER: getOrDefault("JWT_ISSUER", "study-abroad-cms"),
		JWT_EXPIRY: getDuration("JWT_EXPIRY", 24*time.Hour),
		// Redis
		REDIS_URL: getOrDefault("REDIS_URL", "redis://localhost:6379/0"),
		// CORS
		ALLOWED_ORIGINS:     getOrDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001"),
		RATE_LIMIT_REQUESTS: getInt("RATE_LIMIT_REQUESTS", 100),
		RATE_LIMIT_WINDOW:   getDuration("RATE_LIMIT_WINDOW", time.Minute),
		// Media storage
		SPACES_ACCESS_KEY: os.Getenv("SPACES_ACCESS_KEY"),
		SPACES_SECRET_KEY: os.Getenv("SPACES_SECRET_KEY"),
		SPACES_BUCKET:     os.Getenv("SPACES_BUCKET"),
		SPACES_REGION:     os.Getenv("SPACES_REGION"),
		SPACES_ENDPOINT:   os.Getenv("SPACES_ENDPOINT"),
		SPACES_CDN_URL:    os.Getenv("SPACES_CDN_URL"),
		// Seed admin
		ADMIN_USERNAME: getOrDefault("ADMIN_USERNAME", "admin"),
		ADMIN_EMAIL:    os.Getenv("ADMIN_EMAIL"),
		ADMIN_PASSWORD: os.Getenv("ADMIN_PASSWORD"),
	}

	return envVariables, nil
}

func getOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

// getDuration reads a Go duration string such as "12h" or "90s".
func getDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}
