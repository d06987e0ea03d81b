package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every process-wide setting. It is built once in main and
// passed to constructors; nothing mutates it afterwards.
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret     string
	JWTLifetime   time.Duration
	JWTCookieName string

	AdminAPIKey string
}

func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        getEnv("DB_NAME", "storefront"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTCookieName: getEnv("JWT_COOKIE_NAME", "storefront_jwt"),
		AdminAPIKey:   os.Getenv("ADMIN_API_KEY"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	hours, err := strconv.Atoi(getEnv("JWT_LIFETIME_HOURS", "24"))
	if err != nil || hours <= 0 {
		return Config{}, fmt.Errorf("invalid JWT_LIFETIME_HOURS")
	}
	cfg.JWTLifetime = time.Duration(hours) * time.Hour

	return cfg, nil
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
