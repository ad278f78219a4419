package config

import (
	"os"
	"strconv"
	"time"
	_ "time/tzdata"
)

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables.
type AppConfig struct {
	Port           string
	SlowDelay      time.Duration
	Location       *time.Location
	MetricsEnabled bool
	SwaggerEnabled bool
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:           getEnv("PORT", "3000"),
		SlowDelay:      time.Duration(getEnvInt("SLOW_DELAY_MS", 1000)) * time.Millisecond,
		Location:       getEnvLocation("APP_TIMEZONE", time.UTC),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
		SwaggerEnabled: getEnvBool("SWAGGER_ENABLED", true),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

// getEnvInt rejects negative values, falling back to def.
func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil && i >= 0 {
			return i
		}
	}
	return def
}

func getEnvLocation(key string, def *time.Location) *time.Location {
	if v := os.Getenv(key); v != "" {
		loc, err := time.LoadLocation(v)
		if err == nil {
			return loc
		}
	}
	return def
}
