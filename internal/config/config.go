package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Port      string
	MongoURI  string
	DBName    string
	JWTSecret string

	// TokenExpiry is the lifetime of issued JWTs.
	TokenExpiry time.Duration

	// MaintainTolerance is the ± fraction of target within which a
	// MAINTAIN goal counts as met. The default of 0.10 is part of the
	// evaluation contract.
	MaintainTolerance float64

	// TrendWindow is the default moving-average window, in observations.
	TrendWindow int

	// DashboardDays is the width of the dashboard's trailing summary
	// window, in days.
	DashboardDays int
}

// LoadConfig reads configuration from the environment, with .env as a
// development convenience.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	return &Config{
		Port:              getEnv("PORT", "8080"),
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:            getEnv("DB_NAME", "healthmetrics"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		TokenExpiry:       getDurationEnv("TOKEN_EXPIRY", 24*time.Hour),
		MaintainTolerance: getFloatEnv("MAINTAIN_TOLERANCE", 0.10),
		TrendWindow:       getIntEnv("TREND_WINDOW", 7),
		DashboardDays:     getIntEnv("DASHBOARD_DAYS", 7),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value %q for %s, using default %d", value, key, fallback)
		return fallback
	}
	return parsed
}

func getFloatEnv(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Invalid value %q for %s, using default %v", value, key, fallback)
		return fallback
	}
	return parsed
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid value %q for %s, using default %v", value, key, fallback)
		return fallback
	}
	return parsed
}
