package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	StorageDriver string
	DataDir       string
	RedisURL      string
	RoutesFile    string
	AuthDelay     time.Duration
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		StorageDriver: getEnv("STORAGE_DRIVER", "file"),
		DataDir:       getEnv("DATA_DIR", "./data"),
		RedisURL:      os.Getenv("REDIS_URL"),
		RoutesFile:    os.Getenv("ROUTES_FILE"),
		AuthDelay:     authDelay(),
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// authDelay is the simulated network latency for login/signup, 500ms unless
// overridden.
func authDelay() time.Duration {
	value := os.Getenv("AUTH_DELAY_MS")
	if value == "" {
		return 500 * time.Millisecond
	}
	ms, err := strconv.Atoi(value)
	if err != nil || ms < 0 {
		log.Printf("Invalid AUTH_DELAY_MS %q, using default", value)
		return 500 * time.Millisecond
	}
	return time.Duration(ms) * time.Millisecond
}
