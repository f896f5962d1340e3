package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/yeremiapane/restaurant-menu/utils"
)

type Config struct {
	Port           string
	GinMode        string
	DBDriver       string
	DBDSN          string
	LogLevel       string
	RateLimitRPS   float64
	RateLimitBurst int
	CORSOrigin     string
}

// Load reads .env when present, then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Debug("no .env file loaded")
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		DBDriver:       getEnv("DB_DRIVER", "sqlite"),
		DBDSN:          getEnv("DB_DSN", "restaurant_menu.db?_foreign_keys=on"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 50),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 100),
		CORSOrigin:     getEnv("CORS_ORIGIN", "*"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}
