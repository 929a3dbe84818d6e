package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DatabaseURL string
	RedisURL    string

	JWTSecret string

	// Dynamic pricing knobs for the economic balancer.
	PricingThreshold      int
	PricingMaxCorrection  float64
	PricingCorrectionStep float64

	// Cron spec for the weekly champion batch. Defaults to Monday 00:05 UTC,
	// right after the previous week closes.
	ChampionCron string
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		JWTSecret: getEnv("JWT_SECRET", "dev-secret"),

		ChampionCron: getEnv("CHAMPION_CRON", "5 0 * * 1"),
	}

	var err error
	cfg.PricingThreshold, err = getEnvInt("PRICING_THRESHOLD", 500)
	if err != nil {
		return nil, fmt.Errorf("invalid PRICING_THRESHOLD: %w", err)
	}
	cfg.PricingMaxCorrection, err = getEnvFloat("PRICING_MAX_CORRECTION", 1.5)
	if err != nil {
		return nil, fmt.Errorf("invalid PRICING_MAX_CORRECTION: %w", err)
	}
	cfg.PricingCorrectionStep, err = getEnvFloat("PRICING_CORRECTION_STEP", 0.1)
	if err != nil {
		return nil, fmt.Errorf("invalid PRICING_CORRECTION_STEP: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}
	return strconv.ParseFloat(value, 64)
}
