package main

import (
	"os"

	"github.com/joho/godotenv"
)

// Config contains tool-wide settings sourced from the environment.
type Config struct {
	Root      string
	LogLevel  string
	LogFormat string
}

func loadConfig() Config {
	_ = godotenv.Load(".env")

	return Config{
		Root:      os.Getenv("MIRCORPUS_ROOT"),
		LogLevel:  envOrDefault("MIRCORPUS_LOG_LEVEL", "info"),
		LogFormat: envOrDefault("MIRCORPUS_LOG_FORMAT", "text"),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
