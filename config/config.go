package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config reads a variable from .env or the process environment.
func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		return os.Getenv(key)
	}
	return os.Getenv(key)
}

// ConfigOr reads a variable and falls back to def when unset.
func ConfigOr(key, def string) string {
	if v := Config(key); v != "" {
		return v
	}
	return def
}
