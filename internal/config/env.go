package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// loadEnvFile loads the first of .env/.env.local that exists. Variables already
// present in the process environment are never overwritten.
func loadEnvFile() {
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			slog.Warn("Failed to load env file", "path", envPath, "error", err)
			continue
		}
		slog.Debug("Loaded environment variables", "path", envPath)
		return
	}
}
