package util

import (
	"log/slog"
	"os"
	"time"
)

// EnvOrDefault returns the environment variable value or fallback when it is empty.
func EnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// DurationOrDefault parses raw as a duration, warning and returning
// fallback when it is malformed or not positive.
func DurationOrDefault(raw string, fallback time.Duration, logger *slog.Logger) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if logger != nil {
			logger.Warn("invalid duration, using default",
				slog.String("value", raw),
				slog.String("default", fallback.String()))
		}
		return fallback
	}
	return d
}
