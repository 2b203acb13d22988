// Package config handles application configuration via environment variables.
package config

import (
	"os"
	"strings"
)

// Config holds all configurable values for the app.
type Config struct {
	Env         string
	Port        string
	DataFile    string
	CORSOrigins []string
}

// Load reads environment variables and populates a Config struct.
func Load() *Config {
	origins := strings.Split(getEnv("CORS_ORIGINS", "*"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return &Config{
		Env:         getEnv("ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		DataFile:    getEnv("DATA_FILE", "data/leads.json"),
		CORSOrigins: origins,
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
