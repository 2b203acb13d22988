package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "data/leads.json", cfg.DataFile)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_FILE", "/var/lib/leadtrack/leads.json")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, https://app.example.com")

	cfg := Load()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/var/lib/leadtrack/leads.json", cfg.DataFile)
	assert.Equal(t, []string{"http://localhost:5173", "https://app.example.com"}, cfg.CORSOrigins)
}
