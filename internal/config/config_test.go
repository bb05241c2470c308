package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("APP_SECRET", "")
	t.Setenv("CLIENT_ORIGIN", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("UPLOAD_DIR", "")

	cfg := FromEnv()

	assert.Equal(t, ":5001", cfg.Port)
	assert.Equal(t, "chatify-dev-secret", cfg.AppSecret)
	assert.Equal(t, "http://localhost:5173", cfg.ClientOrigin)
	assert.Equal(t, "chatify.db", cfg.DBPath)
	assert.Equal(t, "uploads", cfg.UploadDir)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("APP_SECRET", "prod-secret")
	t.Setenv("CLIENT_ORIGIN", "https://chat.example.com")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("UPLOAD_DIR", "/tmp/uploads")

	cfg := FromEnv()

	assert.Equal(t, ":9000", cfg.Port)
	assert.Equal(t, "prod-secret", cfg.AppSecret)
	assert.Equal(t, "https://chat.example.com", cfg.ClientOrigin)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, "/tmp/uploads", cfg.UploadDir)
}

func TestFromEnvPortAlreadyPrefixed(t *testing.T) {
	t.Setenv("PORT", ":7777")

	cfg := FromEnv()

	assert.Equal(t, ":7777", cfg.Port)
}
