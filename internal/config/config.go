// Package config loads server settings from the environment with sanitized
// defaults for local development.
package config

import "os"

type Config struct {
	Port         string
	AppSecret    string
	ClientOrigin string
	DBPath       string
	UploadDir    string
}

func defaults() Config {
	return Config{
		Port:         ":5001",
		AppSecret:    "chatify-dev-secret",
		ClientOrigin: "http://localhost:5173",
		DBPath:       "chatify.db",
		UploadDir:    "uploads",
	}
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for anything unset.
func FromEnv() *Config {
	cfg := defaults()

	if port := os.Getenv("PORT"); port != "" {
		if port[0] != ':' {
			port = ":" + port
		}
		cfg.Port = port
	}
	if secret := os.Getenv("APP_SECRET"); secret != "" {
		cfg.AppSecret = secret
	}
	if origin := os.Getenv("CLIENT_ORIGIN"); origin != "" {
		cfg.ClientOrigin = origin
	}
	if path := os.Getenv("DB_PATH"); path != "" {
		cfg.DBPath = path
	}
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		cfg.UploadDir = dir
	}

	return &cfg
}
