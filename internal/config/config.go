// Package config provides configuration loading and validation for the job board.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port           int
	DatabaseURL    string
	UploadDir      string
	MaxUploadBytes int64
	LogJSON        bool
	Debug          bool
}

// NewServerConfig builds a server configuration from environment variables.
// DATABASE_URL is required; the rest have defaults.
func NewServerConfig() (*ServerConfig, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	cfg := &ServerConfig{
		Port:           8080,
		DatabaseURL:    databaseURL,
		UploadDir:      "uploads/resumes",
		MaxUploadBytes: 5 << 20, // 5MB
		LogJSON:        os.Getenv("LOG_FORMAT") == "json",
		Debug:          os.Getenv("LOG_DEBUG") == "true",
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		cfg.UploadDir = dir
	}
	if maxStr := os.Getenv("MAX_UPLOAD_BYTES"); maxStr != "" {
		max, err := strconv.ParseInt(maxStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES: %v", err)
		}
		cfg.MaxUploadBytes = max
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates the configuration.
func (c *ServerConfig) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if c.MaxUploadBytes < 1 {
		return fmt.Errorf("max upload size must be positive, got: %d", c.MaxUploadBytes)
	}
	return nil
}
