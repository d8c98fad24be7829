// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	SessionSecret string `env:"OSITE_SESSION_SECRET,required"`
	ServerHost    string `env:"OSITE_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"OSITE_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"OSITE_ENV" envDefault:"development"`
	LogLevel      string `env:"OSITE_LOG_LEVEL" envDefault:"info"`

	// Content store configuration. When OSITE_REDIS_URL is empty the server
	// runs without a backend: reads serve the bundled default content and
	// writes are accepted but not persisted.
	RedisURL        string `env:"OSITE_REDIS_URL"`
	ContentKey      string `env:"OSITE_CONTENT_KEY" envDefault:"osite:content"`
	ContentCacheTTL int    `env:"OSITE_CONTENT_CACHE_TTL" envDefault:"60"` // seconds

	// Admin credentials. The password is stored as an argon2id hash,
	// generated with `osite -hash-password`.
	AdminEmail        string `env:"OSITE_ADMIN_EMAIL" envDefault:"admin@example.com"`
	AdminPasswordHash string `env:"OSITE_ADMIN_PASSWORD_HASH"`

	// Media object store (S3-compatible). Optional; uploads are rejected
	// with a warning when not configured.
	MediaEndpoint  string `env:"OSITE_MEDIA_ENDPOINT"`
	MediaAccessKey string `env:"OSITE_MEDIA_ACCESS_KEY"`
	MediaSecretKey string `env:"OSITE_MEDIA_SECRET_KEY"`
	MediaBucket    string `env:"OSITE_MEDIA_BUCKET" envDefault:"osite-media"`
	MediaUseSSL    bool   `env:"OSITE_MEDIA_USE_SSL" envDefault:"true"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedis returns true if a content backend is configured.
func (c Config) UseRedis() bool {
	return c.RedisURL != ""
}

// UseMediaStore returns true if the media object store is configured.
func (c Config) UseMediaStore() bool {
	return c.MediaEndpoint != "" && c.MediaAccessKey != "" && c.MediaSecretKey != ""
}

// CacheTTL returns the content cache TTL as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.ContentCacheTTL) * time.Second
}

// MinSessionSecretLength is the minimum required length for the session secret.
// AES-256 requires 32 bytes minimum for secure encryption.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate session secret length
	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("OSITE_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("OSITE_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("OSITE_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.ContentCacheTTL <= 0 {
		return nil, fmt.Errorf("OSITE_CONTENT_CACHE_TTL must be positive, got %d", cfg.ContentCacheTTL)
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
