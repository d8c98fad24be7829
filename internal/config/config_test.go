package config

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "Str0ng!TestSecret-With-32+Bytes-Min"

// setRequiredEnv sets the minimum environment for Load to succeed.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("OSITE_SESSION_SECRET", testSecret)
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.ServerHost != "localhost" {
		t.Errorf("expected default host localhost, got %q", cfg.ServerHost)
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.ServerPort)
	}
	if cfg.ContentKey != "osite:content" {
		t.Errorf("expected default content key, got %q", cfg.ContentKey)
	}
	if cfg.CacheTTL() != 60*time.Second {
		t.Errorf("expected default cache TTL 60s, got %v", cfg.CacheTTL())
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development mode by default")
	}
	if cfg.UseRedis() {
		t.Error("expected no redis backend by default")
	}
	if cfg.UseMediaStore() {
		t.Error("expected no media store by default")
	}
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("OSITE_SESSION_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing session secret")
	}
}

func TestLoadShortSecret(t *testing.T) {
	t.Setenv("OSITE_SESSION_SECRET", "too-short")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for short session secret")
	}
	if !strings.Contains(err.Error(), "32 bytes") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestLoadWeakSecret(t *testing.T) {
	t.Setenv("OSITE_SESSION_SECRET", "change-me-to-32-byte-secret-key!")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for known weak secret")
	}
}

func TestLoadInvalidCacheTTL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OSITE_CONTENT_CACHE_TTL", "-1")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-positive cache TTL")
	}
}

func TestServerAddr(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OSITE_SERVER_HOST", "0.0.0.0")
	t.Setenv("OSITE_SERVER_PORT", "9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.ServerAddr() != "0.0.0.0:9000" {
		t.Errorf("expected 0.0.0.0:9000, got %q", cfg.ServerAddr())
	}
}

func TestUseMediaStore(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OSITE_MEDIA_ENDPOINT", "minio.local:9000")
	t.Setenv("OSITE_MEDIA_ACCESS_KEY", "access")
	t.Setenv("OSITE_MEDIA_SECRET_KEY", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if !cfg.UseMediaStore() {
		t.Error("expected media store to be configured")
	}
	if cfg.MediaBucket != "osite-media" {
		t.Errorf("expected default bucket, got %q", cfg.MediaBucket)
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		want   bool
	}{
		{"lowercase only", "onlylowercaseletters", false},
		{"two classes", "lowercase123456", false},
		{"three classes", "Lowercase123456", true},
		{"four classes", "L0wercase!23456", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasMinimumEntropy(tt.secret); got != tt.want {
				t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.secret, got, tt.want)
			}
		})
	}
}
