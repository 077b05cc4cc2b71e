package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_ADDRESS", "")
	t.Setenv("PORT", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("MONGO_DATABASE", "")
	t.Setenv("HTTP_READ_TIMEOUT", "")

	cfg := Load()

	if cfg.HTTPAddress != ":8080" {
		t.Fatalf("expected default address :8080 got %q", cfg.HTTPAddress)
	}
	if cfg.MongoURI != "mongodb://localhost:27017" {
		t.Fatalf("unexpected mongo uri %q", cfg.MongoURI)
	}
	if cfg.MongoDatabase != "exercise_tracker" {
		t.Fatalf("unexpected database %q", cfg.MongoDatabase)
	}
	if cfg.ReadTimeout != 5*time.Second {
		t.Fatalf("unexpected read timeout %v", cfg.ReadTimeout)
	}
}

func TestLoadHonoursPort(t *testing.T) {
	t.Setenv("HTTP_ADDRESS", "")
	t.Setenv("PORT", "3000")

	cfg := Load()
	if cfg.HTTPAddress != ":3000" {
		t.Fatalf("expected :3000 got %q", cfg.HTTPAddress)
	}
}

func TestLoadAddressWinsOverPort(t *testing.T) {
	t.Setenv("HTTP_ADDRESS", ":9999")
	t.Setenv("PORT", "3000")

	cfg := Load()
	if cfg.HTTPAddress != ":9999" {
		t.Fatalf("expected :9999 got %q", cfg.HTTPAddress)
	}
}

func TestLoadIgnoresGarbage(t *testing.T) {
	t.Setenv("HTTP_ADDRESS", "")
	t.Setenv("PORT", "not-a-port")
	t.Setenv("HTTP_READ_TIMEOUT", "soon")

	cfg := Load()
	if cfg.HTTPAddress != ":8080" {
		t.Fatalf("expected fallback address got %q", cfg.HTTPAddress)
	}
	if cfg.ReadTimeout != 5*time.Second {
		t.Fatalf("expected fallback read timeout got %v", cfg.ReadTimeout)
	}
}
