package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("ZOHO_TIMEOUT", "")
	t.Setenv("OPENAI_MODEL", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level, got %s", cfg.LogLevel)
	}
	if cfg.ZohoTimeout != 10*time.Second {
		t.Fatalf("expected default zoho timeout, got %s", cfg.ZohoTimeout)
	}
	if cfg.ZohoTokenTTL != 50*time.Minute {
		t.Fatalf("expected default zoho token ttl, got %s", cfg.ZohoTokenTTL)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Fatalf("expected default openai model, got %s", cfg.OpenAIModel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("VERIFY_TOKEN", "hook-secret")
	t.Setenv("ZOHO_CLIENT_ID", "client-123")
	t.Setenv("ZOHO_REFRESH_TOKEN", "refresh-abc")
	t.Setenv("ZOHO_TIMEOUT", "30s")
	t.Setenv("ZOHO_TOKEN_TTL", "45m")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("ENABLE_TEST_ROUTES", "true")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.VerifyToken != "hook-secret" {
		t.Fatalf("expected verify token override, got %s", cfg.VerifyToken)
	}
	if cfg.ZohoClientID != "client-123" {
		t.Fatalf("expected zoho client id override, got %s", cfg.ZohoClientID)
	}
	if cfg.ZohoRefreshToken != "refresh-abc" {
		t.Fatalf("expected zoho refresh token override, got %s", cfg.ZohoRefreshToken)
	}
	if cfg.ZohoTimeout != 30*time.Second {
		t.Fatalf("expected zoho timeout override, got %s", cfg.ZohoTimeout)
	}
	if cfg.ZohoTokenTTL != 45*time.Minute {
		t.Fatalf("expected zoho token ttl override, got %s", cfg.ZohoTokenTTL)
	}
	if cfg.OpenAIModel != "gpt-4o" {
		t.Fatalf("expected openai model override, got %s", cfg.OpenAIModel)
	}
	if !cfg.EnableTestRoutes {
		t.Fatalf("expected test routes enabled")
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("ZOHO_TIMEOUT", "not-a-duration")
	cfg := Load()
	if cfg.ZohoTimeout != 10*time.Second {
		t.Fatalf("expected fallback to default timeout, got %s", cfg.ZohoTimeout)
	}
}
