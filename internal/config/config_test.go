package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-that-is-long-enough-123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.App.Port != "5000" {
		t.Errorf("Port = %q, want 5000", cfg.App.Port)
	}
	if cfg.Database.URI != "mongodb://localhost:27017" {
		t.Errorf("URI = %q", cfg.Database.URI)
	}
	if cfg.Database.Name != "harborview" {
		t.Errorf("Name = %q", cfg.Database.Name)
	}
	if cfg.Auth.TokenExpireHours != 24 {
		t.Errorf("TokenExpireHours = %d, want 24", cfg.Auth.TokenExpireHours)
	}
	if cfg.Email.SendTimeout != 10*time.Second {
		t.Errorf("SendTimeout = %v, want 10s", cfg.Email.SendTimeout)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load should fail without JWT_SECRET")
	}
}

func TestEmailDisabledWithoutCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-that-is-long-enough-123")
	t.Setenv("EMAIL_ENABLED", "true")
	t.Setenv("SMTP_USERNAME", "")
	t.Setenv("SMTP_PASSWORD", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Email.Enabled {
		t.Error("email should be forced off without SMTP credentials")
	}
}

func TestEmailEnabledWithCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-that-is-long-enough-123")
	t.Setenv("EMAIL_ENABLED", "true")
	t.Setenv("SMTP_USERNAME", "mailer@example.com")
	t.Setenv("SMTP_PASSWORD", "mailer-password")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Email.Enabled {
		t.Error("email should be enabled with credentials present")
	}
}

func TestAllowedOriginsParsing(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-that-is-long-enough-123")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.CORS.AllowedOrigins) != len(want) {
		t.Fatalf("AllowedOrigins = %v, want %v", cfg.CORS.AllowedOrigins, want)
	}
	for i := range want {
		if cfg.CORS.AllowedOrigins[i] != want[i] {
			t.Errorf("AllowedOrigins[%d] = %q, want %q", i, cfg.CORS.AllowedOrigins[i], want[i])
		}
	}
}
