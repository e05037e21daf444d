package util

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"harborview/internal/config"
	"harborview/internal/domain"
)

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		SecretKey:        "test-secret-key-that-is-long-enough-123",
		TokenExpireHours: 1,
	}
}

func testAdmin() *domain.Admin {
	return &domain.Admin{
		ID:       bson.NewObjectID(),
		Username: "testadmin",
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	cfg := testAuthConfig()
	admin := testAdmin()

	token, expiresAt, err := GenerateToken(cfg, admin)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if !expiresAt.After(time.Now()) {
		t.Errorf("expiry %v is not in the future", expiresAt)
	}

	claims, err := ValidateToken(cfg, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.AdminID != admin.ID.Hex() {
		t.Errorf("AdminID = %q, want %q", claims.AdminID, admin.ID.Hex())
	}
	if claims.Username != admin.Username {
		t.Errorf("Username = %q, want %q", claims.Username, admin.Username)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	cfg := testAuthConfig()
	token, _, err := GenerateToken(cfg, testAdmin())
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other := &config.AuthConfig{
		SecretKey:        "a-completely-different-secret-key-456789",
		TokenExpireHours: 1,
	}
	if _, err := ValidateToken(other, token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestValidateTokenExpired(t *testing.T) {
	cfg := testAuthConfig()
	cfg.TokenExpireHours = -1

	token, _, err := GenerateToken(cfg, testAdmin())
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ValidateToken(cfg, token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("err = %v, want ErrExpiredToken", err)
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := ValidateToken(testAuthConfig(), "not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}
