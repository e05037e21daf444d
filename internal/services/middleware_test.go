package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"harborview/internal/config"
	"harborview/internal/domain"
	"harborview/internal/util"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authTestRouter(cfg *config.AuthConfig) *gin.Engine {
	r := gin.New()
	r.GET("/protected", AuthMiddleware(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": Username(c)})
	})
	return r
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	cfg := &config.AuthConfig{SecretKey: "test-secret-key-that-is-long-enough-123", TokenExpireHours: 1}
	r := authTestRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	cfg := &config.AuthConfig{SecretKey: "test-secret-key-that-is-long-enough-123", TokenExpireHours: 1}
	r := authTestRouter(cfg)

	for _, header := range []string{"Token abc", "Bearer", "abc"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, w.Code)
		}
	}
}

func TestAuthMiddlewareBadToken(t *testing.T) {
	cfg := &config.AuthConfig{SecretKey: "test-secret-key-that-is-long-enough-123", TokenExpireHours: 1}
	r := authTestRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.valid.token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	cfg := &config.AuthConfig{SecretKey: "test-secret-key-that-is-long-enough-123", TokenExpireHours: 1}
	admin := &domain.Admin{ID: bson.NewObjectID(), Username: "testadmin"}
	token, _, err := util.GenerateToken(cfg, admin)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	r := authTestRouter(cfg)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}
	if body := w.Body.String(); !strings.Contains(body, "testadmin") {
		t.Errorf("body %q does not carry the username", body)
	}
}

func TestAuthMiddlewareTokenSignedWithOtherSecret(t *testing.T) {
	signer := &config.AuthConfig{SecretKey: "a-completely-different-secret-key-456789", TokenExpireHours: 1}
	admin := &domain.Admin{ID: bson.NewObjectID(), Username: "intruder"}
	token, _, err := util.GenerateToken(signer, admin)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	cfg := &config.AuthConfig{SecretKey: "test-secret-key-that-is-long-enough-123", TokenExpireHours: 1}
	r := authTestRouter(cfg)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
