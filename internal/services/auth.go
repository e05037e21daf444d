package services

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"harborview/internal/config"
	"harborview/internal/database"
	"harborview/internal/domain"
	"harborview/internal/metrics"
	"harborview/internal/util"
)

// AuthService implements admin login and token issuance
type AuthService struct {
	db  *mongo.Database
	cfg *config.AuthConfig
}

// NewAuthService creates a new auth service
func NewAuthService(db *mongo.Database, cfg *config.AuthConfig) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// LoginRequest is the login payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
	Username  string `json:"username"`
}

// Login exchanges username+password for a time-boxed token. Unknown users
// and wrong passwords produce the same generic response so the caller cannot
// tell which check failed.
func (s *AuthService) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Username and password are required")
		return
	}

	username := strings.TrimSpace(req.Username)
	log.Printf("[AUTH] Login attempt for user: %s", username)

	ctx, cancel := storeCtx(c)
	defer cancel()

	var admin domain.Admin
	err := s.db.Collection(database.CollectionAdmins).
		FindOne(ctx, bson.D{{Key: "username", Value: username}}).
		Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			log.Printf("[AUTH] Login failed: user '%s' not found", username)
			metrics.RecordAuthAttempt(false)
			respondAuth(c, "Invalid credentials")
			return
		}
		respondStore(c, "Failed to look up admin", err)
		return
	}

	if !util.CheckPasswordHash(req.Password, admin.HashedPassword) {
		log.Printf("[AUTH] Login failed: invalid password for user '%s'", username)
		metrics.RecordAuthAttempt(false)
		respondAuth(c, "Invalid credentials")
		return
	}

	token, expiresAt, err := util.GenerateToken(s.cfg, &admin)
	if err != nil {
		log.Printf("[AUTH] Login failed: token generation error for user '%s': %v", username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	log.Printf("[AUTH] Login successful for user '%s' (id=%s)", username, admin.ID.Hex())
	metrics.RecordAuthAttempt(true)

	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
		Username:  admin.Username,
	})
}
