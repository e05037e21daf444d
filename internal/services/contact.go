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
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"harborview/internal/database"
	"harborview/internal/domain"
)

// ContactService manages the firm's contact-details singleton. There is at
// most one record; the admin update creates it on first write and keeps the
// same identifier afterwards.
type ContactService struct {
	db *mongo.Database
}

// NewContactService creates a new contact service
func NewContactService(db *mongo.Database) *ContactService {
	return &ContactService{db: db}
}

// ContactPayload is the admin upsert payload
type ContactPayload struct {
	Email       string             `json:"email"`
	Phone       string             `json:"phone"`
	Address     string             `json:"address"`
	SocialLinks domain.SocialLinks `json:"socialLinks"`
}

// Get returns the contact details (public). A site that has never been
// configured returns 404 rather than an empty shell.
func (s *ContactService) Get(c *gin.Context) {
	ctx, cancel := storeCtx(c)
	defer cancel()

	var contact domain.Contact
	err := s.db.Collection(database.CollectionContacts).
		FindOne(ctx, bson.D{}).
		Decode(&contact)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respondNotFound(c, "Contact details not configured")
			return
		}
		respondStore(c, "Failed to fetch contact details", err)
		return
	}

	c.JSON(http.StatusOK, contact)
}

// Upsert replaces the contact details, creating the singleton if it does not
// exist yet (admin only).
func (s *ContactService) Upsert(c *gin.Context) {
	var p ContactPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		respondValidation(c, "Invalid request body")
		return
	}

	email := strings.TrimSpace(p.Email)
	if email == "" {
		respondValidation(c, "Email is required")
		return
	}
	if !emailRegex.MatchString(email) {
		respondValidation(c, "Invalid email address")
		return
	}
	if strings.TrimSpace(p.Phone) == "" {
		respondValidation(c, "Phone is required")
		return
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	set := bson.D{
		{Key: "email", Value: email},
		{Key: "phone", Value: strings.TrimSpace(p.Phone)},
		{Key: "address", Value: strings.TrimSpace(p.Address)},
		{Key: "socialLinks", Value: p.SocialLinks},
		{Key: "updatedAt", Value: time.Now()},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var updated domain.Contact
	err := s.db.Collection(database.CollectionContacts).FindOneAndUpdate(ctx,
		bson.D{},
		bson.D{
			{Key: "$set", Value: set},
			{Key: "$setOnInsert", Value: bson.D{{Key: "createdAt", Value: time.Now()}}},
		},
		opts,
	).Decode(&updated)
	if err != nil {
		respondStore(c, "Failed to update contact details", err)
		return
	}

	log.Printf("[CONTACT] Upsert successful by admin '%s'", Username(c))
	c.JSON(http.StatusOK, updated)
}
