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

// CatalogService manages the firm's service offerings. The public surface
// shows only active offerings; admins see and manage everything.
type CatalogService struct {
	db *mongo.Database
}

// NewCatalogService creates a new catalog service
func NewCatalogService(db *mongo.Database) *CatalogService {
	return &CatalogService{db: db}
}

// ServicePayload is the admin create payload
type ServicePayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Features    []string `json:"features"`
	IsActive    *bool    `json:"isActive"`
}

// ServiceUpdatePayload is the admin partial-update payload
type ServiceUpdatePayload struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Icon        *string   `json:"icon"`
	Features    *[]string `json:"features"`
	IsActive    *bool     `json:"isActive"`
}

// List returns active offerings (public)
func (s *CatalogService) List(c *gin.Context) {
	s.find(c, bson.D{{Key: "isActive", Value: true}})
}

// ListAll returns every offering including inactive ones (admin only)
func (s *CatalogService) ListAll(c *gin.Context) {
	s.find(c, bson.D{})
}

func (s *CatalogService) find(c *gin.Context, filter bson.D) {
	ctx, cancel := storeCtx(c)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := s.db.Collection(database.CollectionServices).Find(ctx, filter, opts)
	if err != nil {
		respondStore(c, "Failed to fetch services", err)
		return
	}

	services := []domain.Service{}
	if err := cursor.All(ctx, &services); err != nil {
		respondStore(c, "Failed to decode services", err)
		return
	}

	c.JSON(http.StatusOK, services)
}

// Get returns one active offering (public)
func (s *CatalogService) Get(c *gin.Context) {
	id, ok := parseObjectID(c, "Invalid service id")
	if !ok {
		return
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	var svc domain.Service
	err := s.db.Collection(database.CollectionServices).
		FindOne(ctx, bson.D{{Key: "_id", Value: id}, {Key: "isActive", Value: true}}).
		Decode(&svc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respondNotFound(c, "Service not found")
			return
		}
		respondStore(c, "Failed to fetch service", err)
		return
	}

	c.JSON(http.StatusOK, svc)
}

// Create inserts a new offering (admin only). New offerings default to
// active unless the payload says otherwise.
func (s *CatalogService) Create(c *gin.Context) {
	var p ServicePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		respondValidation(c, "Invalid request body")
		return
	}

	if strings.TrimSpace(p.Title) == "" {
		respondValidation(c, "Title is required")
		return
	}
	if strings.TrimSpace(p.Description) == "" {
		respondValidation(c, "Description is required")
		return
	}

	now := time.Now()
	svc := &domain.Service{
		Title:       strings.TrimSpace(p.Title),
		Description: strings.TrimSpace(p.Description),
		Icon:        strings.TrimSpace(p.Icon),
		Features:    p.Features,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if svc.Features == nil {
		svc.Features = []string{}
	}
	if p.IsActive != nil {
		svc.IsActive = *p.IsActive
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	res, err := s.db.Collection(database.CollectionServices).InsertOne(ctx, svc)
	if err != nil {
		respondStore(c, "Failed to create service", err)
		return
	}
	svc.ID = res.InsertedID.(bson.ObjectID)

	log.Printf("[CATALOG] Create successful: id=%s, title=%q", svc.ID.Hex(), svc.Title)
	c.JSON(http.StatusCreated, svc)
}

// Update applies a partial update to an offering (admin only)
func (s *CatalogService) Update(c *gin.Context) {
	id, ok := parseObjectID(c, "Invalid service id")
	if !ok {
		return
	}

	var p ServiceUpdatePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		respondValidation(c, "Invalid request body")
		return
	}

	set := bson.D{{Key: "updatedAt", Value: time.Now()}}
	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			respondValidation(c, "Title cannot be empty")
			return
		}
		set = append(set, bson.E{Key: "title", Value: strings.TrimSpace(*p.Title)})
	}
	if p.Description != nil {
		set = append(set, bson.E{Key: "description", Value: strings.TrimSpace(*p.Description)})
	}
	if p.Icon != nil {
		set = append(set, bson.E{Key: "icon", Value: strings.TrimSpace(*p.Icon)})
	}
	if p.Features != nil {
		set = append(set, bson.E{Key: "features", Value: *p.Features})
	}
	if p.IsActive != nil {
		set = append(set, bson.E{Key: "isActive", Value: *p.IsActive})
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated domain.Service
	err := s.db.Collection(database.CollectionServices).FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: set}},
		opts,
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respondNotFound(c, "Service not found")
			return
		}
		respondStore(c, "Failed to update service", err)
		return
	}

	log.Printf("[CATALOG] Update successful: id=%s", id.Hex())
	c.JSON(http.StatusOK, updated)
}

// Delete removes an offering (admin only)
func (s *CatalogService) Delete(c *gin.Context) {
	deleteByID(c, s.db.Collection(database.CollectionServices), "Service not found", "Service deleted successfully")
}
