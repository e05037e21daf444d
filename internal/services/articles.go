package services

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"harborview/internal/database"
	"harborview/internal/domain"
	"harborview/internal/metrics"
)

const (
	defaultPageSize      = 10
	adminDefaultPageSize = 20
	maxPageSize          = 50
)

// ArticleService manages the insights/blog content: a public read surface
// restricted to published articles and a full admin CRUD surface.
type ArticleService struct {
	db *mongo.Database
}

// NewArticleService creates a new article service
func NewArticleService(db *mongo.Database) *ArticleService {
	return &ArticleService{db: db}
}

// ArticlePayload is the admin create payload
type ArticlePayload struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Content       string   `json:"content"`
	Author        string   `json:"author"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	FeaturedImage string   `json:"featuredImage"`
	IsPublished   *bool    `json:"isPublished"`
	ReadTime      int      `json:"readTime"`
}

// ArticleUpdatePayload is the admin partial-update payload. Nil fields are
// left untouched.
type ArticleUpdatePayload struct {
	Title         *string   `json:"title"`
	Description   *string   `json:"description"`
	Content       *string   `json:"content"`
	Author        *string   `json:"author"`
	Category      *string   `json:"category"`
	Tags          *[]string `json:"tags"`
	FeaturedImage *string   `json:"featuredImage"`
	IsPublished   *bool     `json:"isPublished"`
	ReadTime      *int      `json:"readTime"`
}

// List returns published articles, newest first, paginated. The full content
// body is omitted from list responses; clients fetch it per-article.
func (s *ArticleService) List(c *gin.Context) {
	page, limit := parsePagination(c, defaultPageSize)

	filter := appendCategoryFilter(bson.D{{Key: "isPublished", Value: true}}, c.Query("category"))

	ctx, cancel := storeCtx(c)
	defer cancel()

	coll := s.db.Collection(database.CollectionArticles)

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		respondStore(c, "Failed to count articles", err)
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "publishedAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetProjection(bson.D{{Key: "content", Value: 0}})

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		respondStore(c, "Failed to fetch articles", err)
		return
	}

	articles := []domain.Article{}
	if err := cursor.All(ctx, &articles); err != nil {
		respondStore(c, "Failed to decode articles", err)
		return
	}

	pages := (total + int64(limit) - 1) / int64(limit)
	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": pages,
		},
	})
}

// Get returns one published article and atomically counts the view. Draft
// articles are invisible here even with a valid identifier.
func (s *ArticleService) Get(c *gin.Context) {
	id, ok := parseObjectID(c, "Invalid article id")
	if !ok {
		return
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var article domain.Article
	err := s.db.Collection(database.CollectionArticles).FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}, {Key: "isPublished", Value: true}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "views", Value: 1}}}},
		opts,
	).Decode(&article)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respondNotFound(c, "Article not found")
			return
		}
		respondStore(c, "Failed to fetch article", err)
		return
	}

	metrics.RecordArticleView()
	c.JSON(http.StatusOK, article)
}

// Categories returns the fixed category vocabulary
func (s *ArticleService) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": domain.ArticleCategories})
}

// AdminList returns every article including drafts, newest first, paginated
// (admin only). Optional ?status=published|draft and ?category= filters
// apply; category "all" means no filter.
func (s *ArticleService) AdminList(c *gin.Context) {
	page, limit := parsePagination(c, adminDefaultPageSize)

	filter := bson.D{}
	switch c.Query("status") {
	case "published":
		filter = append(filter, bson.E{Key: "isPublished", Value: true})
	case "draft":
		filter = append(filter, bson.E{Key: "isPublished", Value: false})
	}
	filter = appendCategoryFilter(filter, c.Query("category"))

	ctx, cancel := storeCtx(c)
	defer cancel()

	coll := s.db.Collection(database.CollectionArticles)

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		respondStore(c, "Failed to count articles", err)
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		respondStore(c, "Failed to fetch articles", err)
		return
	}

	articles := []domain.Article{}
	if err := cursor.All(ctx, &articles); err != nil {
		respondStore(c, "Failed to decode articles", err)
		return
	}

	log.Printf("[ARTICLE] AdminList successful: returned %d of %d articles", len(articles), total)

	pages := (total + int64(limit) - 1) / int64(limit)
	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": pages,
		},
	})
}

// Create inserts a new article (admin only). Publishing at creation stamps
// publishedAt immediately.
func (s *ArticleService) Create(c *gin.Context) {
	var p ArticlePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		respondValidation(c, "Invalid request body")
		return
	}

	if err := validateArticlePayload(&p); err != nil {
		respondError(c, err)
		return
	}

	now := time.Now()
	article := &domain.Article{
		Title:         strings.TrimSpace(p.Title),
		Description:   strings.TrimSpace(p.Description),
		Content:       p.Content,
		Author:        strings.TrimSpace(p.Author),
		Category:      p.Category,
		Tags:          p.Tags,
		FeaturedImage: strings.TrimSpace(p.FeaturedImage),
		ReadTime:      p.ReadTime,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if article.Tags == nil {
		article.Tags = []string{}
	}
	if article.ReadTime <= 0 {
		article.ReadTime = 5
	}
	if p.IsPublished != nil && *p.IsPublished {
		article.IsPublished = true
		article.PublishedAt = &now
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	res, err := s.db.Collection(database.CollectionArticles).InsertOne(ctx, article)
	if err != nil {
		respondStore(c, "Failed to create article", err)
		return
	}
	article.ID = res.InsertedID.(bson.ObjectID)

	log.Printf("[ARTICLE] Create successful: id=%s, title=%q, published=%v", article.ID.Hex(), article.Title, article.IsPublished)
	c.JSON(http.StatusCreated, article)
}

// Update applies a partial update (admin only). The first transition to
// published stamps publishedAt; later publish toggles keep the original
// timestamp.
func (s *ArticleService) Update(c *gin.Context) {
	id, ok := parseObjectID(c, "Invalid article id")
	if !ok {
		return
	}

	var p ArticleUpdatePayload
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
	if p.Content != nil {
		set = append(set, bson.E{Key: "content", Value: *p.Content})
	}
	if p.Author != nil {
		set = append(set, bson.E{Key: "author", Value: strings.TrimSpace(*p.Author)})
	}
	if p.Category != nil {
		if !domain.IsValidCategory(*p.Category) {
			respondValidation(c, "Unknown category")
			return
		}
		set = append(set, bson.E{Key: "category", Value: *p.Category})
	}
	if p.Tags != nil {
		set = append(set, bson.E{Key: "tags", Value: *p.Tags})
	}
	if p.FeaturedImage != nil {
		set = append(set, bson.E{Key: "featuredImage", Value: strings.TrimSpace(*p.FeaturedImage)})
	}
	if p.ReadTime != nil {
		set = append(set, bson.E{Key: "readTime", Value: *p.ReadTime})
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	coll := s.db.Collection(database.CollectionArticles)

	if p.IsPublished != nil {
		set = append(set, bson.E{Key: "isPublished", Value: *p.IsPublished})
		if *p.IsPublished {
			var existing domain.Article
			err := coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&existing)
			if err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					respondNotFound(c, "Article not found")
					return
				}
				respondStore(c, "Failed to fetch article", err)
				return
			}
			if publishStampNeeded(true, existing.PublishedAt) {
				set = append(set, bson.E{Key: "publishedAt", Value: time.Now()})
			}
		}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated domain.Article
	err := coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: set}},
		opts,
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respondNotFound(c, "Article not found")
			return
		}
		respondStore(c, "Failed to update article", err)
		return
	}

	log.Printf("[ARTICLE] Update successful: id=%s", id.Hex())
	c.JSON(http.StatusOK, updated)
}

// Delete removes an article (admin only)
func (s *ArticleService) Delete(c *gin.Context) {
	deleteByID(c, s.db.Collection(database.CollectionArticles), "Article not found", "Article deleted successfully")
}

func validateArticlePayload(p *ArticlePayload) error {
	if strings.TrimSpace(p.Title) == "" {
		return validationErr("Title is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		return validationErr("Description is required")
	}
	if strings.TrimSpace(p.Content) == "" {
		return validationErr("Content is required")
	}
	if strings.TrimSpace(p.Author) == "" {
		return validationErr("Author is required")
	}
	if !domain.IsValidCategory(p.Category) {
		return validationErr("Unknown category")
	}
	return nil
}

// parsePagination reads ?page= and ?limit= with defaults and a hard cap.
// Out-of-range values fall back rather than erroring.
func parsePagination(c *gin.Context, defaultLimit int) (page, limit int) {
	page = 1
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	limit = defaultLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
		if limit > maxPageSize {
			limit = maxPageSize
		}
	}
	return page, limit
}

// appendCategoryFilter adds a category predicate to a list filter. The
// frontend sends "all" as its no-filter sentinel; it is not a category.
func appendCategoryFilter(filter bson.D, category string) bson.D {
	if category != "" && category != "all" {
		filter = append(filter, bson.E{Key: "category", Value: category})
	}
	return filter
}

// publishStampNeeded reports whether flipping isPublished to true must also
// stamp publishedAt. The stamp is written exactly once: republishing an
// article that was published before keeps the original timestamp.
func publishStampNeeded(publish bool, publishedAt *time.Time) bool {
	return publish && publishedAt == nil
}
