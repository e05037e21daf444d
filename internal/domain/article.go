package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Article is an insights/blog post managed through the admin dashboard.
// PublishedAt is set the first time IsPublished flips to true and is never
// reset while the article stays published.
type Article struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title         string        `bson:"title" json:"title"`
	Description   string        `bson:"description" json:"description"`
	Content       string        `bson:"content,omitempty" json:"content,omitempty"`
	Author        string        `bson:"author" json:"author"`
	Category      string        `bson:"category" json:"category"`
	Tags          []string      `bson:"tags" json:"tags"`
	FeaturedImage string        `bson:"featuredImage,omitempty" json:"featuredImage,omitempty"`
	IsPublished   bool          `bson:"isPublished" json:"isPublished"`
	PublishedAt   *time.Time    `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	ReadTime      int           `bson:"readTime" json:"readTime"`
	Views         int64         `bson:"views" json:"views"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt" json:"updatedAt"`
}
