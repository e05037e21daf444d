package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service is an advisory offering shown on the public site.
type Service struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description" json:"description"`
	Icon        string        `bson:"icon,omitempty" json:"icon,omitempty"`
	Features    []string      `bson:"features" json:"features"`
	IsActive    bool          `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}
