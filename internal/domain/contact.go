package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// SocialLinks holds the optional platform URLs shown in the site footer.
type SocialLinks struct {
	LinkedIn  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
}

// Contact is the site-wide contact info. Exactly one logical record exists:
// the upsert handler looks up the existing document before deciding between
// insert and update.
type Contact struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email       string        `bson:"email" json:"email"`
	Phone       string        `bson:"phone" json:"phone"`
	Address     string        `bson:"address" json:"address"`
	SocialLinks SocialLinks   `bson:"socialLinks" json:"socialLinks"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}
