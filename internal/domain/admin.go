package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Admin is a back-office credential. Passwords are stored only as bcrypt
// hashes; the record is never listed through the API.
type Admin struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username       string        `bson:"username" json:"username"`
	HashedPassword string        `bson:"hashedPassword" json:"-"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt" json:"updatedAt"`
}
