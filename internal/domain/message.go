package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Message is a contact-form submission.
type Message struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string        `bson:"name" json:"name"`
	Email     string        `bson:"email" json:"email"`
	Company   string        `bson:"company,omitempty" json:"company,omitempty"`
	Service   string        `bson:"service,omitempty" json:"service,omitempty"`
	Message   string        `bson:"message" json:"message"`
	Status    LeadStatus    `bson:"status" json:"status"`
	EmailSent bool          `bson:"emailSent" json:"emailSent"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}
