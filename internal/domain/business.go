package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// BusinessSale is a listing submitted by an owner looking to sell equity.
type BusinessSale struct {
	ID                bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	CompanyName       string        `bson:"companyName" json:"companyName"`
	ExpectedValuation string        `bson:"expectedValuation" json:"expectedValuation"`
	EquityPercentage  int           `bson:"equityPercentage" json:"equityPercentage"`
	Sector            string        `bson:"sector" json:"sector"`
	ContactNumber     string        `bson:"contactNumber" json:"contactNumber"`
	Email             string        `bson:"email" json:"email"`
	AdditionalInfo    string        `bson:"additionalInfo,omitempty" json:"additionalInfo,omitempty"`
	Status            LeadStatus    `bson:"status" json:"status"`
	EmailSent         bool          `bson:"emailSent" json:"emailSent"`
	CreatedAt         time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// BusinessBuy is an inquiry submitted by an investor looking to acquire.
type BusinessBuy struct {
	ID               bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	InvestorName     string        `bson:"investorName" json:"investorName"`
	InvestmentAmount string        `bson:"investmentAmount" json:"investmentAmount"`
	PreferredSector  string        `bson:"preferredSector,omitempty" json:"preferredSector,omitempty"`
	OtherConditions  string        `bson:"otherConditions,omitempty" json:"otherConditions,omitempty"`
	ContactNumber    string        `bson:"contactNumber" json:"contactNumber"`
	Email            string        `bson:"email" json:"email"`
	AdditionalInfo   string        `bson:"additionalInfo,omitempty" json:"additionalInfo,omitempty"`
	Status           LeadStatus    `bson:"status" json:"status"`
	EmailSent        bool          `bson:"emailSent" json:"emailSent"`
	CreatedAt        time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time     `bson:"updatedAt" json:"updatedAt"`
}
