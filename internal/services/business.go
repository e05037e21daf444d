package services

import (
	"context"
	"encoding/json"
	"fmt"
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
	"harborview/internal/metrics"
)

// BusinessService handles sell-side and buy-side lead intake and the admin
// moderation surface for both.
type BusinessService struct {
	db         *mongo.Database
	email      *EmailService
	adminEmail string
}

// NewBusinessService creates a new business service
func NewBusinessService(db *mongo.Database, email *EmailService, adminEmail string) *BusinessService {
	return &BusinessService{db: db, email: email, adminEmail: adminEmail}
}

// SalePayload is the public sell-side submission payload. EquityPercentage
// arrives as json.Number so both "25" and 25 are accepted.
type SalePayload struct {
	CompanyName       string      `json:"companyName"`
	ExpectedValuation string      `json:"expectedValuation"`
	EquityPercentage  json.Number `json:"equityPercentage"`
	Sector            string      `json:"sector"`
	ContactNumber     string      `json:"contactNumber"`
	Email             string      `json:"email"`
	AdditionalInfo    string      `json:"additionalInfo"`
}

// BuyPayload is the public buy-side submission payload
type BuyPayload struct {
	InvestorName     string `json:"investorName"`
	InvestmentAmount string `json:"investmentAmount"`
	PreferredSector  string `json:"preferredSector"`
	OtherConditions  string `json:"otherConditions"`
	ContactNumber    string `json:"contactNumber"`
	Email            string `json:"email"`
	AdditionalInfo   string `json:"additionalInfo"`
}

// SubmitSale accepts a sell-side business listing
func (s *BusinessService) SubmitSale(c *gin.Context) {
	var p SalePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		respondValidation(c, "Invalid request body")
		return
	}

	equity, err := validateSalePayload(&p)
	if err != nil {
		log.Printf("[BUSINESS] SubmitSale failed: validation error: %v", err)
		respondError(c, err)
		return
	}

	sale := &domain.BusinessSale{
		CompanyName:       strings.TrimSpace(p.CompanyName),
		ExpectedValuation: strings.TrimSpace(p.ExpectedValuation),
		EquityPercentage:  equity,
		Sector:            strings.TrimSpace(p.Sector),
		ContactNumber:     strings.TrimSpace(p.ContactNumber),
		Email:             strings.ToLower(strings.TrimSpace(p.Email)),
		AdditionalInfo:    strings.TrimSpace(p.AdditionalInfo),
		Status:            domain.StatusPending,
		EmailSent:         false,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	res, err := s.db.Collection(database.CollectionBusinessSales).InsertOne(ctx, sale)
	if err != nil {
		respondStore(c, "Failed to save listing", err)
		return
	}
	sale.ID = res.InsertedID.(bson.ObjectID)

	log.Printf("[BUSINESS] SubmitSale successful: id=%s, company=%s", sale.ID.Hex(), sale.CompanyName)
	metrics.RecordLeadSubmission("business_sale")

	go s.notifySale(sale)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Your business listing has been submitted successfully. Our team will review it shortly.",
		"id":      sale.ID.Hex(),
	})
}

// SubmitBuy accepts a buy-side investment inquiry
func (s *BusinessService) SubmitBuy(c *gin.Context) {
	var p BuyPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		respondValidation(c, "Invalid request body")
		return
	}

	if err := validateBuyPayload(&p); err != nil {
		log.Printf("[BUSINESS] SubmitBuy failed: validation error: %v", err)
		respondError(c, err)
		return
	}

	buy := &domain.BusinessBuy{
		InvestorName:     strings.TrimSpace(p.InvestorName),
		InvestmentAmount: strings.TrimSpace(p.InvestmentAmount),
		PreferredSector:  strings.TrimSpace(p.PreferredSector),
		OtherConditions:  strings.TrimSpace(p.OtherConditions),
		ContactNumber:    strings.TrimSpace(p.ContactNumber),
		Email:            strings.ToLower(strings.TrimSpace(p.Email)),
		AdditionalInfo:   strings.TrimSpace(p.AdditionalInfo),
		Status:           domain.StatusPending,
		EmailSent:        false,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	res, err := s.db.Collection(database.CollectionBusinessBuys).InsertOne(ctx, buy)
	if err != nil {
		respondStore(c, "Failed to save inquiry", err)
		return
	}
	buy.ID = res.InsertedID.(bson.ObjectID)

	log.Printf("[BUSINESS] SubmitBuy successful: id=%s, investor=%s", buy.ID.Hex(), buy.InvestorName)
	metrics.RecordLeadSubmission("business_buy")

	go s.notifyBuy(buy)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Your investment inquiry has been submitted successfully. Our team will be in touch soon.",
		"id":      buy.ID.Hex(),
	})
}

// ListSales returns all sell-side listings, newest first (admin only)
func (s *BusinessService) ListSales(c *gin.Context) {
	s.list(c, database.CollectionBusinessSales, "sale listings")
}

// ListBuys returns all buy-side inquiries, newest first (admin only)
func (s *BusinessService) ListBuys(c *gin.Context) {
	s.list(c, database.CollectionBusinessBuys, "buy inquiries")
}

func (s *BusinessService) list(c *gin.Context, collection, what string) {
	ctx, cancel := storeCtx(c)
	defer cancel()

	filter := bson.D{}
	if status := c.Query("status"); status != "" {
		filter = append(filter, bson.E{Key: "status", Value: status})
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		respondStore(c, "Failed to fetch records", err)
		return
	}

	records := []bson.M{}
	if err := cursor.All(ctx, &records); err != nil {
		respondStore(c, "Failed to decode records", err)
		return
	}

	log.Printf("[BUSINESS] List successful: returned %d %s", len(records), what)
	c.JSON(http.StatusOK, records)
}

// UpdateSaleStatus sets a listing's status (admin only)
func (s *BusinessService) UpdateSaleStatus(c *gin.Context) {
	updateLeadStatus(c, s.db.Collection(database.CollectionBusinessSales), "Listing not found")
}

// UpdateBuyStatus sets an inquiry's status (admin only)
func (s *BusinessService) UpdateBuyStatus(c *gin.Context) {
	updateLeadStatus(c, s.db.Collection(database.CollectionBusinessBuys), "Inquiry not found")
}

// DeleteSale removes a listing (admin only)
func (s *BusinessService) DeleteSale(c *gin.Context) {
	deleteByID(c, s.db.Collection(database.CollectionBusinessSales), "Listing not found", "Listing deleted successfully")
}

// DeleteBuy removes an inquiry (admin only)
func (s *BusinessService) DeleteBuy(c *gin.Context) {
	deleteByID(c, s.db.Collection(database.CollectionBusinessBuys), "Inquiry not found", "Inquiry deleted successfully")
}

func (s *BusinessService) notifySale(sale *domain.BusinessSale) {
	if !s.email.IsEnabled() {
		log.Printf("[BUSINESS] Email disabled - notification skipped for sale id=%s", sale.ID.Hex())
		metrics.RecordNotification("disabled")
		return
	}

	rows := detailRow("Company", sale.CompanyName) +
		detailRow("Expected Valuation", sale.ExpectedValuation) +
		detailRow("Equity Offered", fmt.Sprintf("%d%%", sale.EquityPercentage)) +
		detailRow("Sector", sale.Sector) +
		detailRow("Contact Number", sale.ContactNumber) +
		detailRow("Email", sale.Email) +
		detailRow("Additional Info", sale.AdditionalInfo) +
		detailRow("Submitted", sale.CreatedAt.Format("January 2, 2006 at 3:04 PM"))

	content := fmt.Sprintf(`<h2 style="margin: 0 0 24px 0; color: #0D3B66; font-size: 24px; font-weight: 600;">Sell-Side Listing Details</h2>
%s
<p style="margin: 24px 0 0 0; color: #9CA3AF; font-size: 12px;">Listing ID: %s</p>`,
		detailTable(rows), sale.ID.Hex())

	text := fmt.Sprintf(`New Business Sale Listing

Company: %s
Expected Valuation: %s
Equity Offered: %d%%
Sector: %s
Contact Number: %s
Email: %s
Additional Info: %s

Listing ID: %s`,
		sale.CompanyName, sale.ExpectedValuation, sale.EquityPercentage, sale.Sector,
		sale.ContactNumber, sale.Email, sale.AdditionalInfo, sale.ID.Hex())

	subject := fmt.Sprintf("New Business Sale Listing: %s", sale.CompanyName)
	if _, err := s.email.SendHTMLEmail(s.adminEmail, subject, renderLayout("New Business Sale Listing", content), text); err != nil {
		log.Printf("[BUSINESS] Warning: failed to send sale notification for id=%s: %v", sale.ID.Hex(), err)
		metrics.RecordNotification("failed")
		return
	}
	metrics.RecordNotification("sent")

	s.markEmailSent(database.CollectionBusinessSales, sale.ID)
}

func (s *BusinessService) notifyBuy(buy *domain.BusinessBuy) {
	if !s.email.IsEnabled() {
		log.Printf("[BUSINESS] Email disabled - notification skipped for buy id=%s", buy.ID.Hex())
		metrics.RecordNotification("disabled")
		return
	}

	sector := buy.PreferredSector
	if sector == "" {
		sector = "Any Sector"
	}

	rows := detailRow("Investor", buy.InvestorName) +
		detailRow("Investment Amount", buy.InvestmentAmount) +
		detailRow("Preferred Sector", sector) +
		detailRow("Other Conditions", buy.OtherConditions) +
		detailRow("Contact Number", buy.ContactNumber) +
		detailRow("Email", buy.Email) +
		detailRow("Additional Info", buy.AdditionalInfo) +
		detailRow("Submitted", buy.CreatedAt.Format("January 2, 2006 at 3:04 PM"))

	content := fmt.Sprintf(`<h2 style="margin: 0 0 24px 0; color: #0D3B66; font-size: 24px; font-weight: 600;">Buy-Side Inquiry Details</h2>
%s
<p style="margin: 24px 0 0 0; color: #9CA3AF; font-size: 12px;">Inquiry ID: %s</p>`,
		detailTable(rows), buy.ID.Hex())

	text := fmt.Sprintf(`New Investment Inquiry

Investor: %s
Investment Amount: %s
Preferred Sector: %s
Other Conditions: %s
Contact Number: %s
Email: %s
Additional Info: %s

Inquiry ID: %s`,
		buy.InvestorName, buy.InvestmentAmount, sector, buy.OtherConditions,
		buy.ContactNumber, buy.Email, buy.AdditionalInfo, buy.ID.Hex())

	subject := fmt.Sprintf("New Investment Inquiry from %s", buy.InvestorName)
	if _, err := s.email.SendHTMLEmail(s.adminEmail, subject, renderLayout("New Investment Inquiry", content), text); err != nil {
		log.Printf("[BUSINESS] Warning: failed to send buy notification for id=%s: %v", buy.ID.Hex(), err)
		metrics.RecordNotification("failed")
		return
	}
	metrics.RecordNotification("sent")

	s.markEmailSent(database.CollectionBusinessBuys, buy.ID)
}

func (s *BusinessService) markEmailSent(collection string, id bson.ObjectID) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	_, err := s.db.Collection(collection).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "emailSent", Value: true},
			{Key: "updatedAt", Value: time.Now()},
		}}},
	)
	if err != nil {
		log.Printf("[BUSINESS] Warning: failed to mark emailSent for id=%s: %v", id.Hex(), err)
	}
}

func validateSalePayload(p *SalePayload) (int, error) {
	if strings.TrimSpace(p.CompanyName) == "" {
		return 0, validationErr("Company name is required")
	}
	if strings.TrimSpace(p.ExpectedValuation) == "" {
		return 0, validationErr("Expected valuation is required")
	}

	if p.EquityPercentage.String() == "" {
		return 0, validationErr("Equity percentage is required")
	}
	equity, err := p.EquityPercentage.Int64()
	if err != nil {
		return 0, validationErr("Equity percentage must be a whole number")
	}
	if equity < 1 || equity > 100 {
		return 0, validationErr("Equity percentage must be between 1 and 100")
	}

	sector := strings.TrimSpace(p.Sector)
	if sector == "" {
		return 0, validationErr("Sector is required")
	}
	if !domain.IsValidSector(sector) {
		return 0, validationErr("Unknown sector")
	}

	if strings.TrimSpace(p.ContactNumber) == "" {
		return 0, validationErr("Contact number is required")
	}

	email := strings.TrimSpace(p.Email)
	if email == "" {
		return 0, validationErr("Email is required")
	}
	if !emailRegex.MatchString(email) {
		return 0, validationErr("Invalid email address")
	}

	return int(equity), nil
}

func validateBuyPayload(p *BuyPayload) error {
	if strings.TrimSpace(p.InvestorName) == "" {
		return validationErr("Investor name is required")
	}
	if strings.TrimSpace(p.InvestmentAmount) == "" {
		return validationErr("Investment amount is required")
	}

	// Empty preferred sector means no sector preference.
	if sector := strings.TrimSpace(p.PreferredSector); sector != "" && !domain.IsValidBuySector(sector) {
		return validationErr("Unknown preferred sector")
	}

	if strings.TrimSpace(p.ContactNumber) == "" {
		return validationErr("Contact number is required")
	}

	email := strings.TrimSpace(p.Email)
	if email == "" {
		return validationErr("Email is required")
	}
	if !emailRegex.MatchString(email) {
		return validationErr("Invalid email address")
	}

	return nil
}
