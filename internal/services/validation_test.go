package services

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestValidateMessagePayload(t *testing.T) {
	valid := MessagePayload{
		Name:    "Jane Founder",
		Email:   "jane@example.com",
		Message: "Looking for CFO support.",
	}

	tests := []struct {
		name    string
		mutate  func(p *MessagePayload)
		wantErr bool
	}{
		{"valid minimal", func(p *MessagePayload) {}, false},
		{"valid with service", func(p *MessagePayload) { p.Service = "fractional-cfo" }, false},
		{"missing name", func(p *MessagePayload) { p.Name = "" }, true},
		{"whitespace name", func(p *MessagePayload) { p.Name = "   " }, true},
		{"missing email", func(p *MessagePayload) { p.Email = "" }, true},
		{"bad email", func(p *MessagePayload) { p.Email = "not-an-email" }, true},
		{"missing message", func(p *MessagePayload) { p.Message = "" }, true},
		{"unknown service code", func(p *MessagePayload) { p.Service = "time-travel" }, true},
		{"company optional", func(p *MessagePayload) { p.Company = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := validateMessagePayload(&p)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSalePayload(t *testing.T) {
	valid := SalePayload{
		CompanyName:       "Acme Manufacturing",
		ExpectedValuation: "5 Cr",
		EquityPercentage:  json.Number("25"),
		Sector:            "Manufacturing",
		ContactNumber:     "+91 98765 43210",
		Email:             "owner@acme.example.com",
	}

	tests := []struct {
		name       string
		mutate     func(p *SalePayload)
		wantErr    bool
		wantEquity int
	}{
		{"valid", func(p *SalePayload) {}, false, 25},
		{"missing company", func(p *SalePayload) { p.CompanyName = "" }, true, 0},
		{"missing valuation", func(p *SalePayload) { p.ExpectedValuation = "" }, true, 0},
		{"missing equity", func(p *SalePayload) { p.EquityPercentage = "" }, true, 0},
		{"fractional equity", func(p *SalePayload) { p.EquityPercentage = "25.5" }, true, 0},
		{"equity too low", func(p *SalePayload) { p.EquityPercentage = "0" }, true, 0},
		{"equity too high", func(p *SalePayload) { p.EquityPercentage = "101" }, true, 0},
		{"equity at bounds", func(p *SalePayload) { p.EquityPercentage = "100" }, false, 100},
		{"unknown sector", func(p *SalePayload) { p.Sector = "Cryptocurrency" }, true, 0},
		{"any sector is buy-side only", func(p *SalePayload) { p.Sector = "Any Sector" }, true, 0},
		{"missing contact number", func(p *SalePayload) { p.ContactNumber = "" }, true, 0},
		{"bad email", func(p *SalePayload) { p.Email = "owner@" }, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			equity, err := validateSalePayload(&p)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr = %v", err, tt.wantErr)
			}
			if err == nil && equity != tt.wantEquity {
				t.Errorf("equity = %d, want %d", equity, tt.wantEquity)
			}
		})
	}
}

func TestValidateBuyPayload(t *testing.T) {
	valid := BuyPayload{
		InvestorName:     "Desai Family Office",
		InvestmentAmount: "2 Cr",
		ContactNumber:    "+91 91234 56789",
		Email:            "invest@desai.example.com",
	}

	tests := []struct {
		name    string
		mutate  func(p *BuyPayload)
		wantErr bool
	}{
		{"valid without sector preference", func(p *BuyPayload) {}, false},
		{"valid with sector", func(p *BuyPayload) { p.PreferredSector = "Healthcare" }, false},
		{"valid any sector", func(p *BuyPayload) { p.PreferredSector = "Any Sector" }, false},
		{"missing investor", func(p *BuyPayload) { p.InvestorName = "" }, true},
		{"missing amount", func(p *BuyPayload) { p.InvestmentAmount = "" }, true},
		{"unknown sector", func(p *BuyPayload) { p.PreferredSector = "Cryptocurrency" }, true},
		{"missing contact number", func(p *BuyPayload) { p.ContactNumber = "" }, true},
		{"bad email", func(p *BuyPayload) { p.Email = "nope" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := validateBuyPayload(&p)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateArticlePayload(t *testing.T) {
	valid := ArticlePayload{
		Title:       "Reading a Term Sheet",
		Description: "What founders miss in term sheets.",
		Content:     "Full article body.",
		Author:      "R. Mehta",
		Category:    "Investment",
	}

	tests := []struct {
		name    string
		mutate  func(p *ArticlePayload)
		wantErr bool
	}{
		{"valid", func(p *ArticlePayload) {}, false},
		{"missing title", func(p *ArticlePayload) { p.Title = "" }, true},
		{"missing description", func(p *ArticlePayload) { p.Description = "" }, true},
		{"missing content", func(p *ArticlePayload) { p.Content = "" }, true},
		{"missing author", func(p *ArticlePayload) { p.Author = "" }, true},
		{"unknown category", func(p *ArticlePayload) { p.Category = "Gossip" }, true},
		{"empty category", func(p *ArticlePayload) { p.Category = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := validateArticlePayload(&p)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query        string
		defaultLimit int
		wantPage     int
		wantLimit    int
	}{
		{"", defaultPageSize, 1, 10},
		{"", adminDefaultPageSize, 1, 20}, // admin list default
		{"page=3&limit=20", defaultPageSize, 3, 20},
		{"page=0&limit=-5", defaultPageSize, 1, 10},
		{"page=abc&limit=xyz", adminDefaultPageSize, 1, 20},
		{"limit=500", defaultPageSize, 1, 50}, // capped
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/api/articles?"+tt.query, nil)
			page, limit := parsePagination(c, tt.defaultLimit)
			if page != tt.wantPage || limit != tt.wantLimit {
				t.Errorf("got (%d, %d), want (%d, %d)", page, limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestAppendCategoryFilter(t *testing.T) {
	tests := []struct {
		category string
		wantLen  int
	}{
		{"", 0},
		{"all", 0}, // frontend's no-filter sentinel
		{"Investment", 1},
	}

	for _, tt := range tests {
		t.Run("category="+tt.category, func(t *testing.T) {
			filter := appendCategoryFilter(bson.D{}, tt.category)
			if len(filter) != tt.wantLen {
				t.Fatalf("filter has %d predicates, want %d", len(filter), tt.wantLen)
			}
			if tt.wantLen == 1 {
				if filter[0].Key != "category" || filter[0].Value != tt.category {
					t.Errorf("predicate = %+v, want category=%q", filter[0], tt.category)
				}
			}
		})
	}
}

func TestPublishStampNeeded(t *testing.T) {
	now := time.Now()

	if !publishStampNeeded(true, nil) {
		t.Error("first publish must stamp publishedAt")
	}
	if publishStampNeeded(true, &now) {
		t.Error("republishing must keep the original publishedAt")
	}
	if publishStampNeeded(false, nil) {
		t.Error("unpublishing never stamps publishedAt")
	}
}
