package domain

// LeadStatus is the moderation lifecycle tag shared by all lead records.
// Transitions are admin-driven and deliberately unconstrained: any value may
// follow any other.
type LeadStatus = string

const (
	StatusPending  LeadStatus = "pending"
	StatusReviewed LeadStatus = "reviewed"
	StatusMatched  LeadStatus = "matched"
	StatusClosed   LeadStatus = "closed"
)

// LeadStatuses lists every valid lead status.
var LeadStatuses = []string{StatusPending, StatusReviewed, StatusMatched, StatusClosed}

// Sectors is the sector enumeration for business-sale listings.
var Sectors = []string{
	"Technology",
	"Healthcare",
	"Finance",
	"Manufacturing",
	"Retail",
	"Real Estate",
	"Education",
	"Food & Beverage",
	"Transportation",
	"Energy",
	"Agriculture",
	"Other",
}

// BuySectors adds the buy-side options on top of Sectors. An empty value is
// allowed: investors may leave the preference unset.
var BuySectors = append([]string{"Any Sector", ""}, Sectors...)

// ArticleCategories is the fixed category enumeration reported by
// GET /api/articles/meta/categories.
var ArticleCategories = []string{
	"Financial Planning",
	"Business Strategy",
	"Tax & Compliance",
	"Investment",
	"Market Analysis",
	"Industry Insights",
	"Other",
}

// serviceNames maps contact-form service codes to display names used in
// notification emails.
var serviceNames = map[string]string{
	"fractional-cfo": "Fractional CFO Services",
	"fundraising":    "Fundraising Support",
	"gst":            "GST Compliance",
	"income-tax":     "Income Tax Services",
	"debt-recovery":  "Debt Recovery",
	"sez":            "SEZ Setup & Compliance",
	"erp":            "ERP Implementation",
	"other":          "Other Services",
}

// IsValidStatus reports whether s is a known lead status.
func IsValidStatus(s string) bool {
	return contains(LeadStatuses, s)
}

// IsValidSector reports whether s is a known sale-side sector.
func IsValidSector(s string) bool {
	return contains(Sectors, s)
}

// IsValidBuySector reports whether s is a known buy-side sector preference.
func IsValidBuySector(s string) bool {
	return contains(BuySectors, s)
}

// IsValidCategory reports whether s is a known article category.
func IsValidCategory(s string) bool {
	return contains(ArticleCategories, s)
}

// IsValidServiceCode reports whether s is a known contact-form service code.
func IsValidServiceCode(s string) bool {
	_, ok := serviceNames[s]
	return ok
}

// ServiceName returns the display name for a contact-form service code. The
// raw code is returned unchanged when it is not in the map, so older records
// still render.
func ServiceName(code string) string {
	if name, ok := serviceNames[code]; ok {
		return name
	}
	return code
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
