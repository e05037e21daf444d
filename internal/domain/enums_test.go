package domain

import "testing"

func TestIsValidStatus(t *testing.T) {
	for _, s := range LeadStatuses {
		if !IsValidStatus(s) {
			t.Errorf("IsValidStatus(%q) = false", s)
		}
	}
	for _, s := range []string{"", "Pending", "archived", "open"} {
		if IsValidStatus(s) {
			t.Errorf("IsValidStatus(%q) = true", s)
		}
	}
}

func TestIsValidSector(t *testing.T) {
	if !IsValidSector("Technology") {
		t.Error("Technology should be a valid sector")
	}
	if IsValidSector("Any Sector") {
		t.Error("Any Sector is buy-side only")
	}
	if IsValidSector("") {
		t.Error("empty sector is not valid on the sale side")
	}
}

func TestIsValidBuySector(t *testing.T) {
	// Buy side extends the sale-side sectors with a no-preference option.
	for _, s := range []string{"Technology", "Any Sector", ""} {
		if !IsValidBuySector(s) {
			t.Errorf("IsValidBuySector(%q) = false", s)
		}
	}
	if IsValidBuySector("Cryptocurrency") {
		t.Error("unknown sector accepted")
	}
}

func TestIsValidCategory(t *testing.T) {
	for _, c := range ArticleCategories {
		if !IsValidCategory(c) {
			t.Errorf("IsValidCategory(%q) = false", c)
		}
	}
	if IsValidCategory("Gossip") {
		t.Error("unknown category accepted")
	}
}

func TestServiceName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"fractional-cfo", "Fractional CFO Services"},
		{"gst", "GST Compliance"},
		{"other", "Other Services"},
		{"legacy-code", "legacy-code"}, // unknown codes pass through
	}
	for _, tt := range tests {
		if got := ServiceName(tt.code); got != tt.want {
			t.Errorf("ServiceName(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestIsValidServiceCode(t *testing.T) {
	if !IsValidServiceCode("fundraising") {
		t.Error("fundraising should be valid")
	}
	if IsValidServiceCode("Fundraising Support") {
		t.Error("display names are not codes")
	}
}
