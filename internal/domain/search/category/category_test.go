package category

import (
	"testing"

	"github.com/kailas-cloud/stayfinder/internal/domain/listing"
	"github.com/kailas-cloud/stayfinder/internal/domain/search/predicate"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw  string
		want Category
	}{
		{"hostel", Hostel},
		{" PG ", PG},
		{"Apartment", Apartment},
		{"all", All},
		{"ALL", All},
		{"", All},
		{"villa", All},
	}
	for _, tt := range tests {
		if got := Parse(tt.raw); got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestIsKnown(t *testing.T) {
	for _, raw := range []string{"", "all", " Hostel", "pg", "APARTMENT"} {
		if !IsKnown(raw) {
			t.Errorf("IsKnown(%q) = false", raw)
		}
	}
	for _, raw := range []string{"villa", "hostels"} {
		if IsKnown(raw) {
			t.Errorf("IsKnown(%q) = true", raw)
		}
	}
}

func TestPredicate_AllIsUnrestricted(t *testing.T) {
	if !All.Predicate().IsAll() {
		t.Error("All.Predicate() should match all")
	}
	if !Parse("unknown").Predicate().IsAll() {
		t.Error("unknown category should impose no restriction")
	}
}

func TestPredicate_SubstringMatch(t *testing.T) {
	tests := []struct {
		c        Category
		category string
		want     bool
	}{
		{PG, "PG Accommodation", true},
		{PG, "pg-hostel", true},
		{PG, "Hostel", false},
		{Hostel, "pg-hostel", true},
		{Hostel, "Boys Hostel", true},
		{Apartment, "Serviced apartment", true},
		{Apartment, "", false},
	}
	for _, tt := range tests {
		l, err := listing.New("l1", listing.Attributes{Name: "x", Category: tt.category})
		if err != nil {
			t.Fatal(err)
		}
		m, err := predicate.Compile(tt.c.Predicate())
		if err != nil {
			t.Fatal(err)
		}
		if got := m(&l); got != tt.want {
			t.Errorf("%s on %q = %v, want %v", tt.c, tt.category, got, tt.want)
		}
	}
}
