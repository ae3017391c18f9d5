// Package category maps a requested property category to a listing predicate.
package category

import (
	"strings"

	"github.com/kailas-cloud/stayfinder/internal/domain/listing"
	"github.com/kailas-cloud/stayfinder/internal/domain/search/predicate"
)

// Category is a normalized category filter.
type Category string

// Known categories. All imposes no restriction.
const (
	All       Category = "all"
	Hostel    Category = "hostel"
	PG        Category = "pg"
	Apartment Category = "apartment"
)

// Parse normalizes raw (trim, lowercase). Empty and unrecognized values read as All.
func Parse(raw string) Category {
	switch c := Category(strings.ToLower(strings.TrimSpace(raw))); c {
	case Hostel, PG, Apartment:
		return c
	default:
		return All
	}
}

// IsKnown reports whether raw names a recognized category, including "all".
func IsKnown(raw string) bool {
	c := strings.ToLower(strings.TrimSpace(raw))
	return c == "" || Parse(c) != All || Category(c) == All
}

// Predicate returns the filter for c: a case-insensitive substring match of the
// keyword on the listing category, or match-all for All.
func (c Category) Predicate() predicate.Predicate {
	if c == All || c == "" {
		return predicate.All()
	}
	return predicate.Contains(listing.FieldCategory, string(c))
}

// String returns the category keyword.
func (c Category) String() string { return string(c) }
