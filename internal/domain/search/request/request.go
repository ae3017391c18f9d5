package request

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/stayfinder/internal/domain"
	"github.com/kailas-cloud/stayfinder/internal/domain/search/category"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed query or landmark length, in runes.
	MaxQueryLength = 512
	// DefaultRadiusKm is used when a proximity request omits the radius.
	DefaultRadiusKm = 30.0
)

// Text is a validated free-text search.
type Text struct {
	query    string
	category category.Category
	rawCat   string
}

// NewText validates a text search. An empty query is allowed and matches all listings.
func NewText(query, rawCategory string) (Text, error) {
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return Text{}, domain.InvalidInput("query too long (max %d chars)", MaxQueryLength)
	}
	return Text{query: query, category: category.Parse(rawCategory), rawCat: rawCategory}, nil
}

// Query returns the raw query text.
func (r *Text) Query() string { return r.query }

// Category returns the normalized category filter.
func (r *Text) Category() category.Category { return r.category }

// RawCategory returns the category as the caller sent it.
func (r *Text) RawCategory() string { return r.rawCat }

// Proximity is a validated landmark search.
type Proximity struct {
	landmark string
	category category.Category
	rawCat   string
	radiusKm float64
}

// NewProximity validates a landmark search. The landmark name is required. A nil radius falls back to
// defaultRadiusKm, or DefaultRadiusKm when that is not positive. The radius must
// be finite and non-negative.
func NewProximity(landmark, rawCategory string, radiusKm *float64, defaultRadiusKm float64) (Proximity, error) {
	if strings.TrimSpace(landmark) == "" {
		return Proximity{}, domain.InvalidInput("landmark name is required")
	}
	if utf8.RuneCountInString(landmark) > MaxQueryLength {
		return Proximity{}, domain.InvalidInput("landmark name too long (max %d chars)", MaxQueryLength)
	}
	r := defaultRadiusKm
	if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		r = DefaultRadiusKm
	}
	if radiusKm != nil {
		r = *radiusKm
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return Proximity{}, domain.InvalidInput("radius must be a finite number")
	}
	if r < 0 {
		return Proximity{}, domain.InvalidInput("radius must not be negative")
	}
	return Proximity{
		landmark: landmark,
		category: category.Parse(rawCategory),
		rawCat:   rawCategory,
		radiusKm: r,
	}, nil
}

// Landmark returns the requested landmark name.
func (r *Proximity) Landmark() string { return r.landmark }

// Category returns the normalized category filter.
func (r *Proximity) Category() category.Category { return r.category }

// RawCategory returns the category as the caller sent it.
func (r *Proximity) RawCategory() string { return r.rawCat }

// RadiusKm returns the inclusive search radius.
func (r *Proximity) RadiusKm() float64 { return r.radiusKm }

// ParseRadius parses a textual radius. Blank input means "not set" and yields nil.
func ParseRadius(raw string) (*float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, domain.InvalidInput("radius %q is not a number", raw)
	}
	return &v, nil
}
