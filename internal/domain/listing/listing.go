package listing

import (
	"fmt"
	"math"
	"regexp"

	"github.com/kailas-cloud/stayfinder/internal/domain/geo"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// MaxIDLength is the maximum listing ID length.
const MaxIDLength = 256

// Field names a textual listing field that predicates can match on.
type Field string

// Matchable listing fields.
const (
	FieldName        Field = "name"
	FieldCity        Field = "city"
	FieldLocation    Field = "location"
	FieldDescription Field = "description"
	FieldAddress     Field = "address"
	FieldCategory    Field = "category"
)

// IsValid reports whether f is a known field.
func (f Field) IsValid() bool {
	switch f {
	case FieldName, FieldCity, FieldLocation, FieldDescription, FieldAddress, FieldCategory:
		return true
	}
	return false
}

// Attributes are the mutable properties of a listing.
type Attributes struct {
	Name        string
	City        string
	Location    string
	Description string
	Address     string
	Category    string
	Coordinates *geo.Point
	Price       float64
	Amenities   []string
}

// Listing is one rentable property (immutable value object).
type Listing struct {
	id    string
	attrs Attributes
	seq   int64
}

// New validates and creates a Listing.
// ID: ^[a-zA-Z0-9_-]+$, 1-256 chars. Name is required. Coordinates, when set,
// must be finite and inside [-90,90]x[-180,180].
func New(id string, attrs Attributes) (Listing, error) {
	if id == "" {
		return Listing{}, fmt.Errorf("listing ID is required")
	}
	if len(id) > MaxIDLength {
		return Listing{}, fmt.Errorf("listing ID too long (max %d)", MaxIDLength)
	}
	if !idRegex.MatchString(id) {
		return Listing{}, fmt.Errorf("listing ID must be alphanumeric with underscores and hyphens")
	}
	if attrs.Name == "" {
		return Listing{}, fmt.Errorf("listing name is required")
	}
	if c := attrs.Coordinates; c != nil {
		if !geo.IsFinite(c.Lat, c.Lon) || !geo.ValidateCoordinates(c.Lat, c.Lon) {
			return Listing{}, fmt.Errorf("invalid coordinates (%v, %v)", c.Lat, c.Lon)
		}
	}
	if math.IsNaN(attrs.Price) || math.IsInf(attrs.Price, 0) || attrs.Price < 0 {
		return Listing{}, fmt.Errorf("price must be a non-negative number")
	}

	return Listing{id: id, attrs: cloneAttributes(attrs)}, nil
}

// Reconstruct creates a Listing without validation (storage hydration).
// seq is the store's insertion sequence, which defines natural order.
func Reconstruct(id string, attrs Attributes, seq int64) Listing {
	return Listing{id: id, attrs: attrs, seq: seq}
}

// ID returns the listing identifier.
func (l *Listing) ID() string { return l.id }

// Name returns the listing name.
func (l *Listing) Name() string { return l.attrs.Name }

// City returns the city.
func (l *Listing) City() string { return l.attrs.City }

// Location returns the locality.
func (l *Listing) Location() string { return l.attrs.Location }

// Description returns the free-text description.
func (l *Listing) Description() string { return l.attrs.Description }

// Address returns the street address.
func (l *Listing) Address() string { return l.attrs.Address }

// Category returns the free-form property category.
func (l *Listing) Category() string { return l.attrs.Category }

// Price returns the display price.
func (l *Listing) Price() float64 { return l.attrs.Price }

// Amenities returns the amenity list.
func (l *Listing) Amenities() []string { return l.attrs.Amenities }

// Seq returns the store insertion sequence.
func (l *Listing) Seq() int64 { return l.seq }

// Attributes returns a copy of the listing attributes.
func (l *Listing) Attributes() Attributes { return cloneAttributes(l.attrs) }

// Coordinates returns the listing position. ok is false when either coordinate
// is missing or not finite; such listings never take part in proximity search.
func (l *Listing) Coordinates() (p geo.Point, ok bool) {
	c := l.attrs.Coordinates
	if c == nil || !geo.IsFinite(c.Lat, c.Lon) {
		return geo.Point{}, false
	}
	return *c, true
}

// Text returns the value of a textual field. Unknown fields read as empty.
func (l *Listing) Text(f Field) string {
	switch f {
	case FieldName:
		return l.attrs.Name
	case FieldCity:
		return l.attrs.City
	case FieldLocation:
		return l.attrs.Location
	case FieldDescription:
		return l.attrs.Description
	case FieldAddress:
		return l.attrs.Address
	case FieldCategory:
		return l.attrs.Category
	default:
		return ""
	}
}

// WithSeq returns a copy with the store sequence set.
func (l *Listing) WithSeq(seq int64) Listing {
	return Listing{id: l.id, attrs: l.attrs, seq: seq}
}

func cloneAttributes(a Attributes) Attributes {
	c := a
	if a.Coordinates != nil {
		p := *a.Coordinates
		c.Coordinates = &p
	}
	if a.Amenities != nil {
		c.Amenities = append([]string(nil), a.Amenities...)
	}
	return c
}
