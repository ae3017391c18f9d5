// Package landmark holds named reference points used for proximity search.
package landmark

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/stayfinder/internal/domain/geo"
)

// Landmark is a named reference point, e.g. a college campus.
type Landmark struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// New validates and creates a Landmark.
func New(name string, lat, lon float64) (Landmark, error) {
	if strings.TrimSpace(name) == "" {
		return Landmark{}, fmt.Errorf("landmark name is required")
	}
	if !geo.IsFinite(lat, lon) || !geo.ValidateCoordinates(lat, lon) {
		return Landmark{}, fmt.Errorf("landmark %q has invalid coordinates (%v, %v)", name, lat, lon)
	}
	return Landmark{Name: name, Latitude: lat, Longitude: lon}, nil
}

// Point returns the landmark position.
func (l Landmark) Point() geo.Point {
	return geo.Point{Lat: l.Latitude, Lon: l.Longitude}
}

// Index is an immutable, ordered set of landmarks. Safe for concurrent use.
type Index struct {
	items []Landmark
	lower []string
}

// NewIndex builds an index over a copy of items, preserving their order.
func NewIndex(items []Landmark) *Index {
	idx := &Index{
		items: append([]Landmark(nil), items...),
		lower: make([]string, len(items)),
	}
	for i, lm := range idx.items {
		idx.lower[i] = strings.ToLower(lm.Name)
	}
	return idx
}

// FindByName returns the first landmark, in dataset order, whose name contains
// query as a case-insensitive substring. An empty query never matches.
func (x *Index) FindByName(query string) (Landmark, bool) {
	if x == nil || query == "" {
		return Landmark{}, false
	}
	q := strings.ToLower(query)
	for i, name := range x.lower {
		if strings.Contains(name, q) {
			return x.items[i], true
		}
	}
	return Landmark{}, false
}

// All returns the landmarks in dataset order.
func (x *Index) All() []Landmark {
	if x == nil {
		return nil
	}
	return append([]Landmark(nil), x.items...)
}

// Len returns the number of landmarks.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.items)
}
