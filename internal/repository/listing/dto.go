package listing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/stayfinder/internal/domain/geo"
	domlisting "github.com/kailas-cloud/stayfinder/internal/domain/listing"
)

// listingDoc is the JSON document stored under stayfinder:listing:<id>.
// has_coords is a TAG so FT.SEARCH can pre-filter proximity candidates.
type listingDoc struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	City        string   `json:"city,omitempty"`
	Location    string   `json:"location,omitempty"`
	Description string   `json:"description,omitempty"`
	Address     string   `json:"address,omitempty"`
	Category    string   `json:"category,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
	Lon         *float64 `json:"lon,omitempty"`
	HasCoords   string   `json:"has_coords"`
	Price       float64  `json:"price,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
	Seq         int64    `json:"seq"`
}

const (
	coordsYes = "true"
	coordsNo  = "false"
)

func toDoc(l *domlisting.Listing) listingDoc {
	d := listingDoc{
		ID:          l.ID(),
		Name:        l.Name(),
		City:        l.City(),
		Location:    l.Location(),
		Description: l.Description(),
		Address:     l.Address(),
		Category:    l.Category(),
		HasCoords:   coordsNo,
		Price:       l.Price(),
		Amenities:   l.Amenities(),
		Seq:         l.Seq(),
	}
	if p, ok := l.Coordinates(); ok {
		lat, lon := p.Lat, p.Lon
		d.Lat, d.Lon = &lat, &lon
		d.HasCoords = coordsYes
	}
	return d
}

func (d *listingDoc) toListing(fallbackID string) domlisting.Listing {
	id := d.ID
	if id == "" {
		id = fallbackID
	}
	attrs := domlisting.Attributes{
		Name:        d.Name,
		City:        d.City,
		Location:    d.Location,
		Description: d.Description,
		Address:     d.Address,
		Category:    d.Category,
		Price:       d.Price,
		Amenities:   d.Amenities,
	}
	if d.Lat != nil && d.Lon != nil {
		attrs.Coordinates = &geo.Point{Lat: *d.Lat, Lon: *d.Lon}
	}
	return domlisting.Reconstruct(id, attrs, d.Seq)
}

var errEmptyDoc = errors.New("empty document")

// decodeDoc accepts both the plain object returned by JSON.GET / FT.SEARCH
// and the single-element array returned for the "$" path.
func decodeDoc(raw []byte) (listingDoc, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return listingDoc{}, errEmptyDoc
	}

	if raw[0] == '[' {
		var docs []listingDoc
		if err := json.Unmarshal(raw, &docs); err != nil {
			return listingDoc{}, fmt.Errorf("unmarshal listing array: %w", err)
		}
		if len(docs) == 0 {
			return listingDoc{}, errEmptyDoc
		}
		return docs[0], nil
	}

	var d listingDoc
	if err := json.Unmarshal(raw, &d); err != nil {
		return listingDoc{}, fmt.Errorf("unmarshal listing: %w", err)
	}
	return d, nil
}
