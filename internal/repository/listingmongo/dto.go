package listingmongo

import (
	"github.com/kailas-cloud/stayfinder/internal/domain/geo"
	domlisting "github.com/kailas-cloud/stayfinder/internal/domain/listing"
)

// listingDoc keeps the document layout of the listings collection.
type listingDoc struct {
	ID          string   `bson:"_id"`
	Name        string   `bson:"name"`
	City        string   `bson:"city,omitempty"`
	Location    string   `bson:"location,omitempty"`
	Description string   `bson:"desc,omitempty"`
	Address     string   `bson:"address,omitempty"`
	Category    string   `bson:"property_type,omitempty"`
	Latitude    *float64 `bson:"latitude,omitempty"`
	Longitude   *float64 `bson:"longitude,omitempty"`
	Price       float64  `bson:"price,omitempty"`
	Amenities   []string `bson:"amenities,omitempty"`
	Seq         int64    `bson:"seq"`
}

func toDoc(l *domlisting.Listing, seq int64) listingDoc {
	d := listingDoc{
		ID:          l.ID(),
		Name:        l.Name(),
		City:        l.City(),
		Location:    l.Location(),
		Description: l.Description(),
		Address:     l.Address(),
		Category:    l.Category(),
		Price:       l.Price(),
		Amenities:   l.Amenities(),
		Seq:         seq,
	}
	if p, ok := l.Coordinates(); ok {
		lat, lon := p.Lat, p.Lon
		d.Latitude, d.Longitude = &lat, &lon
	}
	return d
}

func (d *listingDoc) toListing() domlisting.Listing {
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
	if d.Latitude != nil && d.Longitude != nil {
		attrs.Coordinates = &geo.Point{Lat: *d.Latitude, Lon: *d.Longitude}
	}
	return domlisting.Reconstruct(d.ID, attrs, d.Seq)
}
