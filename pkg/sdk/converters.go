package stayfinder

import (
	"github.com/kailas-cloud/stayfinder/internal/domain/geo"
	domlandmark "github.com/kailas-cloud/stayfinder/internal/domain/landmark"
	domlisting "github.com/kailas-cloud/stayfinder/internal/domain/listing"
	"github.com/kailas-cloud/stayfinder/internal/domain/search/result"
)

func listingFromDomain(l *domlisting.Listing) Listing {
	out := Listing{
		ID:          l.ID(),
		Name:        l.Name(),
		City:        l.City(),
		Location:    l.Location(),
		Description: l.Description(),
		Address:     l.Address(),
		Category:    l.Category(),
		Price:       l.Price(),
		Amenities:   append([]string(nil), l.Amenities()...),
	}
	if p, ok := l.Coordinates(); ok {
		lat, lon := p.Lat, p.Lon
		out.Latitude, out.Longitude = &lat, &lon
	}
	return out
}

// attributesFromListing maps l to domain attributes. Coordinates are kept only
// when both are set; the caller validates the half-set case.
func attributesFromListing(l *Listing) domlisting.Attributes {
	attrs := domlisting.Attributes{
		Name:        l.Name,
		City:        l.City,
		Location:    l.Location,
		Description: l.Description,
		Address:     l.Address,
		Category:    l.Category,
		Price:       l.Price,
		Amenities:   append([]string(nil), l.Amenities...),
	}
	if l.Latitude != nil && l.Longitude != nil {
		attrs.Coordinates = &geo.Point{Lat: *l.Latitude, Lon: *l.Longitude}
	}
	return attrs
}

func matchesFromDomain(ms []result.Match) []Match {
	out := make([]Match, len(ms))
	for i := range ms {
		l := ms[i].Listing()
		out[i] = Match{Listing: listingFromDomain(&l)}
		if km, ok := ms[i].DistanceKm(); ok {
			out[i].DistanceKm = &km
		}
	}
	return out
}

func landmarkFromDomain(lm domlandmark.Landmark) Landmark {
	return Landmark{Name: lm.Name, Latitude: lm.Latitude, Longitude: lm.Longitude}
}
