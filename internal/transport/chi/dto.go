package chi

import (
	"github.com/kailas-cloud/stayfinder/internal/domain/geo"
	"github.com/kailas-cloud/stayfinder/internal/domain/landmark"
	"github.com/kailas-cloud/stayfinder/internal/domain/listing"
	"github.com/kailas-cloud/stayfinder/internal/domain/search/result"
)

// errorCode is a stable, machine-readable error identifier.
type errorCode string

const (
	codeBadRequest       errorCode = "bad_request"
	codeValidationFailed errorCode = "validation_failed"
	codeUnauthorized     errorCode = "unauthorized"
	codeLandmarkNotFound errorCode = "landmark_not_found"
	codeListingNotFound  errorCode = "listing_not_found"
	codeStoreUnavailable errorCode = "store_unavailable"
	codeInternalError    errorCode = "internal_error"
)

type errorResponse struct {
	Success bool      `json:"success"`
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// searchRequest is the POST /search body. property_type is the legacy key for category.
type searchRequest struct {
	Query        string `json:"query"`
	Category     string `json:"category"`
	PropertyType string `json:"property_type"`
}

// nearbyRequest is the POST /search/nearby body. college_name and
// property_type are legacy keys. RadiusKm accepts a number or a numeric string.
type nearbyRequest struct {
	LandmarkName string `json:"landmarkName"`
	CollegeName  string `json:"college_name"`
	Category     string `json:"category"`
	PropertyType string `json:"property_type"`
	RadiusKm     any    `json:"radiusKm"`
}

type listingDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	City        string   `json:"city,omitempty"`
	Location    string   `json:"location,omitempty"`
	Description string   `json:"description,omitempty"`
	Address     string   `json:"address,omitempty"`
	Category    string   `json:"category,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Price       float64  `json:"price,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
	DistanceKm  *float64 `json:"distanceKm,omitempty"`
}

type landmarkDTO struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type searchResponse struct {
	Success  bool         `json:"success"`
	Data     []listingDTO `json:"data"`
	Count    int          `json:"count"`
	Query    string       `json:"query"`
	Category string       `json:"category"`
}

type nearbyResponse struct {
	Success  bool         `json:"success"`
	Data     []listingDTO `json:"data"`
	Count    int          `json:"count"`
	Landmark landmarkDTO  `json:"landmark"`
	RadiusKm float64      `json:"radiusKm"`
}

type landmarksResponse struct {
	Success bool          `json:"success"`
	Data    []landmarkDTO `json:"data"`
	Count   int           `json:"count"`
}

type listingResponse struct {
	Success bool       `json:"success"`
	Data    listingDTO `json:"data"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func listingToDTO(l *listing.Listing) listingDTO {
	d := listingDTO{
		ID:          l.ID(),
		Name:        l.Name(),
		City:        l.City(),
		Location:    l.Location(),
		Description: l.Description(),
		Address:     l.Address(),
		Category:    l.Category(),
		Price:       l.Price(),
		Amenities:   l.Amenities(),
	}
	if p, ok := l.Coordinates(); ok {
		lat, lon := p.Lat, p.Lon
		d.Latitude, d.Longitude = &lat, &lon
	}
	return d
}

// matchesToDTO converts matches; distances are rounded to two decimals here only.
func matchesToDTO(ms []result.Match) []listingDTO {
	out := make([]listingDTO, len(ms))
	for i := range ms {
		l := ms[i].Listing()
		out[i] = listingToDTO(&l)
		if km, ok := ms[i].DistanceKm(); ok {
			r := geo.RoundKm(km)
			out[i].DistanceKm = &r
		}
	}
	return out
}

func landmarkToDTO(lm landmark.Landmark) landmarkDTO {
	return landmarkDTO{Name: lm.Name, Latitude: lm.Latitude, Longitude: lm.Longitude}
}
