package stayfinder

// Listing is a rentable property.
type Listing struct {
	ID          string
	Name        string
	City        string
	Location    string
	Description string
	Address     string
	Category    string // free text, e.g. "Boys Hostel", "PG", "Apartment"
	Latitude    *float64
	Longitude   *float64
	Price       float64
	Amenities   []string
}

// Landmark is a named reference point, e.g. a college.
type Landmark struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// Match is a listing returned by a search. DistanceKm is set for proximity
// results only and carries full precision.
type Match struct {
	Listing
	DistanceKm *float64
}

// SearchResult is the outcome of a text search, in store order.
type SearchResult struct {
	Matches  []Match
	Query    string
	Category string
}

// NearbyQuery describes a proximity search. A nil RadiusKm uses the client default.
type NearbyQuery struct {
	Landmark string
	Category string
	RadiusKm *float64
}

// NearbyResult is the outcome of a proximity search, nearest first.
type NearbyResult struct {
	Matches  []Match
	Landmark Landmark
	RadiusKm float64
}

// Km returns a pointer to km, for NearbyQuery.RadiusKm.
func Km(km float64) *float64 { return &km }
