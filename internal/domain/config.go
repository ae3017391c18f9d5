package domain

// KeyPrefix is the default key namespace for listing documents in Redis/Valkey.
const KeyPrefix = "stayfinder:"

// SearchConfig holds discovery defaults, not exposed to clients.
type SearchConfig struct {
	DefaultRadiusKm float64
	StoreTimeoutMs  int
}

// DefaultSearchConfig returns the defaults used when config leaves them empty.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		DefaultRadiusKm: 30,
		StoreTimeoutMs:  2000,
	}
}
