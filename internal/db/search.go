package db

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
// For JSON indexes without RETURN, Fields holds the whole document under "$".
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
