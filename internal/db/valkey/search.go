package valkey

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/stayfinder/internal/db"
)

// SearchList performs paginated listing. query="*" is served by SCAN + JSON.GET;
// anything else goes to FT.SEARCH.
func (s *Store) SearchList(
	ctx context.Context, index, query string, offset, limit int, fields []string,
) (*db.SearchResult, error) {
	if query == "*" {
		return s.scanList(ctx, index, offset, limit)
	}
	return s.Store.SearchList(ctx, index, query, offset, limit, fields) //nolint:wrapcheck // same package family
}

// SearchCount returns document count, via SCAN for query="*".
func (s *Store) SearchCount(ctx context.Context, index, query string) (int, error) {
	if query == "*" {
		keys, err := s.Scan(ctx, indexToKeyPrefix(index)+"*")
		if err != nil {
			return 0, fmt.Errorf("scan for count: %w", err)
		}
		return len(keys), nil
	}
	return s.Store.SearchCount(ctx, index, query) //nolint:wrapcheck // same package family
}

// scanList pages over keys sorted lexicographically, so page boundaries are stable.
func (s *Store) scanList(ctx context.Context, index string, offset, limit int) (*db.SearchResult, error) {
	keys, err := s.Scan(ctx, indexToKeyPrefix(index)+"*")
	if err != nil {
		return nil, fmt.Errorf("scan for list: %w", err)
	}

	sort.Strings(keys)

	total := len(keys)
	if offset >= total {
		return &db.SearchResult{Total: total}, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	pageKeys := keys[offset:end]

	docs, err := s.JSONGetMulti(ctx, pageKeys)
	if err != nil {
		return nil, fmt.Errorf("load page: %w", err)
	}

	entries := make([]db.SearchEntry, 0, len(pageKeys))
	for i, key := range pageKeys {
		if docs[i] == nil {
			continue // deleted between SCAN and GET
		}
		entries = append(entries, db.SearchEntry{
			Key:    key,
			Fields: map[string]string{"$": string(docs[i])},
		})
	}

	return &db.SearchResult{Total: total, Entries: entries}, nil
}

// indexToKeyPrefix converts index name to a SCAN prefix.
// "stayfinder:listing:idx" -> "stayfinder:listing:"
func indexToKeyPrefix(index string) string {
	if strings.HasSuffix(index, ":idx") {
		return index[:len(index)-3]
	}
	return index + ":"
}
