package listing

import (
	"context"
	"fmt"
	"testing"

	"github.com/kailas-cloud/stayfinder/internal/db"
	"github.com/kailas-cloud/stayfinder/internal/domain/geo"
	domlisting "github.com/kailas-cloud/stayfinder/internal/domain/listing"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	jsonSetFn      func(ctx context.Context, key, path string, data []byte) error
	jsonSetMultiFn func(ctx context.Context, items []db.JSONSetItem) error
	jsonGetFn      func(ctx context.Context, key string, paths ...string) ([]byte, error)
	jsonGetMultiFn func(ctx context.Context, keys []string) ([][]byte, error)
	delFn          func(ctx context.Context, key string) error
	existsFn       func(ctx context.Context, key string) (bool, error)
	incrByFn       func(ctx context.Context, key string, val int64) (int64, error)
	scanFn         func(ctx context.Context, pattern string) ([]string, error)
	createIndexFn  func(ctx context.Context, def *db.IndexDefinition) error
	dropIndexFn    func(ctx context.Context, name string) error
	indexExistsFn  func(ctx context.Context, name string) (bool, error)
	searchListFn   func(
		ctx context.Context, index, query string, offset, limit int, fields []string,
	) (*db.SearchResult, error)
	searchCountFn func(ctx context.Context, index, query string) (int, error)
	noQuery       bool
}

func (m *mockStore) JSONSet(ctx context.Context, key, path string, data []byte) error {
	if m.jsonSetFn != nil {
		return m.jsonSetFn(ctx, key, path, data)
	}
	return nil
}

func (m *mockStore) JSONSetMulti(ctx context.Context, items []db.JSONSetItem) error {
	if m.jsonSetMultiFn != nil {
		return m.jsonSetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	if m.jsonGetFn != nil {
		return m.jsonGetFn(ctx, key, paths...)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error) {
	if m.jsonGetMultiFn != nil {
		return m.jsonGetMultiFn(ctx, keys)
	}
	return make([][]byte, len(keys)), nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func (m *mockStore) IncrBy(ctx context.Context, key string, val int64) (int64, error) {
	if m.incrByFn != nil {
		return m.incrByFn(ctx, key, val)
	}
	return val, nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) DropIndex(ctx context.Context, name string) error {
	if m.dropIndexFn != nil {
		return m.dropIndexFn(ctx, name)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

func (m *mockStore) SupportsQuery(_ context.Context) bool { return !m.noQuery }

func (m *mockStore) SearchList(
	ctx context.Context, index, query string, offset, limit int, fields []string,
) (*db.SearchResult, error) {
	if m.searchListFn != nil {
		return m.searchListFn(ctx, index, query, offset, limit, fields)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchCount(ctx context.Context, index, query string) (int, error) {
	if m.searchCountFn != nil {
		return m.searchCountFn(ctx, index, query)
	}
	return 0, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

func testListing(t *testing.T, id, name string, coords *geo.Point) domlisting.Listing {
	t.Helper()
	l, err := domlisting.New(id, domlisting.Attributes{
		Name:        name,
		City:        "Pune",
		Category:    "Boys Hostel",
		Coordinates: coords,
		Price:       4500,
		Amenities:   []string{"wifi"},
	})
	if err != nil {
		t.Fatalf("new listing: %v", err)
	}
	return l
}

// pagedResult serves docs as FT.SEARCH pages honoring offset and limit.
func pagedResult(docs map[string]string, order []string) func(
	context.Context, string, string, int, int, []string,
) (*db.SearchResult, error) {
	return func(_ context.Context, _, _ string, offset, limit int, _ []string) (*db.SearchResult, error) {
		res := &db.SearchResult{Total: len(order)}
		for i := offset; i < len(order) && i < offset+limit; i++ {
			key := order[i]
			res.Entries = append(res.Entries, db.SearchEntry{
				Key:    key,
				Fields: map[string]string{"$": docs[key]},
			})
		}
		return res, nil
	}
}

func docJSON(id, name string, seq int64, extra string) string {
	body := fmt.Sprintf(`"id":%q,"name":%q,"has_coords":"false","seq":%d`, id, name, seq)
	if extra != "" {
		body += "," + extra
	}
	return "{" + body + "}"
}
