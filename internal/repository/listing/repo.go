// Package listing stores listings as JSON documents in Redis or Valkey and
// evaluates discovery predicates over them.
package listing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/stayfinder/internal/db"
	"github.com/kailas-cloud/stayfinder/internal/domain"
	domlisting "github.com/kailas-cloud/stayfinder/internal/domain/listing"
	"github.com/kailas-cloud/stayfinder/internal/domain/search/predicate"
)

// DefaultPageSize is the FT.SEARCH page size used when loading candidates.
const DefaultPageSize = 500

// store is the consumer interface for listings (ISP).
//
//nolint:interfacebloat // listing repo needs json + counter + index operations
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONSetMulti(ctx context.Context, items []db.JSONSetItem) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	IncrBy(ctx context.Context, key string, val int64) (int64, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SupportsQuery(ctx context.Context) bool
	SearchList(ctx context.Context, index, query string, offset, limit int, fields []string) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

// Repo implements usecase/discovery.ListingStore over rueidis.
type Repo struct {
	store    store
	prefix   string
	pageSize int
}

// New creates a listing repository with the default key prefix.
func New(s store) *Repo {
	return &Repo{store: s, prefix: domain.KeyPrefix, pageSize: DefaultPageSize}
}

// WithKeyPrefix overrides the key namespace ("stayfinder:" by default).
func (r *Repo) WithKeyPrefix(prefix string) *Repo {
	if prefix != "" {
		if !strings.HasSuffix(prefix, ":") {
			prefix += ":"
		}
		r.prefix = prefix
	}
	return r
}

// WithPageSize configures how many documents are fetched per FT.SEARCH call.
func (r *Repo) WithPageSize(n int) *Repo {
	if n > 0 {
		r.pageSize = n
	}
	return r
}

// EnsureIndex creates the listing FT index when the backend can query it.
// Valkey serves listing through SCAN and needs no index.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	if !r.store.SupportsQuery(ctx) {
		return nil
	}

	name := r.indexName()
	exists, err := r.store.IndexExists(ctx, name)
	if err != nil {
		return fmt.Errorf("check index %s: %w", name, err)
	}
	if exists {
		return nil
	}

	if err := r.store.CreateIndex(ctx, r.indexDefinition()); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index %s: %w", name, err)
	}
	return nil
}

// Find returns listings matching p in insertion order.
func (r *Repo) Find(ctx context.Context, p predicate.Predicate) ([]domlisting.Listing, error) {
	match, err := predicate.Compile(p)
	if err != nil {
		return nil, fmt.Errorf("compile predicate: %w", err)
	}

	all, err := r.load(ctx, "*")
	if err != nil {
		return nil, err
	}
	return predicate.Filter(all, match), nil
}

// FindWithCoordinates returns listings that carry both coordinates, in insertion order.
func (r *Repo) FindWithCoordinates(ctx context.Context) ([]domlisting.Listing, error) {
	query := "*"
	if r.store.SupportsQuery(ctx) {
		query = "@has_coords:{" + coordsYes + "}"
	}

	all, err := r.load(ctx, query)
	if err != nil {
		return nil, err
	}

	out := all[:0]
	for i := range all {
		if _, ok := all[i].Coordinates(); ok {
			out = append(out, all[i])
		}
	}
	return out, nil
}

// Get returns a listing by ID.
func (r *Repo) Get(ctx context.Context, id string) (domlisting.Listing, error) {
	key := r.key(id)
	raw, err := r.store.JSONGet(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domlisting.Listing{}, domain.ErrNotFound
		}
		return domlisting.Listing{}, fmt.Errorf("json.get %s: %w", key, err)
	}

	doc, err := decodeDoc(raw)
	if err != nil {
		if errors.Is(err, errEmptyDoc) {
			return domlisting.Listing{}, domain.ErrNotFound
		}
		return domlisting.Listing{}, fmt.Errorf("decode %s: %w", key, err)
	}
	return doc.toListing(id), nil
}

// Upsert creates or replaces a listing. New listings take the next sequence
// number; replaced listings keep theirs so natural order is stable.
// Returns true if created.
func (r *Repo) Upsert(ctx context.Context, l *domlisting.Listing) (bool, error) {
	key := r.key(l.ID())

	seq, found, err := r.existingSeq(ctx, key)
	if err != nil {
		return false, err
	}
	if !found {
		if seq, err = r.nextSeq(ctx, 1); err != nil {
			return false, err
		}
	}

	data, err := marshalDoc(l, seq)
	if err != nil {
		return false, err
	}
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return false, fmt.Errorf("json.set %s: %w", key, err)
	}
	return !found, nil
}

// BatchUpsert writes listings in one pipeline. Sequence numbers for new
// listings are reserved with a single INCRBY.
func (r *Repo) BatchUpsert(ctx context.Context, ls []domlisting.Listing) error {
	if len(ls) == 0 {
		return nil
	}

	keys := make([]string, len(ls))
	for i := range ls {
		keys[i] = r.key(ls[i].ID())
	}

	current, err := r.store.JSONGetMulti(ctx, keys)
	if err != nil {
		return fmt.Errorf("load existing: %w", err)
	}

	seqs := make([]int64, len(ls))
	fresh := make([]int, 0, len(ls))
	for i, raw := range current {
		if raw == nil {
			fresh = append(fresh, i)
			continue
		}
		doc, err := decodeDoc(raw)
		if err != nil {
			fresh = append(fresh, i)
			continue
		}
		seqs[i] = doc.Seq
	}

	if len(fresh) > 0 {
		last, err := r.nextSeq(ctx, int64(len(fresh)))
		if err != nil {
			return err
		}
		first := last - int64(len(fresh)) + 1
		for j, i := range fresh {
			seqs[i] = first + int64(j)
		}
	}

	items := make([]db.JSONSetItem, len(ls))
	for i := range ls {
		data, err := marshalDoc(&ls[i], seqs[i])
		if err != nil {
			return err
		}
		items[i] = db.JSONSetItem{Key: keys[i], Path: "$", Data: data}
	}

	if err := r.store.JSONSetMulti(ctx, items); err != nil {
		return fmt.Errorf("json.set batch: %w", err)
	}
	return nil
}

// Delete removes a listing.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.key(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// Count returns the number of stored listings.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, r.indexName(), "*")
	if err != nil {
		return 0, fmt.Errorf("search count: %w", err)
	}
	return n, nil
}

// Reset deletes every listing and rebuilds the index so it matches the
// current schema. The sequence counter is kept.
func (r *Repo) Reset(ctx context.Context) error {
	keys, err := r.store.Scan(ctx, r.listingPrefix()+"*")
	if err != nil {
		return fmt.Errorf("scan listings: %w", err)
	}
	for _, key := range keys {
		if err := r.store.Del(ctx, key); err != nil {
			return fmt.Errorf("del %s: %w", key, err)
		}
	}

	if !r.store.SupportsQuery(ctx) {
		return nil
	}
	if err := r.store.DropIndex(ctx, r.indexName()); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("drop index: %w", err)
	}
	return r.EnsureIndex(ctx)
}

// load pages through FT.SEARCH and returns decoded listings sorted by seq.
// Undecodable documents are skipped.
func (r *Repo) load(ctx context.Context, query string) ([]domlisting.Listing, error) {
	idx := r.indexName()
	var out []domlisting.Listing

	for offset := 0; ; {
		res, err := r.store.SearchList(ctx, idx, query, offset, r.pageSize, nil)
		if err != nil {
			return nil, fmt.Errorf("search list: %w", err)
		}
		if res == nil || len(res.Entries) == 0 {
			break
		}

		for _, entry := range res.Entries {
			doc, err := decodeDoc([]byte(entry.Fields["$"]))
			if err != nil {
				continue
			}
			out = append(out, doc.toListing(r.idFromKey(entry.Key)))
		}

		offset += r.pageSize
		if offset >= res.Total {
			break
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Seq() < out[j].Seq() })
	return out, nil
}

func (r *Repo) existingSeq(ctx context.Context, key string) (int64, bool, error) {
	raw, err := r.store.JSONGet(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("json.get %s: %w", key, err)
	}
	doc, err := decodeDoc(raw)
	if err != nil {
		return 0, false, nil //nolint:nilerr // unreadable doc is overwritten as new
	}
	return doc.Seq, true, nil
}

// nextSeq reserves n sequence numbers and returns the last one.
func (r *Repo) nextSeq(ctx context.Context, n int64) (int64, error) {
	v, err := r.store.IncrBy(ctx, r.seqKey(), n)
	if err != nil {
		return 0, fmt.Errorf("incrby %s: %w", r.seqKey(), err)
	}
	return v, nil
}

func marshalDoc(l *domlisting.Listing, seq int64) ([]byte, error) {
	doc := toDoc(l)
	doc.Seq = seq
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal listing %s: %w", l.ID(), err)
	}
	return data, nil
}

func (r *Repo) listingPrefix() string { return r.prefix + "listing:" }
func (r *Repo) key(id string) string   { return r.listingPrefix() + id }
func (r *Repo) indexName() string      { return r.prefix + "listing:idx" }

// seqKey lives outside the listing prefix so SCAN and the index never see it.
func (r *Repo) seqKey() string { return r.prefix + "seq:listing" }

func (r *Repo) idFromKey(key string) string {
	return strings.TrimPrefix(key, r.listingPrefix())
}
