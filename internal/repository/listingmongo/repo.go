// Package listingmongo reads and writes listings in a MongoDB collection.
// Predicates are pushed down to the server as $regex filters.
package listingmongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kailas-cloud/stayfinder/internal/domain"
	domlisting "github.com/kailas-cloud/stayfinder/internal/domain/listing"
	"github.com/kailas-cloud/stayfinder/internal/domain/search/predicate"
)

// Collection names used by the repository.
const (
	ListingsCollection = "listings"
	CountersCollection = "counters"
)

const seqCounterID = "listing"

// Repo implements usecase/discovery.ListingStore over MongoDB.
type Repo struct {
	listings *mongo.Collection
	counters *mongo.Collection
}

// New creates a repository over the listings and counters collections.
func New(listings, counters *mongo.Collection) *Repo {
	return &Repo{listings: listings, counters: counters}
}

// EnsureIndex creates the ascending seq index that backs natural order.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	_, err := r.listings.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "seq", Value: 1}},
		Options: options.Index().SetName("seq_1"),
	})
	if err != nil {
		return fmt.Errorf("create seq index: %w", err)
	}
	return nil
}

// Find returns listings matching p in insertion order.
func (r *Repo) Find(ctx context.Context, p predicate.Predicate) ([]domlisting.Listing, error) {
	filter, err := Filter(p)
	if err != nil {
		return nil, fmt.Errorf("compile predicate: %w", err)
	}
	return r.find(ctx, filter)
}

// FindWithCoordinates returns listings that carry both coordinates, in insertion order.
func (r *Repo) FindWithCoordinates(ctx context.Context) ([]domlisting.Listing, error) {
	all, err := r.find(ctx, withCoordinates())
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
	var doc listingDoc
	if err := r.listings.FindOne(ctx, idFilter(id)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domlisting.Listing{}, domain.ErrNotFound
		}
		return domlisting.Listing{}, fmt.Errorf("find %s: %w", id, err)
	}
	return doc.toListing(), nil
}

// Upsert creates or replaces a listing. Replaced listings keep their sequence
// number. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, l *domlisting.Listing) (bool, error) {
	seq, found, err := r.existingSeq(ctx, l.ID())
	if err != nil {
		return false, err
	}
	if !found {
		if seq, err = r.nextSeq(ctx, 1); err != nil {
			return false, err
		}
	}

	_, err = r.listings.ReplaceOne(ctx,
		bson.M{"_id": l.ID()}, toDoc(l, seq),
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return false, fmt.Errorf("replace %s: %w", l.ID(), err)
	}
	return !found, nil
}

// BatchUpsert writes listings with a single unordered bulk write.
func (r *Repo) BatchUpsert(ctx context.Context, ls []domlisting.Listing) error {
	if len(ls) == 0 {
		return nil
	}

	seqs, err := r.seqsFor(ctx, ls)
	if err != nil {
		return err
	}

	models := make([]mongo.WriteModel, len(ls))
	for i := range ls {
		models[i] = mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": ls[i].ID()}).
			SetReplacement(toDoc(&ls[i], seqs[i])).
			SetUpsert(true)
	}

	if _, err := r.listings.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("bulk write: %w", err)
	}
	return nil
}

// Delete removes a listing.
func (r *Repo) Delete(ctx context.Context, id string) error {
	res, err := r.listings.DeleteOne(ctx, idFilter(id))
	if err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count returns the number of stored listings.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.listings.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return int(n), nil
}

// Reset deletes every listing. The sequence counter is kept.
func (r *Repo) Reset(ctx context.Context) error {
	if _, err := r.listings.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("delete all: %w", err)
	}
	return nil
}

// idFilter matches id as stored by the importer or, when id is a 24-digit
// hex string, as an ObjectId written by another client. Decoding renders
// ObjectIds as hex, so both forms round-trip through the API.
func idFilter(id string) bson.M {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return bson.M{"_id": id}
	}
	return bson.M{"_id": bson.M{"$in": bson.A{id, oid}}}
}

func (r *Repo) find(ctx context.Context, filter bson.M) ([]domlisting.Listing, error) {
	cur, err := r.listings.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}

	var docs []listingDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("read cursor: %w", err)
	}

	out := make([]domlisting.Listing, len(docs))
	for i := range docs {
		out[i] = docs[i].toListing()
	}
	return out, nil
}

func (r *Repo) existingSeq(ctx context.Context, id string) (int64, bool, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOne().SetProjection(bson.M{"seq": 1})
	if err := r.listings.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("find %s: %w", id, err)
	}
	return doc.Seq, true, nil
}

// seqsFor keeps existing sequence numbers and reserves a range for new listings.
func (r *Repo) seqsFor(ctx context.Context, ls []domlisting.Listing) ([]int64, error) {
	ids := make([]string, len(ls))
	for i := range ls {
		ids[i] = ls[i].ID()
	}

	cur, err := r.listings.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"seq": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("find existing: %w", err)
	}
	var existing []struct {
		ID  string `bson:"_id"`
		Seq int64  `bson:"seq"`
	}
	if err := cur.All(ctx, &existing); err != nil {
		return nil, fmt.Errorf("read existing: %w", err)
	}
	known := make(map[string]int64, len(existing))
	for _, e := range existing {
		known[e.ID] = e.Seq
	}

	seqs := make([]int64, len(ls))
	fresh := make([]int, 0, len(ls))
	for i, id := range ids {
		if s, ok := known[id]; ok {
			seqs[i] = s
			continue
		}
		fresh = append(fresh, i)
	}
	if len(fresh) == 0 {
		return seqs, nil
	}

	last, err := r.nextSeq(ctx, int64(len(fresh)))
	if err != nil {
		return nil, err
	}
	first := last - int64(len(fresh)) + 1
	for j, i := range fresh {
		seqs[i] = first + int64(j)
	}
	return seqs, nil
}

// nextSeq reserves n sequence numbers and returns the last one.
func (r *Repo) nextSeq(ctx context.Context, n int64) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": seqCounterID},
		bson.M{"$inc": bson.M{"seq": n}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next seq: %w", err)
	}
	return counter.Seq, nil
}
