package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/stayfinder/internal/domain"
	dombatch "github.com/kailas-cloud/stayfinder/internal/domain/batch"
	"github.com/kailas-cloud/stayfinder/internal/domain/listing"
)

// --- Mocks ---

type mockBulkUpserter struct {
	batches [][]listing.Listing
	failOn  int // 1-based call number to fail; 0 = never
	err     error
}

func (m *mockBulkUpserter) BatchUpsert(_ context.Context, ls []listing.Listing) error {
	m.batches = append(m.batches, append([]listing.Listing(nil), ls...))
	if m.failOn == len(m.batches) {
		return m.err
	}
	return nil
}

type mockResetter struct {
	called bool
	err    error
}

func (m *mockResetter) Reset(_ context.Context) error {
	m.called = true
	return m.err
}

func ptr(v float64) *float64 { return &v }

// --- Tests ---

func TestImport_AllValid(t *testing.T) {
	store := &mockBulkUpserter{}
	svc := New(store)

	results := svc.Import(context.Background(), []Record{
		{ID: "a", Name: "Sunrise Hostel", City: "Pune", Latitude: ptr(18.52), Longitude: ptr(73.85)},
		{ID: "b", Name: "Moonlight PG"},
	})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Status() != dombatch.StatusOK {
			t.Errorf("%s: status %q err %v", r.ID(), r.Status(), r.Err())
		}
	}
	if len(store.batches) != 1 || len(store.batches[0]) != 2 {
		t.Fatalf("expected one batch of 2, got %v", len(store.batches))
	}
	if _, ok := store.batches[0][0].Coordinates(); !ok {
		t.Error("expected coordinates on first listing")
	}
}

func TestImport_AssignsIDs(t *testing.T) {
	store := &mockBulkUpserter{}
	svc := New(store).WithIDGenerator(func() string { return "generated-1" })

	results := svc.Import(context.Background(), []Record{{Name: "No ID Hostel"}})

	if results[0].ID() != "generated-1" {
		t.Errorf("ID = %q", results[0].ID())
	}
	if store.batches[0][0].ID() != "generated-1" {
		t.Errorf("stored ID = %q", store.batches[0][0].ID())
	}
}

func TestImport_DefaultIDIsUUID(t *testing.T) {
	store := &mockBulkUpserter{}
	results := New(store).Import(context.Background(), []Record{{Name: "A"}})
	if len(results[0].ID()) != 36 {
		t.Errorf("expected uuid, got %q", results[0].ID())
	}
}

func TestImport_LegacyKeys(t *testing.T) {
	store := &mockBulkUpserter{}
	rs, err := ParseJSON([]byte(`[{
		"_id": "legacy-1", "name": "Old Hostel", "desc": "near gate",
		"property_type": "Girls Hostel", "lat": 18.5, "lon": 73.8
	}]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	results := New(store).Import(context.Background(), rs)
	if results[0].Status() != dombatch.StatusOK {
		t.Fatalf("unexpected error: %v", results[0].Err())
	}
	l := store.batches[0][0]
	if l.ID() != "legacy-1" || l.Description() != "near gate" || l.Category() != "Girls Hostel" {
		t.Errorf("unexpected listing: %s %+v", l.ID(), l.Attributes())
	}
	if p, ok := l.Coordinates(); !ok || p.Lat != 18.5 {
		t.Errorf("coordinates = %v %v", p, ok)
	}
}

func TestImport_ValidationErrors(t *testing.T) {
	store := &mockBulkUpserter{}
	svc := New(store)

	results := svc.Import(context.Background(), []Record{
		{ID: "ok", Name: "Fine"},
		{ID: "noname"},
		{ID: "half", Name: "Half", Latitude: ptr(18.5)},
		{ID: "bad id!", Name: "Bad"},
		{ID: "range", Name: "Range", Latitude: ptr(95), Longitude: ptr(10)},
	})

	if results[0].Status() != dombatch.StatusOK {
		t.Errorf("first item should succeed: %v", results[0].Err())
	}
	for _, r := range results[1:] {
		if r.Status() != dombatch.StatusError {
			t.Errorf("%s: expected error", r.ID())
		}
		if !errors.Is(r.Err(), domain.ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", r.ID(), r.Err())
		}
	}
	if len(store.batches) != 1 || len(store.batches[0]) != 1 {
		t.Errorf("only the valid listing should be written")
	}
}

func TestImport_Chunks(t *testing.T) {
	store := &mockBulkUpserter{}
	svc := New(store).WithMaxBatchSize(2)

	records := []Record{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}, {Name: "E"}}
	results := svc.Import(context.Background(), records)

	if len(store.batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(store.batches))
	}
	if s := dombatch.Summarize(results); s.OK != 5 {
		t.Errorf("summary = %+v", s)
	}
}

func TestImport_BatchFailureMarksOnlyItsItems(t *testing.T) {
	store := &mockBulkUpserter{failOn: 2, err: errors.New("connection reset")}
	svc := New(store).WithMaxBatchSize(2)

	results := svc.Import(context.Background(), []Record{
		{ID: "a", Name: "A"}, {ID: "b", Name: "B"}, {ID: "c", Name: "C"},
	})

	want := []dombatch.ItemStatus{dombatch.StatusOK, dombatch.StatusOK, dombatch.StatusError}
	for i, r := range results {
		if r.Status() != want[i] {
			t.Errorf("item %d: status %q, want %q", i, r.Status(), want[i])
		}
		if r.Index() != i {
			t.Errorf("item %d: index %d", i, r.Index())
		}
	}
}

func TestImport_Empty(t *testing.T) {
	store := &mockBulkUpserter{}
	if got := New(store).Import(context.Background(), nil); len(got) != 0 {
		t.Errorf("expected no results, got %d", len(got))
	}
	if len(store.batches) != 0 {
		t.Error("store must not be called")
	}
}

func TestReset(t *testing.T) {
	r := &mockResetter{}
	if err := New(&mockBulkUpserter{}).WithResetter(r).Reset(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.called {
		t.Error("resetter not called")
	}
}

func TestReset_Unsupported(t *testing.T) {
	if err := New(&mockBulkUpserter{}).Reset(context.Background()); err == nil {
		t.Fatal("expected error without resetter")
	}
}

func TestParseYAML(t *testing.T) {
	rs, err := ParseYAML([]byte(`
- id: y1
  name: Yaml Hostel
  category: PG
  latitude: 18.5
  longitude: 73.8
  amenities: [wifi, laundry]
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rs) != 1 || rs[0].Name != "Yaml Hostel" || len(rs[0].Amenities) != 2 {
		t.Fatalf("unexpected records: %+v", rs)
	}
}
