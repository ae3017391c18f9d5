package listingmongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/kailas-cloud/stayfinder/internal/domain/listing"
	"github.com/kailas-cloud/stayfinder/internal/domain/search/category"
	"github.com/kailas-cloud/stayfinder/internal/domain/search/predicate"
	"github.com/kailas-cloud/stayfinder/internal/domain/search/textmatch"
)

func regexOf(t *testing.T, f bson.M, field string) string {
	t.Helper()
	clause, ok := f[field].(bson.M)
	if !ok {
		t.Fatalf("no clause for %q in %v", field, f)
	}
	if clause["$options"] != "i" {
		t.Errorf("%s: expected case-insensitive option, got %v", field, clause["$options"])
	}
	re, _ := clause["$regex"].(string)
	return re
}

func TestFilter_All(t *testing.T) {
	f, err := Filter(predicate.All())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f) != 0 {
		t.Errorf("expected empty filter, got %v", f)
	}
}

func TestFilter_Leaves(t *testing.T) {
	tests := []struct {
		name  string
		p     predicate.Predicate
		field string
		want  string
	}{
		{"equals", predicate.Equals(listing.FieldName, "ab"), "name", `^ab$`},
		{"word", predicate.Word(listing.FieldDescription, "wifi"), "desc", `\bwifi\b`},
		{"prefix", predicate.Prefix(listing.FieldCity, "pun"), "city", `^pun`},
		{"word prefix", predicate.WordPrefix(listing.FieldLocation, "kothr"), "location", `\bkothr`},
		{"contains", predicate.Contains(listing.FieldCategory, "pg"), "property_type", `pg`},
		{"escaped", predicate.Equals(listing.FieldAddress, "a.b(c)"), "address", `^a\.b\(c\)$`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, err := Filter(tc.p)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := regexOf(t, f, tc.field); got != tc.want {
				t.Errorf("regex = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFilter_TextAndCategory(t *testing.T) {
	p := predicate.And(textmatch.Build("ab"), category.Parse("hostel").Predicate())

	f, err := Filter(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	and, ok := f["$and"].(bson.A)
	if !ok || len(and) != 2 {
		t.Fatalf("expected $and with 2 clauses, got %v", f)
	}

	or, ok := and[0].(bson.M)["$or"].(bson.A)
	if !ok || len(or) != 3 {
		t.Fatalf("expected $or over 3 fields, got %v", and[0])
	}
	for i, field := range []string{"name", "city", "location"} {
		if got := regexOf(t, or[i].(bson.M), field); got != `^ab$` {
			t.Errorf("%s regex = %q", field, got)
		}
	}

	if got := regexOf(t, and[1].(bson.M), "property_type"); got != "hostel" {
		t.Errorf("category regex = %q", got)
	}
}

func TestFilter_UnknownField(t *testing.T) {
	if _, err := Filter(predicate.Contains("rent", "1")); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestWithCoordinates(t *testing.T) {
	f := withCoordinates()
	for _, k := range []string{"latitude", "longitude"} {
		c, ok := f[k].(bson.M)
		if !ok || c["$type"] != "number" {
			t.Errorf("%s: unexpected clause %v", k, f[k])
		}
	}
}
