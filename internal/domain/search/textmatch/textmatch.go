// Package textmatch turns a free-text query into a tiered listing predicate.
// Short queries match strictly, longer ones match more loosely and over more fields.
package textmatch

import (
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/stayfinder/internal/domain/listing"
	"github.com/kailas-cloud/stayfinder/internal/domain/search/predicate"
)

var (
	shortFields = []listing.Field{listing.FieldName, listing.FieldCity, listing.FieldLocation}
	longFields  = []listing.Field{
		listing.FieldName, listing.FieldCity, listing.FieldLocation,
		listing.FieldDescription, listing.FieldAddress,
	}
)

type leafFunc func(listing.Field, string) predicate.Predicate

// tier is one rule of the ladder: every leaf in leaves is applied to every field
// in its field list and the results are OR-ed together.
type tier struct {
	maxLen int // inclusive; 0 means unbounded
	rules  []rule
}

type rule struct {
	fields []listing.Field
	leaf   leafFunc
}

var tiers = []tier{
	{maxLen: 2, rules: []rule{
		{shortFields, predicate.Equals},
	}},
	{maxLen: 3, rules: []rule{
		{shortFields, predicate.Equals},
		{shortFields, predicate.Word},
		{shortFields, predicate.Prefix},
	}},
	{maxLen: 0, rules: []rule{
		{longFields, predicate.Word},
		{shortFields, predicate.WordPrefix},
	}},
}

// Build returns the predicate for query. Only surrounding whitespace is
// trimmed; the tier is chosen by the rune length of what remains, and an empty
// query matches all listings.
func Build(query string) predicate.Predicate {
	q := strings.TrimSpace(query)
	n := utf8.RuneCountInString(q)
	if n == 0 {
		return predicate.All()
	}
	for _, t := range tiers {
		if t.maxLen == 0 || n <= t.maxLen {
			return t.build(q)
		}
	}
	return predicate.All()
}

func (t tier) build(q string) predicate.Predicate {
	var ps []predicate.Predicate
	for _, r := range t.rules {
		for _, f := range r.fields {
			ps = append(ps, r.leaf(f, q))
		}
	}
	return predicate.Or(ps...)
}
