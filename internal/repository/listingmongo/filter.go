package listingmongo

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/kailas-cloud/stayfinder/internal/domain/listing"
	"github.com/kailas-cloud/stayfinder/internal/domain/search/predicate"
)

// fieldNames maps listing fields to document keys.
var fieldNames = map[listing.Field]string{
	listing.FieldName:        "name",
	listing.FieldCity:        "city",
	listing.FieldLocation:    "location",
	listing.FieldDescription: "desc",
	listing.FieldAddress:     "address",
	listing.FieldCategory:    "property_type",
}

// Filter compiles p into a find filter of case-insensitive $regex clauses.
func Filter(p predicate.Predicate) (bson.M, error) {
	switch p.Kind() {
	case predicate.KindAll:
		return bson.M{}, nil

	case predicate.KindAnd, predicate.KindOr:
		clauses := make(bson.A, 0, len(p.Children()))
		for _, c := range p.Children() {
			f, err := Filter(c)
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, f)
		}
		op := "$and"
		if p.Kind() == predicate.KindOr {
			op = "$or"
		}
		return bson.M{op: clauses}, nil

	default:
		name, ok := fieldNames[p.Field()]
		if !ok {
			return nil, fmt.Errorf("unknown field %q", p.Field())
		}
		pattern, err := predicate.Pattern(p)
		if err != nil {
			return nil, err
		}
		return bson.M{name: bson.M{"$regex": pattern, "$options": "i"}}, nil
	}
}

// withCoordinates selects documents whose latitude and longitude are numbers.
func withCoordinates() bson.M {
	return bson.M{
		"latitude":  bson.M{"$type": "number"},
		"longitude": bson.M{"$type": "number"},
	}
}
