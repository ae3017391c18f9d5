package listing

import "github.com/kailas-cloud/stayfinder/internal/db"

// indexDefinition builds the FT index over listing JSON documents. Only the
// sequence and the coordinates flag are indexed; text predicates are
// evaluated in process.
func (r *Repo) indexDefinition() *db.IndexDefinition {
	return db.NewIndex(r.indexName()).
		Prefix(r.listingPrefix()).
		NumericAs("$.seq", "seq").Sortable().
		TagAs("$.has_coords", "has_coords").
		MustBuild()
}
