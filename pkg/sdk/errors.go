package stayfinder

import "github.com/kailas-cloud/stayfinder/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound         = domain.ErrNotFound
	ErrInvalidInput     = domain.ErrInvalidInput
	ErrLandmarkNotFound = domain.ErrLandmarkNotFound
	ErrStoreUnavailable = domain.ErrStoreUnavailable
)
