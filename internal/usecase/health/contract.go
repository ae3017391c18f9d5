package health

import "context"

// DBPinger checks listing store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// LandmarkCounter reports the size of the loaded landmark dataset.
type LandmarkCounter interface {
	Len() int
}
