// Package batch describes per-item outcomes of a listing import.
package batch

// ItemStatus is the processing outcome of a single import item.
type ItemStatus string

// Item status values.
const (
	StatusOK    ItemStatus = "ok"
	StatusError ItemStatus = "error"
)

// Result is the outcome of importing one listing. Index is the item position
// in the input, so entries without a usable ID can still be reported.
type Result struct {
	index  int
	id     string
	status ItemStatus
	err    error
}

// NewOK creates a successful result.
func NewOK(index int, id string) Result {
	return Result{index: index, id: id, status: StatusOK}
}

// NewError creates a failed result.
func NewError(index int, id string, err error) Result {
	return Result{index: index, id: id, status: StatusError, err: err}
}

// Index returns the item position in the input.
func (r Result) Index() int { return r.index }

// ID returns the listing identifier, possibly empty for rejected items.
func (r Result) ID() string { return r.id }

// Status returns the processing outcome.
func (r Result) Status() ItemStatus { return r.status }

// Err returns the error, if any.
func (r Result) Err() error { return r.err }

// Summary counts results by status.
type Summary struct {
	OK     int
	Failed int
}

// Summarize tallies results.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		if r.status == StatusOK {
			s.OK++
		} else {
			s.Failed++
		}
	}
	return s
}
