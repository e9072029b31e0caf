package session

import "github.com/mmcdole/lorastudio/internal/domain"

// QueryStatus is where the project scan query stands
type QueryStatus int

const (
	QueryIdle QueryStatus = iota
	QueryPending
	QuerySuccess
	QueryError
)

// String returns the status name
func (s QueryStatus) String() string {
	switch s {
	case QueryPending:
		return "pending"
	case QuerySuccess:
		return "success"
	case QueryError:
		return "error"
	default:
		return "idle"
	}
}

// Settled reports whether the status is terminal
func (s QueryStatus) Settled() bool {
	return s == QuerySuccess || s == QueryError
}

// ScanQuery holds the scan result for the open project.
// There is no request fencing: whichever scan resolves last is what the query
// shows, even if an older request settles after a newer one began.
type ScanQuery struct {
	root   string
	status QueryStatus
	images []domain.ImageEntry
	err    error
}

// Begin marks a scan of root as outstanding. The previous data stays
// visible until the new scan resolves.
func (q *ScanQuery) Begin(root string) {
	q.root = root
	q.status = QueryPending
}

// Resolve settles the query with the outcome of a scan of root
func (q *ScanQuery) Resolve(root string, images []domain.ImageEntry, err error) QueryStatus {
	q.root = root
	if err != nil {
		q.status = QueryError
		q.err = err
		q.images = nil
		return q.status
	}
	q.status = QuerySuccess
	q.err = nil
	q.images = images
	return q.status
}

// Status returns the current status
func (q *ScanQuery) Status() QueryStatus { return q.status }

// Root returns the root the query last began or resolved
func (q *ScanQuery) Root() string { return q.root }

// Images returns the last successful result
func (q *ScanQuery) Images() []domain.ImageEntry { return q.images }

// Err returns the last failure, nil after a success
func (q *ScanQuery) Err() error { return q.err }

// UpdateImage replaces the entry with the same ID. Returns false if absent.
func (q *ScanQuery) UpdateImage(img domain.ImageEntry) bool {
	for i := range q.images {
		if q.images[i].ID == img.ID {
			q.images[i] = img
			return true
		}
	}
	return false
}
