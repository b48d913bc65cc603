// Package requestqueue implements the rate-limited "request queue" helper
// spec.md names as an external collaborator of the core: a sliding window
// over the most recent find requests, recording whether each one returned
// at least one document, so a caller can monitor how often searches come
// back empty.
package requestqueue

import (
	"sync"

	"searchengine/models"
	"searchengine/query"
	"searchengine/search"
)

// WindowSize is the number of most recent requests the window remembers.
const WindowSize = 1440

// RequestQueue records, for each of the most recent WindowSize find
// requests, whether it returned at least one document.
type RequestQueue struct {
	srv *search.Server

	mu     sync.Mutex
	slots  [WindowSize]bool
	pos    int
	filled int
}

// New binds a RequestQueue to srv.
func New(srv *search.Server) *RequestQueue {
	return &RequestQueue{srv: srv}
}

// AddFindRequest runs rawQuery against the bound server — by default
// against the status==ACTUAL predicate, or against status[0] if given —
// records whether the result was empty, and returns the result.
func (q *RequestQueue) AddFindRequest(rawQuery string, status ...models.Status) ([]search.Document, error) {
	var (
		docs []search.Document
		err  error
	)
	if len(status) > 0 {
		docs, err = q.srv.FindTopDocumentsByStatus(rawQuery, status[0], query.Sequential)
	} else {
		docs, err = q.srv.FindTopDocuments(rawQuery, query.Sequential)
	}
	if err != nil {
		return nil, err
	}

	q.record(len(docs) == 0)
	return docs, nil
}

func (q *RequestQueue) record(empty bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.slots[q.pos] = empty
	q.pos = (q.pos + 1) % WindowSize
	if q.filled < WindowSize {
		q.filled++
	}
}

// NoResultRequests returns the number of empty requests within the
// current window.
func (q *RequestQueue) NoResultRequests() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	count := 0
	for i := 0; i < q.filled; i++ {
		if q.slots[i] {
			count++
		}
	}
	return count
}
