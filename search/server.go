// Package search is the facade combining the document store, the query
// compiler, and the ranking engine behind one outer reader/writer lock,
// supplying the mutual-exclusion discipline the core itself assumes from
// its embedder: ingestion and removal are exclusive, queries are shared,
// mirroring this lineage's repository layer, which keeps its in-memory
// indexes behind one RWMutex rather than locking each map independently.
package search

import (
	"searchengine/concurrent"
	"searchengine/index"
	"searchengine/models"
	"searchengine/query"
	"searchengine/rank"

	"sync"
)

// Document is the result tuple returned by search operations.
type Document = models.Document

// Server binds a document store to a ranking engine under one RWMutex.
type Server struct {
	mu     sync.RWMutex
	store  *index.Store
	engine *rank.Engine
}

// New constructs a Server whose stop-word set is parsed from a
// whitespace-delimited string, using rank's default shard count for the
// parallel query policy.
func New(stopWords string) (*Server, error) {
	return NewWithShards(stopWords, concurrent.DefaultShards)
}

// NewWithShards constructs a Server like New, but with an explicit shard
// count for the ranking engine's parallel-policy accumulator.
func NewWithShards(stopWords string, shards int) (*Server, error) {
	st, err := index.NewStore(stopWords)
	if err != nil {
		return nil, err
	}
	return &Server{store: st, engine: rank.NewWithShards(st, shards)}, nil
}

// AddDocument ingests one document. Exclusive: blocks until any in-flight
// query or mutation completes.
func (s *Server) AddDocument(id int, text string, status models.Status, ratings []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.AddDocument(id, text, status, ratings)
}

// RemoveDocument removes id sequentially. No-op if id is not live.
func (s *Server) RemoveDocument(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.RemoveDocument(id)
}

// RemoveDocumentParallel removes id, parallelising the purge across id's
// own term set.
func (s *Server) RemoveDocumentParallel(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.RemoveDocumentParallel(id)
}

// FindTopDocuments ranks raw under the default predicate (status ==
// ACTUAL), returning at most rank.MaxResultDocumentCount documents.
func (s *Server) FindTopDocuments(raw string, policy query.Policy) ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.FindTopDocuments(raw, policy)
}

// FindTopDocumentsByStatus ranks raw, keeping only documents whose status
// equals want.
func (s *Server) FindTopDocumentsByStatus(raw string, want models.Status, policy query.Policy) ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.FindTopDocumentsByStatus(raw, want, policy)
}

// FindTopDocumentsPredicate ranks raw, keeping only documents for which
// predicate(id, status, rating) holds.
func (s *Server) FindTopDocumentsPredicate(raw string, predicate rank.Predicate, policy query.Policy) ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.FindTopDocumentsPredicate(raw, predicate, policy)
}

// MatchDocument compiles raw and reports which of its plus terms occur in
// id's forward list, or an empty match if any minus term occurs there.
func (s *Server) MatchDocument(raw string, id int) ([]string, models.Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.MatchDocument(raw, id)
}

// MatchDocumentParallel behaves like MatchDocument, parallelising the
// minus-word check and the plus-word filter.
func (s *Server) MatchDocumentParallel(raw string, id int) ([]string, models.Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.MatchDocumentParallel(raw, id)
}

// GetWordFrequencies returns a read-only view of id's forward list, or an
// empty map if id is absent.
func (s *Server) GetWordFrequencies(id int) map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.GetWordFrequencies(id)
}

// DocumentCount returns the number of live documents.
func (s *Server) DocumentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.DocumentCount()
}

// LiveIDs returns live document ids in insertion order.
func (s *Server) LiveIDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.LiveIDs()
}

// Meta returns id's metadata and whether id is live.
func (s *Server) Meta(id int) (models.Meta, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Meta(id)
}

// Store exposes the underlying document store for callers that need direct
// read access without going through the ranking engine. Access through it
// does not take Server's lock.
func (s *Server) Store() *index.Store {
	return s.store
}

// Engine exposes the underlying ranking engine, for example for the batch
// dispatcher, which takes a *rank.Engine. Calls made through the returned
// engine do not take Server's RWMutex; RLock/RUnlock below hold it.
func (s *Server) Engine() *rank.Engine {
	return s.engine
}

// RLock and RUnlock let read-only multi-call sequences (for example, the
// batch dispatcher processing many queries against one snapshot) hold the
// Server's lock across several engine calls.
func (s *Server) RLock()   { s.mu.RLock() }
func (s *Server) RUnlock() { s.mu.RUnlock() }
