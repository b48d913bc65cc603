package index

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"searchengine/models"
	"searchengine/query"
	"searchengine/token"
)

// Store holds per-document metadata, the interned document text, and the
// two cross-indexes (term->doc->TF and doc->term->TF) that make up the
// inverted/forward index described by the core (C3).
//
// Store itself performs no internal read/write locking: the query path
// (FindTopDocuments, MatchDocument, GetWordFrequencies) is re-entrant and
// read-only over its maps, and the mutation path (AddDocument,
// RemoveDocument) is single-writer. Callers must not run a mutation
// concurrently with any query, exactly as specified; the Server facade in
// this module provides that outer reader/writer discipline so this type
// can stay lock-free on its hot path, mirroring this lineage's repository
// layer, which keeps its in-memory indexes behind the repository's own
// lock rather than locking each map independently.
type Store struct {
	arena *textArena

	stopWords map[string]struct{}

	meta    map[int]models.Meta
	forward map[int]map[string]float64   // doc -> term -> TF
	invert  map[string]map[int]float64   // term -> doc -> TF
	order   []int                        // live ids, insertion order
}

// NewStore builds a store whose stop-word set is parsed from a
// whitespace-delimited string. Every stop-word is validated the same way a
// document term is; an invalid stop-word fails the same as an invalid
// document token.
func NewStore(stopWords string) (*Store, error) {
	return NewStoreFromWords(strings.Fields(stopWords))
}

// NewStoreFromWords builds a store from an explicit collection of
// stop-words, for callers that already have them split.
func NewStoreFromWords(stopWords []string) (*Store, error) {
	set := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		if w == "" {
			continue
		}
		if !token.IsValid(w) {
			return nil, fmt.Errorf("stop word %q: %w", w, models.ErrInvalidArgument)
		}
		set[w] = struct{}{}
	}
	return &Store{
		arena:     newTextArena(),
		stopWords: set,
		meta:      make(map[int]models.Meta),
		forward:   make(map[int]map[string]float64),
		invert:    make(map[string]map[int]float64),
	}, nil
}

// AddDocument tokenises text, drops stop-words, computes per-term TF over
// the remaining tokens, and records id as live. Fails with
// models.ErrInvalidArgument if id is negative, already live, or text
// contains an invalid token.
func (s *Store) AddDocument(id int, text string, status models.Status, ratings []int) error {
	if id < 0 {
		return fmt.Errorf("document id %d: %w", id, models.ErrInvalidArgument)
	}
	if _, live := s.meta[id]; live {
		return fmt.Errorf("document id %d already exists: %w", id, models.ErrInvalidArgument)
	}

	// Copy text into the arena first and tokenise the stable copy, not the
	// caller's string: every term that ends up as an index key is then a
	// view into this document's arena slot, which the arena never moves or
	// reallocates once handed out, so later insertions can't invalidate it.
	stored := s.arena.Put(text)
	rawTokens := token.Split(stored)
	words := make([]string, 0, len(rawTokens))
	for _, w := range rawTokens {
		if w == "" {
			continue
		}
		if !token.IsValid(w) {
			return fmt.Errorf("document %d token %q: %w", id, w, models.ErrInvalidArgument)
		}
		if _, stop := s.stopWords[w]; stop {
			continue
		}
		words = append(words, w)
	}

	counts := make(map[string]int, len(words))
	for _, w := range words {
		counts[w]++
	}

	fwd := make(map[string]float64, len(counts))
	if len(words) > 0 {
		tfDenominator := float64(len(words))
		for w, c := range counts {
			fwd[w] = float64(c) / tfDenominator
		}
	}

	for term, tf := range fwd {
		if s.invert[term] == nil {
			s.invert[term] = make(map[int]float64)
		}
		s.invert[term][id] = tf
	}
	s.forward[id] = fwd
	s.meta[id] = models.Meta{Status: status, Rating: models.MeanRating(ratings)}
	s.order = append(s.order, id)
	return nil
}

// RemoveDocument removes id's metadata, its entry in the ordered live-id
// list, and every posting referencing it from both indexes. No-op if id is
// not live. Walks the full term->doc map, which is the sequential variant
// described by the core.
func (s *Store) RemoveDocument(id int) {
	if _, live := s.forward[id]; !live {
		return
	}
	for term := range s.invert {
		s.removePosting(term, id)
	}
	s.purgeMeta(id)
}

// RemoveDocumentParallel removes id the same way as RemoveDocument, but
// purges only the posting lists for id's own term set, known from its
// forward list, without scanning the whole inverted index. It starts one
// goroutine per term; each removal runs under one shared mutex, because
// the inverted index is a single unsharded map.
func (s *Store) RemoveDocumentParallel(id int) {
	fwd, live := s.forward[id]
	if !live {
		return
	}
	terms := make([]string, 0, len(fwd))
	for term := range fwd {
		terms = append(terms, term)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, term := range terms {
		wg.Add(1)
		go func(term string) {
			defer wg.Done()
			mu.Lock()
			s.removePosting(term, id)
			mu.Unlock()
		}(term)
	}
	wg.Wait()
	s.purgeMeta(id)
}

func (s *Store) removePosting(term string, id int) {
	plist := s.invert[term]
	if plist == nil {
		return
	}
	delete(plist, id)
	if len(plist) == 0 {
		delete(s.invert, term)
	}
}

func (s *Store) purgeMeta(id int) {
	delete(s.forward, id)
	delete(s.meta, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// GetWordFrequencies returns a read-only view of id's forward list, or an
// empty map if id is absent. Never inserts.
func (s *Store) GetWordFrequencies(id int) map[string]float64 {
	fwd, ok := s.forward[id]
	if !ok {
		return map[string]float64{}
	}
	out := make(map[string]float64, len(fwd))
	for k, v := range fwd {
		out[k] = v
	}
	return out
}

// Meta returns id's metadata and whether id is live.
func (s *Store) Meta(id int) (models.Meta, bool) {
	m, ok := s.meta[id]
	return m, ok
}

// DocumentCount returns the number of live documents.
func (s *Store) DocumentCount() int {
	return len(s.meta)
}

// LiveIDs returns live document ids in insertion order.
func (s *Store) LiveIDs() []int {
	out := make([]int, len(s.order))
	copy(out, s.order)
	return out
}

// TotalDocuments is an alias of DocumentCount, named for use in IDF
// computation (total_documents / df(t)).
func (s *Store) TotalDocuments() int {
	return len(s.meta)
}

// Postings returns the posting list for term (doc id -> TF), or nil if the
// term is absent from the index. The returned map must be treated as
// read-only by callers: it is the store's own map, shared under the same
// no-concurrent-mutation contract as the rest of the query path.
func (s *Store) Postings(term string) map[int]float64 {
	return s.invert[term]
}

// DocumentFrequency returns the number of documents containing term.
func (s *Store) DocumentFrequency(term string) int {
	return len(s.invert[term])
}

// StopWords returns the configured stop-word set. The returned map is the
// store's own and must be treated as read-only.
func (s *Store) StopWords() map[string]struct{} {
	return s.stopWords
}

// MatchDocument compiles raw, and if any minus term occurs in id's forward
// list, returns an empty slice and id's status. Otherwise returns the plus
// terms that occur in id's forward list, de-duplicated and sorted, and id's
// status. Fails models.ErrOutOfRange if id is not live.
func (s *Store) MatchDocument(raw string, id int) ([]string, models.Status, error) {
	meta, live := s.meta[id]
	if !live {
		return nil, 0, fmt.Errorf("document id %d: %w", id, models.ErrOutOfRange)
	}
	compiled, err := query.Compile(raw, s.stopWords, query.Sequential)
	if err != nil {
		return nil, 0, err
	}

	fwd := s.forward[id]
	for _, m := range compiled.Minus {
		if _, ok := fwd[m]; ok {
			return []string{}, meta.Status, nil
		}
	}

	matched := make([]string, 0, len(compiled.Plus))
	for _, p := range compiled.Plus {
		if _, ok := fwd[p]; ok {
			matched = append(matched, p)
		}
	}
	sort.Strings(matched)
	return matched, meta.Status, nil
}

// MatchDocumentParallel behaves like MatchDocument, but parallelises the
// minus-word check (with early exit on first hit) and the plus-word
// filter; its matched-term output is deduplicated but may be returned in
// any order.
func (s *Store) MatchDocumentParallel(raw string, id int) ([]string, models.Status, error) {
	meta, live := s.meta[id]
	if !live {
		return nil, 0, fmt.Errorf("document id %d: %w", id, models.ErrOutOfRange)
	}
	compiled, err := query.Compile(raw, s.stopWords, query.Parallel)
	if err != nil {
		return nil, 0, err
	}

	fwd := s.forward[id]

	excluded := make(chan struct{}, 1)
	var wg sync.WaitGroup
	for _, m := range compiled.Minus {
		wg.Add(1)
		go func(term string) {
			defer wg.Done()
			if _, ok := fwd[term]; ok {
				select {
				case excluded <- struct{}{}:
				default:
				}
			}
		}(m)
	}
	wg.Wait()
	select {
	case <-excluded:
		return []string{}, meta.Status, nil
	default:
	}

	var mu sync.Mutex
	matched := make(map[string]struct{}, len(compiled.Plus))
	var wg2 sync.WaitGroup
	for _, p := range compiled.Plus {
		wg2.Add(1)
		go func(term string) {
			defer wg2.Done()
			if _, ok := fwd[term]; ok {
				mu.Lock()
				matched[term] = struct{}{}
				mu.Unlock()
			}
		}(p)
	}
	wg2.Wait()

	out := make([]string, 0, len(matched))
	for t := range matched {
		out = append(out, t)
	}
	return out, meta.Status, nil
}
