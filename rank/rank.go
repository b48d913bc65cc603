// Package rank implements the scorer/ranker (C5) and the parallel engine's
// (C6) policy dispatch over it: TF*IDF accumulation over a compiled query's
// plus terms, minus-term erasure, and a deterministic sort/truncate into the
// result shape the rest of the module returns.
package rank

import (
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"searchengine/concurrent"
	"searchengine/diagnostics"
	"searchengine/index"
	"searchengine/models"
	"searchengine/query"
)

// MaxResultDocumentCount bounds FindTopDocuments output, per the core
// contract.
const MaxResultDocumentCount = 5

// relevanceEpsilon is the tie-break threshold: two relevances closer than
// this are treated as equal, and the comparator falls through to rating.
const relevanceEpsilon = 1e-6

// Predicate filters a candidate document by id, status, and rating during
// accumulation. FindTopDocuments only accumulates relevance for documents
// that satisfy it.
type Predicate func(id int, status models.Status, rating int) bool

// StatusEquals builds the predicate status == want. FindTopDocuments uses
// it with ACTUAL, FindTopDocumentsByStatus with the caller's status.
func StatusEquals(want models.Status) Predicate {
	return func(_ int, status models.Status, _ int) bool {
		return status == want
	}
}

// Engine is the scorer/ranker bound to one document store. It holds no
// state of its own between calls; ranking reads the store's indexes
// directly, under the same no-concurrent-mutation contract the store
// documents for its own query path.
type Engine struct {
	Store  *index.Store
	Shards int
}

// New binds a ranking engine to st, using concurrent.DefaultShards for the
// parallel policy's accumulator.
func New(st *index.Store) *Engine {
	return NewWithShards(st, concurrent.DefaultShards)
}

// NewWithShards binds a ranking engine to st whose parallel policy shards
// its accumulator into shards buckets; shards <= 0 falls back to
// concurrent.DefaultShards.
func NewWithShards(st *index.Store, shards int) *Engine {
	return &Engine{Store: st, Shards: shards}
}

// FindTopDocuments compiles raw under policy, accumulates relevance for
// every live document whose status is ACTUAL, and returns at most
// MaxResultDocumentCount results sorted by descending relevance with a
// descending-rating tie-break.
func (e *Engine) FindTopDocuments(raw string, policy query.Policy) ([]models.Document, error) {
	return e.FindTopDocumentsPredicate(raw, StatusEquals(models.StatusActual), policy)
}

// FindTopDocumentsByStatus is the status overload: the predicate matches
// documents whose status equals want exactly.
func (e *Engine) FindTopDocumentsByStatus(raw string, want models.Status, policy query.Policy) ([]models.Document, error) {
	return e.FindTopDocumentsPredicate(raw, StatusEquals(want), policy)
}

// FindTopDocumentsPredicate is the general form: any predicate over
// (id, status, rating).
func (e *Engine) FindTopDocumentsPredicate(raw string, predicate Predicate, policy query.Policy) ([]models.Document, error) {
	defer diagnostics.Track("find_top_documents")()

	compiled, err := query.Compile(raw, e.Store.StopWords(), policy)
	if err != nil {
		return nil, err
	}

	var acc map[int]float64
	if policy == query.Parallel {
		acc, err = e.scoreParallel(compiled, predicate)
	} else {
		acc = e.scoreSequential(compiled, predicate)
	}
	if err != nil {
		return nil, err
	}

	return materialize(e.Store, acc), nil
}

func (e *Engine) scoreSequential(compiled query.Compiled, predicate Predicate) map[int]float64 {
	acc := make(map[int]float64)
	total := e.Store.TotalDocuments()
	for _, term := range compiled.Plus {
		df := e.Store.DocumentFrequency(term)
		if df == 0 {
			continue
		}
		idf := math.Log(float64(total) / float64(df))
		for d, tf := range e.Store.Postings(term) {
			meta, ok := e.Store.Meta(d)
			if !ok || !predicate(d, meta.Status, meta.Rating) {
				continue
			}
			acc[d] += tf * idf
		}
	}
	for _, term := range compiled.Minus {
		for d := range e.Store.Postings(term) {
			delete(acc, d)
		}
	}
	return acc
}

// scoreParallel replaces the sequential map accumulator with the sharded
// concurrent map (C2): one errgroup goroutine per plus term accumulates into
// shared per-document shards, a second errgroup pass erases minus-term
// postings the same way, and build_ordinary_map performs the final
// consolidation, mirroring the worker-per-chunk dispatch this lineage's
// parallel query processor uses, generalized from entity-id chunks to one
// goroutine per query term.
func (e *Engine) scoreParallel(compiled query.Compiled, predicate Predicate) (map[int]float64, error) {
	sm := concurrent.NewShardMap(e.Shards)
	total := e.Store.TotalDocuments()

	var g errgroup.Group
	for _, term := range compiled.Plus {
		term := term
		g.Go(func() error {
			df := e.Store.DocumentFrequency(term)
			if df == 0 {
				return nil
			}
			idf := math.Log(float64(total) / float64(df))
			for d, tf := range e.Store.Postings(term) {
				meta, ok := e.Store.Meta(d)
				if !ok || !predicate(d, meta.Status, meta.Rating) {
					continue
				}
				delta := tf * idf
				sm.Use(d, func(r *concurrent.Ref) { r.Add(delta) })
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var g2 errgroup.Group
	for _, term := range compiled.Minus {
		term := term
		g2.Go(func() error {
			for d := range e.Store.Postings(term) {
				sm.Erase(d)
			}
			return nil
		})
	}
	if err := g2.Wait(); err != nil {
		return nil, err
	}

	return sm.BuildOrdinaryMap(), nil
}

func materialize(st *index.Store, acc map[int]float64) []models.Document {
	docs := make([]models.Document, 0, len(acc))
	for id, relevance := range acc {
		meta, ok := st.Meta(id)
		if !ok {
			continue
		}
		docs = append(docs, models.Document{ID: id, Relevance: relevance, Rating: meta.Rating})
	}

	sort.Slice(docs, func(i, j int) bool {
		diff := docs[i].Relevance - docs[j].Relevance
		if diff > relevanceEpsilon || diff < -relevanceEpsilon {
			return docs[i].Relevance > docs[j].Relevance
		}
		return docs[i].Rating > docs[j].Rating
	})

	if len(docs) > MaxResultDocumentCount {
		docs = docs[:MaxResultDocumentCount]
	}
	return docs
}
