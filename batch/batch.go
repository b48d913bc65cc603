// Package batch implements the batch dispatcher (C7): evaluating many
// queries against one ranking engine concurrently while preserving the
// caller's input order in the output, generalized from this lineage's
// deletion collector's index-aligned batch/collect idiom (one goroutine per
// work item, results written to a pre-sized slot rather than raced onto a
// shared channel).
package batch

import (
	"golang.org/x/sync/errgroup"

	"searchengine/models"
	"searchengine/query"
	"searchengine/rank"
)

// ProcessQueries evaluates each of queries against engine in parallel and
// returns one result vector per query, aligned by input index: result[i]
// corresponds to queries[i] regardless of which goroutine finishes first.
func ProcessQueries(engine *rank.Engine, queries []string, policy query.Policy) ([][]models.Document, error) {
	results := make([][]models.Document, len(queries))

	var g errgroup.Group
	for i, raw := range queries {
		i, raw := i, raw
		g.Go(func() error {
			docs, err := engine.FindTopDocuments(raw, policy)
			if err != nil {
				return err
			}
			results[i] = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ProcessQueriesJoined is ProcessQueries followed by a sequential
// concatenation of the per-query result vectors in input order: evaluation
// may run in parallel, but the join itself never reorders across queries.
func ProcessQueriesJoined(engine *rank.Engine, queries []string, policy query.Policy) ([]models.Document, error) {
	results, err := ProcessQueries(engine, queries, policy)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	joined := make([]models.Document, 0, total)
	for _, r := range results {
		joined = append(joined, r...)
	}
	return joined, nil
}
