// Package query implements the query compiler (C4): splitting a raw query
// string into validated, stop-word-filtered plus-term and minus-term sets.
package query

import (
	"fmt"
	"sort"

	"searchengine/models"
	"searchengine/token"
)

// Compiled is the result of compiling a raw query: de-duplicated plus-term
// and minus-term collections, stop-words already dropped.
type Compiled struct {
	Plus  []string
	Minus []string
}

// Policy selects sequential or parallel compilation. Parallel compilation
// may defer de-duplication to the caller; Compile always returns sorted,
// de-duplicated sets regardless of policy, since term-set construction here
// is cheap enough that deferring it buys nothing — the policy parameter
// exists so call sites can thread one Policy value end to end, matching the
// ranker and batch dispatcher's dispatch-by-policy shape.
type Policy int

const (
	Sequential Policy = iota
	Parallel
)

// Compile splits raw on ASCII space, classifies each non-empty token as a
// plus or minus term, drops stop-words, and returns sorted, de-duplicated
// plus/minus sets.
//
// A token fails with models.ErrInvalidArgument if, after stripping a
// leading '-', it is empty, starts with another '-', or contains a control
// byte.
func Compile(raw string, stopWords map[string]struct{}, _ Policy) (Compiled, error) {
	plusSet := make(map[string]struct{})
	minusSet := make(map[string]struct{})

	for _, tok := range token.Split(raw) {
		if tok == "" {
			continue
		}
		negative := false
		term := tok
		if term[0] == '-' {
			negative = true
			term = term[1:]
		}
		if term == "" || (len(term) > 0 && term[0] == '-') {
			return Compiled{}, fmt.Errorf("query token %q: %w", tok, models.ErrInvalidArgument)
		}
		if !token.IsValid(term) {
			return Compiled{}, fmt.Errorf("query token %q: %w", tok, models.ErrInvalidArgument)
		}
		if _, stop := stopWords[term]; stop {
			continue
		}
		if negative {
			minusSet[term] = struct{}{}
		} else {
			plusSet[term] = struct{}{}
		}
	}

	return Compiled{
		Plus:  sortedKeys(plusSet),
		Minus: sortedKeys(minusSet),
	}, nil
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
