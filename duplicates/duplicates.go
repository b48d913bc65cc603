// Package duplicates implements the duplicate-removal helper spec.md names
// as an external collaborator of the core: it scans a server's live
// documents and removes later documents whose post-stop-word term set is
// identical to an earlier one's, identifying a term set by hashing it
// rather than comparing it element-by-element.
package duplicates

import (
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"

	"searchengine/logger"
	"searchengine/search"
)

// termSetKey hashes the sorted, de-duplicated keys of freq into a
// fixed-size digest, so two documents with the same term set (regardless
// of each term's TF) collide on the same key.
func termSetKey(freq map[string]float64) [32]byte {
	terms := make([]string, 0, len(freq))
	for t := range freq {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return blake2b.Sum256([]byte(strings.Join(terms, "\x00")))
}

// RemoveDuplicates scans srv's live documents in insertion order and
// removes every document whose term set duplicates an earlier document's,
// keeping the earliest occurrence. Returns the number of documents
// removed.
func RemoveDuplicates(srv *search.Server) int {
	seen := make(map[[32]byte]int)
	removed := 0

	for _, id := range srv.LiveIDs() {
		key := termSetKey(srv.GetWordFrequencies(id))
		if _, ok := seen[key]; ok {
			srv.RemoveDocument(id)
			logger.Info("Found duplicate document id %d", id)
			removed++
			continue
		}
		seen[key] = id
	}
	return removed
}
