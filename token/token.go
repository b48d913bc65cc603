// Package token implements the whitespace tokeniser shared by document
// ingestion and query compilation: splitting a text buffer into word views
// and validating that a term contains no control bytes.
package token

import "strings"

// Split splits text on ASCII space, exactly like the source text's own
// word boundaries. Consecutive spaces produce empty views; callers that
// care about empty tokens (ingestion, the query compiler) filter them.
func Split(text string) []string {
	return strings.Split(text, " ")
}

// IsValid reports whether term contains no byte in [0x00, 0x20). Terms
// containing a control byte are rejected at every API boundary that
// accepts raw text.
func IsValid(term string) bool {
	for i := 0; i < len(term); i++ {
		if term[i] < 0x20 {
			return false
		}
	}
	return true
}
