package index

import (
	"errors"
	"reflect"
	"sort"
	"testing"

	"searchengine/models"
)

func TestAddDocumentRejectsNegativeID(t *testing.T) {
	st, _ := NewStore("")
	if err := st.AddDocument(-1, "cat", models.StatusActual, nil); !errors.Is(err, models.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestAddDocumentRejectsDuplicateID(t *testing.T) {
	st, _ := NewStore("")
	if err := st.AddDocument(1, "cat", models.StatusActual, nil); err != nil {
		t.Fatalf("first AddDocument: %v", err)
	}
	if err := st.AddDocument(1, "dog", models.StatusActual, nil); !errors.Is(err, models.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestAddDocumentRejectsControlByteToken(t *testing.T) {
	st, _ := NewStore("")
	if err := st.AddDocument(1, "cat\x01dog", models.StatusActual, nil); !errors.Is(err, models.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

// S1: stop-word exclusion at the forward-list level.
func TestAddDocumentDropsStopWordsFromIndex(t *testing.T) {
	st, err := NewStore("in the")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := st.AddDocument(42, "cat in the city", models.StatusActual, []int{1, 2, 3}); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	freq := st.GetWordFrequencies(42)
	if _, ok := freq["in"]; ok {
		t.Errorf("stop-word %q present in forward list: %v", "in", freq)
	}
	if _, ok := freq["the"]; ok {
		t.Errorf("stop-word %q present in forward list: %v", "the", freq)
	}
	if st.DocumentFrequency("in") != 0 {
		t.Errorf("DocumentFrequency(in) = %d, want 0", st.DocumentFrequency("in"))
	}
}

// I1: per-document TF sums to 1.0 (within epsilon) when all tokens are
// non-stop and distinct.
func TestAddDocumentForwardTFSumsToOne(t *testing.T) {
	st, _ := NewStore("")
	if err := st.AddDocument(1, "alpha beta gamma delta", models.StatusActual, nil); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	sum := 0.0
	for _, tf := range st.GetWordFrequencies(1) {
		sum += tf
	}
	if diff := sum - 1.0; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("sum of TF = %v, want 1.0", sum)
	}
}

// I4: term->doc and doc->term agree on (presence, value).
func TestIndexesStayMutuallyConsistent(t *testing.T) {
	st, _ := NewStore("")
	if err := st.AddDocument(1, "cat cat dog", models.StatusActual, nil); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	fwd := st.GetWordFrequencies(1)
	for term, tf := range fwd {
		postings := st.Postings(term)
		got, ok := postings[1]
		if !ok {
			t.Fatalf("term %q missing doc 1 in posting list", term)
		}
		if got != tf {
			t.Errorf("term %q: forward TF %v != posting TF %v", term, tf, got)
		}
	}
}

// I5: live ids == metadata keys == forward-index outer keys.
func TestRemoveDocumentPurgesAllState(t *testing.T) {
	st, _ := NewStore("")
	if err := st.AddDocument(1, "cat dog", models.StatusActual, nil); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	st.RemoveDocument(1)

	if _, ok := st.Meta(1); ok {
		t.Errorf("Meta(1) still live after RemoveDocument")
	}
	if freq := st.GetWordFrequencies(1); len(freq) != 0 {
		t.Errorf("GetWordFrequencies(1) = %v, want empty", freq)
	}
	for _, id := range st.LiveIDs() {
		if id == 1 {
			t.Errorf("LiveIDs still contains removed id 1")
		}
	}
	if st.DocumentFrequency("cat") != 0 || st.DocumentFrequency("dog") != 0 {
		t.Errorf("posting lists not purged after removal")
	}
}

func TestRemoveDocumentIsIdempotent(t *testing.T) {
	st, _ := NewStore("")
	if err := st.AddDocument(1, "cat", models.StatusActual, nil); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	st.RemoveDocument(1)
	st.RemoveDocument(1) // no-op, must not panic
	if st.DocumentCount() != 0 {
		t.Errorf("DocumentCount = %d, want 0", st.DocumentCount())
	}
}

func TestRemoveDocumentParallelMatchesSequential(t *testing.T) {
	seq, _ := NewStore("")
	par, _ := NewStore("")
	for _, st := range []*Store{seq, par} {
		if err := st.AddDocument(1, "cat dog bird fish", models.StatusActual, nil); err != nil {
			t.Fatalf("AddDocument: %v", err)
		}
		if err := st.AddDocument(2, "cat dog", models.StatusActual, nil); err != nil {
			t.Fatalf("AddDocument: %v", err)
		}
	}

	seq.RemoveDocument(1)
	par.RemoveDocumentParallel(1)

	if seq.DocumentCount() != par.DocumentCount() {
		t.Fatalf("document counts differ: %d vs %d", seq.DocumentCount(), par.DocumentCount())
	}
	for _, term := range []string{"cat", "dog", "bird", "fish"} {
		if seq.DocumentFrequency(term) != par.DocumentFrequency(term) {
			t.Errorf("DocumentFrequency(%q) differs: %d vs %d", term, seq.DocumentFrequency(term), par.DocumentFrequency(term))
		}
	}
}

func TestAddDocumentReinsertAfterRemoval(t *testing.T) {
	st, _ := NewStore("")
	if err := st.AddDocument(1, "cat", models.StatusActual, nil); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	st.RemoveDocument(1)
	if err := st.AddDocument(1, "dog", models.StatusActual, nil); err != nil {
		t.Fatalf("re-AddDocument after removal: %v", err)
	}
	freq := st.GetWordFrequencies(1)
	if _, ok := freq["dog"]; !ok {
		t.Errorf("re-added document missing expected term: %v", freq)
	}
}

// S2: minus-word exclusion at the match_document level.
func TestMatchDocumentMinusWordExclusion(t *testing.T) {
	st, _ := NewStore("")
	if err := st.AddDocument(42, "cat in the city", models.StatusActual, []int{1, 2, 3}); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	matched, status, err := st.MatchDocument("-cat dog in the city", 42)
	if err != nil {
		t.Fatalf("MatchDocument: %v", err)
	}
	if len(matched) != 0 {
		t.Errorf("matched = %v, want empty", matched)
	}
	if status != models.StatusActual {
		t.Errorf("status = %v, want ACTUAL", status)
	}
}

func TestMatchDocumentOutOfRange(t *testing.T) {
	st, _ := NewStore("")
	_, _, err := st.MatchDocument("cat", 99)
	if !errors.Is(err, models.ErrOutOfRange) {
		t.Fatalf("err = %v, want ErrOutOfRange", err)
	}
}

func TestMatchDocumentParallelMatchesSequential(t *testing.T) {
	st, _ := NewStore("")
	if err := st.AddDocument(1, "cat dog bird fish", models.StatusActual, nil); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	seqMatched, seqStatus, err := st.MatchDocument("cat bird -snake", 1)
	if err != nil {
		t.Fatalf("MatchDocument: %v", err)
	}
	parMatched, parStatus, err := st.MatchDocumentParallel("cat bird -snake", 1)
	if err != nil {
		t.Fatalf("MatchDocumentParallel: %v", err)
	}
	sort.Strings(seqMatched)
	sort.Strings(parMatched)
	if !reflect.DeepEqual(seqMatched, parMatched) {
		t.Errorf("matched terms differ: %v vs %v", seqMatched, parMatched)
	}
	if seqStatus != parStatus {
		t.Errorf("status differs: %v vs %v", seqStatus, parStatus)
	}
}

func TestGetWordFrequenciesAbsentDocument(t *testing.T) {
	st, _ := NewStore("")
	freq := st.GetWordFrequencies(404)
	if freq == nil || len(freq) != 0 {
		t.Errorf("GetWordFrequencies(404) = %v, want empty map", freq)
	}
}
