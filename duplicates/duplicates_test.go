package duplicates

import (
	"testing"

	"searchengine/models"
	"searchengine/search"
)

// S6: duplicate removal keeps the earlier id.
func TestRemoveDuplicatesKeepsEarlierID(t *testing.T) {
	srv, err := search.New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := srv.AddDocument(1, "cat dog", models.StatusActual, nil); err != nil {
		t.Fatalf("AddDocument 1: %v", err)
	}
	if err := srv.AddDocument(2, "dog cat", models.StatusActual, nil); err != nil {
		t.Fatalf("AddDocument 2: %v", err)
	}

	removed := RemoveDuplicates(srv)
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, live := srv.Meta(1); !live {
		t.Errorf("earlier document 1 was removed")
	}
	if _, live := srv.Meta(2); live {
		t.Errorf("later duplicate document 2 still live")
	}
}

func TestRemoveDuplicatesLeavesDistinctDocuments(t *testing.T) {
	srv, _ := search.New("")
	if err := srv.AddDocument(1, "cat dog", models.StatusActual, nil); err != nil {
		t.Fatalf("AddDocument 1: %v", err)
	}
	if err := srv.AddDocument(2, "bird fish", models.StatusActual, nil); err != nil {
		t.Fatalf("AddDocument 2: %v", err)
	}

	if removed := RemoveDuplicates(srv); removed != 0 {
		t.Fatalf("removed = %d, want 0", removed)
	}
	if srv.DocumentCount() != 2 {
		t.Errorf("DocumentCount = %d, want 2", srv.DocumentCount())
	}
}
