package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"searchengine/search"
)

func TestAddDocumentAndFindTopDocuments(t *testing.T) {
	srv, err := search.New("")
	if err != nil {
		t.Fatalf("search.New: %v", err)
	}
	router := NewRouter(srv)

	body, _ := json.Marshal(addDocumentRequest{ID: 1, Text: "cat dog", Ratings: []int{1, 2, 3}})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /documents = %d, body %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/search?q=cat", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /search = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	srv, _ := search.New("")
	router := NewRouter(srv)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", rec.Code)
	}
}

func TestRemoveDocumentNonNumericID(t *testing.T) {
	srv, _ := search.New("")
	router := NewRouter(srv)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/documents/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("DELETE /documents/abc = %d, want 400", rec.Code)
	}
}
