// Package api exposes the core's public contract over HTTP: add, find,
// match, remove, and inspect a document's word frequencies, plus a health
// check and Swagger documentation, using gorilla/mux for route ordering
// the way this lineage's own main.go wires its API router.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"searchengine/logger"
	"searchengine/models"
	"searchengine/query"
	"searchengine/search"
)

// Handler holds the server the HTTP surface is bound to.
type Handler struct {
	srv *search.Server
}

// NewHandler binds an HTTP handler to srv.
func NewHandler(srv *search.Server) *Handler {
	return &Handler{srv: srv}
}

// NewRouter builds the full route table: document CRUD, search, and
// health, under /api/v1, plus Swagger UI at /swagger/.
func NewRouter(srv *search.Server) *mux.Router {
	h := NewHandler(srv)
	router := mux.NewRouter()
	apiRouter := router.PathPrefix("/api/v1").Subrouter()

	apiRouter.HandleFunc("/documents", h.AddDocument).Methods("POST")
	apiRouter.HandleFunc("/documents/{id}", h.RemoveDocument).Methods("DELETE")
	apiRouter.HandleFunc("/documents/{id}/frequencies", h.GetWordFrequencies).Methods("GET")
	apiRouter.HandleFunc("/documents/{id}/match", h.MatchDocument).Methods("GET")
	apiRouter.HandleFunc("/search", h.FindTopDocuments).Methods("GET")
	apiRouter.HandleFunc("/health", h.Health).Methods("GET")

	mountSwagger(router)

	return router
}

type addDocumentRequest struct {
	ID      int           `json:"id"`
	Text    string        `json:"text"`
	Status  models.Status `json:"status"`
	Ratings []int         `json:"ratings"`
}

// AddDocument handles POST /api/v1/documents.
func (h *Handler) AddDocument(w http.ResponseWriter, r *http.Request) {
	var req addDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.srv.AddDocument(req.ID, req.Text, req.Status, req.Ratings); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	logger.With(zerolog.InfoLevel).Int("id", req.ID).Str("status", req.Status.String()).Msg("api: document added")
	w.WriteHeader(http.StatusCreated)
}

// RemoveDocument handles DELETE /api/v1/documents/{id}.
func (h *Handler) RemoveDocument(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	h.srv.RemoveDocument(id)
	w.WriteHeader(http.StatusNoContent)
}

// GetWordFrequencies handles GET /api/v1/documents/{id}/frequencies.
func (h *Handler) GetWordFrequencies(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, h.srv.GetWordFrequencies(id))
}

// MatchDocument handles GET /api/v1/documents/{id}/match?q=....
func (h *Handler) MatchDocument(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	matched, status, err := h.srv.MatchDocument(r.URL.Query().Get("q"), id)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"matched": matched,
		"status":  status.String(),
	})
}

// FindTopDocuments handles GET /api/v1/search?q=....
func (h *Handler) FindTopDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.srv.FindTopDocuments(r.URL.Query().Get("q"), query.Sequential)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"documents": h.srv.DocumentCount(),
	})
}

func idFromPath(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrOutOfRange):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("api: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
