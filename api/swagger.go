package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

// swaggerDoc is a minimal, hand-maintained OpenAPI description of the
// routes NewRouter registers, served at /swagger/doc.json for the
// Swagger UI httpSwagger.Handler renders at /swagger/.
var swaggerDoc = map[string]interface{}{
	"swagger": "2.0",
	"info": map[string]string{
		"title":   "search engine API",
		"version": "1.0",
	},
	"basePath": "/api/v1",
	"paths": map[string]interface{}{
		"/documents":                  map[string]interface{}{"post": map[string]string{"summary": "add a document"}},
		"/documents/{id}":             map[string]interface{}{"delete": map[string]string{"summary": "remove a document"}},
		"/documents/{id}/frequencies": map[string]interface{}{"get": map[string]string{"summary": "get word frequencies"}},
		"/documents/{id}/match":       map[string]interface{}{"get": map[string]string{"summary": "match a document against a query"}},
		"/search":                     map[string]interface{}{"get": map[string]string{"summary": "find top documents"}},
		"/health":                     map[string]interface{}{"get": map[string]string{"summary": "health check"}},
	},
}

// mountSwagger registers the Swagger UI and its backing doc.json on
// router, matching the teacher's own Swagger wiring in main.go.
func mountSwagger(router *mux.Router) {
	router.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(swaggerDoc)
	}).Methods("GET")
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	)).Methods("GET")
}
