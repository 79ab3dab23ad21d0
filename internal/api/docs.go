package api

import (
	_ "embed"
	"net/http"
)

// openapiDocument is the pre-generated OpenAPI description of the API.
// It is produced from the route table by tooling outside this repository
// and served as-is.
//
//go:embed openapi.json
var openapiDocument []byte

// Docs serves the embedded OpenAPI document at GET /api-docs.
func Docs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openapiDocument)
}
