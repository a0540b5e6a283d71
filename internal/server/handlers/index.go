package handlers

import (
	"net/http"

	"marstiles-server/internal/shared/response"
)

type IndexResponse struct {
	Name      string            `json:"name"`
	Endpoints map[string]string `json:"endpoints"`
}

// IndexHandler describes the API surface at the root path
type IndexHandler struct{}

func NewIndexHandler() *IndexHandler {
	return &IndexHandler{}
}

func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	response.Success(w, http.StatusOK, IndexResponse{
		Name: "Tile Server API with Smart Search",
		Endpoints: map[string]string{
			"GET /tiles/{z}/{x}/{y}.png": "Get tile image",
			"POST /api/search":           "Search location (send JSON: {\"query\": \"location name\"})",
			"GET /api/locations":         "List all available locations",
			"POST /api/locations":        "Add new location to database",
			"GET /api/health":            "Health check",
		},
	})
}
