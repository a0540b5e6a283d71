package handlers

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"

	"marstiles-server/internal/search"
	"marstiles-server/internal/shared/errors"
	"marstiles-server/internal/shared/response"
)

type SearchHandler struct {
	service *search.Service
}

func NewSearchHandler(service *search.Service) *SearchHandler {
	return &SearchHandler{service: service}
}

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	Status   string        `json:"status"`
	Location *search.Match `json:"location"`
}

// ServeHTTP handles POST /api/search with body {"query": "<free text>"}
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "search")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var req searchRequest

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}

	result, err := h.service.Resolve(ctx, req.Query)
	if err != nil {
		var parseErr *search.ParseError
		if stderrors.As(err, &parseErr) {
			// Surface the raw engine text for operator diagnosis
			response.ErrorWithDetails(w, r, logger,
				errors.WrapInternal("Failed to parse location data", parseErr.Err),
				"", parseErr.RawResponse)
			return
		}
		response.Error(w, r, logger, err)
		return
	}

	if result.Unresolved != nil {
		response.ErrorWithDetails(w, r, logger,
			errors.NotFound(result.Unresolved.Reason),
			result.Unresolved.Suggestion, "")
		return
	}

	response.Success(w, http.StatusOK, searchResponse{
		Status:   "success",
		Location: result.Match,
	})
}
