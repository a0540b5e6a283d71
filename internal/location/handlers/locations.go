package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"marstiles-server/internal/location"
	"marstiles-server/internal/shared/errors"
	"marstiles-server/internal/shared/response"
)

type LocationsHandler struct {
	service *location.Service
}

func NewLocationsHandler(service *location.Service) *LocationsHandler {
	return &LocationsHandler{service: service}
}

type listLocationsResponse struct {
	Status    string              `json:"status"`
	Count     int                 `json:"count"`
	Locations []location.Location `json:"locations"`
}

type createLocationRequest struct {
	Name        *string  `json:"name"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	Zoom        *int     `json:"zoom"`
	Description string   `json:"description"`
	Planet      string   `json:"planet"`
	Category    string   `json:"category"`
}

type createLocationResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	ID      int    `json:"id"`
}

func (h *LocationsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listLocations(w, r)
	case http.MethodPost:
		h.createLocation(w, r)
	default:
		logger := slog.With("handler", "locations")
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
	}
}

func (h *LocationsHandler) listLocations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "list_locations")

	locations, err := h.service.GetAllLocations(ctx)
	if err != nil {
		response.Error(w, r, logger, errors.WrapInternal("failed to list locations", err))
		return
	}

	if locations == nil {
		locations = []location.Location{}
	}

	response.Success(w, http.StatusOK, listLocationsResponse{
		Status:    "success",
		Count:     len(locations),
		Locations: locations,
	})
}

func (h *LocationsHandler) createLocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "create_location")

	var req createLocationRequest

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}

	// Pointer fields distinguish "missing" from zero values
	switch {
	case req.Name == nil:
		response.Error(w, r, logger, errors.Validation("Missing required field: name"))
		return
	case req.Lat == nil:
		response.Error(w, r, logger, errors.Validation("Missing required field: lat"))
		return
	case req.Lng == nil:
		response.Error(w, r, logger, errors.Validation("Missing required field: lng"))
		return
	case req.Zoom == nil:
		response.Error(w, r, logger, errors.Validation("Missing required field: zoom"))
		return
	}

	id, err := h.service.CreateLocation(ctx, location.Location{
		Name:        *req.Name,
		Lat:         *req.Lat,
		Lng:         *req.Lng,
		Zoom:        *req.Zoom,
		Description: req.Description,
		Planet:      req.Planet,
		Category:    req.Category,
	})
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusCreated, createLocationResponse{
		Status:  "success",
		Message: "Location added successfully",
		ID:      id,
	})
}
