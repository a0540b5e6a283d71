package server

import (
	"log/slog"
	"net/http"

	"marstiles-server/internal/location"
	locationHandlers "marstiles-server/internal/location/handlers"
	"marstiles-server/internal/search"
	searchHandlers "marstiles-server/internal/search/handlers"
	serverHandlers "marstiles-server/internal/server/handlers"
	"marstiles-server/internal/shared/config"
	"marstiles-server/internal/shared/database"
	"marstiles-server/internal/tiles"
	tileHandlers "marstiles-server/internal/tiles/handlers"
)

type Routes struct {
	cfg             *config.Config
	db              *database.DB
	tilesService    *tiles.Service
	locationService *location.Service
	searchService   *search.Service
	logger          *slog.Logger
}

func NewRoutes(cfg *config.Config, db *database.DB, tilesService *tiles.Service, locationService *location.Service, searchService *search.Service, logger *slog.Logger) *Routes {
	return &Routes{
		cfg:             cfg,
		db:              db,
		tilesService:    tilesService,
		locationService: locationService,
		searchService:   searchService,
		logger:          logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	tilesHandler := tileHandlers.NewTilesHandler(r.tilesService)
	locationsHandler := locationHandlers.NewLocationsHandler(r.locationService)
	searchHandler := searchHandlers.NewSearchHandler(r.searchService)
	healthHandler := serverHandlers.NewHealthHandler(r.db, r.cfg.Tiles.BaseDir)
	indexHandler := serverHandlers.NewIndexHandler()

	mux.Handle("/tiles/{z}/{x}/{file}", tilesHandler)
	mux.Handle("/api/locations", locationsHandler)
	mux.Handle("/api/search", searchHandler)
	// Kept for clients of the original API surface
	mux.Handle("/search", searchHandler)
	mux.Handle("/api/health", healthHandler)
	mux.Handle("/", indexHandler)

	logger.Info("Routes configured successfully",
		"endpoints", []string{"/tiles/{z}/{x}/{y}.{ext}", "/api/search", "/api/locations", "/api/health", "/"},
	)

	return mux
}
