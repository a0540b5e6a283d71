package handlers

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"marstiles-server/internal/shared/database"
	"marstiles-server/internal/shared/response"
)

type HealthResponse struct {
	Status         string `json:"status"`
	Timestamp      string `json:"timestamp"`
	Database       string `json:"database"`
	TilesDirectory bool   `json:"tiles_directory"`
}

type HealthHandler struct {
	db       *database.DB
	tilesDir string
}

func NewHealthHandler(db *database.DB, tilesDir string) *HealthHandler {
	return &HealthHandler{db: db, tilesDir: tilesDir}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "health")

	dbStatus := "disconnected"
	if err := h.db.Ping(); err == nil {
		dbStatus = "connected"
	} else {
		logger.Warn("Database ping failed", "error", err)
	}

	tilesDirExists := false
	if info, err := os.Stat(h.tilesDir); err == nil && info.IsDir() {
		tilesDirExists = true
	}

	resp := HealthResponse{
		Status:         "healthy",
		Timestamp:      time.Now().Format(time.RFC3339),
		Database:       dbStatus,
		TilesDirectory: tilesDirExists,
	}

	response.Success(w, http.StatusOK, resp)
}
