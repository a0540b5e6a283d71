package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"marstiles-server/internal/shared/errors"
	"marstiles-server/internal/shared/response"
	"marstiles-server/internal/tiles"
)

type TilesHandler struct {
	service *tiles.Service
}

func NewTilesHandler(service *tiles.Service) *TilesHandler {
	return &TilesHandler{service: service}
}

// ServeHTTP handles GET /tiles/{z}/{x}/{file} where file is "<y>.<ext>"
func (h *TilesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "tiles")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	coord, err := parseCoordinate(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	tile, err := h.service.Serve(coord, r.Header.Get("If-None-Match"))
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if tile.NotModified {
		w.Header().Set("ETag", tile.ETag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	defer tile.Content.Close()

	w.Header().Set("Content-Type", tile.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(tile.Size, 10))
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", h.service.MaxAge()))
	w.Header().Set("ETag", tile.ETag)

	if _, err := io.Copy(w, tile.Content); err != nil {
		// Headers are already written; the client likely went away
		logger.Debug("Failed to stream tile", "error", err)
	}
}

func parseCoordinate(r *http.Request) (tiles.Coordinate, error) {
	var coord tiles.Coordinate

	z, err := strconv.Atoi(r.PathValue("z"))
	if err != nil {
		return coord, errors.WrapValidation("invalid zoom level", err)
	}

	x, err := strconv.Atoi(r.PathValue("x"))
	if err != nil {
		return coord, errors.WrapValidation("invalid tile column", err)
	}

	file := r.PathValue("file")
	dot := strings.LastIndexByte(file, '.')
	if dot <= 0 || dot == len(file)-1 {
		return coord, errors.Validation("Invalid tile format")
	}

	y, err := strconv.Atoi(file[:dot])
	if err != nil {
		return coord, errors.WrapValidation("invalid tile row", err)
	}

	coord = tiles.Coordinate{
		Z:   z,
		X:   x,
		Y:   y,
		Ext: strings.ToLower(file[dot+1:]),
	}
	return coord, nil
}
