package tiles

import (
	"io"
	"log/slog"
	"os"

	"marstiles-server/internal/shared/config"
	"marstiles-server/internal/shared/errors"
)

type Service struct {
	baseDir string
	maxAge  int
	logger  *slog.Logger
}

func NewService(cfg config.TilesConfig, logger *slog.Logger) *Service {
	logger.Debug("Initializing tiles service", "base_dir", cfg.BaseDir, "max_age", cfg.MaxAge)

	return &Service{
		baseDir: cfg.BaseDir,
		maxAge:  cfg.MaxAge,
		logger:  logger,
	}
}

// TileResponse is the outcome of serving one tile. When NotModified is set
// the client's cached copy is current and Content is nil; otherwise Content
// streams the tile bytes and must be closed by the caller.
type TileResponse struct {
	NotModified bool
	ETag        string
	ContentType string
	Size        int64
	Content     io.ReadCloser
}

// MaxAge returns the Cache-Control retention period in seconds
func (s *Service) MaxAge() int {
	return s.maxAge
}

// Serve resolves a coordinate to a tile on disk. The extension is checked
// before any filesystem access. requestToken is the client's If-None-Match
// value, empty when absent.
func (s *Service) Serve(coord Coordinate, requestToken string) (*TileResponse, error) {
	logger := s.logger.With(
		"component", "tiles_service",
		"operation", "serve",
		"z", coord.Z,
		"x", coord.X,
		"y", coord.Y,
		"ext", coord.Ext,
	)

	if !SupportedExtension(coord.Ext) {
		logger.Debug("Unsupported tile extension")
		return nil, errors.Validation("Invalid tile format")
	}

	path := coord.Path(s.baseDir)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("Tile not found on disk", "path", path)
			return nil, errors.NotFound("Tile not found")
		}
		logger.Error("Failed to stat tile", "path", path, "error", err)
		return nil, errors.WrapInternal("failed to read tile", err)
	}

	etag := Token(path, info.ModTime())

	if Unchanged(requestToken, etag) {
		logger.Debug("Tile unchanged, client cache is current", "etag", etag)
		return &TileResponse{
			NotModified: true,
			ETag:        etag,
		}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		logger.Error("Failed to open tile", "path", path, "error", err)
		return nil, errors.WrapInternal("failed to read tile", err)
	}

	logger.Debug("Serving tile", "path", path, "size", info.Size(), "etag", etag)

	return &TileResponse{
		ETag:        etag,
		ContentType: coord.ContentType(),
		Size:        info.Size(),
		Content:     file,
	}, nil
}
