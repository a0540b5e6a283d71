package location

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	apperrors "marstiles-server/internal/shared/errors"
)

type Service struct {
	repo   *Repository
	logger *slog.Logger
}

func NewService(repo *Repository, logger *slog.Logger) *Service {
	logger.Debug("Initializing location service")

	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAllLocations(ctx context.Context) ([]Location, error) {
	return s.repo.GetAllLocations(ctx)
}

func (s *Service) GetLocationCount(ctx context.Context) (int, error) {
	return s.repo.GetLocationCount(ctx)
}

// CreateLocation validates and inserts a new gazetteer record. Defaults match
// the seeded data: empty description/category, planet Mars.
func (s *Service) CreateLocation(ctx context.Context, loc Location) (int, error) {
	logger := s.logger.With(
		"component", "location_service",
		"operation", "create",
		"name", loc.Name,
	)
	logger.Debug("Creating location")

	loc.Name = strings.TrimSpace(loc.Name)
	if loc.Name == "" {
		return 0, apperrors.Validation("location name is required")
	}

	if loc.Planet == "" {
		loc.Planet = "Mars"
	}

	id, err := s.repo.CreateLocation(ctx, loc)
	if err != nil {
		if errors.Is(err, ErrLocationExists) {
			return 0, apperrors.Conflictf("Location already exists")
		}
		logger.Error("Failed to create location", "error", err)
		return 0, apperrors.WrapInternal("failed to create location", err)
	}

	return id, nil
}
