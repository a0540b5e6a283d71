package location

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	logger := slog.With("component", "location_repository", "operation", "init")
	logger.Debug("Initializing location repository")
	return &Repository{db: db}
}

func (r *Repository) GetLocationCount(ctx context.Context) (int, error) {
	logger := slog.With("component", "location_repository", "operation", "get_count")
	logger.Debug("Getting total location count")

	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM locations").Scan(&count)
	if err != nil {
		logger.Error("Failed to get location count", "error", err)
		return 0, fmt.Errorf("failed to get location count: %w", err)
	}

	logger.Debug("Location count retrieved", "count", count)
	return count, nil
}

// GetAllLocations returns every record in insertion order. This is the
// snapshot the search resolver grounds its prompt on; a concurrent insert may
// be missing from an in-flight snapshot, which is accepted.
func (r *Repository) GetAllLocations(ctx context.Context) ([]Location, error) {
	logger := slog.With("component", "location_repository", "operation", "get_all")
	logger.Debug("Retrieving all locations")

	query := `
		SELECT id, name, lat, lng, zoom, description, planet, category
		FROM locations
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("Failed to query locations", "error", err)
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	var locations []Location
	for rows.Next() {
		var loc Location
		err := rows.Scan(
			&loc.ID,
			&loc.Name,
			&loc.Lat,
			&loc.Lng,
			&loc.Zoom,
			&loc.Description,
			&loc.Planet,
			&loc.Category,
		)
		if err != nil {
			logger.Error("Failed to scan location row", "error", err)
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating locations: %w", err)
	}

	logger.Debug("Locations retrieved successfully", "count", len(locations))
	return locations, nil
}

// CreateLocation inserts a new record. A duplicate name returns
// ErrLocationExists and leaves the store unchanged.
func (r *Repository) CreateLocation(ctx context.Context, loc Location) (int, error) {
	logger := slog.With(
		"component", "location_repository",
		"operation", "create",
		"name", loc.Name,
	)
	logger.Info("Creating new location")

	query := `
		INSERT INTO locations (name, lat, lng, zoom, description, planet, category)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		loc.Name,
		loc.Lat,
		loc.Lng,
		loc.Zoom,
		loc.Description,
		loc.Planet,
		loc.Category,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			logger.Debug("Location name already exists")
			return 0, ErrLocationExists
		}
		logger.Error("Failed to create location", "error", err)
		return 0, fmt.Errorf("failed to create location: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		logger.Error("Failed to read inserted location ID", "error", err)
		return 0, fmt.Errorf("failed to read inserted location ID: %w", err)
	}

	logger.Info("Location created successfully", "location_id", id, "name", loc.Name)
	return int(id), nil
}

// FindLocationByName returns nil when no record matches.
func (r *Repository) FindLocationByName(ctx context.Context, name string) (*Location, error) {
	logger := slog.With(
		"component", "location_repository",
		"operation", "find_by_name",
		"name", name,
	)
	logger.Debug("Finding location by name")

	query := `
		SELECT id, name, lat, lng, zoom, description, planet, category
		FROM locations
		WHERE name = ?
	`

	var loc Location
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&loc.ID,
		&loc.Name,
		&loc.Lat,
		&loc.Lng,
		&loc.Zoom,
		&loc.Description,
		&loc.Planet,
		&loc.Category,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			logger.Debug("No location found with name")
			return nil, nil
		}
		logger.Error("Database error finding location by name", "error", err)
		return nil, fmt.Errorf("database error: %w", err)
	}

	logger.Debug("Found location by name", "location_id", loc.ID)
	return &loc, nil
}
