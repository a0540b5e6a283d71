package location

import (
	"context"
	"fmt"
	"log/slog"
)

// sampleLocations is the canonical Mars gazetteer loaded into an empty store.
var sampleLocations = []Location{
	{Name: "Olympus Mons", Lat: 18.65, Lng: -133.8, Zoom: 10, Description: "Largest volcano in the solar system", Planet: "Mars", Category: "volcano"},
	{Name: "Valles Marineris", Lat: -14.0, Lng: -59.2, Zoom: 8, Description: "Massive canyon system", Planet: "Mars", Category: "canyon"},
	{Name: "Gale Crater", Lat: -5.4, Lng: 137.8, Zoom: 12, Description: "Curiosity rover landing site", Planet: "Mars", Category: "crater"},
	{Name: "Jezero Crater", Lat: 18.38, Lng: 77.58, Zoom: 12, Description: "Perseverance rover landing site", Planet: "Mars", Category: "crater"},
	{Name: "Hellas Basin", Lat: -42.4, Lng: 70.5, Zoom: 7, Description: "Deepest impact crater on Mars", Planet: "Mars", Category: "basin"},
	{Name: "Tharsis Region", Lat: 2.5, Lng: -112.5, Zoom: 6, Description: "Volcanic plateau region", Planet: "Mars", Category: "region"},
	{Name: "Elysium Mons", Lat: 25.0, Lng: 147.0, Zoom: 10, Description: "Second largest volcano on Mars", Planet: "Mars", Category: "volcano"},
	{Name: "Utopia Planitia", Lat: 50.0, Lng: 110.0, Zoom: 5, Description: "Large plain in northern hemisphere", Planet: "Mars", Category: "plain"},
	{Name: "Argyre Basin", Lat: -49.7, Lng: -43.4, Zoom: 7, Description: "Large impact basin", Planet: "Mars", Category: "basin"},
	{Name: "Noctis Labyrinthus", Lat: -7.0, Lng: -101.5, Zoom: 11, Description: "Complex maze of canyons", Planet: "Mars", Category: "canyon"},
}

// SeedSampleLocations inserts the sample gazetteer when the store is empty.
// An already-populated store is left untouched.
func (s *Service) SeedSampleLocations(ctx context.Context) error {
	logger := s.logger.With("component", "location_service", "operation", "seed")

	count, err := s.repo.GetLocationCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to check location count: %w", err)
	}

	if count > 0 {
		logger.Debug("Store already populated, skipping seed", "count", count)
		return nil
	}

	for _, loc := range sampleLocations {
		if _, err := s.repo.CreateLocation(ctx, loc); err != nil {
			logger.Error("Failed to seed location", "name", loc.Name, "error", err)
			return fmt.Errorf("failed to seed location %s: %w", loc.Name, err)
		}
	}

	slog.Info("Seeded sample locations", "count", len(sampleLocations))
	return nil
}
