package location

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"
)

const testSchema = `
CREATE TABLE locations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    lat REAL NOT NULL,
    lng REAL NOT NULL,
    zoom INTEGER NOT NULL,
    description TEXT DEFAULT '',
    planet TEXT DEFAULT 'Mars',
    category TEXT DEFAULT '',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// A single connection keeps every query on the same in-memory database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return NewRepository(db)
}

func TestCreateAndListLocations(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := Location{Name: "Olympus Mons", Lat: 18.65, Lng: -133.8, Zoom: 10, Description: "Largest volcano in the solar system", Planet: "Mars", Category: "volcano"}
	second := Location{Name: "Gale Crater", Lat: -5.4, Lng: 137.8, Zoom: 12, Description: "Curiosity rover landing site", Planet: "Mars", Category: "crater"}

	id1, err := repo.CreateLocation(ctx, first)
	if err != nil {
		t.Fatalf("CreateLocation failed: %v", err)
	}
	if id1 == 0 {
		t.Error("CreateLocation returned zero ID")
	}

	if _, err := repo.CreateLocation(ctx, second); err != nil {
		t.Fatalf("CreateLocation failed: %v", err)
	}

	locations, err := repo.GetAllLocations(ctx)
	if err != nil {
		t.Fatalf("GetAllLocations failed: %v", err)
	}

	if len(locations) != 2 {
		t.Fatalf("got %d locations, want 2", len(locations))
	}

	// Insertion order is preserved
	if locations[0].Name != "Olympus Mons" || locations[1].Name != "Gale Crater" {
		t.Errorf("order = [%s, %s], want [Olympus Mons, Gale Crater]", locations[0].Name, locations[1].Name)
	}

	got := locations[0]
	if got.Lat != 18.65 || got.Lng != -133.8 || got.Zoom != 10 || got.Category != "volcano" {
		t.Errorf("record fields = %+v", got)
	}
}

func TestCreateLocationDuplicateName(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	original := Location{Name: "Olympus Mons", Lat: 18.65, Lng: -133.8, Zoom: 10, Description: "Largest volcano in the solar system"}
	if _, err := repo.CreateLocation(ctx, original); err != nil {
		t.Fatalf("CreateLocation failed: %v", err)
	}

	// Same name, different fields: must be rejected, not overwritten
	_, err := repo.CreateLocation(ctx, Location{Name: "Olympus Mons", Lat: 0, Lng: 0, Zoom: 1})
	if !errors.Is(err, ErrLocationExists) {
		t.Fatalf("error = %v, want ErrLocationExists", err)
	}

	count, err := repo.GetLocationCount(ctx)
	if err != nil {
		t.Fatalf("GetLocationCount failed: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	existing, err := repo.FindLocationByName(ctx, "Olympus Mons")
	if err != nil {
		t.Fatalf("FindLocationByName failed: %v", err)
	}
	if existing == nil {
		t.Fatal("existing record disappeared")
	}
	if existing.Lat != 18.65 || existing.Lng != -133.8 || existing.Zoom != 10 {
		t.Errorf("existing record mutated: %+v", existing)
	}
}

func TestFindLocationByNameMissing(t *testing.T) {
	repo := newTestRepository(t)

	loc, err := repo.FindLocationByName(context.Background(), "Atlantis")
	if err != nil {
		t.Fatalf("FindLocationByName failed: %v", err)
	}
	if loc != nil {
		t.Errorf("got %+v, want nil for missing name", loc)
	}
}

func TestGetAllLocationsEmpty(t *testing.T) {
	repo := newTestRepository(t)

	locations, err := repo.GetAllLocations(context.Background())
	if err != nil {
		t.Fatalf("GetAllLocations failed: %v", err)
	}
	if len(locations) != 0 {
		t.Errorf("got %d locations, want 0", len(locations))
	}
}
