package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"marstiles-server/internal/location"

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

func newTestHandler(t *testing.T) *LocationsHandler {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	svc := location.NewService(location.NewRepository(db), slog.Default())
	return NewLocationsHandler(svc)
}

func postJSON(handler http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/locations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCreateLocationAndList(t *testing.T) {
	handler := newTestHandler(t)

	rec := postJSON(handler, `{"name":"Olympus Mons","lat":18.65,"lng":-133.8,"zoom":10,"description":"Largest volcano in the solar system","category":"volcano"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		Status string `json:"status"`
		ID     int    `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if created.Status != "success" || created.ID == 0 {
		t.Errorf("body = %+v, want success with a non-zero id", created)
	}

	list := httptest.NewRecorder()
	handler.ServeHTTP(list, httptest.NewRequest(http.MethodGet, "/api/locations", nil))
	if list.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", list.Code)
	}

	var listed struct {
		Status    string              `json:"status"`
		Count     int                 `json:"count"`
		Locations []location.Location `json:"locations"`
	}
	if err := json.Unmarshal(list.Body.Bytes(), &listed); err != nil {
		t.Fatalf("failed to decode list body: %v", err)
	}
	if listed.Count != 1 || len(listed.Locations) != 1 {
		t.Fatalf("list = %+v, want exactly one location", listed)
	}
	if listed.Locations[0].Name != "Olympus Mons" || listed.Locations[0].Planet != "Mars" {
		t.Errorf("listed location = %+v", listed.Locations[0])
	}
}

func TestCreateLocationMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"lat":1,"lng":2,"zoom":3}`},
		{"missing lat", `{"name":"X","lng":2,"zoom":3}`},
		{"missing lng", `{"name":"X","lat":1,"zoom":3}`},
		{"missing zoom", `{"name":"X","lat":1,"lng":2}`},
		{"invalid json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(t)

			rec := postJSON(handler, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}

			var body map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("error body is not JSON: %v", err)
			}
			if body["status"] != "error" {
				t.Errorf("status field = %v, want error", body["status"])
			}
		})
	}
}

func TestCreateLocationDuplicateConflict(t *testing.T) {
	handler := newTestHandler(t)

	first := postJSON(handler, `{"name":"Olympus Mons","lat":18.65,"lng":-133.8,"zoom":10}`)
	if first.Code != http.StatusCreated {
		t.Fatalf("first insert status = %d, want 201", first.Code)
	}

	second := postJSON(handler, `{"name":"Olympus Mons","lat":0,"lng":0,"zoom":1}`)
	if second.Code != http.StatusConflict {
		t.Fatalf("duplicate insert status = %d, want 409", second.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(second.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["status"] != "error" || body["message"] != "Location already exists" {
		t.Errorf("body = %v", body)
	}

	// The original record is unchanged
	list := httptest.NewRecorder()
	handler.ServeHTTP(list, httptest.NewRequest(http.MethodGet, "/api/locations", nil))

	var listed struct {
		Count     int                 `json:"count"`
		Locations []location.Location `json:"locations"`
	}
	if err := json.Unmarshal(list.Body.Bytes(), &listed); err != nil {
		t.Fatalf("failed to decode list body: %v", err)
	}
	if listed.Count != 1 {
		t.Fatalf("count = %d, want 1 after rejected duplicate", listed.Count)
	}
	if listed.Locations[0].Lat != 18.65 || listed.Locations[0].Zoom != 10 {
		t.Errorf("existing record mutated: %+v", listed.Locations[0])
	}
}

func TestLocationsMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/locations", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
