package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"marstiles-server/internal/location"
	"marstiles-server/internal/search"
)

type stubEngine struct {
	output string
	err    error
}

func (e *stubEngine) Infer(context.Context, string) (string, error) {
	return e.output, e.err
}

type stubLocations struct{}

func (stubLocations) GetAllLocations(context.Context) ([]location.Location, error) {
	return []location.Location{
		{Name: "Olympus Mons", Lat: 18.65, Lng: -133.8, Zoom: 10, Description: "Largest volcano in the solar system", Planet: "Mars", Category: "volcano"},
	}, nil
}

func newTestHandler(engine search.Engine) *SearchHandler {
	svc := search.NewService(stubLocations{}, engine, nil, slog.Default())
	return NewSearchHandler(svc)
}

func doSearch(handler http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestSearchResolvesMatch(t *testing.T) {
	handler := newTestHandler(&stubEngine{
		output: `{"name": "Olympus Mons", "lat": 18.65, "lng": -133.8, "zoom": 10, "description": "Largest volcano in the solar system", "match_confidence": "high"}`,
	})

	rec := doSearch(handler, `{"query":"biggest volcano"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Status   string       `json:"status"`
		Location search.Match `json:"location"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Status != "success" {
		t.Errorf("status = %q, want success", body.Status)
	}
	if body.Location.Name != "Olympus Mons" || body.Location.Lat != 18.65 || body.Location.Lng != -133.8 || body.Location.Zoom != 10 {
		t.Errorf("location = %+v", body.Location)
	}
	if body.Location.MatchConfidence != "high" {
		t.Errorf("match_confidence = %q, want high", body.Location.MatchConfidence)
	}
}

func TestSearchBlankQuery(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing query key", `{}`},
		{"empty query", `{"query":""}`},
		{"whitespace query", `{"query":"   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(&stubEngine{})

			rec := doSearch(handler, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}

			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body["status"] != "error" || body["message"] != "Query is required" {
				t.Errorf("body = %v", body)
			}
		})
	}
}

func TestSearchNotFoundWithSuggestions(t *testing.T) {
	handler := newTestHandler(&stubEngine{
		output: "```json\n{\"error\":\"Location not found in database\",\"suggestion\":\"Try: Gale Crater, Jezero Crater\"}\n```",
	})

	rec := doSearch(handler, `{"query":"atlantis"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body: %s", rec.Code, rec.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["status"] != "error" {
		t.Errorf("status = %q, want error", body["status"])
	}
	if body["message"] != "Location not found in database" {
		t.Errorf("message = %q", body["message"])
	}
	if body["suggestion"] != "Try: Gale Crater, Jezero Crater" {
		t.Errorf("suggestion = %q", body["suggestion"])
	}
}

func TestSearchUnparsableEngineOutput(t *testing.T) {
	raw := "Sorry, I can only talk about Mars."
	handler := newTestHandler(&stubEngine{output: raw})

	rec := doSearch(handler, `{"query":"olympus"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["status"] != "error" {
		t.Errorf("status = %q, want error", body["status"])
	}
	if body["raw_response"] != raw {
		t.Errorf("raw_response = %q, want the raw engine text", body["raw_response"])
	}
}

func TestSearchEngineUnreachable(t *testing.T) {
	handler := newTestHandler(&stubEngine{err: context.DeadlineExceeded})

	rec := doSearch(handler, `{"query":"olympus"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["status"] != "error" {
		t.Errorf("status = %q, want error", body["status"])
	}
}

func TestSearchMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(&stubEngine{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
