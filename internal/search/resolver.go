package search

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"marstiles-server/internal/location"
	apperrors "marstiles-server/internal/shared/errors"
)

// Match is a confident resolution. Field values are echoed from the engine;
// they are expected, not required, to be verbatim database values, and are
// not cross-validated against the store.
type Match struct {
	Name            string  `json:"name"`
	Lat             float64 `json:"lat"`
	Lng             float64 `json:"lng"`
	Zoom            int     `json:"zoom"`
	Description     string  `json:"description"`
	MatchConfidence string  `json:"match_confidence"`
}

// Unresolved is a "no semantic match" outcome with engine-suggested
// alternatives. Suggestion is the engine's raw suggestion text; Suggestions
// holds up to three parsed candidate names.
type Unresolved struct {
	Reason      string
	Suggestion  string
	Suggestions []string
}

// Result is the outcome of one query resolution: exactly one of Match or
// Unresolved is set.
type Result struct {
	Match      *Match
	Unresolved *Unresolved
}

// LocationSource supplies the gazetteer snapshot the prompt is grounded on
type LocationSource interface {
	GetAllLocations(ctx context.Context) ([]location.Location, error)
}

type Service struct {
	locations LocationSource
	engine    Engine
	cache     *Cache // nil when Redis is disabled
	logger    *slog.Logger
}

func NewService(locations LocationSource, engine Engine, cache *Cache, logger *slog.Logger) *Service {
	logger.Debug("Initializing search service", "cache_enabled", cache != nil)

	return &Service{
		locations: locations,
		engine:    engine,
		cache:     cache,
		logger:    logger,
	}
}

// Resolve turns a free-text query into a gazetteer match or an unresolved
// outcome. The store snapshot is taken without locking; a concurrent insert
// may be absent from the grounding context, which is accepted.
func (s *Service) Resolve(ctx context.Context, query string) (*Result, error) {
	logger := s.logger.With("component", "search_service", "operation", "resolve", "query", query)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.Validation("Query is required")
	}

	if match := s.cache.GetMatch(ctx, query); match != nil {
		logger.Debug("Resolved from cache", "name", match.Name)
		return &Result{Match: match}, nil
	}

	locations, err := s.locations.GetAllLocations(ctx)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to load locations", err)
	}

	prompt := BuildPrompt(ContextBlock(locations), query)

	logger.Debug("Invoking reasoning engine", "context_locations", len(locations))

	rawText, err := s.engine.Infer(ctx, prompt)
	if err != nil {
		logger.Error("Reasoning engine call failed", "error", err)
		return nil, apperrors.WrapExternal("Search failed", err)
	}

	result, err := parseEngineResponse(rawText)
	if err != nil {
		logger.Warn("Failed to parse engine response", "error", err, "raw_response", rawText)
		return nil, err
	}

	if result.Match != nil {
		logger.Info("Query resolved",
			"name", result.Match.Name,
			"confidence", result.Match.MatchConfidence,
		)
		s.cache.SetMatch(ctx, query, result.Match)
	} else {
		logger.Info("Query unresolved",
			"reason", result.Unresolved.Reason,
			"suggestions", result.Unresolved.Suggestions,
		)
	}

	return result, nil
}

// engineResponse covers both accepted JSON shapes. Pointer fields distinguish
// absent keys from zero values so a partial match is never accepted.
type engineResponse struct {
	Name            *string  `json:"name"`
	Lat             *float64 `json:"lat"`
	Lng             *float64 `json:"lng"`
	Zoom            *int     `json:"zoom"`
	Description     string   `json:"description"`
	MatchConfidence string   `json:"match_confidence"`
	Error           *string  `json:"error"`
	Suggestion      string   `json:"suggestion"`
}

// parseEngineResponse applies the single cleanup pass (code-fence stripping)
// and maps the text onto one of the two accepted shapes. Anything else is a
// ParseError carrying the raw text; there is no retry.
func parseEngineResponse(rawText string) (*Result, error) {
	cleaned := stripCodeFence(rawText)

	var parsed engineResponse
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, &ParseError{RawResponse: rawText, Err: err}
	}

	if parsed.Error != nil {
		return &Result{
			Unresolved: &Unresolved{
				Reason:      *parsed.Error,
				Suggestion:  parsed.Suggestion,
				Suggestions: parseSuggestions(parsed.Suggestion),
			},
		}, nil
	}

	if parsed.Name == nil || parsed.Lat == nil || parsed.Lng == nil || parsed.Zoom == nil {
		return nil, &ParseError{
			RawResponse: rawText,
			Err:         errors.New("response matches neither the match shape nor the not-found shape"),
		}
	}

	return &Result{
		Match: &Match{
			Name:            *parsed.Name,
			Lat:             *parsed.Lat,
			Lng:             *parsed.Lng,
			Zoom:            *parsed.Zoom,
			Description:     parsed.Description,
			MatchConfidence: parsed.MatchConfidence,
		},
	}, nil
}

// stripCodeFence removes a surrounding markdown code fence and an optional
// language tag. Engines are instructed not to use markdown but do anyway.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if i := strings.Index(text, "```"); i >= 0 {
		text = text[:i]
	}
	text = strings.TrimPrefix(strings.TrimSpace(text), "json")

	return strings.TrimSpace(text)
}

// parseSuggestions extracts up to three candidate names from the engine's
// suggestion text, e.g. "Try: Gale Crater, Jezero Crater".
func parseSuggestions(suggestion string) []string {
	suggestion = strings.TrimSpace(suggestion)
	if suggestion == "" {
		return nil
	}

	if i := strings.Index(suggestion, ":"); i >= 0 && strings.EqualFold(strings.TrimSpace(suggestion[:i]), "try") {
		suggestion = suggestion[i+1:]
	}

	var names []string
	for _, part := range strings.Split(suggestion, ",") {
		name := strings.Trim(strings.TrimSpace(part), ".")
		if name == "" {
			continue
		}
		names = append(names, name)
		if len(names) == 3 {
			break
		}
	}
	return names
}
