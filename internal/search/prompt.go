package search

import (
	"fmt"
	"strings"

	"marstiles-server/internal/location"
)

// ContextBlock renders the gazetteer snapshot into the line-oriented grounding
// context supplied to the engine, one record per line.
func ContextBlock(locations []location.Location) string {
	lines := make([]string, 0, len(locations))
	for _, loc := range locations {
		lines = append(lines, fmt.Sprintf(
			"- %s: lat=%g, lng=%g, zoom=%d, description=%s, planet=%s, category=%s",
			loc.Name, loc.Lat, loc.Lng, loc.Zoom, loc.Description, loc.Planet, loc.Category,
		))
	}
	return strings.Join(lines, "\n")
}

// BuildPrompt constructs the grounding instruction. The engine may only pick
// among the records in the context block and must answer with one of two
// strict JSON shapes.
func BuildPrompt(contextBlock, query string) string {
	return fmt.Sprintf(`You are a location search assistant. You have access to the following locations in the database:

%s

User query: "%s"

Your task:
1. Match the user's query to the MOST RELEVANT location from the database above
2. Consider synonyms, descriptions, and partial matches
3. If query mentions specific features (volcano, crater, rover, etc.), prioritize by category

Respond ONLY with valid JSON in this exact format (no markdown, no extra text):
{
    "name": "<exact name from database>",
    "lat": <latitude>,
    "lng": <longitude>,
    "zoom": <zoom level>,
    "description": "<description from database>",
    "match_confidence": "<high/medium/low>"
}

If NO good match found, return:
{"error": "Location not found in database", "suggestion": "Try: [list 2-3 closest matches]"}

Examples:
- "biggest volcano" -> Match to "Olympus Mons" (category: volcano)
- "curiosity landing" -> Match to "Gale Crater" (description mentions Curiosity)
- "deep crater" -> Match to "Hellas Basin" (deepest crater)
- "canyon system" -> Match to "Valles Marineris" (category: canyon)`, contextBlock, query)
}
