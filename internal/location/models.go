package location

// Location is a named point of interest in the gazetteer. Names are unique;
// records are immutable once created.
type Location struct {
	ID          int     `json:"-"`
	Name        string  `json:"name"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Zoom        int     `json:"zoom"`
	Description string  `json:"description"`
	Planet      string  `json:"planet"`
	Category    string  `json:"category"`
}
