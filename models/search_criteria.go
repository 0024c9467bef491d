package models

// SearchCriteria is what the user asks for: a circle plus optional filters.
// It is built per search and never stored.
type SearchCriteria struct {
	Center       LatLng
	RadiusMeters float64
	CacheType    string // empty means any type
	Difficulty   string // empty means any difficulty
}
