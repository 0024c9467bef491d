package geo

import (
	"math"
	"strconv"
	"strings"

	"geocache-finder/models"
)

// Fallbacks used when the search form is left blank or holds garbage.
const (
	DefaultCenterLat     = 32.253
	DefaultCenterLng     = -110.912
	DefaultDistanceMiles = 10.0
	MetersPerMile        = 1609.0
	DefaultRadiusMeters  = DefaultDistanceMiles * MetersPerMile
)

// RawCriteria is the search form as typed by the user.
type RawCriteria struct {
	Lat        string
	Lng        string
	Distance   string // miles
	CacheType  string
	Difficulty string
}

// NormalizeCriteria parses the form and substitutes defaults. A coordinate that does not
// parse, is zero, or is out of range falls back to the default center coordinate; a
// distance that does not parse or is not positive falls back to 10 miles.
func NormalizeCriteria(raw RawCriteria) models.SearchCriteria {
	lat := parseOr(raw.Lat, DefaultCenterLat)
	if lat < -90 || lat > 90 {
		lat = DefaultCenterLat
	}
	lng := parseOr(raw.Lng, DefaultCenterLng)
	if lng < -180 || lng > 180 {
		lng = DefaultCenterLng
	}
	miles := parseOr(raw.Distance, DefaultDistanceMiles)
	if miles <= 0 {
		miles = DefaultDistanceMiles
	}

	return models.SearchCriteria{
		Center:       models.LatLng{Lat: lat, Lng: lng},
		RadiusMeters: miles * MetersPerMile,
		CacheType:    strings.TrimSpace(raw.CacheType),
		Difficulty:   strings.TrimSpace(raw.Difficulty),
	}
}

// SearchRequestFor turns criteria into the request body sent to the search endpoint.
func SearchRequestFor(c models.SearchCriteria) models.GeocacheSearchRequest {
	box := CalculateBoundingBox(c.Center, c.RadiusMeters)
	return models.NewGeocacheSearchRequest(box, c.CacheType, c.Difficulty)
}

// parseOr treats 0 like a missing value, the same way the search form always has.
func parseOr(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
