package geo

import (
	"github.com/paulmach/orb/geo"

	"geocache-finder/models"
)

// DistanceMeters is the haversine distance between two coordinates.
func DistanceMeters(a, b models.LatLng) float64 {
	return geo.DistanceHaversine(a.Point(), b.Point())
}

// WithinRadius drops the records a bounding box lets through from its corners,
// keeping only those inside the true circle.
func WithinRadius(center models.LatLng, radiusMeters float64, records []models.GeocacheRecord) []models.GeocacheRecord {
	out := make([]models.GeocacheRecord, 0, len(records))
	for _, r := range records {
		if DistanceMeters(center, r.Position()) <= radiusMeters {
			out = append(out, r)
		}
	}
	return out
}
