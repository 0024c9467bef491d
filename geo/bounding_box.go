package geo

import (
	"math"

	"github.com/paulmach/orb"

	"geocache-finder/models"
)

const (
	minLatitude  = -math.Pi / 2
	maxLatitude  = math.Pi / 2
	minLongitude = -math.Pi
	maxLongitude = math.Pi
)

// CalculateBoundingBox returns the smallest lat/lng box that contains the circle of
// radiusMeters around center on a sphere of radius orb.EarthRadius.
//
// The function is total: a non-finite or non-positive radius yields the degenerate box
// at center, and out of range coordinates are clamped. If the circle reaches a pole or
// crosses the antimeridian the box spans every longitude, so MinLng <= MaxLng holds.
func CalculateBoundingBox(center models.LatLng, radiusMeters float64) models.GeoBoundingBox {
	lat := clamp(finiteOr(center.Lat, 0), -90, 90)
	lng := clamp(finiteOr(center.Lng, 0), -180, 180)

	if !(radiusMeters > 0) {
		return models.GeoBoundingBox{MinLat: lat, MaxLat: lat, MinLng: lng, MaxLng: lng}
	}

	angular := radiusMeters / orb.EarthRadius
	radLat := deg2rad(lat)
	radLng := deg2rad(lng)

	minLat := radLat - angular
	maxLat := radLat + angular
	if minLat <= minLatitude || maxLat >= maxLatitude {
		return models.GeoBoundingBox{
			MinLat: math.Max(rad2deg(minLat), -90),
			MaxLat: math.Min(rad2deg(maxLat), 90),
			MinLng: -180,
			MaxLng: 180,
		}
	}

	delta := math.Asin(math.Sin(angular) / math.Cos(radLat))
	minLng := radLng - delta
	maxLng := radLng + delta
	if minLng < minLongitude || maxLng > maxLongitude {
		return models.GeoBoundingBox{MinLat: rad2deg(minLat), MaxLat: rad2deg(maxLat), MinLng: -180, MaxLng: 180}
	}

	return models.GeoBoundingBox{
		MinLat: rad2deg(minLat),
		MaxLat: rad2deg(maxLat),
		MinLng: rad2deg(minLng),
		MaxLng: rad2deg(maxLng),
	}
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
func rad2deg(r float64) float64 { return r * 180 / math.Pi }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
