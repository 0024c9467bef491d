package models

import (
	"math"

	"github.com/paulmach/orb"
)

// GeoBoundingBox is the axis-aligned lat/lng rectangle a radius search is reduced to.
type GeoBoundingBox struct {
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLng float64 `json:"minLng"`
	MaxLng float64 `json:"maxLng"`
}

// NewGeoBoundingBoxFromBound converts an orb.Bound (lon/lat ordered) into a GeoBoundingBox.
func NewGeoBoundingBoxFromBound(b orb.Bound) GeoBoundingBox {
	return GeoBoundingBox{
		MinLat: b.Min.Lat(),
		MaxLat: b.Max.Lat(),
		MinLng: b.Min.Lon(),
		MaxLng: b.Max.Lon(),
	}
}

// Bound returns the box as an orb.Bound.
func (b GeoBoundingBox) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.MinLng, b.MinLat},
		Max: orb.Point{b.MaxLng, b.MaxLat},
	}
}

// Valid reports whether all four edges are finite and ordered.
func (b GeoBoundingBox) Valid() bool {
	for _, v := range []float64{b.MinLat, b.MaxLat, b.MinLng, b.MaxLng} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.MinLat <= b.MaxLat && b.MinLng <= b.MaxLng
}

// Contains is the inclusive rectangular containment test used by the search query.
func (b GeoBoundingBox) Contains(p LatLng) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

// Center returns the midpoint of the box.
func (b GeoBoundingBox) Center() LatLng {
	return LatLng{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lng: (b.MinLng + b.MaxLng) / 2,
	}
}
