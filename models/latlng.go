package models

import "github.com/paulmach/orb"

// LatLng is a coordinate in decimal degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Point converts to an orb.Point, which is ordered [lon, lat].
func (l LatLng) Point() orb.Point {
	return orb.Point{l.Lng, l.Lat}
}

// LatLngFromPoint converts an orb.Point back to a LatLng.
func LatLngFromPoint(p orb.Point) LatLng {
	return LatLng{Lat: p.Lat(), Lng: p.Lon()}
}
