package geo

import (
	"fmt"
	"math"
	"testing"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geocache-finder/models"
)

const degreeTolerance = 1e-9

var testCenters = []models.LatLng{
	{Lat: 32.253, Lng: -110.912},
	{Lat: 0, Lng: 0},
	{Lat: 59.91, Lng: 10.75},
	{Lat: -33.87, Lng: 151.21},
	{Lat: 89.5, Lng: 45},
	{Lat: -89.99, Lng: -120},
	{Lat: 10, Lng: 179.99},
	{Lat: -45, Lng: -179.5},
}

var testRadii = []float64{0.001, 1, 250, 16090, 100000, 1500000}

func TestCalculateBoundingBox_Ordered(t *testing.T) {
	for _, c := range testCenters {
		for _, r := range testRadii {
			box := CalculateBoundingBox(c, r)
			assert.True(t, box.Valid(), "center=%+v radius=%v box=%+v", c, r, box)
			assert.LessOrEqual(t, box.MinLat, box.MaxLat)
			assert.LessOrEqual(t, box.MinLng, box.MaxLng)
			assert.GreaterOrEqual(t, box.MinLat, -90.0)
			assert.LessOrEqual(t, box.MaxLat, 90.0)
			assert.GreaterOrEqual(t, box.MinLng, -180.0)
			assert.LessOrEqual(t, box.MaxLng, 180.0)
		}
	}
}

func TestCalculateBoundingBox_ContainsCompassPoints(t *testing.T) {
	for _, c := range testCenters {
		for _, r := range testRadii {
			box := CalculateBoundingBox(c, r)
			for _, bearing := range []float64{0, 90, 180, 270} {
				p := normalize(orbgeo.PointAtBearingAndDistance(c.Point(), bearing, r))
				name := fmt.Sprintf("center=%+v radius=%v bearing=%v point=%v box=%+v", c, r, bearing, p, box)
				assert.True(t, containsWithTolerance(box, p), name)
			}
		}
	}
}

func TestCalculateBoundingBox_CollapsesForTinyRadius(t *testing.T) {
	center := models.LatLng{Lat: 32.25, Lng: -110.91}
	box := CalculateBoundingBox(center, 1e-9)

	assert.InDelta(t, center.Lat, box.MinLat, degreeTolerance)
	assert.InDelta(t, center.Lat, box.MaxLat, degreeTolerance)
	assert.InDelta(t, center.Lng, box.MinLng, degreeTolerance)
	assert.InDelta(t, center.Lng, box.MaxLng, degreeTolerance)
}

func TestCalculateBoundingBox_Total(t *testing.T) {
	tests := []struct {
		name   string
		center models.LatLng
		radius float64
		want   models.GeoBoundingBox
	}{
		{"zero radius", models.LatLng{Lat: 1, Lng: 2}, 0, models.GeoBoundingBox{MinLat: 1, MaxLat: 1, MinLng: 2, MaxLng: 2}},
		{"negative radius", models.LatLng{Lat: 1, Lng: 2}, -50, models.GeoBoundingBox{MinLat: 1, MaxLat: 1, MinLng: 2, MaxLng: 2}},
		{"NaN radius", models.LatLng{Lat: 1, Lng: 2}, math.NaN(), models.GeoBoundingBox{MinLat: 1, MaxLat: 1, MinLng: 2, MaxLng: 2}},
		{"out of range center", models.LatLng{Lat: 120, Lng: -200}, 0, models.GeoBoundingBox{MinLat: 90, MaxLat: 90, MinLng: -180, MaxLng: -180}},
		{"NaN center", models.LatLng{Lat: math.NaN(), Lng: math.Inf(1)}, 0, models.GeoBoundingBox{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateBoundingBox(tt.center, tt.radius))
		})
	}
}

func TestCalculateBoundingBox_WholeGlobeForHugeRadius(t *testing.T) {
	box := CalculateBoundingBox(models.LatLng{Lat: 10, Lng: 10}, math.Inf(1))

	assert.Equal(t, models.GeoBoundingBox{MinLat: -90, MaxLat: 90, MinLng: -180, MaxLng: 180}, box)
}

func TestCalculateBoundingBox_AntimeridianSpansAllLongitudes(t *testing.T) {
	box := CalculateBoundingBox(models.LatLng{Lat: 10, Lng: 179.99}, 16090)

	assert.Equal(t, -180.0, box.MinLng)
	assert.Equal(t, 180.0, box.MaxLng)
	assert.Less(t, box.MinLat, 10.0)
	assert.Greater(t, box.MaxLat, 10.0)
}

func TestCalculateBoundingBox_LongitudeWidensWithLatitude(t *testing.T) {
	equator := CalculateBoundingBox(models.LatLng{Lat: 0, Lng: 0}, 16090)
	north := CalculateBoundingBox(models.LatLng{Lat: 60, Lng: 0}, 16090)

	assert.InDelta(t, equator.MaxLat-equator.MinLat, north.MaxLat-north.MinLat, 1e-9)
	// 1/cos(60deg) = 2, up to the asin curvature
	assert.InDelta(t, 2*(equator.MaxLng-equator.MinLng), north.MaxLng-north.MinLng, 1e-4)
}

func TestCalculateBoundingBox_MatchesSphericalCapBound(t *testing.T) {
	tests := []struct {
		center models.LatLng
		radius float64
	}{
		{models.LatLng{Lat: 32.253, Lng: -110.912}, 16090},
		{models.LatLng{Lat: 0, Lng: 0}, 1000},
		{models.LatLng{Lat: 59.91, Lng: 10.75}, 50000},
		{models.LatLng{Lat: -33.87, Lng: 151.21}, 250000},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v,%v", tt.center.Lat, tt.center.Lng), func(t *testing.T) {
			center := s2.PointFromLatLng(s2.LatLngFromDegrees(tt.center.Lat, tt.center.Lng))
			rect := s2.CapFromCenterAngle(center, s1.Angle(tt.radius/orb.EarthRadius)).RectBound()
			require.False(t, rect.Lng.IsFull())

			box := CalculateBoundingBox(tt.center, tt.radius)

			assert.InDelta(t, s1.Angle(rect.Lat.Lo).Degrees(), box.MinLat, degreeTolerance)
			assert.InDelta(t, s1.Angle(rect.Lat.Hi).Degrees(), box.MaxLat, degreeTolerance)
			assert.InDelta(t, s1.Angle(rect.Lng.Lo).Degrees(), box.MinLng, degreeTolerance)
			assert.InDelta(t, s1.Angle(rect.Lng.Hi).Degrees(), box.MaxLng, degreeTolerance)
		})
	}
}

func containsWithTolerance(box models.GeoBoundingBox, p orb.Point) bool {
	return p.Lat() >= box.MinLat-degreeTolerance && p.Lat() <= box.MaxLat+degreeTolerance &&
		p.Lon() >= box.MinLng-degreeTolerance && p.Lon() <= box.MaxLng+degreeTolerance
}

func normalize(p orb.Point) orb.Point {
	lon := math.Mod(p.Lon()+540, 360) - 180
	return orb.Point{lon, p.Lat()}
}
