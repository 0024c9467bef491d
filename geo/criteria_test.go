package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"geocache-finder/models"
)

func TestNormalizeCriteria(t *testing.T) {
	tests := []struct {
		name string
		raw  RawCriteria
		want models.SearchCriteria
	}{
		{
			name: "blank form uses defaults",
			raw:  RawCriteria{},
			want: models.SearchCriteria{
				Center:       models.LatLng{Lat: DefaultCenterLat, Lng: DefaultCenterLng},
				RadiusMeters: 16090,
			},
		},
		{
			name: "garbage falls back per field",
			raw:  RawCriteria{Lat: "north", Lng: "-111.5", Distance: "-3"},
			want: models.SearchCriteria{
				Center:       models.LatLng{Lat: DefaultCenterLat, Lng: -111.5},
				RadiusMeters: 16090,
			},
		},
		{
			name: "out of range coordinates fall back",
			raw:  RawCriteria{Lat: "91", Lng: "181", Distance: "2"},
			want: models.SearchCriteria{
				Center:       models.LatLng{Lat: DefaultCenterLat, Lng: DefaultCenterLng},
				RadiusMeters: 3218,
			},
		},
		{
			name: "valid form with filters",
			raw:  RawCriteria{Lat: " 40.5 ", Lng: "-105.1", Distance: "5", CacheType: " 1 ", Difficulty: "2"},
			want: models.SearchCriteria{
				Center:       models.LatLng{Lat: 40.5, Lng: -105.1},
				RadiusMeters: 5 * MetersPerMile,
				CacheType:    "1",
				Difficulty:   "2",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCriteria(tt.raw))
		})
	}
}

func TestSearchRequestFor(t *testing.T) {
	c := models.SearchCriteria{
		Center:       models.LatLng{Lat: 32.25, Lng: -110.91},
		RadiusMeters: 16090,
		CacheType:    "1",
	}

	req := SearchRequestFor(c)

	box, err := req.BoundingBox()
	assert.NoError(t, err)
	assert.Equal(t, CalculateBoundingBox(c.Center, c.RadiusMeters), box)
	assert.Equal(t, models.FilterValue("1"), req.Type)
	assert.False(t, req.Difficulty.IsSet())
}

func TestWithinRadius(t *testing.T) {
	center := models.LatLng{Lat: 32.25, Lng: -110.91}
	box := CalculateBoundingBox(center, 10000)
	corner := models.NewGeocacheRecord(map[string]any{"id": int64(2), "latitude": box.MaxLat, "longitude": box.MaxLng})
	inside := models.NewGeocacheRecord(map[string]any{"id": int64(1), "latitude": 32.26, "longitude": -110.90})

	got := WithinRadius(center, 10000, []models.GeocacheRecord{inside, corner})

	assert.True(t, box.Contains(corner.Position()))
	assert.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestDistanceMeters(t *testing.T) {
	a := models.LatLng{Lat: 0, Lng: 0}
	b := models.LatLng{Lat: 0, Lng: 1}

	// one degree of longitude on the equator
	assert.InDelta(t, 111319.49, DistanceMeters(a, b), 1)
}
