package util

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"geocache-finder/models"
)

// PlotSearchResults renders the search box, its center and every geocache marker into
// an HTML map page.
func PlotSearchResults(w io.Writer, center models.LatLng, box models.GeoBoundingBox, records []models.GeocacheRecord) error {
	// Define the points forming the bounding box polygon.
	corners := []opts.GeoData{
		{Name: "SW", Value: []float64{box.MinLng, box.MinLat}},
		{Name: "NW", Value: []float64{box.MinLng, box.MaxLat}},
		{Name: "NE", Value: []float64{box.MaxLng, box.MaxLat}},
		{Name: "SE", Value: []float64{box.MaxLng, box.MinLat}},
	}

	markers := make([]opts.GeoData, 0, len(records))
	for _, r := range records {
		markers = append(markers, opts.GeoData{
			Name:  MarkerTitle(r),
			Value: []float64{r.Longitude, r.Latitude},
		})
	}

	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Geocache Search",
			Width:     "1000px",
			Height:    "700px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Geocaches near " + FormatLocation(center.Lat, center.Lng),
			Subtitle: fmt.Sprintf("%d results", len(records)),
		}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:    "world",
			Silent: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Formatter: "{b}"}),
	)

	geo.AddSeries("Search area", types.ChartScatter, corners,
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}",
		}),
	)
	geo.AddSeries("Center", types.ChartEffectScatter, []opts.GeoData{
		{Name: "Center", Value: []float64{center.Lng, center.Lat}},
	})
	geo.AddSeries("Geocaches", types.ChartScatter, markers)

	if err := geo.Render(w); err != nil {
		return fmt.Errorf("failed to render map: %w", err)
	}
	return nil
}

// MarkerTitle is the hover title of a geocache marker.
func MarkerTitle(r models.GeocacheRecord) string {
	return fmt.Sprintf("%s, Difficulty: %s", r.CacheType, r.Difficulty())
}

// FormatLocation renders a coordinate as "lat, lng".
func FormatLocation(lat, lng float64) string {
	return fmt.Sprintf("%g, %g", lat, lng)
}
