package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"geocache-finder/geo"
	"geocache-finder/logger"
	"geocache-finder/models"
	"geocache-finder/util"
)

const (
	PHOTOS_ERROR_MESSAGE = "Error loading photos."
	PHOTOS_EMPTY_MESSAGE = "No photos found."
)

// ErrStaleResponse is returned for a reply that arrived after a newer search started.
var ErrStaleResponse = errors.New("response superseded by a newer search")

// ServerError is a search the server answered with an error payload.
type ServerError struct {
	Response models.ErrorResponse
}

func (e *ServerError) Error() string {
	if e.Response.Message != "" {
		return fmt.Sprintf("%s (%s): %s", e.Response.Error, e.Response.Kind, e.Response.Message)
	}
	return fmt.Sprintf("%s (%s)", e.Response.Error, e.Response.Kind)
}

type Marker struct {
	Position models.LatLng
	Title    string
	Record   models.GeocacheRecord
}

type TableRow struct {
	CacheType  string
	Difficulty string
	Location   string
}

// Popup is the detail view of one marker.
type Popup struct {
	Title      string
	CacheType  string
	Difficulty string
	Location   string
	Photos     []models.Photo
	// PhotoMessage replaces the photo strip when there is nothing to show.
	PhotoMessage string
}

// SearchView holds the markers, table and popup of the most recent successful search.
// Only the reply to the latest Submit is applied; a failed search leaves the previous
// results in place.
type SearchView struct {
	backend     Backend
	exactCircle bool

	mu              sync.Mutex
	generation      uint64
	popupGeneration uint64
	criteria        models.SearchCriteria
	box             models.GeoBoundingBox
	markers         []Marker
	rows            []TableRow
	popup           *Popup
	lastErr         error
}

func NewSearchView(backend Backend) *SearchView {
	return &SearchView{backend: backend}
}

// SetExactCircle drops results outside the true circle when enabled.
func (v *SearchView) SetExactCircle(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.exactCircle = enabled
}

// Submit runs a search for the raw form values.
func (v *SearchView) Submit(ctx context.Context, raw geo.RawCriteria) error {
	criteria := geo.NormalizeCriteria(raw)
	box := geo.CalculateBoundingBox(criteria.Center, criteria.RadiusMeters)
	req := models.NewGeocacheSearchRequest(box, criteria.CacheType, criteria.Difficulty)

	v.mu.Lock()
	v.generation++
	gen := v.generation
	v.mu.Unlock()

	resp, err := v.backend.Search(ctx, req)

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.generation {
		logger.L().Debug("search_response_dropped", "generation", gen, "latest", v.generation)
		return ErrStaleResponse
	}
	if err == nil && resp.Kind == models.SearchResponseError {
		err = &ServerError{Response: *resp.Error}
	}
	if err == nil && resp.Kind != models.SearchResponseSuccess {
		err = errors.New("invalid search response")
	}
	if err != nil {
		logger.L().Warn("search_failed", "generation", gen, "err", err)
		v.lastErr = err
		return err
	}

	records := resp.Geocaches
	if v.exactCircle {
		records = geo.WithinRadius(criteria.Center, criteria.RadiusMeters, records)
	}
	v.criteria = criteria
	v.box = box
	v.markers = make([]Marker, 0, len(records))
	v.rows = make([]TableRow, 0, len(records))
	for _, r := range records {
		v.markers = append(v.markers, Marker{Position: r.Position(), Title: util.MarkerTitle(r), Record: r})
		v.rows = append(v.rows, TableRow{
			CacheType:  r.CacheType,
			Difficulty: r.Difficulty(),
			Location:   util.FormatLocation(r.Latitude, r.Longitude),
		})
	}
	v.popup = nil
	v.popupGeneration++
	v.lastErr = nil
	return nil
}

// OpenPopup shows the details of marker i and loads nearby photos through the server.
// Photo problems never fail the popup; they only change its PhotoMessage.
func (v *SearchView) OpenPopup(ctx context.Context, i int) (Popup, error) {
	v.mu.Lock()
	if i < 0 || i >= len(v.markers) {
		v.mu.Unlock()
		return Popup{}, fmt.Errorf("no marker at index %d", i)
	}
	m := v.markers[i]
	v.popupGeneration++
	gen := v.popupGeneration
	popup := Popup{
		Title:      m.Title,
		CacheType:  m.Record.CacheType,
		Difficulty: m.Record.Difficulty(),
		Location:   util.FormatLocation(m.Position.Lat, m.Position.Lng),
	}
	v.popup = &popup
	v.mu.Unlock()

	result, err := v.backend.Photos(ctx, m.Position.Lat, m.Position.Lng)
	switch {
	case err != nil:
		logger.L().Warn("photos_load_failed", "err", err)
		popup.PhotoMessage = PHOTOS_ERROR_MESSAGE
	case result.Status == models.PhotoStatusUnavailable:
		popup.PhotoMessage = PHOTOS_ERROR_MESSAGE
	case len(result.Photos) == 0:
		popup.PhotoMessage = PHOTOS_EMPTY_MESSAGE
	default:
		popup.Photos = result.Photos
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen == v.popupGeneration {
		v.popup = &popup
	}
	return popup, nil
}

func (v *SearchView) Markers() []Marker {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]Marker(nil), v.markers...)
}

func (v *SearchView) Rows() []TableRow {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]TableRow(nil), v.rows...)
}

// Popup returns the open popup, if any.
func (v *SearchView) Popup() (Popup, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.popup == nil {
		return Popup{}, false
	}
	return *v.popup, true
}

// Criteria returns the criteria and box of the search currently displayed.
func (v *SearchView) Criteria() (models.SearchCriteria, models.GeoBoundingBox) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.criteria, v.box
}

// Records returns the geocaches currently displayed.
func (v *SearchView) Records() []models.GeocacheRecord {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]models.GeocacheRecord, 0, len(v.markers))
	for _, m := range v.markers {
		out = append(out, m.Record)
	}
	return out
}

// LastError is the error of the latest search, nil after a success.
func (v *SearchView) LastError() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastErr
}
