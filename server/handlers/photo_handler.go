package handlers

import (
	"context"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"geocache-finder/models"
)

const (
	LAT_QUERY_ARG = "lat"
	LNG_QUERY_ARG = "lng"
)

// PhotoFinder looks up photos near a point; it reports failures in the result status.
type PhotoFinder interface {
	GetPhotosNearby(ctx context.Context, lat, lng float64) models.PhotoSearchResult
}

type PhotoHandler struct {
	photos PhotoFinder
}

func NewPhotoHandler(photos PhotoFinder) *PhotoHandler {
	return &PhotoHandler{photos: photos}
}

// GetPhotosNearby handles GET /v1/photos?lat={latitude}&lng={longitude}.
func (h *PhotoHandler) GetPhotosNearby(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	lat, err := parseCoordinate(vals, LAT_QUERY_ARG, 90)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid argument " + LAT_QUERY_ARG, Kind: "input"})
		return
	}
	lng, err := parseCoordinate(vals, LNG_QUERY_ARG, 180)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid argument " + LNG_QUERY_ARG, Kind: "input"})
		return
	}

	writeJSON(w, http.StatusOK, h.photos.GetPhotosNearby(r.Context(), lat, lng))
}

func parseCoordinate(vals url.Values, name string, limit float64) (float64, error) {
	v, err := strconv.ParseFloat(vals.Get(name), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.Abs(v) > limit {
		return 0, strconv.ErrRange
	}
	return v, nil
}
