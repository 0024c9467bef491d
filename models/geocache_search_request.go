package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// GeocacheSearchRequest mirrors the POST body of the search endpoint.
// Bounds are pointers so a missing field can be told apart from 0.
type GeocacheSearchRequest struct {
	MinLat     *float64    `json:"minLat"`
	MaxLat     *float64    `json:"maxLat"`
	MinLng     *float64    `json:"minLng"`
	MaxLng     *float64    `json:"maxLng"`
	Type       FilterValue `json:"type,omitempty"`
	Difficulty FilterValue `json:"difficulty,omitempty"`
}

// NewGeocacheSearchRequest builds the request body for a box and optional filters.
func NewGeocacheSearchRequest(box GeoBoundingBox, cacheType, difficulty string) GeocacheSearchRequest {
	return GeocacheSearchRequest{
		MinLat:     &box.MinLat,
		MaxLat:     &box.MaxLat,
		MinLng:     &box.MinLng,
		MaxLng:     &box.MaxLng,
		Type:       FilterValue(cacheType),
		Difficulty: FilterValue(difficulty),
	}
}

// BoundingBox returns the box once every bound is present.
func (r GeocacheSearchRequest) BoundingBox() (GeoBoundingBox, error) {
	fields := []struct {
		name string
		v    *float64
	}{
		{"minLat", r.MinLat},
		{"maxLat", r.MaxLat},
		{"minLng", r.MinLng},
		{"maxLng", r.MaxLng},
	}
	for _, f := range fields {
		if f.v == nil {
			return GeoBoundingBox{}, fmt.Errorf("missing required field %q", f.name)
		}
	}
	box := GeoBoundingBox{MinLat: *r.MinLat, MaxLat: *r.MaxLat, MinLng: *r.MinLng, MaxLng: *r.MaxLng}
	if !box.Valid() {
		return GeoBoundingBox{}, fmt.Errorf("invalid bounding box %+v", box)
	}
	return box, nil
}

// FilterValue is an optional filter that clients send either as a string or a number.
// The zero value means "no filter".
type FilterValue string

// IsSet reports whether the filter should restrict results.
func (f FilterValue) IsSet() bool { return f != "" }

func (f FilterValue) String() string { return string(f) }

// UnmarshalJSON accepts "1", 1, 2.5 and null.
func (f *FilterValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FilterValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("filter must be a string or a number: %w", err)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return fmt.Errorf("filter must be a string or a number: %w", err)
	}
	*f = FilterValue(n.String())
	return nil
}
