package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Column names of the geocache table and its joined label.
const (
	ColumnID               = "id"
	ColumnLatitude         = "latitude"
	ColumnLongitude        = "longitude"
	ColumnCacheTypeID      = "cache_type_id"
	ColumnCacheType        = "cache_type"
	ColumnDifficultyRating = "difficulty_rating"
)

// GeocacheRecord is one row of the search result. Columns keeps every stored value as
// read and is what the JSON form carries. The typed fields are parsed copies for Go
// callers; a value that is not numeric leaves its typed field at zero.
type GeocacheRecord struct {
	ID               int64
	Latitude         float64
	Longitude        float64
	CacheTypeID      int64
	CacheType        string
	DifficultyRating float64
	Columns          map[string]any
}

// NewGeocacheRecord builds a record from a column name -> value row.
func NewGeocacheRecord(columns map[string]any) GeocacheRecord {
	rec := GeocacheRecord{Columns: columns}
	if columns == nil {
		rec.Columns = map[string]any{}
		return rec
	}
	rec.ID, _ = asInt64(columns[ColumnID])
	rec.Latitude, _ = asFloat64(columns[ColumnLatitude])
	rec.Longitude, _ = asFloat64(columns[ColumnLongitude])
	rec.CacheTypeID, _ = asInt64(columns[ColumnCacheTypeID])
	rec.CacheType = asString(columns[ColumnCacheType])
	rec.DifficultyRating, _ = asFloat64(columns[ColumnDifficultyRating])
	return rec
}

// Position returns the record's coordinate.
func (g GeocacheRecord) Position() LatLng {
	return LatLng{Lat: g.Latitude, Lng: g.Longitude}
}

// Difficulty renders the rating without trailing zeros ("2", "1.5"). A stored rating
// that is not a number ("Easy") is returned as stored.
func (g GeocacheRecord) Difficulty() string {
	if v, ok := g.Columns[ColumnDifficultyRating]; ok {
		if _, numeric := asFloat64(v); !numeric && v != nil {
			return asString(v)
		}
	}
	return strconv.FormatFloat(g.DifficultyRating, 'f', -1, 64)
}

// MarshalJSON writes the stored columns unchanged. Typed fields only fill in keys the
// row does not have: coordinates and the label always, the numeric ids and rating when set.
func (g GeocacheRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(g.Columns)+6)
	for k, v := range g.Columns {
		out[k] = v
	}
	fill := func(key string, v any, set bool) {
		if _, ok := out[key]; !ok && set {
			out[key] = v
		}
	}
	fill(ColumnID, g.ID, g.ID != 0)
	fill(ColumnLatitude, g.Latitude, true)
	fill(ColumnLongitude, g.Longitude, true)
	fill(ColumnCacheTypeID, g.CacheTypeID, g.CacheTypeID != 0)
	fill(ColumnCacheType, g.CacheType, true)
	fill(ColumnDifficultyRating, g.DifficultyRating, g.DifficultyRating != 0)
	return json.Marshal(out)
}

func (g *GeocacheRecord) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var columns map[string]any
	if err := dec.Decode(&columns); err != nil {
		return err
	}
	if columns == nil {
		return fmt.Errorf("geocache record must be a JSON object")
	}
	*g = NewGeocacheRecord(columns)
	return nil
}

func asFloat64(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int64:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	case []byte:
		f, err := strconv.ParseFloat(string(t), 64)
		return f, err == nil
	}
	return 0, false
}

func asInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case float64:
		return int64(t), true
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, true
		}
		f, err := t.Float64()
		return int64(f), err == nil
	case string:
		i, err := strconv.ParseInt(t, 10, 64)
		return i, err == nil
	case []byte:
		i, err := strconv.ParseInt(string(t), 10, 64)
		return i, err == nil
	}
	return 0, false
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}
