package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"geocache-finder/api"
	"geocache-finder/models"
)

const (
	SEARCH_ENDPOINT = "/v1/geocaches/search"
	PHOTOS_ENDPOINT = "/v1/photos"
)

// Backend is what SearchView needs from the server.
type Backend interface {
	Search(ctx context.Context, req models.GeocacheSearchRequest) (models.SearchResponse, error)
	Photos(ctx context.Context, lat, lng float64) (models.PhotoSearchResult, error)
}

// GeocacheClient talks to the geocache server over HTTP.
type GeocacheClient struct {
	*api.HTTPClient
}

func NewGeocacheClient(httpClient *api.HTTPClient) *GeocacheClient {
	return &GeocacheClient{HTTPClient: httpClient}
}

// Search posts req and validates the reply. A transport failure or a reply that is
// neither a geocache array nor an error object is returned as an error; a server side
// error object comes back as a SearchResponseError envelope.
func (c *GeocacheClient) Search(ctx context.Context, req models.GeocacheSearchRequest) (models.SearchResponse, error) {
	status, body, err := c.Do(ctx, http.MethodPost, SEARCH_ENDPOINT, nil, req)
	if err != nil {
		return models.SearchResponse{}, fmt.Errorf("search request failed: %w", err)
	}
	return models.DecodeSearchResponse(status, body)
}

// Photos asks the server's photo proxy for thumbnails near lat/lng.
func (c *GeocacheClient) Photos(ctx context.Context, lat, lng float64) (models.PhotoSearchResult, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))

	var result models.PhotoSearchResult
	if err := c.Request(ctx, http.MethodGet, PHOTOS_ENDPOINT, query, nil, &result); err != nil {
		return models.PhotoSearchResult{}, err
	}
	switch result.Status {
	case models.PhotoStatusOK, models.PhotoStatusEmpty, models.PhotoStatusUnavailable:
	default:
		raw, _ := json.Marshal(result)
		return models.PhotoSearchResult{}, fmt.Errorf("unexpected photo response %s", raw)
	}
	return result, nil
}
