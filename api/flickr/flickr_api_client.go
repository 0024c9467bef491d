package flickr

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"geocache-finder/api"
	"geocache-finder/config"
	"geocache-finder/models"
)

const PHOTOS_SEARCH_METHOD = "flickr.photos.search"

var ErrMissingAPIKey = errors.New("flickr api key is not configured")

// FlickrApiClient embeds the common HTTPClient.
type FlickrApiClient struct {
	*api.HTTPClient
	apiKey string
}

// NewFlickrApiClient creates a client that signs every call with apiKey.
func NewFlickrApiClient(httpClient *api.HTTPClient, apiKey string) *FlickrApiClient {
	return &FlickrApiClient{
		HTTPClient: httpClient,
		apiKey:     apiKey,
	}
}

// SearchPhotos returns up to FLICKR_PHOTOS_PER_PAGE photos taken near lat/lng.
// Flickr reports failures with HTTP 200 and stat "fail", which is returned as an error.
func (c *FlickrApiClient) SearchPhotos(ctx context.Context, lat, lng float64) (*models.FlickrPhotosSearchResponse, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	params := url.Values{}
	params.Set("method", PHOTOS_SEARCH_METHOD)
	params.Set("api_key", c.apiKey)
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	params.Set("per_page", strconv.Itoa(config.FLICKR_PHOTOS_PER_PAGE))
	params.Set("format", "json")
	params.Set("nojsoncallback", "1")

	var response models.FlickrPhotosSearchResponse
	if err := c.Request(ctx, "GET", "/", params, nil, &response); err != nil {
		return nil, err
	}
	if response.Stat != "ok" {
		return nil, fmt.Errorf("flickr photo search failed (code %d): %s", response.Code, response.Message)
	}
	return &response, nil
}
