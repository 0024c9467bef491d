package flickr

import (
	"context"

	"geocache-finder/config"
	"geocache-finder/logger"
	"geocache-finder/models"
	"geocache-finder/util"
)

// FlickrApiClientMock answers every search with the recorded fixture response.
type FlickrApiClientMock struct {
	fixturePath string
}

func NewFlickrApiClientMock() *FlickrApiClientMock {
	return &FlickrApiClientMock{fixturePath: config.GetResourcePath(config.FLICKR_PHOTOS_SEARCH_RESPONSE_RESOURCE)}
}

// NewFlickrApiClientMockFromFile reads the fixture from path instead of resources/.
func NewFlickrApiClientMockFromFile(path string) *FlickrApiClientMock {
	return &FlickrApiClientMock{fixturePath: path}
}

func (c *FlickrApiClientMock) SearchPhotos(ctx context.Context, lat, lng float64) (*models.FlickrPhotosSearchResponse, error) {
	response, err := util.ReadJSONFile[models.FlickrPhotosSearchResponse](c.fixturePath)
	if err != nil {
		logger.L().Warn("flickr_fixture_unreadable", "path", c.fixturePath, "err", err)
		return nil, err
	}
	return response, nil
}
