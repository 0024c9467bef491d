package flickr

import (
	"context"

	"geocache-finder/models"
)

// FlickrAPI defines the photo search the photo proxy relies on.
type FlickrAPI interface {
	SearchPhotos(ctx context.Context, lat, lng float64) (*models.FlickrPhotosSearchResponse, error)
}
